package workshop

import (
	"net/url"
	"regexp"
	"strings"
)

// Dependency is another workshop item a mod declares it requires. Only one
// hop is resolved: a dependency's own dependencies are not followed.
type Dependency struct {
	ID        string // Workshop item ID
	Name      string // Display name from the item's page title
	ShortName string // Sanitized @alias, see ShortName()
	URL       string // Workshop page URL
}

// Mod is one resolved registry entry. Created by the registry builder and
// read-only afterwards.
type Mod struct {
	ID           string
	Name         string
	ShortName    string
	URL          string
	Dependencies []Dependency
}

// Registry maps workshop item ID to its resolved entry. One entry per ID;
// re-resolving the same ID never creates duplicates.
type Registry map[string]Mod

// nonAlnum matches everything stripped out of a display name when deriving
// the stable short name.
var nonAlnum = regexp.MustCompile(`[^0-9a-zA-Z]+`)

// ShortName derives the stable @alias used for symlinks and the -mod=
// parameter: "@" plus the lowercased alphanumerics of the display name.
// "CBA_A3" becomes "@cbaa3".
func ShortName(displayName string) string {
	return "@" + strings.ToLower(nonAlnum.ReplaceAllString(displayName, ""))
}

// IDFromURL extracts the workshop item ID from a filedetails page URL
// (the ?id= query parameter). Returns "" when the URL carries no ID.
func IDFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get("id")
}
