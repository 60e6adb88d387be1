package workshop

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bilgecrank/arma-3-mod-tools/internal/config"
	"github.com/Bilgecrank/arma-3-mod-tools/internal/logger"
)

// Resolver fetches workshop item pages and turns them into Mod entries.
// Base URLs come from the config so tests can point it at a local server.
type Resolver struct {
	client       *http.Client
	changelogURL string
	maxInFlight  int
}

// NewResolver builds a Resolver from the pipeline configuration.
func NewResolver(cfg config.Config) *Resolver {
	return &Resolver{
		client:       &http.Client{Timeout: time.Duration(cfg.Resolver.HTTPTimeout)},
		changelogURL: cfg.ChangelogURL,
		maxInFlight:  cfg.Resolver.MaxInFlight,
	}
}

// fetchDocument GETs a page and parses it. Non-200 responses are errors:
// the workshop serves item pages with 200 even for age-gated content, so
// anything else means the item is gone or Steam is unhappy.
func (r *Resolver) fetchDocument(pageURL string) (*goquery.Document, error) {
	resp, err := r.client.Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to GET %s: %w", pageURL, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("workshop fetch of %s returned HTTP status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page %s: %w", pageURL, err)
	}
	return doc, nil
}

// itemTitle pulls the display name out of a workshop item page. A missing
// title element means the page is not a workshop item page at all.
func itemTitle(doc *goquery.Document, pageURL string) (string, error) {
	title := doc.Find("div.workshopItemTitle").First()
	if title.Length() == 0 {
		return "", fmt.Errorf("no workshop item title found at %s", pageURL)
	}
	return strings.TrimSpace(title.Text()), nil
}

// ResolveMod fetches one workshop item page and builds its registry entry:
// display name, derived short name, and declared dependencies. Dependencies
// are resolved one hop only; each dependency page is fetched for its name,
// but dependencies of dependencies are not followed.
func (r *Resolver) ResolveMod(modURL string) (Mod, error) {
	id := IDFromURL(modURL)
	if id == "" {
		return Mod{}, fmt.Errorf("no workshop item ID in URL %s", modURL)
	}

	doc, err := r.fetchDocument(modURL)
	if err != nil {
		return Mod{}, err
	}
	name, err := itemTitle(doc, modURL)
	if err != nil {
		return Mod{}, err
	}

	mod := Mod{
		ID:        id,
		Name:      name,
		ShortName: ShortName(name),
		URL:       modURL,
	}

	// The RequiredItems box holds one anchor per declared dependency.
	var depErr error
	doc.Find("#RequiredItems a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		depURL, ok := sel.Attr("href")
		if !ok {
			return true
		}
		dep, err := r.resolveDependency(depURL)
		if err != nil {
			depErr = err
			return false
		}
		mod.Dependencies = append(mod.Dependencies, dep)
		return true
	})
	if depErr != nil {
		return Mod{}, fmt.Errorf("resolving dependencies of %q: %w", name, depErr)
	}
	return mod, nil
}

// resolveDependency fetches a dependency's page for its display name only.
func (r *Resolver) resolveDependency(depURL string) (Dependency, error) {
	id := IDFromURL(depURL)
	if id == "" {
		return Dependency{}, fmt.Errorf("no workshop item ID in dependency URL %s", depURL)
	}
	doc, err := r.fetchDocument(depURL)
	if err != nil {
		return Dependency{}, err
	}
	name, err := itemTitle(doc, depURL)
	if err != nil {
		return Dependency{}, err
	}
	return Dependency{
		ID:        id,
		Name:      name,
		ShortName: ShortName(name),
		URL:       depURL,
	}, nil
}
