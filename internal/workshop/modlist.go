package workshop

import (
	"fmt"
	"os"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bilgecrank/arma-3-mod-tools/internal/logger"
)

// ParseModList reads an Arma 3 Launcher HTML mod-list export and returns
// the workshop page URLs of every linked mod, in document order with
// duplicates removed.
func ParseModList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mod list %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close mod list file: %v\n", cerr)
		}
	}()

	doc, err := goquery.NewDocumentFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mod list %s: %w", path, err)
	}

	var urls []string
	seen := make(map[string]bool)
	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" || seen[href] {
			return
		}
		seen[href] = true
		urls = append(urls, href)
	})

	logger.Debug("[DEBUG] Mod list %s yielded %d links\n", path, len(urls))
	return urls, nil
}
