package workshop

import (
	"errors"
	"sync"

	"github.com/Bilgecrank/arma-3-mod-tools/internal/logger"
)

// ErrEmptyRegistry is returned when no mod in the input list could be
// resolved into a registry entry.
var ErrEmptyRegistry = errors.New("no mods could be resolved into the registry")

// BuildRegistry resolves every workshop URL concurrently and merges the
// results into a Registry. In-flight requests are capped so a long mod list
// does not hammer the workshop. Individual failures are logged and the URL
// is dropped; the builder itself only fails when nothing resolved at all.
func (r *Resolver) BuildRegistry(urls []string) (Registry, error) {
	if len(urls) == 0 {
		return nil, ErrEmptyRegistry
	}

	logger.Info("[INFO] Requesting information for %d mods...\n", len(urls))

	results := make(chan Mod, len(urls))
	sem := make(chan struct{}, r.maxInFlight)
	var wg sync.WaitGroup

	for _, modURL := range urls {
		wg.Add(1)
		go func(modURL string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			mod, err := r.ResolveMod(modURL)
			if err != nil {
				// Drop the entry, the rest of the list is still useful.
				logger.Error("[ERROR] Skipping %s: %v\n", modURL, err)
				return
			}
			results <- mod
		}(modURL)
	}

	// Merge is done by this single goroutine only after every worker has
	// finished, so the registry map is never written concurrently.
	wg.Wait()
	close(results)

	registry := make(Registry)
	for mod := range results {
		if _, ok := registry[mod.ID]; ok {
			logger.Debug("[DEBUG] Duplicate workshop item %s, keeping first entry\n", mod.ID)
			continue
		}
		registry[mod.ID] = mod
	}

	if len(registry) == 0 {
		return nil, ErrEmptyRegistry
	}
	logger.Info("[INFO] Resolved %d of %d mods\n", len(registry), len(urls))
	return registry, nil
}
