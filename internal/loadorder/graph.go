package loadorder

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Bilgecrank/arma-3-mod-tools/internal/workshop"
)

// CycleError reports a dependency cycle. The load order cannot be truncated
// around a cycle without loading a mod before something it requires, so a
// cycle aborts the run before the startup script is touched.
type CycleError struct {
	Mods []string // Short names still locked in the cycle, sorted
}

func (e *CycleError) Error() string {
	return "dependency cycle between mods: " + strings.Join(e.Mods, ", ")
}

// Sort computes a dependency-respecting load order over the registry's
// short names using Kahn's algorithm. A node exists for every mod and every
// declared dependency; each edge points from a dependency to its dependent,
// so dependencies always sort earlier. Ready nodes are taken in lexical
// order, making the result a stable total order.
func Sort(registry workshop.Registry) ([]string, error) {
	adjacency := make(map[string][]string) // dependency -> dependents
	inDegree := make(map[string]int)

	addNode := func(name string) {
		if _, ok := inDegree[name]; !ok {
			inDegree[name] = 0
			adjacency[name] = nil
		}
	}

	// Iterate the registry in sorted ID order so edge multiplicity (and
	// therefore in-degrees) is reproducible run to run.
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	seenEdge := make(map[[2]string]bool)
	for _, id := range ids {
		mod := registry[id]
		addNode(mod.ShortName)
		for _, dep := range mod.Dependencies {
			addNode(dep.ShortName)
			edge := [2]string{dep.ShortName, mod.ShortName}
			if dep.ShortName == mod.ShortName || seenEdge[edge] {
				continue
			}
			seenEdge[edge] = true
			adjacency[dep.ShortName] = append(adjacency[dep.ShortName], mod.ShortName)
			inDegree[mod.ShortName]++
		}
	}

	// Kahn's algorithm with a lexically sorted ready queue.
	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	order := make([]string, 0, len(inDegree))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		order = append(order, name)
		for _, dependent := range adjacency[name] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
		sort.Strings(queue)
	}

	if len(order) < len(inDegree) {
		var stuck []string
		for name, degree := range inDegree {
			if degree > 0 {
				stuck = append(stuck, name)
			}
		}
		sort.Strings(stuck)
		return nil, &CycleError{Mods: stuck}
	}
	return order, nil
}

// Render turns a load order into the managed startup parameter, e.g.
// -mod="mods/@cba;mods/@ace". modsRel is the mods directory relative to the
// server root, since the startup script runs from there.
func Render(order []string, modsRel string) string {
	paths := make([]string, len(order))
	for i, name := range order {
		paths[i] = filepath.Join(modsRel, name)
	}
	return fmt.Sprintf("-mod=%q", strings.Join(paths, ";"))
}
