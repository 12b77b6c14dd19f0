// Package util contains yangtree utility functions useful for external
// callers that just want a set of built Entry trees from a file list,
// without driving the Store/Build pipeline by hand.
package util

import (
	"fmt"

	"github.com/netyang/yangtree/pkg/yang"
)

// ProcessModules takes a list of either .yang file paths or bare
// module/submodule names, and a list of include directories, runs the full
// load/resolve/build pipeline against them, and returns a map of module
// name to its built Entry tree.
func ProcessModules(yangfiles, path []string) (map[string]*yang.Entry, []error) {
	store := yang.NewStore()
	for _, p := range path {
		store.AddPath(fmt.Sprintf("%s/...", p))
	}

	var processErr []error
	for _, name := range yangfiles {
		if err := store.ReadWithResolve(name); err != nil {
			processErr = append(processErr, err)
		}
	}

	if len(processErr) > 0 {
		return nil, processErr
	}

	store.ResolveIdentities()

	// Build an Entry for every module reached (including transitively
	// loaded imports), keyed by each module's own declared name -- not the
	// caller-supplied file name, which may differ (Read resolves a
	// requested name to whatever module statement the file contains).
	entries := make(map[string]*yang.Entry)
	seen := make(map[*yang.Module]bool)
	var buildErr []error
	for _, m := range store.Modules {
		if seen[m] {
			continue
		}
		seen[m] = true
		e, err := store.Build(m)
		if err != nil {
			buildErr = append(buildErr, err)
			continue
		}
		entries[e.Name] = e
	}
	if len(buildErr) > 0 {
		return nil, buildErr
	}

	return entries, nil
}
