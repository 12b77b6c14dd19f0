package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/netyang/yangtree/pkg/yang"
)

func init() {
	register(&formatter{
		name: "modules",
		f:    doModules,
		help: "list the modules reached from the command line sources",
	})
}

// doModules prints the name of every module whose effective tree was built,
// one per line, sorted. Unlike tree/types, it ignores each entry's
// contents entirely -- it exists for scripting against the set of modules
// a set of sources pulls in transitively, without piping through a full
// tree dump.
func doModules(w io.Writer, entries []*yang.Entry) {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e != nil {
			names = append(names, e.Name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\n", name)
	}
}
