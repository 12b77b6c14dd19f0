package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/netyang/yangtree/pkg/indent"
	"github.com/netyang/yangtree/pkg/yang"
)

func init() {
	register(&formatter{
		name: "tree",
		f:    doTree,
		help: "display in a tree format",
	})
}

func doTree(w io.Writer, entries []*yang.Entry) {
	for _, e := range entries {
		writeEntry(w, e)
	}
}

// writeEntry writes e, formatted, and all of its children, to w.  e.Dir is
// already in declaration order, so no re-sort is needed here.
func writeEntry(w io.Writer, e *yang.Entry) {
	if len(e.Extension) > 0 {
		var names []string
		for n := range e.Extension {
			names = append(names, n)
		}
		sort.Strings(names)
		fmt.Fprintf(w, "extensions: {\n")
		for _, n := range names {
			if arg := e.Extension[n]; arg != "" {
				fmt.Fprintf(w, "  %s %s;\n", n, arg)
			} else {
				fmt.Fprintf(w, "  %s;\n", n)
			}
		}
		fmt.Fprintln(w, "}")
	}

	if e.IsChoice() {
		fmt.Fprintf(w, "choice %s {\n", e.Name) //}
		for _, c := range e.ChoiceCases {
			writeEntry(indent.NewWriter(w, "  "), c)
		}
		fmt.Fprintln(w, "}")
		return
	}

	if e.Type != nil {
		fmt.Fprintf(w, "%s ", e.Type.Kind)
	}

	switch {
	case e.Dir == nil && e.ListAttr != nil:
		fmt.Fprintf(w, "[]%s\n", e.Name)
		return
	case e.Dir == nil:
		fmt.Fprintf(w, "%s\n", e.Name)
		return
	case e.ListAttr != nil:
		fmt.Fprintf(w, "[%s]%s {\n", strings.Join(e.Key, " "), e.Name) //}
	default:
		fmt.Fprintf(w, "%s {\n", e.Name) //}
	}
	for _, c := range e.Dir {
		writeEntry(indent.NewWriter(w, "  "), c)
	}
	// { to match the brace above and keep brace matching working
	fmt.Fprintln(w, "}")
}
