package main

import (
	"fmt"
	"io"

	"github.com/netyang/yangtree/pkg/indent"
	"github.com/netyang/yangtree/pkg/yang"
)

func init() {
	register(&formatter{
		name: "types",
		f:    doTypes,
		help: "display resolved types found in the tree",
	})
}

func doTypes(w io.Writer, entries []*yang.Entry) {
	seen := map[*yang.Type]bool{}
	for _, e := range entries {
		collectTypes(e, seen)
	}
	for t := range seen {
		printType(w, t)
	}
}

func collectTypes(e *yang.Entry, seen map[*yang.Type]bool) {
	if e == nil {
		return
	}
	if e.Type != nil {
		seen[e.Type] = true
	}
	for _, d := range e.Dir {
		collectTypes(d, seen)
	}
	for _, c := range e.ChoiceCases {
		collectTypes(c, seen)
	}
}

// printType prints t in a moderately human readable format to w.
func printType(w io.Writer, t *yang.Type) {
	name := t.Name
	if t.Typedef != "" {
		name = t.Typedef
	}
	fmt.Fprintf(w, "%s", name)
	if t.Kind.String() != name {
		fmt.Fprintf(w, "(%s)", t.Kind)
	}
	if !yang.IsBuiltinKind(t.Kind) {
		fmt.Fprintf(w, " [unresolved]")
	}
	if yang.IsIntegerKind(t.Kind) && t.Range == nil {
		fmt.Fprintf(w, " [unbounded]")
	}
	if t.Units != "" {
		fmt.Fprintf(w, " units=%s", t.Units)
	}
	if t.Default != "" {
		fmt.Fprintf(w, " default=%q", t.Default)
	}
	if t.FractionDigits != 0 {
		fmt.Fprintf(w, " fraction-digits=%d", t.FractionDigits)
	}
	if t.Kind == yang.Yleafref && t.Path != "" {
		fmt.Fprintf(w, " path=%q", t.Path)
	}
	if len(t.PatternExpr) > 0 {
		fmt.Fprintf(w, " pattern=%q", t.PatternExpr)
	}
	if t.Range != nil && len(t.Range.Parts) > 0 {
		fmt.Fprintf(w, " range=%v", t.Range.Parts)
	}
	if len(t.Enum) > 0 {
		fmt.Fprintf(w, " enum={")
		for i, ev := range t.Enum {
			if i > 0 {
				fmt.Fprintf(w, ",")
			}
			fmt.Fprintf(w, "%s", ev.Name)
		}
		fmt.Fprintf(w, "}")
	}
	if len(t.Union) > 0 {
		fmt.Fprintf(w, " union{\n")
		for _, m := range t.Union {
			printType(indent.NewWriter(w, "  "), m)
		}
		fmt.Fprintf(w, "}")
	}
	fmt.Fprintf(w, ";\n")
}
