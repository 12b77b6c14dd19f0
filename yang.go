// Program yangtree loads YANG modules, resolves them into the effective
// schema tree, and displays the result.
//
// Usage: yangtree [--path DIR] [--format FORMAT] [FORMAT OPTIONS] [SOURCE ...]
//
// SOURCE may be a bare module name or a .yang file path. If DIR is
// specified, it is a comma-separated list of directories to add to the
// search path; DIR/... additionally searches all subdirectories of DIR.
//
// FORMAT, which defaults to "tree", selects the output format. Use
// "yangtree --help" for the list of available formats.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/netyang/yangtree/pkg/indent"
	"github.com/netyang/yangtree/pkg/yang"
	"github.com/pborman/getopt"
)

// Each format must register a formatter with register.  The function f is
// called once with the effective schema trees of every module reached
// from the command line sources, including transitive imports.
type formatter struct {
	name  string
	f     func(io.Writer, []*yang.Entry)
	help  string
	flags *getopt.Set
}

var formatters = map[string]*formatter{}

func register(f *formatter) {
	formatters[f.name] = f
}

var stop = os.Exit

func exitIfError(errs []error) {
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err)
		}
		stop(1)
	}
}

func main() {
	var format string
	formats := make([]string, 0, len(formatters))
	for k := range formatters {
		formats = append(formats, k)
	}
	sort.Strings(formats)

	var help bool
	var paths []string
	getopt.ListVarLong(&paths, "path", 0, "comma separated list of directories to add to search path", "DIR[,DIR...]")
	getopt.StringVarLong(&format, "format", 0, "format to display: "+strings.Join(formats, ", "), "FORMAT")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("[FORMAT OPTIONS] [SOURCE] [...]")

	if err := getopt.Getopt(func(o getopt.Option) bool {
		if o.Name() == "--format" {
			f, ok := formatters[format]
			if !ok {
				fmt.Fprintf(os.Stderr, "%s: invalid format.  Choices are %s\n", format, strings.Join(formats, ", "))
				stop(1)
			}
			if f.flags != nil {
				f.flags.VisitAll(func(o getopt.Option) {
					getopt.AddOption(o)
				})
			}
		}
		return true
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		fmt.Fprintf(os.Stderr, "\nSOURCE may be a module name or a .yang file.\n\nFormats:\n")
		for _, fn := range formats {
			f := formatters[fn]
			fmt.Fprintf(os.Stderr, "    %s - %s\n", f.name, f.help)
			if f.flags != nil {
				f.flags.PrintOptions(indent.NewWriter(os.Stderr, "   "))
			}
			fmt.Fprintln(os.Stderr)
		}
		stop(0)
	}

	if format == "" {
		format = "tree"
	}
	if _, ok := formatters[format]; !ok {
		fmt.Fprintf(os.Stderr, "%s: invalid format.  Choices are %s\n", format, strings.Join(formats, ", "))
		stop(1)
	}

	store := yang.NewStore()
	for _, p := range paths {
		store.AddPath(p)
	}

	sources := getopt.Args()

	var errs []error
	for _, name := range sources {
		if err := store.ReadWithResolve(name); err != nil {
			errs = append(errs, err)
			continue
		}
	}
	exitIfError(errs)

	store.ResolveIdentities()

	// Every module reached -- the sources named on the command line plus
	// whatever they transitively import -- is displayed, sorted by name.
	names := store.ModuleNames()

	var entries []*yang.Entry
	for _, n := range names {
		e, err := store.Build(store.FindModule(n))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entries = append(entries, e)
	}
	exitIfError(errs)

	formatters[format].f(os.Stdout, entries)
}
