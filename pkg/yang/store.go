package yang

// This file implements the Module Store: search-path management,
// filesystem discovery of .yang source, and the transitive load driver
// that pulls in imports and includes.

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// searchPath is one entry of a Store's configured search path.
type searchPath struct {
	dir       string
	recursive bool // true when the entry ended in ".../"
}

// Store owns every AST loaded from the filesystem: the transitive closure
// of modules and submodules pulled in by Read/ReadWithResolve, plus the
// search path used to find them.  A Store is single-threaded: it is
// populated and queried by one goroutine.
type Store struct {
	Modules    map[string]*Module
	SubModules map[string]*Submodule

	paths   []searchPath
	pathSet map[string]bool
}

// NewStore returns an empty, ready-to-use Store.
func NewStore() *Store {
	return &Store{
		Modules:    map[string]*Module{},
		SubModules: map[string]*Submodule{},
		pathSet:    map[string]bool{},
	}
}

// AddPath adds the directories named in paths (each a colon-separated list)
// to the search path, skipping any already present.  A path segment ending
// in "..." enables recursive descent rooted at its parent directory.
func (s *Store) AddPath(paths ...string) {
	for _, p := range paths {
		for _, seg := range strings.Split(p, ":") {
			if seg == "" || s.pathSet[seg] {
				continue
			}
			s.pathSet[seg] = true
			if filepath.Base(seg) == "..." {
				s.paths = append(s.paths, searchPath{dir: filepath.Dir(seg), recursive: true})
			} else {
				s.paths = append(s.paths, searchPath{dir: seg, recursive: false})
			}
		}
	}
}

// searchPaths returns the configured search path with the mandatory
// non-recursive current-directory fallback appended.
func (s *Store) searchPaths() []searchPath {
	paths := append([]searchPath(nil), s.paths...)
	return append(paths, searchPath{dir: "."})
}

// findFile discovers the file backing a requested module/submodule name.
// A name containing "/" is treated as a literal file path (not searched
// against the path list): if it can be read directly, its directory is
// added to the search path so that sibling imports resolve.
func (s *Store) findFile(name string) (path string, data []byte, err error) {
	if strings.Contains(name, "/") {
		data, err := os.ReadFile(name)
		if err != nil {
			return "", nil, &FileNotFoundError{Name: name}
		}
		s.AddPath(filepath.Dir(name))
		return name, data, nil
	}

	filename := name
	hasAt := strings.Contains(name, "@")
	if !strings.HasSuffix(filename, ".yang") {
		filename += ".yang"
	}

	var candidates []string
	for _, p := range s.searchPaths() {
		exact, cands, found := scanForModule(p.dir, p.recursive, filename, name, hasAt)
		if found {
			data, err := os.ReadFile(exact)
			if err != nil {
				return "", nil, err // I/O errors propagate verbatim
			}
			return exact, data, nil
		}
		candidates = append(candidates, cands...)
	}

	if len(candidates) == 0 {
		return "", nil, &FileNotFoundError{Name: name}
	}
	sort.Strings(candidates) // lexicographic max selects the latest revision
	best := candidates[len(candidates)-1]
	data, err = os.ReadFile(best)
	if err != nil {
		return "", nil, err
	}
	return best, data, nil
}

// scanForModule scans dir's own files for filename, then (when recursive
// is set) its subdirectories, returning immediately on an exact match.
// Along the way it collects "name@*.yang" revision candidates, unless
// hasAt is set (the caller already asked for a specific revision).
func scanForModule(dir string, recursive bool, filename, name string, hasAt bool) (exact string, candidates []string, found bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", nil, false
	}

	var subdirs []string
	for _, e := range entries {
		if e.IsDir() {
			subdirs = append(subdirs, filepath.Join(dir, e.Name()))
			continue
		}
		n := e.Name()
		if n == filename {
			return filepath.Join(dir, n), nil, true
		}
		if !hasAt && strings.HasPrefix(n, name+"@") && strings.HasSuffix(n, ".yang") {
			candidates = append(candidates, filepath.Join(dir, n))
		}
	}

	if recursive {
		for _, sd := range subdirs {
			if e, c, f := scanForModule(sd, true, filename, name, hasAt); f {
				return e, nil, true
			} else {
				candidates = append(candidates, c...)
			}
		}
	}
	return "", candidates, false
}

// Read loads the named module into the store, then recursively loads every
// module it imports (if not already present) and every submodule it
// includes, merging each included submodule's groupings into this module's
// grouping list.  Read is idempotent keyed on name.
func (s *Store) Read(name string) error {
	return s.read(name, false)
}

// ReadWithResolve is the variant of Read that distinguishes modules from
// submodules by the loaded AST's own kind, recursively loading both sides
// of the import/include graph regardless of which kind name turns out to
// be.
func (s *Store) ReadWithResolve(name string) error {
	return s.read(name, true)
}

func (s *Store) read(name string, resolveSubmodule bool) error {
	if s.Modules[name] != nil || s.SubModules[name] != nil {
		return nil // idempotent
	}

	path, data, err := s.findFile(name)
	if err != nil {
		return err
	}
	stmts, err := Parse(string(data), path)
	if err != nil {
		return &ParseError{Name: name, Path: path, Err: err}
	}
	if len(stmts) == 0 {
		return &ParseError{Name: name, Path: path, Err: fmt.Errorf("no module or submodule statement found")}
	}
	node, err := BuildModule(stmts[0])
	if err != nil {
		return &ParseError{Name: name, Path: path, Err: err}
	}

	switch n := node.(type) {
	case *Module:
		s.Modules[n.Name] = n
		if n.FullName != n.Name {
			s.Modules[n.FullName] = n
		}
		if err := s.loadDeps(n.Import, n.Include, resolveSubmodule); err != nil {
			delete(s.Modules, n.Name)
			delete(s.Modules, n.FullName)
			return err
		}
		for _, inc := range n.Include {
			if inc.Module != nil {
				n.Grouping = append(n.Grouping, inc.Module.Grouping...)
			}
		}
	case *Submodule:
		s.SubModules[n.Name] = n
		if n.FullName != n.Name {
			s.SubModules[n.FullName] = n
		}
		if resolveSubmodule {
			if err := s.loadDeps(n.Import, n.Include, resolveSubmodule); err != nil {
				delete(s.SubModules, n.Name)
				delete(s.SubModules, n.FullName)
				return err
			}
		}
	default:
		return &ParseError{Name: name, Path: path, Err: fmt.Errorf("%s is not a module or submodule", stmts[0].Keyword)}
	}
	return nil
}

// loadDeps recursively loads every import/include not already present,
// linking each Include to its resolved Submodule.
func (s *Store) loadDeps(imports []*Import, includes []*Include, resolveSubmodule bool) error {
	for _, im := range imports {
		if s.Modules[im.ModuleName] == nil {
			if err := s.read(im.ModuleName, resolveSubmodule); err != nil {
				return err
			}
		}
	}
	for _, inc := range includes {
		if s.SubModules[inc.SubmoduleName] == nil {
			if err := s.read(inc.SubmoduleName, resolveSubmodule); err != nil {
				return err
			}
		}
		inc.Module = s.SubModules[inc.SubmoduleName]
	}
	return nil
}

// FindModule returns the loaded module named name, or nil.
func (s *Store) FindModule(name string) *Module { return s.Modules[name] }

// FindSubmodule returns the loaded submodule named name, or nil.
func (s *Store) FindSubmodule(name string) *Submodule { return s.SubModules[name] }

// ModuleNames returns the names of every distinct module loaded into the
// store, sorted.  (Additive helper grounded on original_source's
// reader.rs module listing -- see SPEC_FULL.md supplement #4.)
func (s *Store) ModuleNames() []string {
	seen := map[string]bool{}
	var names []string
	for _, m := range s.Modules {
		if !seen[m.Name] {
			seen[m.Name] = true
			names = append(names, m.Name)
		}
	}
	sort.Strings(names)
	return names
}

// SubmoduleNames returns the names of every distinct submodule loaded into
// the store, sorted.
func (s *Store) SubmoduleNames() []string {
	seen := map[string]bool{}
	var names []string
	for _, m := range s.SubModules {
		if !seen[m.Name] {
			seen[m.Name] = true
			names = append(names, m.Name)
		}
	}
	sort.Strings(names)
	return names
}

// rootOf walks n's parent chain up to its owning *Module or *Submodule.
func rootOf(n Node) Node {
	for n != nil {
		switch n.(type) {
		case *Module, *Submodule:
			return n
		}
		n = n.ParentNode()
	}
	return nil
}

// resolveModuleByPrefix looks up prefix in root's import list (or
// recognizes it as root's own prefix) and returns the target module.
func (s *Store) resolveModuleByPrefix(root Node, prefix string) (*Module, error) {
	switch r := root.(type) {
	case *Module:
		if prefix == "" || prefix == r.Prefix {
			return r, nil
		}
		for _, im := range r.Import {
			if im.Prefix == prefix {
				if mod := s.Modules[im.ModuleName]; mod != nil {
					return mod, nil
				}
				return nil, fmt.Errorf("%s: unresolved import %s", Source(r), im.ModuleName)
			}
		}
		return nil, fmt.Errorf("%s: unknown prefix %q", Source(r), prefix)
	case *Submodule:
		parent := s.Modules[r.BelongsTo]
		ownPrefix := ""
		if parent != nil {
			ownPrefix = parent.Prefix
		}
		if prefix == "" || prefix == ownPrefix {
			if parent == nil {
				return nil, fmt.Errorf("%s: unresolved belongs-to %s", Source(r), r.BelongsTo)
			}
			return parent, nil
		}
		for _, im := range r.Import {
			if im.Prefix == prefix {
				if mod := s.Modules[im.ModuleName]; mod != nil {
					return mod, nil
				}
				return nil, fmt.Errorf("%s: unresolved import %s", Source(r), im.ModuleName)
			}
		}
		return nil, fmt.Errorf("%s: unknown prefix %q", Source(r), prefix)
	}
	return nil, fmt.Errorf("unknown prefix %q", prefix)
}

// scopeChain returns the sequence of definition-holders to search for a
// bare (unqualified) name reference rooted at root.  For a module: the
// module itself, then each submodule it directly includes.  For a
// submodule: the submodule alone; neither its own includes nor its
// owning module are searched.  Imports are never searched for a bare
// name -- only a qualified "prefix:name" reaches across modules.
func scopeChain(root Node) []Node {
	switch r := root.(type) {
	case *Module:
		chain := []Node{r}
		for _, inc := range r.Include {
			if inc.Module != nil {
				chain = append(chain, inc.Module)
			}
		}
		return chain
	case *Submodule:
		return []Node{r}
	}
	return nil
}

// findTypedef resolves a typedef reference: a qualified "prefix:name"
// resolves the prefix to a module and searches only that module's own
// typedefs; a bare name walks root's scope chain.
func (s *Store) findTypedef(root Node, qualified string) *Typedef {
	prefix, name := getPrefix(qualified)
	if prefix != "" {
		mod, err := s.resolveModuleByPrefix(root, prefix)
		if err != nil {
			return nil
		}
		return findTypedefByName(mod.Typedef, name)
	}
	for _, scope := range scopeChain(root) {
		var tds []*Typedef
		switch n := scope.(type) {
		case *Module:
			tds = n.Typedef
		case *Submodule:
			tds = n.Typedef
		}
		if td := findTypedefByName(tds, name); td != nil {
			return td
		}
	}
	return nil
}

// findGrouping resolves a "uses" reference, with the same qualified/bare
// split as findTypedef.
func (s *Store) findGrouping(root Node, qualified string) *Grouping {
	prefix, name := getPrefix(qualified)
	if prefix != "" {
		mod, err := s.resolveModuleByPrefix(root, prefix)
		if err != nil {
			return nil
		}
		return findGroupingByName(mod.Grouping, name)
	}
	for _, scope := range scopeChain(root) {
		var gs []*Grouping
		switch n := scope.(type) {
		case *Module:
			gs = n.Grouping
		case *Submodule:
			gs = n.Grouping
		}
		if g := findGroupingByName(gs, name); g != nil {
			return g
		}
	}
	return nil
}

// findIdentity resolves an identity base reference, with the same
// qualified/bare split as findTypedef.
func (s *Store) findIdentity(root Node, qualified string) *Identity {
	prefix, name := getPrefix(qualified)
	if prefix != "" {
		mod, err := s.resolveModuleByPrefix(root, prefix)
		if err != nil {
			return nil
		}
		return findIdentityByName(mod.Identity, name)
	}
	for _, scope := range scopeChain(root) {
		var ids []*Identity
		switch n := scope.(type) {
		case *Module:
			ids = n.Identity
		case *Submodule:
			ids = n.Identity
		}
		if id := findIdentityByName(ids, name); id != nil {
			return id
		}
	}
	return nil
}

func findIdentityByName(ids []*Identity, name string) *Identity {
	for _, id := range ids {
		if id.Name == name {
			return id
		}
	}
	return nil
}

func findTypedefByName(tds []*Typedef, name string) *Typedef {
	for _, td := range tds {
		if td.Name == name {
			return td
		}
	}
	return nil
}

func findGroupingByName(gs []*Grouping, name string) *Grouping {
	for _, g := range gs {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// Source returns a human-readable location string for n, for error
// messages.
func Source(n Node) string {
	if n != nil && n.Statement() != nil {
		return n.Statement().Location()
	}
	return "unknown"
}
