package yang

// This file implements the Schema Builder: the third pass that walks a
// module's data-def tree and produces the effective schema tree of Entry
// nodes.

import "fmt"

// ListAttr carries list/leaf-list cardinality: present on an Entry iff
// that Entry is a list (directory with a key) or a leaf-list.
type ListAttr struct {
	MinElements   int
	MaxElements   int // -1 means unbounded
	OrderedByUser bool
}

// Entry is a single node of the effective schema tree.
type Entry struct {
	Name      string
	Kind      string // "directory", "leaf", or "choice"
	Presence  bool
	Mandatory bool
	Key       []string // non-empty iff this directory is a list
	ListAttr  *ListAttr
	Type      *Type // resolved TypeNode; set on leaves/leaf-lists
	Extension map[string]string

	Dir    []*Entry // ordered children; sealed after build
	Parent *Entry   // weak back-reference

	// ChoiceCases holds, for kind=="choice", the ordered case directory
	// entries; each also appears nowhere else (a choice's Dir is unused).
	ChoiceCases []*Entry
}

// IsContainer reports whether e is a plain container.
func (e *Entry) IsContainer() bool { return e.Kind == "directory" && e.ListAttr == nil }

// IsList reports whether e is a list.
func (e *Entry) IsList() bool { return e.Kind == "directory" && e.ListAttr != nil }

// IsLeaf reports whether e is a scalar leaf.
func (e *Entry) IsLeaf() bool { return e.Kind == "leaf" && e.ListAttr == nil }

// IsLeafList reports whether e is a leaf-list.
func (e *Entry) IsLeafList() bool { return e.Kind == "leaf" && e.ListAttr != nil }

// IsEmptyLeaf reports whether e is a leaf of type "empty".
func (e *Entry) IsEmptyLeaf() bool { return e.IsLeaf() && e.Type != nil && e.Type.Kind == Yempty }

// HasKey reports whether e carries a non-empty list key.
func (e *Entry) HasKey() bool { return len(e.Key) > 0 }

// IsChoice reports whether e is a choice node.
func (e *Entry) IsChoice() bool { return e.Kind == "choice" }

// DefaultMaxUsesDepth is the recursion cap applied to uses/grouping
// expansion: grouping self-reference (A uses G, G uses A) is not detected
// structurally, but expansion deeper than this aborts rather than
// exhausting the stack.
const DefaultMaxUsesDepth = 128

type builder struct {
	store    *Store
	maxDepth int
}

// Build produces the effective schema tree for module, using
// DefaultMaxUsesDepth as the grouping recursion cap.
func (s *Store) Build(module *Module) (*Entry, error) {
	return s.BuildWithDepth(module, DefaultMaxUsesDepth)
}

// BuildWithDepth is Build with an explicit recursion cap, for callers that
// need a tighter or looser bound than DefaultMaxUsesDepth.
func (s *Store) BuildWithDepth(module *Module, maxDepth int) (*Entry, error) {
	b := &builder{store: s, maxDepth: maxDepth}
	root := &Entry{Name: module.Name, Kind: "directory"}
	if err := b.buildInto(root, module.Data, module, 0); err != nil {
		return nil, err
	}
	return root, nil
}

func attach(parent, child *Entry) {
	child.Parent = parent
	parent.Dir = append(parent.Dir, child)
}

// configFalse reports whether a statement's own config flag prunes it.
// Ancestors' flags are not consulted; a pruned statement's subtree is
// skipped with it, since the builder never visits its children.  See
// DESIGN.md's Open Question notes.
func configFalse(set, value bool) bool { return set && !value }

func extMap(exts []*Extension) map[string]string {
	if len(exts) == 0 {
		return nil
	}
	m := make(map[string]string, len(exts))
	for _, e := range exts {
		m[e.Name] = e.Argument
	}
	return m
}

// buildInto appends the Entries produced from defs as children of parent,
// resolving types and expanding uses/grouping in the scope of root (the
// module or submodule the reference should be resolved against).
func (b *builder) buildInto(parent *Entry, defs []DataDef, root Node, usesDepth int) error {
	for _, d := range defs {
		switch n := d.(type) {
		case *Container:
			if configFalse(n.ConfigSet, n.Config) {
				continue
			}
			e := &Entry{Name: n.Name, Kind: "directory", Presence: n.Presence, Extension: extMap(n.Ext)}
			attach(parent, e)
			if err := b.buildInto(e, n.Data, root, usesDepth); err != nil {
				return err
			}

		case *List:
			if configFalse(n.ConfigSet, n.Config) {
				continue
			}
			e := &Entry{
				Name: n.Name, Kind: "directory", Key: n.Key,
				ListAttr: &ListAttr{MinElements: n.MinElements, MaxElements: n.MaxElements, OrderedByUser: n.OrderedByUser},
				Extension: extMap(n.Ext),
			}
			attach(parent, e)
			if err := b.buildInto(e, n.Data, root, usesDepth); err != nil {
				return err
			}

		case *Leaf:
			if configFalse(n.ConfigSet, n.Config) {
				continue
			}
			t := b.store.resolveType(root, n.Type)
			e := &Entry{Name: n.Name, Kind: "leaf", Mandatory: n.Mandatory, Type: t, Extension: extMap(n.Ext)}
			attach(parent, e)

		case *LeafList:
			if configFalse(n.ConfigSet, n.Config) {
				continue
			}
			t := b.store.resolveType(root, n.Type)
			e := &Entry{
				Name: n.Name, Kind: "leaf", Type: t, Extension: extMap(n.Ext),
				ListAttr: &ListAttr{MinElements: n.MinElements, MaxElements: n.MaxElements, OrderedByUser: n.OrderedByUser},
			}
			attach(parent, e)

		case *Choice:
			if configFalse(n.ConfigSet, n.Config) {
				continue
			}
			e := &Entry{Name: n.Name, Kind: "choice", Mandatory: n.Mandatory, Extension: extMap(n.Ext)}
			attach(parent, e)
			for _, c := range n.Cases {
				ce := &Entry{Name: c.Name, Kind: "directory", Extension: map[string]string{"case": "true"}}
				ce.Parent = e
				if err := b.buildInto(ce, c.Data, root, usesDepth); err != nil {
					return err
				}
				e.ChoiceCases = append(e.ChoiceCases, ce)
			}

		case *AnyData:
			if configFalse(n.ConfigSet, n.Config) {
				continue
			}
			e := &Entry{Name: n.Name, Kind: "directory", Mandatory: n.Mandatory}
			attach(parent, e)

		case *AnyXML:
			if configFalse(n.ConfigSet, n.Config) {
				continue
			}
			e := &Entry{Name: n.Name, Kind: "directory", Mandatory: n.Mandatory}
			attach(parent, e)

		case *Uses:
			if usesDepth+1 > b.maxDepth {
				return fmt.Errorf("%s: uses expansion of %q exceeds recursion cap of %d",
					Source(n), n.Name, b.maxDepth)
			}
			g := b.store.findGrouping(root, n.Name)
			if g == nil {
				continue // soft failure: unknown grouping, skip silently
			}
			// A grouping's own body resolves typedefs/groupings/identities
			// against the module it is defined in, not the module doing the
			// "uses" (YANG's grouping scoping is lexical, not call-site).
			if err := b.buildInto(parent, g.Data, rootOf(g), usesDepth+1); err != nil {
				return err
			}

		default:
			// Unknown DataDef variant: ignored by the builder, but still
			// retained in the AST.
		}
	}
	return nil
}
