package yang

// This file defines the typed AST that build.go produces from a generic
// Statement tree.  See http://tools.ietf.org/html/rfc7950 for the
// statements this mirrors.  After build.go produces the tree, only loading
// and resolution write to it: the Module Store links Include.Module and
// merges included groupings, the Identity Resolver fills Identities and
// Identity.Derived, and resolveType fills a Type's resolution fields in
// place.

// Node is implemented by every typed AST node.  Only pointers to structures
// implement Node.
type Node interface {
	Kind() string
	NName() string
	Statement() *Statement
	ParentNode() Node
}

// Value is a bare string argument that may carry a description and
// unknown (extension) sub-statements.
type Value struct {
	Name   string
	Source *Statement
	Parent Node
}

func (v *Value) Kind() string          { return v.Source.Keyword }
func (v *Value) NName() string         { return v.Name }
func (v *Value) Statement() *Statement { return v.Source }
func (v *Value) ParentNode() Node      { return v.Parent }

// Extension is a captured "prefix:name argument;" unknown statement
// attached to whatever node contained it.  This is how extension
// statements survive into the AST so the Schema Builder can copy them
// into Entry.Extension.
type Extension struct {
	Prefix   string
	Name     string
	Argument string
	Source   *Statement
}

// Revision records a "revision date;" statement.
type Revision struct {
	Date        string
	Description string
}

// Import is an "import name { prefix p; revision-date d; }" statement.
// The Prefix field is the local name this module uses to refer to the
// imported module.
type Import struct {
	ModuleName   string
	Prefix       string
	RevisionDate string
	Source       *Statement
}

// Include is an "include name { revision-date d; }" statement.
type Include struct {
	SubmoduleName string
	RevisionDate  string
	Source        *Statement

	// Module is resolved by the Module Store once the submodule has been
	// loaded; nil until then.
	Module *Submodule
}

// TypeKind is the resolved category of a Type as written on a statement.
type TypeKind int

// The set of type kinds a TypeNode may resolve to.  Named to mirror the
// keyword as written, with a Y prefix to avoid clashing with Go builtins.
const (
	Ynone TypeKind = iota
	Yint8
	Yint16
	Yint32
	Yint64
	Yuint8
	Yuint16
	Yuint32
	Yuint64
	Ystring
	Yboolean
	Ybinary
	Ybits
	Yempty
	Ydecimal64
	Yenumeration
	Yleafref
	Yidentityref
	Yinstanceidentifier
	Yunion
	// Ypath marks a TypeNode as written -- a reference to a typedef that
	// has not yet been resolved to one of the kinds above.
	Ypath
)

var typeKindNames = map[TypeKind]string{
	Ynone:               "none",
	Yint8:               "int8",
	Yint16:              "int16",
	Yint32:              "int32",
	Yint64:              "int64",
	Yuint8:              "uint8",
	Yuint16:             "uint16",
	Yuint32:             "uint32",
	Yuint64:             "uint64",
	Ystring:             "string",
	Yboolean:            "boolean",
	Ybinary:             "binary",
	Ybits:               "bits",
	Yempty:              "empty",
	Ydecimal64:          "decimal64",
	Yenumeration:        "enumeration",
	Yleafref:            "leafref",
	Yidentityref:        "identityref",
	Yinstanceidentifier: "instance-identifier",
	Yunion:              "union",
	Ypath:               "path",
}

// String returns k's YANG keyword spelling.
func (k TypeKind) String() string {
	if s, ok := typeKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// builtinKinds maps the type name as written in YANG source to its kind,
// for every name that is NOT a reference to a typedef.
var builtinKinds = map[string]TypeKind{
	"int8":                Yint8,
	"int16":               Yint16,
	"int32":               Yint32,
	"int64":               Yint64,
	"uint8":                Yuint8,
	"uint16":              Yuint16,
	"uint32":              Yuint32,
	"uint64":              Yuint64,
	"string":              Ystring,
	"boolean":             Yboolean,
	"binary":              Ybinary,
	"bits":                Ybits,
	"empty":               Yempty,
	"decimal64":           Ydecimal64,
	"enumeration":         Yenumeration,
	"leafref":             Yleafref,
	"identityref":         Yidentityref,
	"instance-identifier": Yinstanceidentifier,
	"union":               Yunion,
}

// EnumValue is one declared "enum" label, in declaration order.
type EnumValue struct {
	Name  string
	Value *int64 // optional explicit "value" statement
}

// Type is a TypeNode as written on a statement: "type name { ... }".  Once
// resolved, Kind, Enum, Range, and Union are populated with final values;
// Typedef names the typedef this type was reached through, if any,
// preserving provenance.
type Type struct {
	Name   string // the name as written: a builtin, or a [prefix:]typedef name
	Source *Statement
	Parent Node

	RangeExpr   string // raw "range" argument, if any
	PatternExpr []string
	Base        string // "base" argument, for identityref
	Path        string // "path" argument, for leafref
	Units       string
	Default     string
	FractionDigits int

	Enum  []EnumValue // declared enum labels, in order
	Union []*Type     // declared union member types, in order

	// --- populated by resolution ---
	Kind     TypeKind
	Range    *Ranges
	Typedef  string // outermost typedef name this type was resolved through
	resolved bool
}

// Src returns the source statement of t, for error/location reporting.
// Type does not implement Node: its Kind field (a resolved TypeKind) would
// collide with Node's Kind() string method.
func (t *Type) Src() *Statement { return t.Source }

// Typedef is a "typedef name { type ...; }" statement.
type Typedef struct {
	Name   string
	Source *Statement
	Parent Node

	Type        *Type
	Default     string
	Units       string
	Status      string
	Description string
}

func (t *Typedef) Kind() string          { return "typedef" }
func (t *Typedef) NName() string         { return t.Name }
func (t *Typedef) Statement() *Statement { return t.Source }
func (t *Typedef) ParentNode() Node      { return t.Parent }

// Grouping is a "grouping name { ... }" statement.  Uses references a
// Grouping by name; the Schema Builder expands it in place.
type Grouping struct {
	Name   string
	Source *Statement
	Parent Node

	Typedef  []*Typedef
	Grouping []*Grouping
	Data     []DataDef
}

func (g *Grouping) Kind() string          { return "grouping" }
func (g *Grouping) NName() string         { return g.Name }
func (g *Grouping) Statement() *Statement { return g.Source }
func (g *Grouping) ParentNode() Node      { return g.Parent }

// Identity is an "identity name { base b; }" statement.  Base holds the
// base names as written (possibly prefix-qualified); Derived is filled in
// by the Identity Resolver with the names that derive directly from this
// identity.
type Identity struct {
	Name   string
	Source *Statement
	Parent Node

	Base []string

	// Derived is the direct derived-set computed by the Identity
	// Resolver.  Populated exactly once, after all loading completes;
	// nil beforehand.
	Derived []string
}

func (i *Identity) Kind() string          { return "identity" }
func (i *Identity) NName() string         { return i.Name }
func (i *Identity) Statement() *Statement { return i.Source }
func (i *Identity) ParentNode() Node      { return i.Parent }

// DataDef is implemented by every data-definition statement: container,
// list, leaf, leaf-list, choice, anydata, anyxml, uses.
type DataDef interface {
	Node
	dataDef()
}

// Container is a "container name { ... }" statement.
type Container struct {
	Name   string
	Source *Statement
	Parent Node

	Presence    bool
	ConfigSet   bool // whether a "config" statement was present
	Config      bool // value of "config", meaningful iff ConfigSet
	Description string

	Typedef  []*Typedef
	Grouping []*Grouping
	Data     []DataDef
	Ext      []*Extension
}

func (c *Container) Kind() string          { return "container" }
func (c *Container) NName() string         { return c.Name }
func (c *Container) Statement() *Statement { return c.Source }
func (c *Container) ParentNode() Node      { return c.Parent }
func (*Container) dataDef()                {}

// List is a "list name { key \"a b\"; ... }" statement.
type List struct {
	Name   string
	Source *Statement
	Parent Node

	Key         []string // ordered key leaf names, in declaration order
	ConfigSet   bool
	Config      bool
	Description string
	MinElements int
	MaxElements int // -1 means "unbounded"
	OrderedByUser bool

	Typedef  []*Typedef
	Grouping []*Grouping
	Data     []DataDef
	Ext      []*Extension
}

func (l *List) Kind() string          { return "list" }
func (l *List) NName() string         { return l.Name }
func (l *List) Statement() *Statement { return l.Source }
func (l *List) ParentNode() Node      { return l.Parent }
func (*List) dataDef()                {}

// Leaf is a "leaf name { type ...; }" statement.
type Leaf struct {
	Name   string
	Source *Statement
	Parent Node

	Type        *Type
	ConfigSet   bool
	Config      bool
	Mandatory   bool
	Default     string
	Description string
	Ext         []*Extension
}

func (l *Leaf) Kind() string          { return "leaf" }
func (l *Leaf) NName() string         { return l.Name }
func (l *Leaf) Statement() *Statement { return l.Source }
func (l *Leaf) ParentNode() Node      { return l.Parent }
func (*Leaf) dataDef()                {}

// LeafList is a "leaf-list name { type ...; }" statement.
type LeafList struct {
	Name   string
	Source *Statement
	Parent Node

	Type          *Type
	ConfigSet     bool
	Config        bool
	MinElements   int
	MaxElements   int
	OrderedByUser bool
	Description   string
	Ext           []*Extension
}

func (l *LeafList) Kind() string          { return "leaf-list" }
func (l *LeafList) NName() string         { return l.Name }
func (l *LeafList) Statement() *Statement { return l.Source }
func (l *LeafList) ParentNode() Node      { return l.Parent }
func (*LeafList) dataDef()                {}

// Case is one "case name { ... }" arm of a Choice.  A directly-nested data
// definition under a choice (without an explicit case) is wrapped in an
// implicit Case sharing the child's name, so the Schema Builder can always
// produce one directory Entry per case.
type Case struct {
	Name     string
	Source   *Statement
	Parent   Node
	Implicit bool
	Data     []DataDef
}

func (c *Case) Kind() string          { return "case" }
func (c *Case) NName() string         { return c.Name }
func (c *Case) Statement() *Statement { return c.Source }
func (c *Case) ParentNode() Node      { return c.Parent }

// Choice is a "choice name { case ... }" statement.
type Choice struct {
	Name        string
	Source      *Statement
	Parent      Node
	Mandatory   bool
	Default     string
	ConfigSet   bool
	Config      bool
	Description string
	Cases       []*Case
	Ext         []*Extension
}

func (c *Choice) Kind() string          { return "choice" }
func (c *Choice) NName() string         { return c.Name }
func (c *Choice) Statement() *Statement { return c.Source }
func (c *Choice) ParentNode() Node      { return c.Parent }
func (*Choice) dataDef()                {}

// AnyData/AnyXML are carried for completeness: "leaf-like" data nodes with
// no further structure the builder inspects beyond config.
type AnyData struct {
	Name      string
	Source    *Statement
	Parent    Node
	ConfigSet bool
	Config    bool
	Mandatory bool
	Description string
}

func (a *AnyData) Kind() string          { return "anydata" }
func (a *AnyData) NName() string         { return a.Name }
func (a *AnyData) Statement() *Statement { return a.Source }
func (a *AnyData) ParentNode() Node      { return a.Parent }
func (*AnyData) dataDef()                {}

type AnyXML struct {
	Name        string
	Source      *Statement
	Parent      Node
	ConfigSet   bool
	Config      bool
	Mandatory   bool
	Description string
}

func (a *AnyXML) Kind() string          { return "anyxml" }
func (a *AnyXML) NName() string         { return a.Name }
func (a *AnyXML) Statement() *Statement { return a.Source }
func (a *AnyXML) ParentNode() Node      { return a.Parent }
func (*AnyXML) dataDef()                {}

// Uses is a "uses grouping-ref;" statement.  It produces no Entry of its
// own -- the Schema Builder expands it in place.
type Uses struct {
	Name   string // bare or prefix:name grouping reference
	Source *Statement
	Parent Node
}

func (u *Uses) Kind() string          { return "uses" }
func (u *Uses) NName() string         { return u.Name }
func (u *Uses) Statement() *Statement { return u.Source }
func (u *Uses) ParentNode() Node      { return u.Parent }
func (*Uses) dataDef()                {}

// The following are not semantically evaluated.  build.go stores augment,
// deviation, rpc, notification and feature statements on Module/Submodule;
// no resolver or builder logic inspects them beyond that.  Action,
// IfFeature, When and Must are defined here, but no AST field holds them
// and build.go drops those statements.

// Augment carries an "augment target { ... }" statement unevaluated.
type Augment struct {
	TargetPath string
	Source     *Statement
	Parent     Node
	Data       []DataDef
}

func (a *Augment) Kind() string          { return "augment" }
func (a *Augment) NName() string         { return a.TargetPath }
func (a *Augment) Statement() *Statement { return a.Source }
func (a *Augment) ParentNode() Node      { return a.Parent }

// Deviation carries a "deviation target { ... }" statement unevaluated.
type Deviation struct {
	TargetPath string
	Source     *Statement
	Parent     Node
}

func (d *Deviation) Kind() string          { return "deviation" }
func (d *Deviation) NName() string         { return d.TargetPath }
func (d *Deviation) Statement() *Statement { return d.Source }
func (d *Deviation) ParentNode() Node      { return d.Parent }

// RPC carries an "rpc name { input {...} output {...} }" statement
// unevaluated.
type RPC struct {
	Name   string
	Source *Statement
	Parent Node
}

func (r *RPC) Kind() string          { return "rpc" }
func (r *RPC) NName() string         { return r.Name }
func (r *RPC) Statement() *Statement { return r.Source }
func (r *RPC) ParentNode() Node      { return r.Parent }

// Notification carries a "notification name { ... }" statement
// unevaluated.
type Notification struct {
	Name   string
	Source *Statement
	Parent Node
}

func (n *Notification) Kind() string          { return "notification" }
func (n *Notification) NName() string         { return n.Name }
func (n *Notification) Statement() *Statement { return n.Source }
func (n *Notification) ParentNode() Node      { return n.Parent }

// Action carries an "action name { ... }" statement unevaluated.
type Action struct {
	Name   string
	Source *Statement
	Parent Node
}

func (a *Action) Kind() string          { return "action" }
func (a *Action) NName() string         { return a.Name }
func (a *Action) Statement() *Statement { return a.Source }
func (a *Action) ParentNode() Node      { return a.Parent }

// Feature carries a "feature name;" statement unevaluated.
type Feature struct {
	Name   string
	Source *Statement
	Parent Node
}

func (f *Feature) Kind() string          { return "feature" }
func (f *Feature) NName() string         { return f.Name }
func (f *Feature) Statement() *Statement { return f.Source }
func (f *Feature) ParentNode() Node      { return f.Parent }

// IfFeature carries an "if-feature expr;" statement unevaluated.
type IfFeature struct {
	Expr   string
	Source *Statement
	Parent Node
}

func (f *IfFeature) Kind() string          { return "if-feature" }
func (f *IfFeature) NName() string         { return f.Expr }
func (f *IfFeature) Statement() *Statement { return f.Source }
func (f *IfFeature) ParentNode() Node      { return f.Parent }

// When carries a "when \"xpath\";" statement unevaluated.
type When struct {
	Expr   string
	Source *Statement
	Parent Node
}

func (w *When) Kind() string          { return "when" }
func (w *When) NName() string         { return w.Expr }
func (w *When) Statement() *Statement { return w.Source }
func (w *When) ParentNode() Node      { return w.Parent }

// Must carries a "must \"xpath\";" statement unevaluated.
type Must struct {
	Expr   string
	Source *Statement
	Parent Node
}

func (m *Must) Kind() string          { return "must" }
func (m *Must) NName() string         { return m.Expr }
func (m *Must) Statement() *Statement { return m.Source }
func (m *Must) ParentNode() Node      { return m.Parent }

// Module is a top-level "module name { ... }" statement.
type Module struct {
	Name   string
	Source *Statement
	Parent Node

	YangVersion string
	Namespace   string
	Prefix      string

	Import   []*Import
	Include  []*Include
	Revision []*Revision

	Typedef  []*Typedef
	Grouping []*Grouping
	Identity []*Identity
	Data     []DataDef

	Augment      []*Augment
	Deviation    []*Deviation
	RPC          []*RPC
	Notification []*Notification
	Feature      []*Feature
	Ext          []*Extension

	// FullName is Name, or "Name@revision" when a revision date is
	// known; used as the Module Store's secondary lookup key.
	FullName string

	// Identities is the direct derived-set map built by the Identity
	// Resolver: identity name -> ordered list of names that directly
	// derive from it.
	Identities map[string][]string
}

func (m *Module) Kind() string          { return "module" }
func (m *Module) NName() string         { return m.Name }
func (m *Module) Statement() *Statement { return m.Source }
func (m *Module) ParentNode() Node      { return m.Parent }

// Submodule is a top-level "submodule name { belongs-to parent; ... }"
// statement.  It shares its parent module's namespace.
type Submodule struct {
	Name   string
	Source *Statement
	Parent Node

	YangVersion    string
	BelongsTo      string // parent module name
	BelongsToPrefix string // parent module's prefix

	Import   []*Import
	Include  []*Include
	Revision []*Revision

	Typedef  []*Typedef
	Grouping []*Grouping
	Identity []*Identity
	Data     []DataDef

	Augment      []*Augment
	Deviation    []*Deviation
	RPC          []*RPC
	Notification []*Notification
	Feature      []*Feature
	Ext          []*Extension

	FullName   string
	Identities map[string][]string
}

func (s *Submodule) Kind() string          { return "submodule" }
func (s *Submodule) NName() string         { return s.Name }
func (s *Submodule) Statement() *Statement { return s.Source }
func (s *Submodule) ParentNode() Node      { return s.Parent }

// getPrefix splits "prefix:name" into ("prefix", "name"), or ("", s) if s
// has no prefix.
func getPrefix(s string) (string, string) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return s[:i], s[i+1:]
		}
	}
	return "", s
}
