package yang

// This file turns a generic Statement tree (see parse.go) into the typed
// AST defined in ast.go, via an explicit keyword switch -- the statement
// set here is narrow enough that reflection-based dispatch would buy
// nothing but indirection.

import (
	"fmt"
	"strconv"
	"strings"
)

// BuildModule turns the root Statement s (the result of parsing one .yang
// file) into a *Module or *Submodule, matching on the "module"/"submodule"
// keyword.  An error is returned for anything else.
func BuildModule(s *Statement) (Node, error) {
	switch s.Keyword {
	case "module":
		return buildModule(s)
	case "submodule":
		return buildSubmodule(s)
	default:
		return nil, fmt.Errorf("%s: expected module or submodule, got %q", s.Location(), s.Keyword)
	}
}

func buildModule(s *Statement) (*Module, error) {
	m := &Module{Name: s.Argument, Source: s}
	for _, c := range s.statements {
		switch {
		case c.Keyword == "yang-version":
			m.YangVersion = c.Argument
		case c.Keyword == "namespace":
			m.Namespace = c.Argument
		case c.Keyword == "prefix":
			m.Prefix = c.Argument
		case c.Keyword == "import":
			im, err := buildImport(c, m)
			if err != nil {
				return nil, err
			}
			m.Import = append(m.Import, im)
		case c.Keyword == "include":
			m.Include = append(m.Include, buildInclude(c, m))
		case c.Keyword == "revision":
			m.Revision = append(m.Revision, buildRevision(c))
		case c.Keyword == "typedef":
			td, err := buildTypedef(c, m)
			if err != nil {
				return nil, err
			}
			m.Typedef = append(m.Typedef, td)
		case c.Keyword == "grouping":
			g, err := buildGrouping(c, m)
			if err != nil {
				return nil, err
			}
			m.Grouping = append(m.Grouping, g)
		case c.Keyword == "identity":
			m.Identity = append(m.Identity, buildIdentity(c, m))
		case isDataDefKeyword(c.Keyword):
			d, err := buildDataDef(c, m)
			if err != nil {
				return nil, err
			}
			if d != nil {
				m.Data = append(m.Data, d)
			}
		case c.Keyword == "augment":
			m.Augment = append(m.Augment, buildAugment(c, m))
		case c.Keyword == "deviation":
			m.Deviation = append(m.Deviation, buildDeviation(c, m))
		case c.Keyword == "rpc":
			m.RPC = append(m.RPC, buildRPC(c, m))
		case c.Keyword == "notification":
			m.Notification = append(m.Notification, buildNotification(c, m))
		case c.Keyword == "feature":
			m.Feature = append(m.Feature, buildFeature(c, m))
		case isExtensionKeyword(c.Keyword):
			m.Ext = append(m.Ext, buildExtension(c, m))
		}
	}
	m.FullName = fullName(m.Name, m.Revision)
	return m, nil
}

func buildSubmodule(s *Statement) (*Submodule, error) {
	sm := &Submodule{Name: s.Argument, Source: s}
	for _, c := range s.statements {
		switch {
		case c.Keyword == "yang-version":
			sm.YangVersion = c.Argument
		case c.Keyword == "belongs-to":
			sm.BelongsTo = c.Argument
			if p := child(c, "prefix"); p != nil {
				sm.BelongsToPrefix = p.Argument
			}
		case c.Keyword == "import":
			im, err := buildImport(c, sm)
			if err != nil {
				return nil, err
			}
			sm.Import = append(sm.Import, im)
		case c.Keyword == "include":
			sm.Include = append(sm.Include, buildInclude(c, sm))
		case c.Keyword == "revision":
			sm.Revision = append(sm.Revision, buildRevision(c))
		case c.Keyword == "typedef":
			td, err := buildTypedef(c, sm)
			if err != nil {
				return nil, err
			}
			sm.Typedef = append(sm.Typedef, td)
		case c.Keyword == "grouping":
			g, err := buildGrouping(c, sm)
			if err != nil {
				return nil, err
			}
			sm.Grouping = append(sm.Grouping, g)
		case c.Keyword == "identity":
			sm.Identity = append(sm.Identity, buildIdentity(c, sm))
		case isDataDefKeyword(c.Keyword):
			d, err := buildDataDef(c, sm)
			if err != nil {
				return nil, err
			}
			if d != nil {
				sm.Data = append(sm.Data, d)
			}
		case c.Keyword == "augment":
			sm.Augment = append(sm.Augment, buildAugment(c, sm))
		case c.Keyword == "deviation":
			sm.Deviation = append(sm.Deviation, buildDeviation(c, sm))
		case c.Keyword == "rpc":
			sm.RPC = append(sm.RPC, buildRPC(c, sm))
		case c.Keyword == "notification":
			sm.Notification = append(sm.Notification, buildNotification(c, sm))
		case c.Keyword == "feature":
			sm.Feature = append(sm.Feature, buildFeature(c, sm))
		case isExtensionKeyword(c.Keyword):
			sm.Ext = append(sm.Ext, buildExtension(c, sm))
		}
	}
	sm.FullName = fullName(sm.Name, sm.Revision)
	return sm, nil
}

func fullName(name string, revs []*Revision) string {
	if len(revs) == 0 {
		return name
	}
	return name + "@" + revs[0].Date
}

func buildImport(s *Statement, parent Node) (*Import, error) {
	im := &Import{ModuleName: s.Argument, Source: s}
	if p := child(s, "prefix"); p != nil {
		im.Prefix = p.Argument
	} else {
		return nil, fmt.Errorf("%s: import %s missing required prefix", s.Location(), s.Argument)
	}
	if r := child(s, "revision-date"); r != nil {
		im.RevisionDate = r.Argument
	}
	return im, nil
}

func buildInclude(s *Statement, parent Node) *Include {
	in := &Include{SubmoduleName: s.Argument, Source: s}
	if r := child(s, "revision-date"); r != nil {
		in.RevisionDate = r.Argument
	}
	return in
}

func buildRevision(s *Statement) *Revision {
	r := &Revision{Date: s.Argument}
	if d := child(s, "description"); d != nil {
		r.Description = d.Argument
	}
	return r
}

func buildIdentity(s *Statement, parent Node) *Identity {
	id := &Identity{Name: s.Argument, Source: s, Parent: parent}
	for _, b := range children(s, "base") {
		id.Base = append(id.Base, b.Argument)
	}
	return id
}

func buildTypedef(s *Statement, parent Node) (*Typedef, error) {
	td := &Typedef{Name: s.Argument, Source: s, Parent: parent}
	t := child(s, "type")
	if t == nil {
		return nil, fmt.Errorf("%s: typedef %s missing required type", s.Location(), s.Argument)
	}
	ty, err := buildType(t, td)
	if err != nil {
		return nil, err
	}
	td.Type = ty
	if d := child(s, "default"); d != nil {
		td.Default = d.Argument
	}
	if u := child(s, "units"); u != nil {
		td.Units = u.Argument
	}
	if st := child(s, "status"); st != nil {
		td.Status = st.Argument
	}
	if d := child(s, "description"); d != nil {
		td.Description = d.Argument
	}
	return td, nil
}

func buildType(s *Statement, parent Node) (*Type, error) {
	t := &Type{Name: s.Argument, Source: s, Parent: parent}
	if r := child(s, "range"); r != nil {
		t.RangeExpr = r.Argument
	}
	for _, p := range children(s, "pattern") {
		t.PatternExpr = append(t.PatternExpr, p.Argument)
	}
	if b := child(s, "base"); b != nil {
		t.Base = b.Argument
	}
	if p := child(s, "path"); p != nil {
		t.Path = p.Argument
	}
	if u := child(s, "units"); u != nil {
		t.Units = u.Argument
	}
	if d := child(s, "default"); d != nil {
		t.Default = d.Argument
	}
	if fd := child(s, "fraction-digits"); fd != nil {
		if n, err := strconv.Atoi(fd.Argument); err == nil {
			t.FractionDigits = n
		}
	}
	for _, e := range children(s, "enum") {
		ev := EnumValue{Name: e.Argument}
		if v := child(e, "value"); v != nil {
			if n, err := strconv.ParseInt(v.Argument, 10, 64); err == nil {
				ev.Value = &n
			}
		}
		t.Enum = append(t.Enum, ev)
	}
	for _, u := range children(s, "type") {
		member, err := buildType(u, t)
		if err != nil {
			return nil, err
		}
		t.Union = append(t.Union, member)
	}
	return t, nil
}

// dataDefKeywords is the set of statement keywords that produce a DataDef:
// container, list, leaf, leaf-list, choice, anydata, anyxml, uses.
var dataDefKeywords = map[string]bool{
	"container": true, "list": true, "leaf": true, "leaf-list": true,
	"choice": true, "anydata": true, "anyxml": true, "uses": true,
}

func isDataDefKeyword(k string) bool { return dataDefKeywords[k] }

// isExtensionKeyword reports whether k is a "prefix:name" unknown
// statement keyword.
func isExtensionKeyword(k string) bool {
	return strings.Contains(k, ":")
}

func buildExtension(s *Statement, parent Node) *Extension {
	prefix, name := getPrefix(s.Keyword)
	return &Extension{Prefix: prefix, Name: name, Argument: s.Argument, Source: s}
}

func buildExtensions(stmts []*Statement) []*Extension {
	var exts []*Extension
	for _, s := range stmts {
		if isExtensionKeyword(s.Keyword) {
			exts = append(exts, buildExtension(s, nil))
		}
	}
	return exts
}

func buildDataDefs(stmts []*Statement, parent Node) ([]DataDef, error) {
	var out []DataDef
	for _, s := range stmts {
		if !isDataDefKeyword(s.Keyword) {
			continue
		}
		d, err := buildDataDef(s, parent)
		if err != nil {
			return nil, err
		}
		if d != nil {
			out = append(out, d)
		}
	}
	return out, nil
}

func buildDataDef(s *Statement, parent Node) (DataDef, error) {
	switch s.Keyword {
	case "container":
		return buildContainer(s, parent)
	case "list":
		return buildList(s, parent)
	case "leaf":
		return buildLeaf(s, parent)
	case "leaf-list":
		return buildLeafList(s, parent)
	case "choice":
		return buildChoice(s, parent)
	case "anydata":
		return buildAnyData(s, parent), nil
	case "anyxml":
		return buildAnyXML(s, parent), nil
	case "uses":
		return &Uses{Name: s.Argument, Source: s, Parent: parent}, nil
	default:
		return nil, fmt.Errorf("%s: not a data definition: %s", s.Location(), s.Keyword)
	}
}

func configOf(s *Statement) (set, value bool) {
	c := child(s, "config")
	if c == nil {
		return false, false
	}
	return true, c.Argument == "true"
}

func buildContainer(s *Statement, parent Node) (*Container, error) {
	c := &Container{Name: s.Argument, Source: s, Parent: parent}
	c.Presence = child(s, "presence") != nil
	c.ConfigSet, c.Config = configOf(s)
	if d := child(s, "description"); d != nil {
		c.Description = d.Argument
	}
	for _, td := range children(s, "typedef") {
		t, err := buildTypedef(td, c)
		if err != nil {
			return nil, err
		}
		c.Typedef = append(c.Typedef, t)
	}
	for _, g := range children(s, "grouping") {
		gr, err := buildGrouping(g, c)
		if err != nil {
			return nil, err
		}
		c.Grouping = append(c.Grouping, gr)
	}
	data, err := buildDataDefs(s.statements, c)
	if err != nil {
		return nil, err
	}
	c.Data = data
	c.Ext = buildExtensions(s.statements)
	return c, nil
}

func buildList(s *Statement, parent Node) (*List, error) {
	l := &List{Name: s.Argument, Source: s, Parent: parent, MaxElements: -1}
	if k := child(s, "key"); k != nil {
		l.Key = strings.Fields(k.Argument)
	}
	l.ConfigSet, l.Config = configOf(s)
	if d := child(s, "description"); d != nil {
		l.Description = d.Argument
	}
	if m := child(s, "min-elements"); m != nil {
		if n, err := strconv.Atoi(m.Argument); err == nil {
			l.MinElements = n
		}
	}
	if m := child(s, "max-elements"); m != nil && m.Argument != "unbounded" {
		if n, err := strconv.Atoi(m.Argument); err == nil {
			l.MaxElements = n
		}
	}
	if o := child(s, "ordered-by"); o != nil {
		l.OrderedByUser = o.Argument == "user"
	}
	for _, td := range children(s, "typedef") {
		t, err := buildTypedef(td, l)
		if err != nil {
			return nil, err
		}
		l.Typedef = append(l.Typedef, t)
	}
	for _, g := range children(s, "grouping") {
		gr, err := buildGrouping(g, l)
		if err != nil {
			return nil, err
		}
		l.Grouping = append(l.Grouping, gr)
	}
	data, err := buildDataDefs(s.statements, l)
	if err != nil {
		return nil, err
	}
	l.Data = data
	l.Ext = buildExtensions(s.statements)
	return l, nil
}

func buildLeaf(s *Statement, parent Node) (*Leaf, error) {
	l := &Leaf{Name: s.Argument, Source: s, Parent: parent}
	t := child(s, "type")
	if t == nil {
		return nil, fmt.Errorf("%s: leaf %s missing required type", s.Location(), s.Argument)
	}
	ty, err := buildType(t, l)
	if err != nil {
		return nil, err
	}
	l.Type = ty
	l.ConfigSet, l.Config = configOf(s)
	if m := child(s, "mandatory"); m != nil {
		l.Mandatory = m.Argument == "true"
	}
	if d := child(s, "default"); d != nil {
		l.Default = d.Argument
	}
	if d := child(s, "description"); d != nil {
		l.Description = d.Argument
	}
	l.Ext = buildExtensions(s.statements)
	return l, nil
}

func buildLeafList(s *Statement, parent Node) (*LeafList, error) {
	l := &LeafList{Name: s.Argument, Source: s, Parent: parent, MaxElements: -1}
	t := child(s, "type")
	if t == nil {
		return nil, fmt.Errorf("%s: leaf-list %s missing required type", s.Location(), s.Argument)
	}
	ty, err := buildType(t, l)
	if err != nil {
		return nil, err
	}
	l.Type = ty
	l.ConfigSet, l.Config = configOf(s)
	if m := child(s, "min-elements"); m != nil {
		if n, err := strconv.Atoi(m.Argument); err == nil {
			l.MinElements = n
		}
	}
	if m := child(s, "max-elements"); m != nil && m.Argument != "unbounded" {
		if n, err := strconv.Atoi(m.Argument); err == nil {
			l.MaxElements = n
		}
	}
	if o := child(s, "ordered-by"); o != nil {
		l.OrderedByUser = o.Argument == "user"
	}
	if d := child(s, "description"); d != nil {
		l.Description = d.Argument
	}
	l.Ext = buildExtensions(s.statements)
	return l, nil
}

func buildChoice(s *Statement, parent Node) (*Choice, error) {
	c := &Choice{Name: s.Argument, Source: s, Parent: parent}
	if m := child(s, "mandatory"); m != nil {
		c.Mandatory = m.Argument == "true"
	}
	if d := child(s, "default"); d != nil {
		c.Default = d.Argument
	}
	c.ConfigSet, c.Config = configOf(s)
	if d := child(s, "description"); d != nil {
		c.Description = d.Argument
	}
	for _, cs := range s.statements {
		switch {
		case cs.Keyword == "case":
			data, err := buildDataDefs(cs.statements, c)
			if err != nil {
				return nil, err
			}
			c.Cases = append(c.Cases, &Case{Name: cs.Argument, Source: cs, Parent: c, Data: data})
		case isDataDefKeyword(cs.Keyword):
			// An implicit case: a short-form case statement, where a bare
			// data-def child directly under choice gets its own
			// single-member case so it still produces one directory Entry.
			d, err := buildDataDef(cs, c)
			if err != nil {
				return nil, err
			}
			c.Cases = append(c.Cases, &Case{Name: d.NName(), Source: cs, Parent: c, Implicit: true, Data: []DataDef{d}})
		}
	}
	c.Ext = buildExtensions(s.statements)
	return c, nil
}

func buildAnyData(s *Statement, parent Node) *AnyData {
	a := &AnyData{Name: s.Argument, Source: s, Parent: parent}
	a.ConfigSet, a.Config = configOf(s)
	if m := child(s, "mandatory"); m != nil {
		a.Mandatory = m.Argument == "true"
	}
	if d := child(s, "description"); d != nil {
		a.Description = d.Argument
	}
	return a
}

func buildAnyXML(s *Statement, parent Node) *AnyXML {
	a := &AnyXML{Name: s.Argument, Source: s, Parent: parent}
	a.ConfigSet, a.Config = configOf(s)
	if m := child(s, "mandatory"); m != nil {
		a.Mandatory = m.Argument == "true"
	}
	if d := child(s, "description"); d != nil {
		a.Description = d.Argument
	}
	return a
}

func buildGrouping(s *Statement, parent Node) (*Grouping, error) {
	g := &Grouping{Name: s.Argument, Source: s, Parent: parent}
	for _, td := range children(s, "typedef") {
		t, err := buildTypedef(td, g)
		if err != nil {
			return nil, err
		}
		g.Typedef = append(g.Typedef, t)
	}
	for _, gr := range children(s, "grouping") {
		inner, err := buildGrouping(gr, g)
		if err != nil {
			return nil, err
		}
		g.Grouping = append(g.Grouping, inner)
	}
	data, err := buildDataDefs(s.statements, g)
	if err != nil {
		return nil, err
	}
	g.Data = data
	return g, nil
}

func buildAugment(s *Statement, parent Node) *Augment {
	a := &Augment{TargetPath: s.Argument, Source: s, Parent: parent}
	data, _ := buildDataDefs(s.statements, a)
	a.Data = data
	return a
}

func buildDeviation(s *Statement, parent Node) *Deviation {
	return &Deviation{TargetPath: s.Argument, Source: s, Parent: parent}
}

func buildRPC(s *Statement, parent Node) *RPC {
	return &RPC{Name: s.Argument, Source: s, Parent: parent}
}

func buildNotification(s *Statement, parent Node) *Notification {
	return &Notification{Name: s.Argument, Source: s, Parent: parent}
}

func buildFeature(s *Statement, parent Node) *Feature {
	return &Feature{Name: s.Argument, Source: s, Parent: parent}
}

// child returns the first direct substatement of s with the given keyword,
// or nil.
func child(s *Statement, keyword string) *Statement {
	for _, c := range s.statements {
		if c.Keyword == keyword {
			return c
		}
	}
	return nil
}

// children returns all direct substatements of s with the given keyword.
func children(s *Statement, keyword string) []*Statement {
	var out []*Statement
	for _, c := range s.statements {
		if c.Keyword == keyword {
			out = append(out, c)
		}
	}
	return out
}
