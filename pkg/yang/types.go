package yang

// This file implements type resolution: turning a Type as written
// (possibly a named typedef reference) into one with Kind set to a
// concrete, built-in category.

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// resolveType resolves t in the scope of root (the module/submodule t was
// declared in, or that a chain of typedefs traces back to), mutating t in
// place.  It is idempotent: a t that is already resolved is returned as-is.
//
// Name-resolution failures (unknown typedef, unresolved identityref base)
// are soft: t is returned with whatever could be resolved, never an error.
func (s *Store) resolveType(root Node, t *Type) *Type {
	if t == nil || t.resolved {
		return t
	}
	s.resolveTypeDepth(root, t, 0)
	return t
}

const maxTypedefChain = 128

func (s *Store) resolveTypeDepth(root Node, t *Type, depth int) {
	if t.resolved || depth > maxTypedefChain {
		return
	}

	if kind, ok := builtinKinds[t.Name]; ok {
		t.Kind = kind
		switch kind {
		case Yunion:
			s.resolveUnion(root, t, depth)
		case Yidentityref:
			s.resolveIdentityref(root, t)
		case Yenumeration, Yleafref, Ybinary, Ybits, Ydecimal64, Yboolean,
			Yempty, Yinstanceidentifier, Ystring,
			Yint8, Yint16, Yint32, Yint64, Yuint8, Yuint16, Yuint32, Yuint64:
			if t.RangeExpr != "" {
				if r, err := ParseRange(t.RangeExpr); err == nil {
					t.Range = r
				}
			}
		}
		t.resolved = true
		return
	}

	// Named typedef reference: look it up, clone its base type-node onto
	// t, preserving t.Name as the typedef's provenance.
	td := s.findTypedef(root, t.Name)
	if td == nil || td.Type == nil {
		// Soft failure: leave t as an unresolved Ypath reference.
		t.Kind = Ypath
		t.resolved = true
		return
	}

	typedefName := t.Name
	base := cloneType(td.Type)
	s.resolveTypeDepth(root, base, depth+1)

	*t = *base
	t.Typedef = typedefName // outermost name always wins, overwriting any inner typedef
	t.resolved = true
}

// resolveUnion resolves each union member recursively; a member typedef
// that itself expands to a union of string-kind members is flattened one
// level in, rather than fully recursively as RFC 7950 would allow.
func (s *Store) resolveUnion(root Node, t *Type, depth int) {
	var flat []*Type
	for _, member := range t.Union {
		s.resolveTypeDepth(root, member, depth+1)
		if member.Kind == Yunion {
			flat = append(flat, stringMembersOnly(member.Union)...)
			continue
		}
		flat = append(flat, member)
	}
	t.Union = flat
}

// stringMembersOnly returns only the string-kind members of members: a
// known limitation of the flattening above, which keeps string members of
// a nested union and drops the rest rather than carrying the full
// recursive member list forward.
func stringMembersOnly(members []*Type) []*Type {
	var out []*Type
	for _, m := range members {
		if m.Kind == Ystring {
			out = append(out, m)
		}
	}
	return out
}

// resolveIdentityref resolves base to an identity, and rewrites the type
// to an enumeration over its direct derived-set.  An unresolved base
// passes through unchanged.
func (s *Store) resolveIdentityref(root Node, t *Type) {
	if t.Base == "" {
		return
	}
	id := s.findIdentity(root, t.Base)
	if id == nil {
		return
	}
	t.Kind = Yenumeration
	for _, name := range id.Derived {
		t.Enum = append(t.Enum, EnumValue{Name: name})
	}
}

// cloneType makes a shallow copy of t suitable for substituting in place of
// a typedef reference; Union members are cloned recursively so that later
// mutation (resolution) of the clone never touches the Typedef's own AST.
func cloneType(t *Type) *Type {
	if t == nil {
		return nil
	}
	clone := *t
	clone.resolved = false
	if len(t.Union) > 0 {
		clone.Union = make([]*Type, len(t.Union))
		for i, m := range t.Union {
			clone.Union[i] = cloneType(m)
		}
	}
	if len(t.Enum) > 0 {
		clone.Enum = append([]EnumValue(nil), t.Enum...)
	}
	return &clone
}

// Equal reports whether t and other are deeply equal in every field
// (including Name, Typedef, Kind, Range, Enum and Union members) except
// Source, Parent and the internal resolved flag, which are ignored.
func (t *Type) Equal(other *Type) bool {
	return cmp.Equal(t, other,
		cmpopts.IgnoreFields(Type{}, "Source", "Parent", "resolved"),
	)
}
