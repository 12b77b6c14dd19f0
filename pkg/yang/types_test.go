package yang

import "testing"

func mustBuildAndResolve(t *testing.T, dir, name string) (*Store, *Module) {
	t.Helper()
	s := NewStore()
	s.AddPath(dir)
	if err := s.ReadWithResolve(name); err != nil {
		t.Fatalf("ReadWithResolve(%q): %v", name, err)
	}
	s.ResolveIdentities()
	return s, s.FindModule(name)
}

func leafType(t *testing.T, m *Module, leafName string) *Type {
	t.Helper()
	for _, d := range m.Data {
		if l, ok := d.(*Leaf); ok && l.Name == leafName {
			return l.Type
		}
	}
	t.Fatalf("leaf %q not found in module %s", leafName, m.Name)
	return nil
}

func TestResolveTypeBuiltin(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "m.yang", `
module m {
  namespace "urn:m"; prefix m;
  leaf x { type int32 { range "1..10"; } }
}
`)
	s, mod := mustBuildAndResolve(t, dir, "m")
	typ := leafType(t, mod, "x")
	resolved := s.resolveType(mod, typ)
	if resolved.Kind != Yint32 {
		t.Fatalf("Kind = %v, want Yint32", resolved.Kind)
	}
	if resolved.Range == nil || !resolved.Range.Match(5, Yint32) {
		t.Fatal("expected range 1..10 to be parsed and match 5")
	}
	if resolved.Range.Match(0, Yint32) {
		t.Fatal("0 is out of range 1..10")
	}
}

func TestResolveTypeTypedefChainPreservesProvenance(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "m.yang", `
module m {
  namespace "urn:m"; prefix m;

  typedef percent { type uint8 { range "0..100"; } }
  typedef score { type percent; }

  leaf x { type score; }
}
`)
	s, mod := mustBuildAndResolve(t, dir, "m")
	typ := leafType(t, mod, "x")
	resolved := s.resolveType(mod, typ)
	if resolved.Kind != Yuint8 {
		t.Fatalf("Kind = %v, want Yuint8", resolved.Kind)
	}
	if resolved.Typedef != "score" {
		t.Fatalf("Typedef = %q, want %q (outermost typedef name)", resolved.Typedef, "score")
	}
	if !resolved.Range.Match(50, Yuint8) {
		t.Fatal("expected the base typedef's range to carry through the chain")
	}
}

func TestResolveTypeUnknownTypedefSoftFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "m.yang", `
module m {
  namespace "urn:m"; prefix m;
  leaf x { type does-not-exist; }
}
`)
	s, mod := mustBuildAndResolve(t, dir, "m")
	typ := leafType(t, mod, "x")
	resolved := s.resolveType(mod, typ)
	if resolved.Kind != Ypath {
		t.Fatalf("Kind = %v, want Ypath for an unresolvable typedef reference (a soft failure)", resolved.Kind)
	}
}

func TestResolveTypeIdentityrefBecomesEnumeration(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "m.yang", `
module m {
  namespace "urn:m"; prefix m;

  identity color;
  identity red { base color; }
  identity blue { base color; }

  leaf x { type identityref { base color; } }
}
`)
	s, mod := mustBuildAndResolve(t, dir, "m")
	typ := leafType(t, mod, "x")
	resolved := s.resolveType(mod, typ)
	if resolved.Kind != Yenumeration {
		t.Fatalf("Kind = %v, want Yenumeration", resolved.Kind)
	}
	if len(resolved.Enum) != 2 {
		t.Fatalf("Enum = %v, want 2 derived identities", resolved.Enum)
	}
}

func TestResolveUnionFlattensNestedUnionToStringMembersOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "m.yang", `
module m {
  namespace "urn:m"; prefix m;

  typedef inner-union {
    type union {
      type string;
      type int32;
    }
  }

  leaf x {
    type union {
      type inner-union;
      type boolean;
    }
  }
}
`)
	s, mod := mustBuildAndResolve(t, dir, "m")
	typ := leafType(t, mod, "x")
	resolved := s.resolveType(mod, typ)
	if resolved.Kind != Yunion {
		t.Fatalf("Kind = %v, want Yunion", resolved.Kind)
	}
	// inner-union flattens to only its string member; boolean passes through
	// unchanged, per the documented known limitation of union flattening.
	var kinds []TypeKind
	for _, member := range resolved.Union {
		kinds = append(kinds, member.Kind)
	}
	if len(kinds) != 2 {
		t.Fatalf("flattened union members = %v, want 2 (string from inner-union, boolean)", kinds)
	}
	foundString, foundBool, foundInt := false, false, false
	for _, k := range kinds {
		switch k {
		case Ystring:
			foundString = true
		case Yboolean:
			foundBool = true
		case Yint32:
			foundInt = true
		}
	}
	if !foundString || !foundBool {
		t.Fatalf("expected string and boolean members, got kinds %v", kinds)
	}
	if foundInt {
		t.Fatal("int32 member of the nested union must be dropped (string-only flattening)")
	}
}

func TestResolveTypeIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "m.yang", `
module m {
  namespace "urn:m"; prefix m;
  leaf x { type string; }
}
`)
	s, mod := mustBuildAndResolve(t, dir, "m")
	typ := leafType(t, mod, "x")
	first := s.resolveType(mod, typ)
	second := s.resolveType(mod, typ)
	if first != second {
		t.Fatal("resolveType must return the same (already-resolved) *Type on a second call")
	}
}

func TestTypeEqualIgnoresSourcePositions(t *testing.T) {
	a := &Type{Name: "string", Kind: Ystring, resolved: true}
	b := &Type{Name: "string", Kind: Ystring, resolved: true, Source: &Statement{Keyword: "type"}}
	if !a.Equal(b) {
		t.Fatal("Equal should ignore Source/Parent/resolved bookkeeping fields")
	}
	c := &Type{Name: "string", Kind: Yint8, resolved: true}
	if a.Equal(c) {
		t.Fatal("types with different Kind must not be Equal")
	}
}
