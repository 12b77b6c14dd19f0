package yang

import (
	"sort"
	"testing"
)

func TestResolveIdentitiesDirectDerivedSet(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "colors.yang", `
module colors {
  namespace "urn:colors";
  prefix c;

  identity color;
  identity red { base color; }
  identity blue { base color; }
  identity navy { base blue; }
}
`)

	s := NewStore()
	s.AddPath(dir)
	if err := s.Read("colors"); err != nil {
		t.Fatal(err)
	}
	s.ResolveIdentities()

	m := s.FindModule("colors")
	got := append([]string(nil), m.Identities["color"]...)
	sort.Strings(got)
	want := []string{"blue", "red"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Identities[color] = %v, want %v", got, want)
	}

	// navy derives from blue, not transitively from color: the derived-set
	// is direct only, not a transitive closure.
	if len(m.Identities["blue"]) != 1 || m.Identities["blue"][0] != "navy" {
		t.Fatalf("Identities[blue] = %v, want [navy]", m.Identities["blue"])
	}
	if got := m.Identities["color"]; len(got) == 2 {
		for _, d := range got {
			if d == "navy" {
				t.Fatal("navy must not appear in color's direct derived-set")
			}
		}
	}
}

func TestResolveIdentitiesPopulatesIdentityDerivedField(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "colors.yang", `
module colors {
  namespace "urn:colors";
  prefix c;

  identity color;
  identity red { base color; }
}
`)

	s := NewStore()
	s.AddPath(dir)
	if err := s.Read("colors"); err != nil {
		t.Fatal(err)
	}
	s.ResolveIdentities()

	m := s.FindModule("colors")
	var color *Identity
	for _, id := range m.Identity {
		if id.Name == "color" {
			color = id
		}
	}
	if color == nil {
		t.Fatal("identity color not found")
	}
	if len(color.Derived) != 1 || color.Derived[0] != "red" {
		t.Fatalf("color.Derived = %v, want [red]", color.Derived)
	}
}

func TestResolveIdentitiesIgnoresQualifiedBase(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yang", `
module base {
  namespace "urn:base";
  prefix b;
  identity root-id;
}
`)
	writeFile(t, dir, "user.yang", `
module user {
  namespace "urn:user";
  prefix u;
  import base { prefix b; }

  identity local-id { base b:root-id; }
}
`)

	s := NewStore()
	s.AddPath(dir)
	if err := s.ReadWithResolve("user"); err != nil {
		t.Fatal(err)
	}
	s.ResolveIdentities()

	base := s.FindModule("base")
	if got := base.Identities["root-id"]; len(got) != 0 {
		t.Fatalf("expected a qualified base reference to be skipped, got %v", got)
	}
}

func TestDerivedFromHelper(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "colors.yang", `
module colors {
  namespace "urn:colors";
  prefix c;

  identity color;
  identity red { base color; }
}
`)

	s := NewStore()
	s.AddPath(dir)
	if err := s.Read("colors"); err != nil {
		t.Fatal(err)
	}
	s.ResolveIdentities()

	m := s.FindModule("colors")
	got := DerivedFrom(m, "color")
	if len(got) != 1 || got[0] != "red" {
		t.Fatalf("DerivedFrom(color) = %v, want [red]", got)
	}
}
