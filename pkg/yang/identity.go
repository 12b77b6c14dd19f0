package yang

// This file implements the Identity Resolver: a single pass over a loaded
// module/submodule's identity statements that builds a direct derived-set
// map, name -> the names of identities that declare it as a bare "base".
// The pass is intentionally shallow: it does not compute a transitive
// closure, and it does not resolve qualified (cross-module) bases -- that
// is left for callers walking Store.FindModule.

// ResolveIdentities populates Identities on every module and submodule
// loaded into s with the direct derived-set map described above, and sets
// each Identity's own Derived field to its slice of that map.  It is
// idempotent and safe to call again after loading more files.
func (s *Store) ResolveIdentities() {
	for _, m := range s.Modules {
		m.Identities = directDerivedSet(m.Identity)
		applyDerived(m.Identity, m.Identities)
	}
	for _, sm := range s.SubModules {
		sm.Identities = directDerivedSet(sm.Identity)
		applyDerived(sm.Identity, sm.Identities)
	}
}

func applyDerived(ids []*Identity, set map[string][]string) {
	for _, id := range ids {
		id.Derived = set[id.Name]
	}
}

// directDerivedSet builds name -> []derived for one module/submodule's own
// identity statements, considering only bare (unprefixed) base references;
// a qualified "prefix:base" is skipped -- resolving it needs another
// module's identity list, which this pass does not have.
//
// Callers should treat the result as order-insensitive (only the key set
// and its value sets matter), but for deterministic output each derived
// list is built in declaration order and left unsorted.
func directDerivedSet(ids []*Identity) map[string][]string {
	out := map[string][]string{}
	for _, id := range ids {
		if _, ok := out[id.Name]; !ok {
			out[id.Name] = nil
		}
	}
	for _, id := range ids {
		for _, base := range id.Base {
			prefix, name := getPrefix(base)
			if prefix != "" {
				continue // qualified cross-module base: resolved by callers, not here
			}
			out[name] = append(out[name], id.Name)
		}
	}
	return out
}

// DerivedFrom returns the direct derived-set of base within module/submodule
// root (must already have had ResolveIdentities run), or nil if base names
// no known identity.
func DerivedFrom(root Node, base string) []string {
	switch r := root.(type) {
	case *Module:
		return r.Identities[base]
	case *Submodule:
		return r.Identities[base]
	}
	return nil
}
