package analyzer

import "github.com/funvibe/funxyc/internal/typesystem"

// lookupMember finds a member by name on a structural or named type,
// walking a named type's super chain and traits transitively (spec.md
// §4.4's "class vs structural" and "by name" rules apply identically
// here: a member visible anywhere in the ancestry is visible on the
// type).
func lookupMember(t typesystem.Type, name string) (typesystem.Type, bool) {
	switch tt := t.(type) {
	case typesystem.StructuralType:
		m, ok := tt.Members[name]
		return m, ok
	case *typesystem.NamedType:
		if m, ok := tt.Members[name]; ok {
			return m, ok
		}
		if tt.Super != nil {
			if m, ok := lookupMember(tt.Super, name); ok {
				return m, ok
			}
		}
		for _, tr := range tt.Traits {
			if m, ok := lookupMember(tr, name); ok {
				return m, ok
			}
		}
	}
	return nil, false
}
