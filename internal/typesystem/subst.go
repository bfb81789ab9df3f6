package typesystem

// Subst maps a generic type-parameter name to the concrete type bound
// to it, used when resolving a generic type annotation's argument list
// against its declaration (spec.md §3: "a generic type's type-argument
// count equals its declared type-parameter count, checked at
// resolution"), and when specializing a class/trait member type for a
// particular instantiation.
type Subst map[string]Type

// Apply substitutes every occurrence of a bound type-parameter name
// appearing in t with its mapping in s, leaving everything else
// unchanged.
func Apply(t Type, s Subst) Type {
	if t == nil || len(s) == 0 {
		return t
	}
	switch tt := t.(type) {
	case primitive:
		return tt
	case ListType:
		return ListType{Elem: Apply(tt.Elem, s)}
	case SetType:
		return SetType{Elem: Apply(tt.Elem, s)}
	case MapType:
		return MapType{Key: Apply(tt.Key, s), Value: Apply(tt.Value, s)}
	case FuncType:
		params := make([]Type, len(tt.Params))
		for i, p := range tt.Params {
			params[i] = Apply(p, s)
		}
		return FuncType{Params: params, Return: Apply(tt.Return, s)}
	case StructuralType:
		members := make(map[string]Type, len(tt.Members))
		for k, v := range tt.Members {
			members[k] = Apply(v, s)
		}
		return StructuralType{Members: members}
	case TypeVar:
		if repl, ok := s[tt.Name]; ok {
			return repl
		}
		return tt
	case *NamedType:
		if repl, ok := s[tt.Name]; ok && len(tt.TypeArgs) == 0 {
			return repl
		}
		args := make([]Type, len(tt.TypeArgs))
		for i, a := range tt.TypeArgs {
			args[i] = Apply(a, s)
		}
		return &NamedType{Kind: tt.Kind, Name: tt.Name, TypeArgs: args, Super: tt.Super, Traits: tt.Traits, Members: tt.Members}
	default:
		return t
	}
}
