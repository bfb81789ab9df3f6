package typesystem

// Context resolves a named type's declaration-site variance during
// subtyping of generic named types. The analyzer's symbol table
// implements this (spec.md §4.4's "pure function of S, T, and a type
// context").
type Context interface {
	GenericDef(name string) (*GenericDef, bool)
}

// Subtype reports whether s <: t under ctx, per the rules of spec.md §4.4.
func Subtype(s, t Type, ctx Context) bool {
	if s == nil || t == nil {
		return false
	}

	// Nothing <: every T ; every T <: Any.
	if s == Nothing {
		return true
	}
	if t == Any {
		return true
	}
	// Null <: Any and Null <: every reference type (anything but the
	// numeric/boolean primitives and Unit).
	if s == Null {
		return t != Int && t != Double && t != Boolean && t != Unit && t != Nothing
	}

	if isPrimitive(s) || isPrimitive(t) {
		return s == t
	}

	switch st := s.(type) {
	case ListType:
		tt, ok := t.(ListType)
		return ok && Subtype(st.Elem, tt.Elem, ctx)
	case SetType:
		tt, ok := t.(SetType)
		return ok && Subtype(st.Elem, tt.Elem, ctx)
	case MapType:
		tt, ok := t.(MapType)
		return ok && Subtype(st.Key, tt.Key, ctx) && Subtype(st.Value, tt.Value, ctx)
	case FuncType:
		tt, ok := t.(FuncType)
		if !ok || len(st.Params) != len(tt.Params) {
			return false
		}
		for i := range st.Params {
			// Contravariant parameters: tt.Params[i] <: st.Params[i].
			if !Subtype(tt.Params[i], st.Params[i], ctx) {
				return false
			}
		}
		return Subtype(st.Return, tt.Return, ctx)
	case StructuralType:
		return subtypeStructuralAgainst(st.Members, t, ctx)
	case TypeVar:
		// A bare type variable relates only to its own reflexive case
		// and Any; bound constraints are tracked and checked by the
		// inferencer, not here (spec.md §4.4: "a type variable is a
		// subtype of its bound constraint if any; otherwise only of Any").
		if tv, ok := t.(TypeVar); ok {
			return st.Id == tv.Id
		}
		return false
	case *NamedType:
		return subtypeNamed(st, t, ctx)
	}
	return false
}

// subtypeStructuralAgainst implements width+depth structural subtyping:
// a member map `from` is a subtype of `t` when `t` is itself structural
// (or a class/trait/object whose declared members satisfy the same
// check) and every member `t` requires is present in `from` with a
// compatible (subtype) type.
func subtypeStructuralAgainst(from map[string]Type, t Type, ctx Context) bool {
	var required map[string]Type
	switch tt := t.(type) {
	case StructuralType:
		required = tt.Members
	case *NamedType:
		required = tt.Members
	default:
		return false
	}
	for name, want := range required {
		have, ok := from[name]
		if !ok || !Subtype(have, want, ctx) {
			return false
		}
	}
	return true
}

// subtypeNamed implements the "class vs structural" and "named vs
// named" rules: a class/trait/object type satisfies a structural type
// by checking its declared member map; it satisfies another named type
// by name-plus-variance-aware-arguments equality, or transitively via
// its declared super type and traits; every named type is a subtype of Any.
func subtypeNamed(s *NamedType, t Type, ctx Context) bool {
	switch tt := t.(type) {
	case StructuralType:
		return subtypeStructuralAgainst(s.Members, tt, ctx)
	case *NamedType:
		if s.Name == tt.Name {
			return subtypeSameNameArgs(s, tt, ctx)
		}
		if s.Super != nil && subtypeNamed(s.Super, tt, ctx) {
			return true
		}
		for _, tr := range s.Traits {
			if subtypeNamed(tr, tt, ctx) {
				return true
			}
		}
		return false
	}
	return false
}

// subtypeSameNameArgs compares two instantiations of the same generic
// type constructor using each type parameter's declared variance.
// Unmarked (invariant) parameters require identical argument types by
// name-of-argument equality (spec.md §9 Open Question — the
// name-equality choice; see DESIGN.md).
func subtypeSameNameArgs(s, t *NamedType, ctx Context) bool {
	if len(s.TypeArgs) != len(t.TypeArgs) {
		return len(s.TypeArgs) == 0 && len(t.TypeArgs) == 0
	}
	if len(s.TypeArgs) == 0 {
		return true
	}
	def, ok := ctx.GenericDef(s.Name)
	if !ok || len(def.TypeParams) != len(s.TypeArgs) {
		// No variance information: fall back to invariant-by-equality.
		for i := range s.TypeArgs {
			if !typeNameEqual(s.TypeArgs[i], t.TypeArgs[i]) {
				return false
			}
		}
		return true
	}
	for i, tp := range def.TypeParams {
		a, b := s.TypeArgs[i], t.TypeArgs[i]
		switch tp.Variance {
		case Covariant:
			if !Subtype(a, b, ctx) {
				return false
			}
		case Contravariant:
			if !Subtype(b, a, ctx) {
				return false
			}
		default:
			if !typeNameEqual(a, b) {
				return false
			}
		}
	}
	return true
}

// typeNameEqual is the invariant-parameter equality check: two types
// are equal for an invariant position when they print to the same
// canonical name, recursing into generic arguments.
func typeNameEqual(a, b Type) bool {
	na, oka := a.(*NamedType)
	nb, okb := b.(*NamedType)
	if oka && okb {
		if na.Name != nb.Name || len(na.TypeArgs) != len(nb.TypeArgs) {
			return false
		}
		for i := range na.TypeArgs {
			if !typeNameEqual(na.TypeArgs[i], nb.TypeArgs[i]) {
				return false
			}
		}
		return true
	}
	return a.String() == b.String()
}

// Unify returns the narrowest common supertype of t1 and t2, per
// spec.md §4.5: "return T2 if T1 <: T2, else return T1 if T2 <: T1,
// else fail." There is no true unification-variable solving; the
// system is intentionally local.
func Unify(t1, t2 Type, ctx Context) (Type, bool) {
	if Subtype(t1, t2, ctx) {
		return t2, true
	}
	if Subtype(t2, t1, ctx) {
		return t1, true
	}
	return nil, false
}
