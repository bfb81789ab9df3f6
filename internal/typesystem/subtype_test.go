package typesystem

import "testing"

// emptyCtx has no registered generics; used wherever a test doesn't
// exercise variance-aware named-type comparisons.
type emptyCtx struct{}

func (emptyCtx) GenericDef(name string) (*GenericDef, bool) { return nil, false }

type mapCtx map[string]*GenericDef

func (m mapCtx) GenericDef(name string) (*GenericDef, bool) {
	d, ok := m[name]
	return d, ok
}

func TestSubtypeReflexivity(t *testing.T) {
	ctx := emptyCtx{}
	types := []Type{Int, Double, Str, Boolean, Unit, Any, Nothing,
		ListType{Elem: Int}, MapType{Key: Str, Value: Int}, SetType{Elem: Boolean},
		FuncType{Params: []Type{Int}, Return: Int},
		StructuralType{Members: map[string]Type{"x": Int}},
	}
	for _, ty := range types {
		if !Subtype(ty, ty, ctx) {
			t.Errorf("%s should be a subtype of itself", ty)
		}
	}
}

func TestNothingAndAny(t *testing.T) {
	ctx := emptyCtx{}
	if !Subtype(Nothing, Str, ctx) {
		t.Error("Nothing <: String should hold")
	}
	if !Subtype(ListType{Elem: Int}, Any, ctx) {
		t.Error("List<Int> <: Any should hold")
	}
	if !Subtype(Null, ListType{Elem: Int}, ctx) {
		t.Error("Null <: List<Int> should hold (reference type)")
	}
	if Subtype(Null, Int, ctx) {
		t.Error("Null <: Int should NOT hold (primitive)")
	}
}

func TestListCovariance(t *testing.T) {
	ctx := emptyCtx{}
	int1 := &NamedType{Kind: ClassKind, Name: "Animal"}
	dog := &NamedType{Kind: ClassKind, Name: "Dog", Super: int1}
	if !Subtype(ListType{Elem: dog}, ListType{Elem: int1}, ctx) {
		t.Error("List<Dog> <: List<Animal> should hold")
	}
	if Subtype(ListType{Elem: int1}, ListType{Elem: dog}, ctx) {
		t.Error("List<Animal> <: List<Dog> should NOT hold")
	}
}

func TestFunctionContravariance(t *testing.T) {
	ctx := emptyCtx{}
	animal := &NamedType{Kind: ClassKind, Name: "Animal"}
	dog := &NamedType{Kind: ClassKind, Name: "Dog", Super: animal}

	// (Animal) => Dog <: (Dog) => Animal  [params contravariant, return covariant]
	f1 := FuncType{Params: []Type{animal}, Return: dog}
	f2 := FuncType{Params: []Type{dog}, Return: animal}
	if !Subtype(f1, f2, ctx) {
		t.Error("(Animal)=>Dog should be a subtype of (Dog)=>Animal")
	}
	if Subtype(f2, f1, ctx) {
		t.Error("(Dog)=>Animal should NOT be a subtype of (Animal)=>Dog")
	}
}

func TestWidthSubtyping(t *testing.T) {
	ctx := emptyCtx{}
	wide := StructuralType{Members: map[string]Type{"x": Int, "y": Int}}
	narrow := StructuralType{Members: map[string]Type{"x": Int}}
	if !Subtype(wide, narrow, ctx) {
		t.Error("a structural type with a strict superset of members should be a subtype")
	}
	if Subtype(narrow, wide, ctx) {
		t.Error("the narrower structural type should not be a subtype of the wider one")
	}
}

func TestInvarianceOfUnmarkedGenerics(t *testing.T) {
	ctx := mapCtx{
		"Box": &GenericDef{Name: "Box", TypeParams: []TypeParameter{{Name: "T", Variance: Invariant}}},
	}
	boxInt := &NamedType{Kind: ClassKind, Name: "Box", TypeArgs: []Type{Int}}
	boxAny := &NamedType{Kind: ClassKind, Name: "Box", TypeArgs: []Type{Any}}
	if Subtype(boxInt, boxAny, ctx) {
		t.Error("Box<Int> and Box<Any> should be unrelated when T is unmarked (invariant)")
	}
}

func TestCovariantGenericParameter(t *testing.T) {
	ctx := mapCtx{
		"Box": &GenericDef{Name: "Box", TypeParams: []TypeParameter{{Name: "T", Variance: Covariant}}},
	}
	animal := &NamedType{Kind: ClassKind, Name: "Animal"}
	dog := &NamedType{Kind: ClassKind, Name: "Dog", Super: animal}
	boxDog := &NamedType{Kind: ClassKind, Name: "Box", TypeArgs: []Type{dog}}
	boxAnimal := &NamedType{Kind: ClassKind, Name: "Box", TypeArgs: []Type{animal}}
	if !Subtype(boxDog, boxAnimal, ctx) {
		t.Error("Box<Dog> <: Box<Animal> should hold when T is covariant")
	}
}

func TestSubtypeTransitivity(t *testing.T) {
	ctx := emptyCtx{}
	a := &NamedType{Kind: ClassKind, Name: "A"}
	b := &NamedType{Kind: ClassKind, Name: "B", Super: a}
	c := &NamedType{Kind: ClassKind, Name: "C", Super: b}
	if !Subtype(c, a, ctx) {
		t.Error("C <: B <: A should imply C <: A")
	}
}

func TestUnify(t *testing.T) {
	ctx := emptyCtx{}
	animal := &NamedType{Kind: ClassKind, Name: "Animal"}
	dog := &NamedType{Kind: ClassKind, Name: "Dog", Super: animal}
	got, ok := Unify(dog, animal, ctx)
	if !ok || got != Type(animal) {
		t.Errorf("Unify(Dog, Animal) = %v, %v; want Animal, true", got, ok)
	}
	if _, ok := Unify(Int, Str, ctx); ok {
		t.Error("Unify(Int, String) should fail")
	}
}
