package stdlib

import "testing"

import "github.com/funvibe/funxyc/internal/typesystem"

func TestBuiltinMethodListGetReturnsElementType(t *testing.T) {
	list := typesystem.ListType{Elem: typesystem.Str}
	fn, ok := BuiltinMethod(list, "get", typesystem.Str)
	if !ok {
		t.Fatalf("expected List.get to resolve")
	}
	if fn.Return != typesystem.Str {
		t.Fatalf("expected List<String>.get to return String, got %s", fn.Return)
	}
	if len(fn.Params) != 1 || fn.Params[0] != typesystem.Int {
		t.Fatalf("expected a single Int index parameter, got %v", fn.Params)
	}
}

func TestBuiltinMethodStringSubstring(t *testing.T) {
	fn, ok := BuiltinMethod(typesystem.Str, "substring", nil)
	if !ok {
		t.Fatalf("expected String.substring to resolve")
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected substring to take 2 Int parameters, got %d", len(fn.Params))
	}
}

func TestBuiltinMethodUnknownNameNotFound(t *testing.T) {
	_, ok := BuiltinMethod(typesystem.Int, "frobnicate", nil)
	if ok {
		t.Fatalf("Int has no builtin method %q", "frobnicate")
	}
}
