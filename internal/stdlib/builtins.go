// Package stdlib is the builtin operation table spec.md §4.5 calls out
// by name: the small set of well-known methods List, Set and String
// support without any user declaration backing them.
package stdlib

import "github.com/funvibe/funxyc/internal/typesystem"

// BuiltinMethod resolves a well-known operation on a List, Set or
// String receiver. elem is the receiver's element type when the
// receiver is a List or Set; it is ignored for String.
func BuiltinMethod(receiver typesystem.Type, name string, elem typesystem.Type) (typesystem.FuncType, bool) {
	switch receiver.(type) {
	case typesystem.ListType:
		switch name {
		case "size", "length":
			return typesystem.FuncType{Params: nil, Return: typesystem.Int}, true
		case "get":
			return typesystem.FuncType{Params: []typesystem.Type{typesystem.Int}, Return: elem}, true
		case "add":
			return typesystem.FuncType{Params: []typesystem.Type{elem}, Return: typesystem.Unit}, true
		}
	case typesystem.SetType:
		switch name {
		case "size", "length":
			return typesystem.FuncType{Params: nil, Return: typesystem.Int}, true
		case "add":
			return typesystem.FuncType{Params: []typesystem.Type{elem}, Return: typesystem.Unit}, true
		}
	}
	if receiver == typesystem.Str {
		switch name {
		case "size", "length":
			return typesystem.FuncType{Params: nil, Return: typesystem.Int}, true
		case "get":
			return typesystem.FuncType{Params: []typesystem.Type{typesystem.Int}, Return: typesystem.Str}, true
		case "substring":
			return typesystem.FuncType{Params: []typesystem.Type{typesystem.Int, typesystem.Int}, Return: typesystem.Str}, true
		}
	}
	return typesystem.FuncType{}, false
}
