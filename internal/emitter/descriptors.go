package emitter

import (
	"strings"

	"github.com/funvibe/funxyc/internal/classfile"
	"github.com/funvibe/funxyc/internal/typesystem"
)

// internalName converts a dotted/plain user type name to the
// slash-separated internal form the class-file format requires.
func internalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}

// descriptorOf renders a semantic type as a field/parameter descriptor.
// Composite types (List/Set/Map) and user-defined class/trait/object
// types are always object-typed on the target VM; only Int, Double and
// Boolean get primitive descriptors, mirroring spec.md §4.6's
// "primitive-specialised shapes where available, object otherwise" rule
// applied to ordinary (non-function) values too.
func descriptorOf(t typesystem.Type) string {
	switch t {
	case typesystem.Int:
		return "I"
	case typesystem.Double:
		return "D"
	case typesystem.Boolean:
		return "Z"
	case typesystem.Unit:
		return "V"
	case typesystem.Str:
		return "Ljava/lang/String;"
	case typesystem.Any, typesystem.Nothing, typesystem.Null:
		return "Ljava/lang/Object;"
	}
	switch tt := t.(type) {
	case typesystem.ListType:
		return "Ljava/util/List;"
	case typesystem.SetType:
		return "Ljava/util/Set;"
	case typesystem.MapType:
		return "Ljava/util/Map;"
	case typesystem.FuncType:
		return functionalInterfaceDescriptor(tt)
	case *typesystem.NamedType:
		return "L" + internalName(tt.Name) + ";"
	case typesystem.TypeVar:
		return "Ljava/lang/Object;" // an unresolved type variable erases to Object
	}
	return "Ljava/lang/Object;"
}

// isPrimitive reports whether a semantic type lowers to a JVM primitive
// value rather than a reference, which matters for choosing load/store/
// return opcodes and for the box/unbox sequences function-value
// materialisation needs.
func isPrimitive(t typesystem.Type) bool {
	return t == typesystem.Int || t == typesystem.Double || t == typesystem.Boolean
}

// methodDescriptor joins parameter descriptors and a return descriptor
// into a full `(...)X` method descriptor.
func methodDescriptor(params []typesystem.Type, ret typesystem.Type) string {
	var b strings.Builder
	b.WriteByte('(')
	for _, p := range params {
		b.WriteString(descriptorOf(p))
	}
	b.WriteByte(')')
	b.WriteString(descriptorOf(ret))
	return b.String()
}

// loadOpFor and storeOpFor pick the type-appropriate opcode family for a
// local-variable slot access.
func loadOpFor(t typesystem.Type) classfile.Op  { return opFamily(t, "load") }
func storeOpFor(t typesystem.Type) classfile.Op { return opFamily(t, "store") }

func opFamily(t typesystem.Type, kind string) classfile.Op {
	if t == typesystem.Double {
		if kind == "load" {
			return classfile.OpDLoad
		}
		return classfile.OpDStore
	}
	if t == typesystem.Int || t == typesystem.Boolean {
		if kind == "load" {
			return classfile.OpILoad
		}
		return classfile.OpIStore
	}
	if kind == "load" {
		return classfile.OpALoad
	}
	return classfile.OpAStore
}

// returnOpFor picks the type-appropriate return opcode.
func returnOpFor(t typesystem.Type) classfile.Op {
	switch t {
	case typesystem.Double:
		return classfile.OpDReturn
	case typesystem.Int, typesystem.Boolean:
		return classfile.OpIReturn
	case typesystem.Unit:
		return classfile.OpReturn
	default:
		return classfile.OpAReturn
	}
}
