package classfile

import (
	"encoding/binary"
	"testing"
)

func TestConstantPoolInternsDuplicates(t *testing.T) {
	p := NewConstantPool()
	a := p.Utf8("hello")
	b := p.Utf8("hello")
	if a != b {
		t.Fatalf("expected interned Utf8 to return the same index, got %d and %d", a, b)
	}
	c := p.Utf8("world")
	if c == a {
		t.Fatalf("expected distinct strings to get distinct indices")
	}
}

func TestConstantPoolDoubleTakesTwoSlots(t *testing.T) {
	p := NewConstantPool()
	p.Utf8("before")
	idx := p.Double(3.14)
	next := p.Utf8("after")
	if next != idx+2 {
		t.Fatalf("expected the entry after a Double to skip one slot, got idx=%d next=%d", idx, next)
	}
}

func TestConstantPoolMethodrefReusesClassAndNameAndType(t *testing.T) {
	p := NewConstantPool()
	m1 := p.Methodref("java/lang/Object", "toString", "()Ljava/lang/String;")
	m2 := p.Methodref("java/lang/Object", "toString", "()Ljava/lang/String;")
	if m1 != m2 {
		t.Fatalf("expected identical Methodref calls to be interned")
	}
}

func TestCodeBuilderJumpPatch(t *testing.T) {
	c := NewCodeBuilder(1)
	c.Emit(OpIConst0, 1)
	patch := c.EmitJump(OpIfEq)
	c.Emit(OpIConst1, 1)
	c.PatchJump(patch)
	code := c.Bytes()
	offset := int16(binary.BigEndian.Uint16(code[patch:]))
	if int(offset) != len(code)-(patch-1) {
		t.Fatalf("patched jump offset %d does not reach the end of the code", offset)
	}
}

func TestCodeBuilderTracksMaxStack(t *testing.T) {
	c := NewCodeBuilder(0)
	c.Emit(OpIConst1, 1)
	c.Emit(OpIConst2, 1)
	c.Emit(OpIAdd, -1)
	if c.MaxStack() != 2 {
		t.Fatalf("expected max stack depth 2, got %d", c.MaxStack())
	}
}

func TestClassWriterProducesMagicHeader(t *testing.T) {
	w := NewClassWriter(61, "Add$", "java/lang/Object")
	code := NewCodeBuilder(2)
	code.Line(1)
	code.EmitU1(OpILoad, 0, 1)
	code.EmitU1(OpILoad, 1, 1)
	code.Emit(OpIAdd, -1)
	code.Emit(OpIReturn, -1)
	w.AddMethod(AccPublic|AccStatic, "add", "(II)I", code)

	out := w.Bytes()
	got := binary.BigEndian.Uint32(out[0:4])
	if got != magic {
		t.Fatalf("expected class file magic 0x%X, got 0x%X", magic, got)
	}
	major := binary.BigEndian.Uint16(out[6:8])
	if major != 61 {
		t.Fatalf("expected major version 61, got %d", major)
	}
}

func TestClassWriterBootstrapMethodsAttribute(t *testing.T) {
	w := NewClassWriter(61, "Lambda$0", "java/lang/Object")
	mref := w.Pool.Methodref("java/lang/invoke/LambdaMetafactory", "metafactory", "()V")
	handle := w.Pool.MethodHandle(RefInvokeStatic, mref)
	idx := w.AddBootstrapMethod(handle)
	if idx != 0 {
		t.Fatalf("expected the first bootstrap method to be index 0, got %d", idx)
	}
	out := w.Bytes()
	if len(out) == 0 {
		t.Fatalf("expected non-empty class bytes")
	}
}
