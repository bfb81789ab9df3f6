package classfile

import (
	"bytes"
	"encoding/binary"
)

const magic = 0xCAFEBABE

// bootstrapMethod is one BootstrapMethods attribute entry: a
// MethodHandle reference plus its static arguments, used by every
// invokedynamic callsite the emitter produces for a lambda.
type bootstrapMethod struct {
	methodHandleIdx uint16
	args            []uint16
}

// Field is one field_info entry.
type Field struct {
	AccessFlags uint16
	NameIdx     uint16
	DescIdx     uint16
}

// Method is one method_info entry, with its Code attribute already
// assembled by a CodeBuilder.
type Method struct {
	AccessFlags uint16
	NameIdx     uint16
	DescIdx     uint16
	Code        *CodeBuilder // nil for abstract methods
}

// ClassWriter assembles one class artifact: the constant pool, access
// flags, superclass/interfaces, fields, methods and the BootstrapMethods
// attribute, then serializes the whole thing to the class-file binary
// format. One ClassWriter per emitted top-level entity (spec.md §5: "the
// emitter holds one in-memory byte buffer per class being built").
type ClassWriter struct {
	MinorVersion uint16
	MajorVersion uint16

	Pool *ConstantPool

	AccessFlags uint16
	ThisClass   uint16
	SuperClass  uint16
	Interfaces  []uint16

	Fields  []Field
	Methods []Method

	bootstraps []bootstrapMethod
}

// NewClassWriter starts a class artifact targeting the given
// superclass internal name (interned here into the new pool) and major
// class-file version (the target VM's invokedynamic-capable version,
// per spec.md §6 "a version that supports invokedynamic callsites").
func NewClassWriter(major uint16, thisName, superName string) *ClassWriter {
	pool := NewConstantPool()
	w := &ClassWriter{
		MinorVersion: 0,
		MajorVersion: major,
		Pool:         pool,
		AccessFlags:  AccPublic | AccSuper,
	}
	w.ThisClass = pool.Class(thisName)
	if superName != "" {
		w.SuperClass = pool.Class(superName)
	}
	return w
}

// AddInterface records an implemented interface by internal name.
func (w *ClassWriter) AddInterface(name string) {
	w.Interfaces = append(w.Interfaces, w.Pool.Class(name))
}

// AddField appends a field with the given access flags, name and
// descriptor.
func (w *ClassWriter) AddField(access uint16, name, descriptor string) {
	w.Fields = append(w.Fields, Field{
		AccessFlags: access,
		NameIdx:     w.Pool.Utf8(name),
		DescIdx:     w.Pool.Utf8(descriptor),
	})
}

// AddMethod appends a method. code is nil for an abstract or interface
// method signature with no body.
func (w *ClassWriter) AddMethod(access uint16, name, descriptor string, code *CodeBuilder) {
	w.Methods = append(w.Methods, Method{
		AccessFlags: access,
		NameIdx:     w.Pool.Utf8(name),
		DescIdx:     w.Pool.Utf8(descriptor),
		Code:        code,
	})
}

// AddBootstrapMethod registers an invokedynamic bootstrap-method-table
// entry (a MethodHandle plus its static arguments, typically the
// platform lambda-factory handle plus the functional interface's
// erased/concrete descriptors and the target method handle) and returns
// its index for use with ConstantPool.InvokeDynamic.
func (w *ClassWriter) AddBootstrapMethod(methodHandleIdx uint16, args ...uint16) uint16 {
	w.bootstraps = append(w.bootstraps, bootstrapMethod{methodHandleIdx: methodHandleIdx, args: args})
	return uint16(len(w.bootstraps) - 1)
}

// Bytes serializes the complete class file.
func (w *ClassWriter) Bytes() []byte {
	// Attribute names are pool entries too; add them before the pool is
	// written so the attribute headers below index entries that exist.
	if len(w.Methods) > 0 {
		w.Pool.Utf8("Code")
		w.Pool.Utf8("LineNumberTable")
	}
	if len(w.bootstraps) > 0 {
		w.Pool.Utf8("BootstrapMethods")
	}
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.BigEndian, uint32(magic))
	binary.Write(buf, binary.BigEndian, w.MinorVersion)
	binary.Write(buf, binary.BigEndian, w.MajorVersion)

	binary.Write(buf, binary.BigEndian, w.Pool.Count())
	w.Pool.WriteTo(buf)

	binary.Write(buf, binary.BigEndian, w.AccessFlags)
	binary.Write(buf, binary.BigEndian, w.ThisClass)
	binary.Write(buf, binary.BigEndian, w.SuperClass)

	binary.Write(buf, binary.BigEndian, uint16(len(w.Interfaces)))
	for _, iface := range w.Interfaces {
		binary.Write(buf, binary.BigEndian, iface)
	}

	binary.Write(buf, binary.BigEndian, uint16(len(w.Fields)))
	for _, f := range w.Fields {
		binary.Write(buf, binary.BigEndian, f.AccessFlags)
		binary.Write(buf, binary.BigEndian, f.NameIdx)
		binary.Write(buf, binary.BigEndian, f.DescIdx)
		binary.Write(buf, binary.BigEndian, uint16(0)) // attributes_count
	}

	binary.Write(buf, binary.BigEndian, uint16(len(w.Methods)))
	for _, m := range w.Methods {
		w.writeMethod(buf, m)
	}

	classAttrCount := uint16(0)
	var bootstrapBody []byte
	if len(w.bootstraps) > 0 {
		classAttrCount = 1
		bootstrapBody = w.bootstrapMethodsBody()
	}
	binary.Write(buf, binary.BigEndian, classAttrCount)
	if bootstrapBody != nil {
		nameIdx := w.Pool.Utf8("BootstrapMethods")
		binary.Write(buf, binary.BigEndian, nameIdx)
		binary.Write(buf, binary.BigEndian, uint32(len(bootstrapBody)))
		buf.Write(bootstrapBody)
	}

	return buf.Bytes()
}

func (w *ClassWriter) writeMethod(buf *bytes.Buffer, m Method) {
	binary.Write(buf, binary.BigEndian, m.AccessFlags)
	binary.Write(buf, binary.BigEndian, m.NameIdx)
	binary.Write(buf, binary.BigEndian, m.DescIdx)
	if m.Code == nil {
		binary.Write(buf, binary.BigEndian, uint16(0))
		return
	}
	codeBody := w.codeAttributeBody(m.Code)
	binary.Write(buf, binary.BigEndian, uint16(1)) // attributes_count: just Code
	nameIdx := w.Pool.Utf8("Code")
	binary.Write(buf, binary.BigEndian, nameIdx)
	binary.Write(buf, binary.BigEndian, uint32(len(codeBody)))
	buf.Write(codeBody)
}

func (w *ClassWriter) codeAttributeBody(c *CodeBuilder) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.BigEndian, uint16(c.MaxStack()))
	binary.Write(buf, binary.BigEndian, uint16(c.MaxLocals()))
	code := c.Bytes()
	binary.Write(buf, binary.BigEndian, uint32(len(code)))
	buf.Write(code)
	binary.Write(buf, binary.BigEndian, uint16(0)) // exception_table_length: no exceptions in scope

	lineBody := c.lineNumberTableBody()
	binary.Write(buf, binary.BigEndian, uint16(1)) // attributes_count: LineNumberTable only
	nameIdx := w.Pool.Utf8("LineNumberTable")
	binary.Write(buf, binary.BigEndian, nameIdx)
	binary.Write(buf, binary.BigEndian, uint32(len(lineBody)))
	buf.Write(lineBody)
	return buf.Bytes()
}

func (w *ClassWriter) bootstrapMethodsBody() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.BigEndian, uint16(len(w.bootstraps)))
	for _, b := range w.bootstraps {
		binary.Write(buf, binary.BigEndian, b.methodHandleIdx)
		binary.Write(buf, binary.BigEndian, uint16(len(b.args)))
		for _, a := range b.args {
			binary.Write(buf, binary.BigEndian, a)
		}
	}
	return buf.Bytes()
}
