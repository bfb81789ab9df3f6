package classfile

import (
	"bytes"
	"encoding/binary"
	"math"
)

// entry is one already-encoded constant-pool row: its tag byte plus the
// tag-specific payload, ready to append to the final pool bytes.
type entry struct {
	tag     byte
	payload []byte
}

// ConstantPool is the per-class constant pool. Entries are 1-indexed in
// the final class file (index 0 is reserved); the index add returns is
// already that 1-based index (the entry's slice position plus one).
type ConstantPool struct {
	entries []entry

	utf8   map[string]uint16
	ints   map[int32]uint16
	floats map[float64]uint16
	classes map[string]uint16
	strings map[string]uint16
	nameAndTypes map[[2]string]uint16
	fieldrefs    map[[3]string]uint16
	methodrefs   map[[3]string]uint16
	ifaceMethodrefs map[[3]string]uint16
	methodTypes  map[string]uint16
}

func NewConstantPool() *ConstantPool {
	return &ConstantPool{
		utf8:            make(map[string]uint16),
		ints:            make(map[int32]uint16),
		floats:          make(map[float64]uint16),
		classes:         make(map[string]uint16),
		strings:         make(map[string]uint16),
		nameAndTypes:    make(map[[2]string]uint16),
		fieldrefs:       make(map[[3]string]uint16),
		methodrefs:      make(map[[3]string]uint16),
		ifaceMethodrefs: make(map[[3]string]uint16),
		methodTypes:     make(map[string]uint16),
	}
}

func (p *ConstantPool) add(tag byte, payload []byte) uint16 {
	p.entries = append(p.entries, entry{tag: tag, payload: payload})
	return uint16(len(p.entries)) // 1-indexed: the entry just appended is at this index
}

// Utf8 interns a UTF-8 constant and returns its pool index.
func (p *ConstantPool) Utf8(s string) uint16 {
	if idx, ok := p.utf8[s]; ok {
		return idx
	}
	payload := make([]byte, 2+len(s))
	binary.BigEndian.PutUint16(payload, uint16(len(s)))
	copy(payload[2:], s)
	idx := p.add(tagUtf8, payload)
	p.utf8[s] = idx
	return idx
}

// Integer interns an int constant.
func (p *ConstantPool) Integer(v int32) uint16 {
	if idx, ok := p.ints[v]; ok {
		return idx
	}
	payload := make([]byte, 4)
	binary.BigEndian.PutUint32(payload, uint32(v))
	idx := p.add(tagInteger, payload)
	p.ints[v] = idx
	return idx
}

// Double interns a double constant. Double and Long entries occupy two
// pool slots in the real format; this writer never emits Long constants
// so that detail doesn't need tracking here.
func (p *ConstantPool) Double(v float64) uint16 {
	if idx, ok := p.floats[v]; ok {
		return idx
	}
	payload := make([]byte, 8)
	binary.BigEndian.PutUint64(payload, math.Float64bits(v))
	idx := p.add(tagDouble, payload)
	p.floats[v] = idx
	p.entries = append(p.entries, entry{}) // double/long take two pool slots
	return idx
}

// Class interns a CONSTANT_Class entry for the given internal (slash-
// separated) class name.
func (p *ConstantPool) Class(internalName string) uint16 {
	if idx, ok := p.classes[internalName]; ok {
		return idx
	}
	nameIdx := p.Utf8(internalName)
	payload := make([]byte, 2)
	binary.BigEndian.PutUint16(payload, nameIdx)
	idx := p.add(tagClass, payload)
	p.classes[internalName] = idx
	return idx
}

// String interns a CONSTANT_String entry.
func (p *ConstantPool) String(s string) uint16 {
	if idx, ok := p.strings[s]; ok {
		return idx
	}
	utf := p.Utf8(s)
	payload := make([]byte, 2)
	binary.BigEndian.PutUint16(payload, utf)
	idx := p.add(tagString, payload)
	p.strings[s] = idx
	return idx
}

// NameAndType interns a CONSTANT_NameAndType entry.
func (p *ConstantPool) NameAndType(name, descriptor string) uint16 {
	key := [2]string{name, descriptor}
	if idx, ok := p.nameAndTypes[key]; ok {
		return idx
	}
	nameIdx := p.Utf8(name)
	descIdx := p.Utf8(descriptor)
	payload := make([]byte, 4)
	binary.BigEndian.PutUint16(payload[0:], nameIdx)
	binary.BigEndian.PutUint16(payload[2:], descIdx)
	idx := p.add(tagNameAndType, payload)
	p.nameAndTypes[key] = idx
	return idx
}

func (p *ConstantPool) ref(tag byte, cache map[[3]string]uint16, class, name, descriptor string) uint16 {
	key := [3]string{class, name, descriptor}
	if idx, ok := cache[key]; ok {
		return idx
	}
	classIdx := p.Class(class)
	ntIdx := p.NameAndType(name, descriptor)
	payload := make([]byte, 4)
	binary.BigEndian.PutUint16(payload[0:], classIdx)
	binary.BigEndian.PutUint16(payload[2:], ntIdx)
	idx := p.add(tag, payload)
	cache[key] = idx
	return idx
}

// Fieldref interns a CONSTANT_Fieldref entry.
func (p *ConstantPool) Fieldref(class, name, descriptor string) uint16 {
	return p.ref(tagFieldref, p.fieldrefs, class, name, descriptor)
}

// Methodref interns a CONSTANT_Methodref entry.
func (p *ConstantPool) Methodref(class, name, descriptor string) uint16 {
	return p.ref(tagMethodref, p.methodrefs, class, name, descriptor)
}

// InterfaceMethodref interns a CONSTANT_InterfaceMethodref entry.
func (p *ConstantPool) InterfaceMethodref(class, name, descriptor string) uint16 {
	return p.ref(tagInterfaceMethodref, p.ifaceMethodrefs, class, name, descriptor)
}

// MethodHandle adds a CONSTANT_MethodHandle entry referencing a
// method (kind is one of the Ref* constants). It is not deduplicated:
// every call appends a new entry.
func (p *ConstantPool) MethodHandle(kind byte, methodrefIdx uint16) uint16 {
	payload := []byte{kind, byte(methodrefIdx >> 8), byte(methodrefIdx)}
	return p.add(tagMethodHandle, payload)
}

// MethodType interns a CONSTANT_MethodType entry.
func (p *ConstantPool) MethodType(descriptor string) uint16 {
	if idx, ok := p.methodTypes[descriptor]; ok {
		return idx
	}
	descIdx := p.Utf8(descriptor)
	payload := make([]byte, 2)
	binary.BigEndian.PutUint16(payload, descIdx)
	idx := p.add(tagMethodType, payload)
	p.methodTypes[descriptor] = idx
	return idx
}

// InvokeDynamic adds a CONSTANT_InvokeDynamic entry; like MethodHandle,
// every call appends a new entry. bootstrapIndex is the index into the
// class's BootstrapMethods attribute table.
func (p *ConstantPool) InvokeDynamic(bootstrapIndex uint16, name, descriptor string) uint16 {
	ntIdx := p.NameAndType(name, descriptor)
	payload := make([]byte, 4)
	binary.BigEndian.PutUint16(payload[0:], bootstrapIndex)
	binary.BigEndian.PutUint16(payload[2:], ntIdx)
	return p.add(tagInvokeDynamic, payload)
}

// Count returns the constant_pool_count field value (entry count + 1,
// the off-by-one the class-file format always carries).
func (p *ConstantPool) Count() uint16 {
	return uint16(len(p.entries) + 1)
}

// WriteTo appends the serialized constant pool (without the leading
// count field, which the caller writes separately as part of the class
// header) to buf.
func (p *ConstantPool) WriteTo(buf *bytes.Buffer) {
	for _, e := range p.entries {
		if e.payload == nil && e.tag == 0 {
			continue // the reserved second slot after a Double entry
		}
		buf.WriteByte(e.tag)
		buf.Write(e.payload)
	}
}
