package emitter

import "github.com/funvibe/funxyc/internal/typesystem"

// methodScope assigns local-variable slots within one method body.
// Slot 0 holds `this` in class, trait and singleton methods and the
// receiver in extension methods (reserveThis); top-level functions and
// lambda bodies start their parameters at slot 0. Doubles occupy two consecutive
// slots on the target VM's local-variable array, same as they occupy
// two constant-pool entries.
type methodScope struct {
	slots  map[string]int
	types  map[string]typesystem.Type
	next   int
	parent *methodScope
}

func newMethodScope(parent *methodScope) *methodScope {
	return &methodScope{slots: make(map[string]int), types: make(map[string]typesystem.Type), parent: parent}
}

// declare allocates a fresh local slot for name, returning it.
func (s *methodScope) declare(name string, t typesystem.Type) int {
	slot := s.next
	s.slots[name] = slot
	s.types[name] = t
	width := 1
	if t == typesystem.Double {
		width = 2
	}
	s.next += width
	return slot
}

// reserveThis pins `this` to slot 0 of the outermost scope.
func (s *methodScope) reserveThis(t typesystem.Type) {
	s.slots["this"] = 0
	s.types["this"] = t
	if s.next == 0 {
		s.next = 1
		if t == typesystem.Double {
			s.next = 2
		}
	}
}

// lookup searches this scope and its parents (nested blocks share one
// flat local-variable array on the target VM; parents only matter for
// matching by name, not for separate storage).
func (s *methodScope) lookup(name string) (int, typesystem.Type, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if slot, ok := cur.slots[name]; ok {
			return slot, cur.types[name], true
		}
	}
	return 0, nil, false
}

func (s *methodScope) child() *methodScope {
	c := newMethodScope(s)
	c.next = s.next
	return c
}

// maxSlot reports this scope's next free slot (child scopes are not
// consulted), used to size max_locals when a method body starts.
func (s *methodScope) maxSlot() int {
	return s.next
}
