package funcs

import (
	"iter"
	"maps"
	"slices"

	"github.com/reusee/taitmpl/bytecode"
)

// Entry is the data stored for one (name, number of arguments) key.
// Op and Callable are set independently by AddBuiltin and AddCallback.
type Entry struct {
	NumArgs  int
	Op       bytecode.Op
	Callable Callable
}

// Storage maps function names and arities to builtins and callbacks.
//
// Storage does no locking. Populate it before sharing it; concurrent Find*
// calls are safe afterwards since they return copies.
type Storage struct {
	entries map[string][]Entry
}

func NewStorage() *Storage {
	return &Storage{
		entries: make(map[string][]Entry),
	}
}

func (s *Storage) AddBuiltin(name string, numArgs int, op bytecode.Op) {
	s.getOrNew(name, numArgs).Op = op
}

func (s *Storage) AddCallback(name string, numArgs int, callback Callback) {
	s.getOrNew(name, numArgs).Callable = MakeCallable(callback)
}

// FindBuiltin returns bytecode.OpNop if no entry exists.
func (s *Storage) FindBuiltin(name string, numArgs int) bytecode.Op {
	if entry := s.get(name, numArgs); entry != nil {
		return entry.Op
	}
	return bytecode.OpNop
}

// FindCallback returns an empty Callable if no entry exists.
func (s *Storage) FindCallback(name string, numArgs int) Callable {
	if entry := s.get(name, numArgs); entry != nil {
		return entry.Callable
	}
	return Callable{}
}

func (s *Storage) Has(name string, numArgs int) bool {
	return s.get(name, numArgs) != nil
}

// Entries returns a copy of the entries of name in registration order.
func (s *Storage) Entries(name string) []Entry {
	return slices.Clone(s.entries[name])
}

// Names iterates registered names in sorted order.
func (s *Storage) Names() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(s.entries)))
}

func (s *Storage) Len() (n int) {
	for _, list := range s.entries {
		n += len(list)
	}
	return
}

// Clone returns a storage that can be extended without affecting s.
func (s *Storage) Clone() *Storage {
	ret := &Storage{
		entries: make(map[string][]Entry, len(s.entries)),
	}
	for name, list := range s.entries {
		ret.entries[name] = slices.Clone(list)
	}
	return ret
}

func (s *Storage) getOrNew(name string, numArgs int) *Entry {
	if s.entries == nil {
		s.entries = make(map[string][]Entry)
	}
	list := s.entries[name]
	for i := range list {
		if list[i].NumArgs == numArgs {
			return &list[i]
		}
	}
	list = append(list, Entry{
		NumArgs: numArgs,
	})
	s.entries[name] = list
	return &list[len(list)-1]
}

func (s *Storage) get(name string, numArgs int) *Entry {
	list := s.entries[name]
	for i := range list {
		if list[i].NumArgs == numArgs {
			return &list[i]
		}
	}
	return nil
}
