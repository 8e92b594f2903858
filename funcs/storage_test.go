package funcs

import (
	"bytes"
	"io"
	"slices"
	"testing"

	"github.com/reusee/taitmpl/bytecode"
)

func constFunc(v any) ValueFunc {
	return func(Arguments) (any, error) {
		return v, nil
	}
}

func callValue(t *testing.T, c Callable) any {
	t.Helper()
	res, err := c.Call(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestBuiltinLookup(t *testing.T) {
	s := NewStorage()
	s.AddBuiltin("upper", 1, bytecode.OpUpper)

	if op := s.FindBuiltin("upper", 1); op != bytecode.OpUpper {
		t.Fatalf("got %v", op)
	}
	if op := s.FindBuiltin("upper", 2); op != bytecode.OpNop {
		t.Fatalf("got %v", op)
	}
	if c := s.FindCallback("upper", 1); c.IsSet() {
		t.Fatalf("got %v", c.Kind())
	}
}

func TestStreamingCallbackLookup(t *testing.T) {
	s := NewStorage()
	s.AddCallback("join", 2, StreamingFunc(func(w io.Writer, args Arguments) error {
		_, err := io.WriteString(w, args[0].(string)+args[1].(string))
		return err
	}))

	c := s.FindCallback("join", 2)
	if !c.IsSet() {
		t.Fatal("should be set")
	}
	if k := c.Kind(); k != KindStreaming {
		t.Fatalf("got %v", k)
	}
	if op := s.FindBuiltin("join", 2); op != bytecode.OpNop {
		t.Fatalf("got %v", op)
	}

	buf := new(bytes.Buffer)
	if _, err := c.Call(buf, Arguments{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "ab" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestLookupMissing(t *testing.T) {
	s := NewStorage()
	if op := s.FindBuiltin("foo", 0); op != bytecode.OpNop {
		t.Fatalf("got %v", op)
	}
	if c := s.FindCallback("foo", 0); c.IsSet() {
		t.Fatal()
	}
	if s.Has("foo", 0) {
		t.Fatal()
	}

	// zero value is usable
	var zero Storage
	if op := zero.FindBuiltin("foo", 1); op != bytecode.OpNop {
		t.Fatalf("got %v", op)
	}
	zero.AddBuiltin("foo", 1, bytecode.OpLower)
	if op := zero.FindBuiltin("foo", 1); op != bytecode.OpLower {
		t.Fatalf("got %v", op)
	}
}

func TestNameIsCaseSensitive(t *testing.T) {
	s := NewStorage()
	s.AddBuiltin("upper", 1, bytecode.OpUpper)
	if op := s.FindBuiltin("Upper", 1); op != bytecode.OpNop {
		t.Fatalf("got %v", op)
	}
}

func TestLatestRegistrationWins(t *testing.T) {
	s := NewStorage()
	s.AddBuiltin("f", 1, bytecode.OpUpper)
	s.AddBuiltin("f", 1, bytecode.OpUpper)
	if op := s.FindBuiltin("f", 1); op != bytecode.OpUpper {
		t.Fatalf("got %v", op)
	}
	if n := s.Len(); n != 1 {
		t.Fatalf("got %v", n)
	}
	s.AddBuiltin("f", 1, bytecode.OpLower)
	if op := s.FindBuiltin("f", 1); op != bytecode.OpLower {
		t.Fatalf("got %v", op)
	}

	s.AddCallback("g", 0, constFunc(1))
	s.AddCallback("g", 0, constFunc(2))
	if res := callValue(t, s.FindCallback("g", 0)); res != 2 {
		t.Fatalf("got %v", res)
	}
}

func TestArityIndependence(t *testing.T) {
	s := NewStorage()
	s.AddCallback("f", 1, constFunc("one"))
	s.AddCallback("f", 2, constFunc("two"))
	s.AddBuiltin("f", 3, bytecode.OpReplace)

	if res := callValue(t, s.FindCallback("f", 1)); res != "one" {
		t.Fatalf("got %v", res)
	}
	if res := callValue(t, s.FindCallback("f", 2)); res != "two" {
		t.Fatalf("got %v", res)
	}
	if c := s.FindCallback("f", 3); c.IsSet() {
		t.Fatal()
	}
	if op := s.FindBuiltin("f", 1); op != bytecode.OpNop {
		t.Fatalf("got %v", op)
	}
	if op := s.FindBuiltin("f", 3); op != bytecode.OpReplace {
		t.Fatalf("got %v", op)
	}

	entries := s.Entries("f")
	if len(entries) != 3 {
		t.Fatalf("got %v", len(entries))
	}
	for i, entry := range entries {
		if entry.NumArgs != i+1 {
			t.Fatalf("got %v", entry.NumArgs)
		}
	}
}

func TestBuiltinAndCallbackCoexist(t *testing.T) {
	s := NewStorage()
	s.AddBuiltin("f", 1, bytecode.OpLength)
	s.AddCallback("f", 1, constFunc(42))
	if op := s.FindBuiltin("f", 1); op != bytecode.OpLength {
		t.Fatalf("got %v", op)
	}
	if res := callValue(t, s.FindCallback("f", 1)); res != 42 {
		t.Fatalf("got %v", res)
	}

	s.AddBuiltin("f", 1, bytecode.OpFirst)
	if res := callValue(t, s.FindCallback("f", 1)); res != 42 {
		t.Fatalf("got %v", res)
	}
}

func TestReturnedCallableIsIndependent(t *testing.T) {
	s := NewStorage()
	s.AddCallback("f", 0, constFunc("old"))
	got := s.FindCallback("f", 0)

	s.AddCallback("f", 0, StreamingFunc(func(w io.Writer, args Arguments) error {
		return nil
	}))
	if k := got.Kind(); k != KindValue {
		t.Fatalf("got %v", k)
	}
	if res := callValue(t, got); res != "old" {
		t.Fatalf("got %v", res)
	}
	if k := s.FindCallback("f", 0).Kind(); k != KindStreaming {
		t.Fatalf("got %v", k)
	}

	s.AddCallback("f", 0, nil)
	if s.FindCallback("f", 0).IsSet() {
		t.Fatal()
	}
	if !got.IsSet() {
		t.Fatal()
	}
}

func TestEntriesAreCopies(t *testing.T) {
	s := NewStorage()
	s.AddBuiltin("f", 1, bytecode.OpUpper)
	entries := s.Entries("f")
	entries[0].Op = bytecode.OpLower
	if op := s.FindBuiltin("f", 1); op != bytecode.OpUpper {
		t.Fatalf("got %v", op)
	}
	if s.Entries("nope") != nil {
		t.Fatal()
	}
}

func TestNames(t *testing.T) {
	s := NewStorage()
	s.AddBuiltin("upper", 1, bytecode.OpUpper)
	s.AddBuiltin("at", 2, bytecode.OpAt)
	s.AddCallback("lower", 1, constFunc(nil))
	names := slices.Collect(s.Names())
	if !slices.Equal(names, []string{"at", "lower", "upper"}) {
		t.Fatalf("got %v", names)
	}
}

func TestClone(t *testing.T) {
	s := NewStorage()
	s.AddBuiltin("f", 1, bytecode.OpUpper)
	clone := s.Clone()
	clone.AddBuiltin("f", 1, bytecode.OpLower)
	clone.AddBuiltin("f", 2, bytecode.OpAt)

	if op := s.FindBuiltin("f", 1); op != bytecode.OpUpper {
		t.Fatalf("got %v", op)
	}
	if s.Has("f", 2) {
		t.Fatal()
	}
	if op := clone.FindBuiltin("f", 1); op != bytecode.OpLower {
		t.Fatalf("got %v", op)
	}
	if n := clone.Len(); n != 2 {
		t.Fatalf("got %v", n)
	}
}
