package funcs

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestEmptyCallable(t *testing.T) {
	var c Callable
	if c.IsSet() {
		t.Fatal("should be empty")
	}
	if k := c.Kind(); k != KindEmpty {
		t.Fatalf("got %v", k)
	}
	if _, ok := c.ValueFunc(); ok {
		t.Fatal()
	}
	if _, ok := c.StreamingFunc(); ok {
		t.Fatal()
	}
	_, err := c.Call(io.Discard, nil)
	if !errors.Is(err, ErrEmptyCallable) {
		t.Fatalf("got %v", err)
	}
}

func TestMakeCallableNil(t *testing.T) {
	if MakeCallable(nil).IsSet() {
		t.Fatal()
	}
	if MakeCallable(ValueFunc(nil)).IsSet() {
		t.Fatal()
	}
	if MakeCallable(StreamingFunc(nil)).IsSet() {
		t.Fatal()
	}
}

func TestValueCallable(t *testing.T) {
	c := MakeCallable(ValueFunc(func(args Arguments) (any, error) {
		return len(args), nil
	}))
	if !c.IsSet() {
		t.Fatal()
	}
	if k := c.Kind(); k != KindValue {
		t.Fatalf("got %v", k)
	}
	if _, ok := c.StreamingFunc(); ok {
		t.Fatal()
	}
	fn, ok := c.ValueFunc()
	if !ok {
		t.Fatal()
	}
	res, err := fn(Arguments{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if res != 2 {
		t.Fatalf("got %v", res)
	}
	res, err = c.Call(nil, Arguments{"a"})
	if err != nil {
		t.Fatal(err)
	}
	if res != 1 {
		t.Fatalf("got %v", res)
	}
}

func TestStreamingCallable(t *testing.T) {
	c := MakeCallable(StreamingFunc(func(w io.Writer, args Arguments) error {
		for _, arg := range args {
			if _, err := io.WriteString(w, arg.(string)); err != nil {
				return err
			}
		}
		return nil
	}))
	if k := c.Kind(); k != KindStreaming {
		t.Fatalf("got %v", k)
	}
	if _, ok := c.ValueFunc(); ok {
		t.Fatal()
	}
	buf := new(bytes.Buffer)
	res, err := c.Call(buf, Arguments{"foo", "bar"})
	if err != nil {
		t.Fatal(err)
	}
	if res != nil {
		t.Fatalf("got %v", res)
	}
	if s := buf.String(); s != "foobar" {
		t.Fatalf("got %q", s)
	}
}

func TestStreamingCallableError(t *testing.T) {
	c := MakeCallable(StreamingFunc(func(w io.Writer, args Arguments) error {
		return errors.New("boom")
	}))
	_, err := c.Call(new(strings.Builder), nil)
	if err == nil || err.Error() != "boom" {
		t.Fatalf("got %v", err)
	}
}

func TestKindString(t *testing.T) {
	for kind, str := range map[Kind]string{
		KindEmpty:     "empty",
		KindValue:     "value",
		KindStreaming: "streaming",
	} {
		if s := kind.String(); s != str {
			t.Fatalf("got %v", s)
		}
	}
}
