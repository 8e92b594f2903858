package values

import (
	"fmt"
	"math"
	"testing"
)

func TestToInt64(t *testing.T) {
	for _, c := range []struct {
		in   any
		want int64
		ok   bool
	}{
		{1, 1, true},
		{int8(-3), -3, true},
		{uint32(7), 7, true},
		{2.0, 2, true},
		{2.5, 0, false},
		{"1", 0, false},
		{nil, 0, false},
		{uint(math.MaxInt), math.MaxInt, true},
		{uint(math.MaxUint), 0, false},
		{math.Pow(2, 63), 0, false},
		{-math.Pow(2, 63), math.MinInt64, true},
		{math.NaN(), 0, false},
		{math.Inf(1), 0, false},
		{uint64(math.MaxUint64), 0, false},
	} {
		got, ok := ToInt64(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("%v: got %v %v", c.in, got, ok)
		}
	}
}

func TestToFloat64(t *testing.T) {
	f, ok := ToFloat64(3)
	if !ok || f != 3 {
		t.Fatalf("got %v", f)
	}
	f, ok = ToFloat64(1.5)
	if !ok || f != 1.5 {
		t.Fatalf("got %v", f)
	}
	if _, ok := ToFloat64("x"); ok {
		t.Fatal()
	}
}

func TestParseJSON(t *testing.T) {
	v, err := ParseJSON([]byte(`{"a": [1, 2.5, "x", true, null]}`))
	if err != nil {
		t.Fatal(err)
	}
	if s := fmt.Sprintf("%v", v); s != "map[a:[1 2.5 x true <nil>]]" {
		t.Fatalf("got %s", s)
	}
	list := v.(map[string]any)["a"].([]any)
	if _, ok := list[0].(int64); !ok {
		t.Fatalf("got %T", list[0])
	}
	if _, ok := list[1].(float64); !ok {
		t.Fatalf("got %T", list[1])
	}

	if _, err := ParseJSON([]byte(`1 2`)); err == nil {
		t.Fatal("should error")
	}
	if _, err := ParseJSON([]byte(`{`)); err == nil {
		t.Fatal("should error")
	}
}

func TestFormat(t *testing.T) {
	s, err := Format("foo")
	if err != nil {
		t.Fatal(err)
	}
	if s != "foo" {
		t.Fatalf("got %v", s)
	}
	s, err = Format([]any{int64(1), "a"})
	if err != nil {
		t.Fatal(err)
	}
	if s != `[1,"a"]` {
		t.Fatalf("got %v", s)
	}
}
