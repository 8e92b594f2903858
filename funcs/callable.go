package funcs

import (
	"errors"
	"io"
)

// Arguments are the evaluated arguments of a call site. Callbacks must not
// modify them.
type Arguments []any

// ValueFunc is a callback that produces a single value.
type ValueFunc func(args Arguments) (any, error)

// StreamingFunc is a callback that writes its output to w instead of
// returning a value.
type StreamingFunc func(w io.Writer, args Arguments) error

// Callback is implemented by ValueFunc and StreamingFunc only.
type Callback interface {
	callbackKind() Kind
}

var _ Callback = ValueFunc(nil)

var _ Callback = StreamingFunc(nil)

func (ValueFunc) callbackKind() Kind {
	return KindValue
}

func (StreamingFunc) callbackKind() Kind {
	return KindStreaming
}

type Kind uint8

const (
	KindEmpty Kind = iota
	KindValue
	KindStreaming
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindStreaming:
		return "streaming"
	}
	return "empty"
}

var ErrEmptyCallable = errors.New("empty callable")

// Callable holds at most one callback. The zero value is empty.
type Callable struct {
	callback Callback
}

func MakeCallable(callback Callback) Callable {
	switch fn := callback.(type) {
	case ValueFunc:
		if fn == nil {
			return Callable{}
		}
	case StreamingFunc:
		if fn == nil {
			return Callable{}
		}
	case nil:
		return Callable{}
	}
	return Callable{
		callback: callback,
	}
}

func (c Callable) Kind() Kind {
	if c.callback == nil {
		return KindEmpty
	}
	return c.callback.callbackKind()
}

func (c Callable) IsSet() bool {
	return c.callback != nil
}

func (c Callable) ValueFunc() (ValueFunc, bool) {
	fn, ok := c.callback.(ValueFunc)
	return fn, ok
}

func (c Callable) StreamingFunc() (StreamingFunc, bool) {
	fn, ok := c.callback.(StreamingFunc)
	return fn, ok
}

// Call invokes the held callback. A value callback returns its result; a
// streaming callback writes to w and returns nil.
func (c Callable) Call(w io.Writer, args Arguments) (any, error) {
	switch fn := c.callback.(type) {
	case ValueFunc:
		return fn(args)
	case StreamingFunc:
		if err := fn(w, args); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return nil, ErrEmptyCallable
}
