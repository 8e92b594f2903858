package environment

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/reusee/taitmpl/builtins"
	"github.com/reusee/taitmpl/bytecode"
	"github.com/reusee/taitmpl/funcs"
	"github.com/reusee/taitmpl/logs"
)

var ErrUnknownFunction = errors.New("unknown function")

// Call resolves name with the number of args and runs it. A builtin
// registered for the key is used before a callback. Streaming callbacks
// write to w and return a nil value.
type Call func(ctx context.Context, w io.Writer, name string, args funcs.Arguments) (any, error)

func (Module) Call(
	storage *funcs.Storage,
	logger logs.Logger,
) Call {
	return func(ctx context.Context, w io.Writer, name string, args funcs.Arguments) (ret any, err error) {
		ctx = logs.WithCallSite(ctx, name, len(args))
		defer func() {
			err = logs.WrapCallSite(ctx, err)
		}()

		if op := storage.FindBuiltin(name, len(args)); op != bytecode.OpNop {
			logger.DebugContext(ctx, "call builtin", "op", op)
			return builtins.Exec(op, args)
		}

		callable := storage.FindCallback(name, len(args))
		if !callable.IsSet() {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
		}
		logger.DebugContext(ctx, "call callback", "kind", callable.Kind())
		return callable.Call(w, args)
	}
}
