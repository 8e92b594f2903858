package scripts

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/reusee/taitmpl/funcs"
	"github.com/reusee/taitmpl/logs"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"
)

// StreamParam is the name of the first parameter that marks a script
// function as a streaming callback.
const StreamParam = "out"

var ErrUnsupportedSignature = errors.New("unsupported function signature")

type Registered struct {
	Name    string
	NumArgs int
	Kind    funcs.Kind
}

func (r Registered) String() string {
	return fmt.Sprintf("%s/%d(%s)", r.Name, r.NumArgs, r.Kind)
}

// Load executes a Starlark module and registers its public top-level
// functions as callbacks in storage. src is anything starlark accepts as
// source: nil to read filename, a string, []byte or io.Reader.
type Load func(storage *funcs.Storage, filename string, src any) ([]Registered, error)

func (Module) Load(
	logger logs.Logger,
) Load {
	return func(storage *funcs.Storage, filename string, src any) (ret []Registered, err error) {
		thread := newThread(logger, filename)
		globals, err := starlark.ExecFileOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
		}, thread, filename, src, nil)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", filename, err)
		}

		// all signatures are checked before storage is touched
		var callbacks []funcs.Callback
		for _, name := range globals.Keys() {
			fn, ok := globals[name].(*starlark.Function)
			if !ok || strings.HasPrefix(name, "_") {
				continue
			}
			if fn.HasVarargs() || fn.HasKwargs() || fn.NumKwonlyParams() > 0 {
				return nil, fmt.Errorf("load %s: %s: %w", filename, name, ErrUnsupportedSignature)
			}

			numParams := fn.NumParams()
			if numParams > 0 {
				if first, _ := fn.Param(0); first == StreamParam {
					callbacks = append(callbacks, streamingFunc(logger, filename, fn))
					ret = append(ret, Registered{
						Name:    name,
						NumArgs: numParams - 1,
						Kind:    funcs.KindStreaming,
					})
					continue
				}
			}
			callbacks = append(callbacks, valueFunc(logger, filename, fn))
			ret = append(ret, Registered{
				Name:    name,
				NumArgs: numParams,
				Kind:    funcs.KindValue,
			})
		}

		for i, r := range ret {
			storage.AddCallback(r.Name, r.NumArgs, callbacks[i])
		}

		logger.Debug("script loaded",
			"script", filename,
			"functions", len(ret),
		)
		return ret, nil
	}
}

func newThread(logger logs.Logger, filename string) *starlark.Thread {
	return &starlark.Thread{
		Name: filename,
		Print: func(thread *starlark.Thread, msg string) {
			logger.Info("script print",
				"script", filename,
				"msg", msg,
			)
		},
	}
}

func toStarlarkArgs(args funcs.Arguments) (starlark.Tuple, error) {
	ret := make(starlark.Tuple, 0, len(args))
	for i, arg := range args {
		v, err := toStarlarkValue(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		ret = append(ret, v)
	}
	return ret, nil
}

func valueFunc(logger logs.Logger, filename string, fn *starlark.Function) funcs.ValueFunc {
	return func(args funcs.Arguments) (any, error) {
		starlarkArgs, err := toStarlarkArgs(args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn.Name(), err)
		}
		res, err := starlark.Call(newThread(logger, filename), fn, starlarkArgs, nil)
		if err != nil {
			return nil, err
		}
		ret, err := fromStarlarkValue(res)
		if err != nil {
			return nil, fmt.Errorf("%s: result: %w", fn.Name(), err)
		}
		return ret, nil
	}
}

func streamingFunc(logger logs.Logger, filename string, fn *starlark.Function) funcs.StreamingFunc {
	return func(w io.Writer, args funcs.Arguments) error {
		starlarkArgs, err := toStarlarkArgs(args)
		if err != nil {
			return fmt.Errorf("%s: %w", fn.Name(), err)
		}
		out := starlarkstruct.FromStringDict(starlarkstruct.Default, starlark.StringDict{
			"write": starlark.NewBuiltin("write", func(
				thread *starlark.Thread,
				b *starlark.Builtin,
				args starlark.Tuple,
				kwargs []starlark.Tuple,
			) (starlark.Value, error) {
				var s string
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &s); err != nil {
					return nil, err
				}
				if _, err := io.WriteString(w, s); err != nil {
					return nil, err
				}
				return starlark.None, nil
			}),
		})
		_, err = starlark.Call(
			newThread(logger, filename),
			fn,
			append(starlark.Tuple{out}, starlarkArgs...),
			nil,
		)
		return err
	}
}
