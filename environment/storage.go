package environment

import (
	"fmt"

	"github.com/reusee/taitmpl/builtins"
	"github.com/reusee/taitmpl/bytecode"
	"github.com/reusee/taitmpl/funcs"
	"github.com/reusee/taitmpl/logs"
	"github.com/reusee/taitmpl/scripts"
	"github.com/reusee/taitmpl/tmplconfigs"
)

// Storage is populated once when the scope is built. Evaluators only read it.
func (Module) Storage(
	enableBuiltins tmplconfigs.EnableBuiltins,
	aliases tmplconfigs.Aliases,
	scriptPaths tmplconfigs.ScriptPaths,
	load scripts.Load,
	logger logs.Logger,
) *funcs.Storage {
	storage := funcs.NewStorage()

	if enableBuiltins {
		builtins.Register(storage)
	}

	for _, alias := range aliases {
		op := storage.FindBuiltin(alias.Target, alias.NumArgs)
		if op == bytecode.OpNop {
			panic(wrap(fmt.Errorf("alias %s: no builtin %s/%d", alias.Name, alias.Target, alias.NumArgs)))
		}
		storage.AddBuiltin(alias.Name, alias.NumArgs, op)
	}

	for _, path := range scriptPaths {
		registered, err := load(storage, path, nil)
		if err != nil {
			panic(wrap(err))
		}
		for _, r := range registered {
			logger.Debug("callback registered",
				"script", path,
				"function", r.String(),
			)
		}
	}

	logger.Debug("function storage ready",
		"entries", storage.Len(),
	)
	return storage
}
