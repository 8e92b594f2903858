package tmplconfigs

import (
	"github.com/reusee/taitmpl/cmds"
	"github.com/reusee/taitmpl/configs"
)

// EnableBuiltins controls registration of the default builtin table.
type EnableBuiltins bool

var noBuiltinsFlag = cmds.Switch("-no-builtins")

func (Module) EnableBuiltins(
	loader configs.Loader,
) EnableBuiltins {
	if *noBuiltinsFlag {
		return false
	}
	enable := true
	if err := loader.AssignFirst("builtins", &enable); err != nil && !isNotFound(err) {
		panic(err)
	}
	return EnableBuiltins(enable)
}

// ScriptPaths are Starlark files whose functions become callbacks.
type ScriptPaths []string

var scriptFlags = cmds.Collect[string]("-script")

func (Module) ScriptPaths(
	loader configs.Loader,
) ScriptPaths {
	paths := ScriptPaths(*scriptFlags)
	for list, err := range configs.All[[]string](loader, "scripts") {
		if err != nil {
			panic(err)
		}
		paths = append(paths, list...)
	}
	return paths
}

type Alias struct {
	Name    string `json:"name"`
	Target  string `json:"target"`
	NumArgs int    `json:"args"`
}

// Aliases register an existing builtin under another name.
type Aliases []Alias

func (Module) Aliases(
	loader configs.Loader,
) (ret Aliases) {
	for list, err := range configs.All[[]Alias](loader, "aliases") {
		if err != nil {
			panic(err)
		}
		ret = append(ret, list...)
	}
	return
}
