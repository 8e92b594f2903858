package cmds

import (
	"fmt"
	"reflect"
)

type Command struct {
	Func        reflect.Value
	Description string
	Aliases     []string
}

func (c *Command) Desc(desc string) *Command {
	c.Description = desc
	return c
}

func (c *Command) Alias(names ...string) *Command {
	c.Aliases = append(c.Aliases, names...)
	return c
}

var errorType = reflect.TypeFor[error]()

// Func wraps fn as a command. Parameters of fn consume the following
// command line arguments; pointer parameters are optional. fn may return
// an error.
func Func(fn any) *Command {
	fnValue := reflect.ValueOf(fn)
	if fnValue.Kind() != reflect.Func {
		panic(fmt.Errorf("must be function, got %T", fn))
	}
	fnType := fnValue.Type()
	switch {
	case fnType.NumOut() >= 2:
		panic(fmt.Errorf("must return 0 or 1 value"))
	case fnType.NumOut() == 1 && fnType.Out(0) != errorType:
		panic(fmt.Errorf("must return error"))
	}
	return &Command{
		Func: fnValue,
	}
}
