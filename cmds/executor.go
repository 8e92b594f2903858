package cmds

import (
	"fmt"
	"io"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/reusee/taitmpl/vars"
)

type Executor struct {
	commands map[string]*Command
	primary  map[string]*Command
}

func NewExecutor() *Executor {
	return &Executor{
		commands: make(map[string]*Command),
		primary:  make(map[string]*Command),
	}
}

func (p *Executor) Define(name string, command *Command) {
	for _, name := range append([]string{name}, command.Aliases...) {
		if _, ok := p.commands[name]; ok {
			panic(fmt.Errorf("duplicated command %s", name))
		}
		p.commands[name] = command
	}
	p.primary[name] = command
}

// Execute runs commands from args in order. Unconsumed arguments are
// interpreted as the next command name.
func (p *Executor) Execute(args []string) error {
	for len(args) > 0 {
		name := strings.TrimSpace(args[0])
		args = args[1:]

		command, ok := p.commands[name]
		if !ok {
			return fmt.Errorf("unknown command: %s", name)
		}

		fnType := command.Func.Type()
		callArgs := make([]reflect.Value, 0, fnType.NumIn())
		for i := range fnType.NumIn() {
			value, err := getArg(fnType.In(i), args)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			if len(args) > 0 {
				args = args[1:]
			}
			callArgs = append(callArgs, value)
		}
		rets := command.Func.Call(callArgs)
		if len(rets) > 0 && !rets[0].IsNil() {
			return rets[0].Interface().(error)
		}
	}
	return nil
}

func (p *Executor) MustExecute(args []string) {
	if err := p.Execute(args); err != nil {
		panic(err)
	}
}

func (p *Executor) PrintUsage(w io.Writer) {
	for _, name := range slices.Sorted(maps.Keys(p.primary)) {
		command := p.primary[name]
		names := append([]string{name}, command.Aliases...)
		fmt.Fprintf(w, "%s\t%s\n", strings.Join(names, ", "), command.Description)
	}
}

func getArg(t reflect.Type, args []string) (ret reflect.Value, err error) {
	if len(args) == 0 {
		if t.Kind() == reflect.Pointer {
			// optional
			return reflect.New(t.Elem()), nil
		}
		return ret, fmt.Errorf("expecting argument, got nothing")
	}

	if t.Kind() == reflect.Pointer {
		elemValue, err := getArg(t.Elem(), args)
		if err != nil {
			return ret, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(elemValue)
		return ptr, nil
	}

	str := args[0]
	ret = reflect.New(t).Elem()

	switch t.Kind() {

	case reflect.Bool:
		ret.SetBool(vars.StrToBool(str))
		return ret, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return ret, fmt.Errorf("convert %s to int: %w", str, err)
		}
		ret.SetInt(v)
		return ret, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(str, 10, 64)
		if err != nil {
			return ret, fmt.Errorf("convert %s to unsigned int: %w", str, err)
		}
		ret.SetUint(v)
		return ret, nil

	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return ret, fmt.Errorf("convert %s to float: %w", str, err)
		}
		ret.SetFloat(v)
		return ret, nil

	case reflect.String:
		ret.SetString(str)
		return ret, nil

	}

	return ret, fmt.Errorf("unsupported type: %v", t)
}
