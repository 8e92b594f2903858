package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/reusee/dscope"
	"github.com/reusee/e5"
	"github.com/reusee/taitmpl/bytecode"
	"github.com/reusee/taitmpl/cmds"
	"github.com/reusee/taitmpl/environment"
	"github.com/reusee/taitmpl/funcs"
	"github.com/reusee/taitmpl/logs"
	"github.com/reusee/taitmpl/values"
)

var (
	listFlag = cmds.Switch("list")
	callName = cmds.Var[string]("call")
	callArgs = cmds.Collect[string]("-arg")
)

var wrap = e5.Wrap.With(e5.WrapStacktrace)

func main() {
	if err := cmds.Execute(os.Args[1:]); err != nil {
		exit(err)
	}

	dscope.New(
		new(environment.Module),
	).Call(func(
		storage *funcs.Storage,
		call environment.Call,
		logger logs.Logger,
	) {
		if *listFlag {
			if err := list(os.Stdout, storage); err != nil {
				exit(err)
			}
		}

		if *callName != "" {
			args, err := parseArgs(*callArgs)
			if err != nil {
				exit(err)
			}
			res, err := call(context.Background(), os.Stdout, *callName, args)
			if err != nil {
				exit(err)
			}
			if res != nil {
				s, err := values.Format(res)
				if err != nil {
					exit(wrap(err))
				}
				fmt.Println(s)
			}
			logger.Debug("call done", "name", *callName)
		}
	})
}

func parseArgs(strs []string) (funcs.Arguments, error) {
	args := make(funcs.Arguments, 0, len(strs))
	for _, str := range strs {
		v, err := values.ParseJSON([]byte(str))
		if err != nil {
			return nil, wrap(err)
		}
		args = append(args, v)
	}
	return args, nil
}

func list(w io.Writer, storage *funcs.Storage) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for name := range storage.Names() {
		for _, entry := range storage.Entries(name) {
			builtin := "-"
			if entry.Op != bytecode.OpNop {
				builtin = entry.Op.String()
			}
			if _, err := fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", name, entry.NumArgs, builtin, entry.Callable.Kind()); err != nil {
				return err
			}
		}
	}
	return tw.Flush()
}

func exit(err error) {
	os.Stderr.WriteString(err.Error())
	os.Stderr.WriteString("\n")
	os.Exit(-1)
}
