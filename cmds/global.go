package cmds

import "os"

var GlobalExecutor = func() *Executor {
	executor := NewExecutor()
	executor.Define("-h", Func(func() {
		executor.PrintUsage(os.Stdout)
		os.Exit(0)
	}).Desc("print this usage").Alias("help", "-help", "--help"))
	return executor
}()

func Define(name string, command *Command) {
	GlobalExecutor.Define(name, command)
}

func Execute(args []string) error {
	return GlobalExecutor.Execute(args)
}
