package cmds

func Var[T any](name string) *T {
	var value T
	Define(name, Func(func(v T) {
		value = v
	}))
	return &value
}

func Switch(name string) *bool {
	var value bool
	Define(name, Func(func() {
		value = true
	}))
	Define("!"+name, Func(func() {
		value = false
	}))
	return &value
}

// Collect defines a command that may be repeated, each occurrence appending
// its argument.
func Collect[T any](name string) *[]T {
	var values []T
	Define(name, Func(func(v T) {
		values = append(values, v)
	}))
	return &values
}
