package configs

import (
	"errors"
	"iter"
)

// First returns the first value at path, or the zero value if none exists.
func First[T any](loader Loader, path string) (T, error) {
	var value T
	if err := loader.AssignFirst(path, &value); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return value, nil
		}
		return value, err
	}
	return value, nil
}

// All iterates values at path from every loaded file.
func All[T any](loader Loader, path string) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for value, err := range loader.IterCueValues(path) {
			var v T
			if err == nil {
				err = value.Decode(&v)
			}
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}
