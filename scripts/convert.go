package scripts

import (
	"fmt"
	"reflect"

	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

func toStarlarkValue(v any) (starlark.Value, error) {
	switch v := v.(type) {

	case nil:
		return starlark.None, nil

	case starlark.Value:
		return v, nil

	case bool:
		return starlark.Bool(v), nil

	case []byte:
		return starlark.Bytes(v), nil
	case string:
		return starlark.String(v), nil

	case []any:
		elems := make([]starlark.Value, len(v))
		for i, e := range v {
			elem, err := toStarlarkValue(e)
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		return starlark.NewList(elems), nil

	case map[string]any:
		d := starlark.NewDict(len(v))
		for k, e := range v {
			value, err := toStarlarkValue(e)
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(starlark.String(k), value); err != nil {
				return nil, err
			}
		}
		return d, nil

	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.Bool:
		return starlark.Bool(value.Bool()), nil

	case reflect.String:
		return starlark.String(value.String()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(value.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return starlark.MakeUint64(value.Uint()), nil

	case reflect.Float32, reflect.Float64:
		return starlark.Float(value.Float()), nil

	case reflect.Slice, reflect.Array:
		elems := make([]starlark.Value, value.Len())
		for i := range elems {
			elem, err := toStarlarkValue(value.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		return starlark.NewList(elems), nil

	case reflect.Map:
		d := starlark.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			k, err := toStarlarkValue(iter.Key().Interface())
			if err != nil {
				return nil, err
			}
			e, err := toStarlarkValue(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(k, e); err != nil {
				return nil, err
			}
		}
		return d, nil

	case reflect.Pointer, reflect.Interface:
		elem := value.Elem()
		if !elem.IsValid() {
			return starlark.None, nil
		}
		return toStarlarkValue(elem.Interface())

	case reflect.Func:
		return starlarkutil.MakeFunc("", value.Interface()), nil

	}

	return nil, fmt.Errorf("unsupported type for starlark: %T", v)
}

func fromStarlarkValue(v starlark.Value) (any, error) {
	switch v := v.(type) {

	case starlark.NoneType:
		return nil, nil

	case starlark.Bool:
		return bool(v), nil

	case starlark.Int:
		i, ok := v.Int64()
		if !ok {
			return nil, fmt.Errorf("integer out of range: %s", v)
		}
		return i, nil

	case starlark.Float:
		return float64(v), nil

	case starlark.String:
		return string(v), nil

	case starlark.Bytes:
		return string(v), nil

	case starlark.Indexable:
		// list and tuple
		ret := make([]any, v.Len())
		for i := range ret {
			elem, err := fromStarlarkValue(v.Index(i))
			if err != nil {
				return nil, err
			}
			ret[i] = elem
		}
		return ret, nil

	case *starlark.Dict:
		ret := make(map[string]any, v.Len())
		for _, item := range v.Items() {
			key, ok := starlark.AsString(item[0])
			if !ok {
				return nil, fmt.Errorf("dict key must be string, got %s", item[0].Type())
			}
			value, err := fromStarlarkValue(item[1])
			if err != nil {
				return nil, err
			}
			ret[key] = value
		}
		return ret, nil

	}

	return nil, fmt.Errorf("unsupported starlark type: %s", v.Type())
}
