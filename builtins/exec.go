package builtins

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/reusee/taitmpl/bytecode"
	"github.com/reusee/taitmpl/funcs"
	"github.com/reusee/taitmpl/values"
)

var (
	ErrUnknownOp  = errors.New("unknown builtin")
	ErrNumArgs    = errors.New("wrong number of arguments")
	ErrOutOfRange = errors.New("out of range")
)

// MaxRange is the largest count accepted by range.
const MaxRange = 1 << 24

type implFunc func(args funcs.Arguments) (any, error)

type impl struct {
	numArgs int
	fn      implFunc
}

var impls map[bytecode.Op]impl

func init() {
	impls = map[bytecode.Op]impl{
		bytecode.OpAt:             {2, evalAt},
		bytecode.OpCapitalize:     {1, evalCapitalize},
		bytecode.OpDefault:        {2, evalDefault},
		bytecode.OpDivisibleBy:    {2, evalDivisibleBy},
		bytecode.OpEven:           {1, evalParity(0)},
		bytecode.OpExists:         {1, evalExists},
		bytecode.OpExistsInObject: {2, evalExistsIn},
		bytecode.OpFirst:          {1, evalIndexFrom(false)},
		bytecode.OpFloat:          {1, evalFloat},
		bytecode.OpInt:            {1, evalInt},
		bytecode.OpIsArray:        {1, isA(isArray)},
		bytecode.OpIsBoolean:      {1, isA(isBoolean)},
		bytecode.OpIsFloat:        {1, isA(values.IsFloat)},
		bytecode.OpIsInteger:      {1, isA(values.IsInteger)},
		bytecode.OpIsNumber:       {1, isA(isNumber)},
		bytecode.OpIsObject:       {1, isA(isObject)},
		bytecode.OpIsString:       {1, isA(isString)},
		bytecode.OpJoin:           {2, evalJoin},
		bytecode.OpLast:           {1, evalIndexFrom(true)},
		bytecode.OpLength:         {1, evalLength},
		bytecode.OpLower:          {1, mapString(strings.ToLower)},
		bytecode.OpMax:            {1, evalExtreme(1)},
		bytecode.OpMin:            {1, evalExtreme(-1)},
		bytecode.OpOdd:            {1, evalParity(1)},
		bytecode.OpRange:          {1, evalRange},
		bytecode.OpReplace:        {3, evalReplace},
		bytecode.OpRound:          {2, evalRound},
		bytecode.OpSort:           {1, evalSort},
		bytecode.OpUpper:          {1, mapString(strings.ToUpper)},
		bytecode.OpWordCount:      {1, evalWordCount},
	}
}

// Exec runs the builtin identified by op.
func Exec(op bytecode.Op, args funcs.Arguments) (any, error) {
	impl, ok := impls[op]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownOp, op)
	}
	if len(args) != impl.numArgs {
		return nil, fmt.Errorf("%v: %w: expecting %d, got %d", op, ErrNumArgs, impl.numArgs, len(args))
	}
	ret, err := impl.fn(args)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", op, err)
	}
	return ret, nil
}

func typeError(what string, v any) error {
	return fmt.Errorf("expecting %s, got %T", what, v)
}

func evalAt(args funcs.Arguments) (any, error) {
	switch container := args[0].(type) {
	case []any:
		i, ok := values.ToInt64(args[1])
		if !ok {
			return nil, typeError("integer index", args[1])
		}
		if i < 0 || i >= int64(len(container)) {
			return nil, fmt.Errorf("index %d out of range", i)
		}
		return container[i], nil
	case map[string]any:
		key, ok := args[1].(string)
		if !ok {
			return nil, typeError("string key", args[1])
		}
		v, ok := container[key]
		if !ok {
			return nil, fmt.Errorf("key %q not found", key)
		}
		return v, nil
	}
	return nil, typeError("array or object", args[0])
}

func evalCapitalize(args funcs.Arguments) (any, error) {
	s, ok := args[0].(string)
	if !ok {
		return nil, typeError("string", args[0])
	}
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s, nil
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:]), nil
}

func evalDefault(args funcs.Arguments) (any, error) {
	if args[0] == nil {
		return args[1], nil
	}
	return args[0], nil
}

func evalDivisibleBy(args funcs.Arguments) (any, error) {
	a, ok := values.ToInt64(args[0])
	if !ok {
		return nil, typeError("integer", args[0])
	}
	b, ok := values.ToInt64(args[1])
	if !ok {
		return nil, typeError("integer", args[1])
	}
	if b == 0 {
		return false, nil
	}
	return a%b == 0, nil
}

func evalParity(rem int64) implFunc {
	return func(args funcs.Arguments) (any, error) {
		i, ok := values.ToInt64(args[0])
		if !ok {
			return nil, typeError("integer", args[0])
		}
		r := i % 2
		if r < 0 {
			r = -r
		}
		return r == rem, nil
	}
}

func evalExists(args funcs.Arguments) (any, error) {
	return args[0] != nil, nil
}

func evalExistsIn(args funcs.Arguments) (any, error) {
	obj, ok := args[0].(map[string]any)
	if !ok {
		return nil, typeError("object", args[0])
	}
	key, ok := args[1].(string)
	if !ok {
		return nil, typeError("string key", args[1])
	}
	_, ok = obj[key]
	return ok, nil
}

func evalIndexFrom(last bool) implFunc {
	return func(args funcs.Arguments) (any, error) {
		list, ok := args[0].([]any)
		if !ok {
			return nil, typeError("array", args[0])
		}
		if len(list) == 0 {
			return nil, nil
		}
		if last {
			return list[len(list)-1], nil
		}
		return list[0], nil
	}
}

func evalFloat(args funcs.Arguments) (any, error) {
	if s, ok := args[0].(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	f, ok := values.ToFloat64(args[0])
	if !ok {
		return nil, typeError("number or string", args[0])
	}
	return f, nil
}

func evalInt(args funcs.Arguments) (any, error) {
	if s, ok := args[0].(string); ok {
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, err
		}
		return i, nil
	}
	if i, ok := values.ToInt64(args[0]); ok {
		return i, nil
	}
	f, ok := values.ToFloat64(args[0])
	if !ok {
		return nil, typeError("number or string", args[0])
	}
	// -2^63 is exact in float64, 2^63 is the first value past MaxInt64
	if math.IsNaN(f) || f < math.MinInt64 || f >= -math.MinInt64 {
		return nil, fmt.Errorf("int of %v: %w", f, ErrOutOfRange)
	}
	return int64(f), nil
}

func isA(pred func(any) bool) implFunc {
	return func(args funcs.Arguments) (any, error) {
		return pred(args[0]), nil
	}
}

func isArray(v any) bool {
	_, ok := v.([]any)
	return ok
}

func isBoolean(v any) bool {
	_, ok := v.(bool)
	return ok
}

func isNumber(v any) bool {
	return values.IsFloat(v) || values.IsInteger(v)
}

func isObject(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func evalJoin(args funcs.Arguments) (any, error) {
	list, ok := args[0].([]any)
	if !ok {
		return nil, typeError("array", args[0])
	}
	sep, ok := args[1].(string)
	if !ok {
		return nil, typeError("string separator", args[1])
	}
	var b strings.Builder
	for i, elem := range list {
		if i > 0 {
			b.WriteString(sep)
		}
		s, err := values.Format(elem)
		if err != nil {
			return nil, err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func evalLength(args funcs.Arguments) (any, error) {
	switch v := args[0].(type) {
	case string:
		return int64(utf8.RuneCountInString(v)), nil
	case []any:
		return int64(len(v)), nil
	case map[string]any:
		return int64(len(v)), nil
	}
	return nil, typeError("string, array or object", args[0])
}

func mapString(fn func(string) string) implFunc {
	return func(args funcs.Arguments) (any, error) {
		s, ok := args[0].(string)
		if !ok {
			return nil, typeError("string", args[0])
		}
		return fn(s), nil
	}
}

func compareValues(a, b any) (int, error) {
	if sa, ok := a.(string); ok {
		sb, ok := b.(string)
		if !ok {
			return 0, typeError("string", b)
		}
		return strings.Compare(sa, sb), nil
	}
	if values.IsInteger(a) && values.IsInteger(b) {
		ia, _ := values.ToInt64(a)
		ib, _ := values.ToInt64(b)
		return cmp.Compare(ia, ib), nil
	}
	fa, ok := values.ToFloat64(a)
	if !ok {
		return 0, typeError("number or string", a)
	}
	fb, ok := values.ToFloat64(b)
	if !ok {
		return 0, typeError("number", b)
	}
	return cmp.Compare(fa, fb), nil
}

func evalExtreme(sign int) implFunc {
	return func(args funcs.Arguments) (any, error) {
		list, ok := args[0].([]any)
		if !ok {
			return nil, typeError("array", args[0])
		}
		if len(list) == 0 {
			return nil, nil
		}
		ret := list[0]
		for _, elem := range list[1:] {
			c, err := compareValues(elem, ret)
			if err != nil {
				return nil, err
			}
			if c*sign > 0 {
				ret = elem
			}
		}
		return ret, nil
	}
}

func evalRange(args funcs.Arguments) (any, error) {
	n, ok := values.ToInt64(args[0])
	if !ok {
		return nil, typeError("integer", args[0])
	}
	if n > MaxRange {
		return nil, fmt.Errorf("range count %d: %w, max %d", n, ErrOutOfRange, MaxRange)
	}
	if n < 0 {
		n = 0
	}
	ret := make([]any, n)
	for i := range ret {
		ret[i] = int64(i)
	}
	return ret, nil
}

func evalReplace(args funcs.Arguments) (any, error) {
	strs := make([]string, 3)
	for i, arg := range args {
		s, ok := arg.(string)
		if !ok {
			return nil, typeError("string", arg)
		}
		strs[i] = s
	}
	return strings.ReplaceAll(strs[0], strs[1], strs[2]), nil
}

func evalRound(args funcs.Arguments) (any, error) {
	f, ok := values.ToFloat64(args[0])
	if !ok {
		return nil, typeError("number", args[0])
	}
	precision, ok := values.ToInt64(args[1])
	if !ok {
		return nil, typeError("integer precision", args[1])
	}
	factor := math.Pow(10, float64(precision))
	rounded := math.Round(f*factor) / factor
	if precision == 0 {
		return int64(rounded), nil
	}
	return rounded, nil
}

func evalSort(args funcs.Arguments) (any, error) {
	list, ok := args[0].([]any)
	if !ok {
		return nil, typeError("array", args[0])
	}
	ret := slices.Clone(list)
	var err error
	slices.SortStableFunc(ret, func(a, b any) int {
		c, e := compareValues(a, b)
		if e != nil && err == nil {
			err = e
		}
		return c
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func evalWordCount(args funcs.Arguments) (any, error) {
	s, ok := args[0].(string)
	if !ok {
		return nil, typeError("string", args[0])
	}
	return int64(len(strings.Fields(s))), nil
}
