package builtins

import (
	"github.com/reusee/taitmpl/bytecode"
	"github.com/reusee/taitmpl/funcs"
)

type Builtin struct {
	Name    string
	NumArgs int
	Op      bytecode.Op
}

var Table = []Builtin{
	{"at", 2, bytecode.OpAt},
	{"capitalize", 1, bytecode.OpCapitalize},
	{"default", 2, bytecode.OpDefault},
	{"divisibleBy", 2, bytecode.OpDivisibleBy},
	{"even", 1, bytecode.OpEven},
	{"exists", 1, bytecode.OpExists},
	{"existsIn", 2, bytecode.OpExistsInObject},
	{"first", 1, bytecode.OpFirst},
	{"float", 1, bytecode.OpFloat},
	{"int", 1, bytecode.OpInt},
	{"isArray", 1, bytecode.OpIsArray},
	{"isBoolean", 1, bytecode.OpIsBoolean},
	{"isFloat", 1, bytecode.OpIsFloat},
	{"isInteger", 1, bytecode.OpIsInteger},
	{"isNumber", 1, bytecode.OpIsNumber},
	{"isObject", 1, bytecode.OpIsObject},
	{"isString", 1, bytecode.OpIsString},
	{"join", 2, bytecode.OpJoin},
	{"last", 1, bytecode.OpLast},
	{"length", 1, bytecode.OpLength},
	{"lower", 1, bytecode.OpLower},
	{"max", 1, bytecode.OpMax},
	{"min", 1, bytecode.OpMin},
	{"odd", 1, bytecode.OpOdd},
	{"range", 1, bytecode.OpRange},
	{"replace", 3, bytecode.OpReplace},
	{"round", 2, bytecode.OpRound},
	{"sort", 1, bytecode.OpSort},
	{"upper", 1, bytecode.OpUpper},
	{"wordcount", 1, bytecode.OpWordCount},
}

// Register adds every entry of Table to storage.
func Register(storage *funcs.Storage) {
	for _, b := range Table {
		storage.AddBuiltin(b.Name, b.NumArgs, b.Op)
	}
}
