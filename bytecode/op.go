package bytecode

import "strconv"

// Op identifies an instruction of the template bytecode. The registry treats
// it as an opaque token.
type Op uint32

const (
	// OpNop is the zero value and doubles as the "no builtin" result of lookups.
	OpNop Op = iota
	// OpCallback calls a user supplied function.
	OpCallback

	OpAt
	OpCapitalize
	OpDefault
	OpDivisibleBy
	OpEven
	OpExists
	OpExistsInObject
	OpFirst
	OpFloat
	OpInt
	OpIsArray
	OpIsBoolean
	OpIsFloat
	OpIsInteger
	OpIsNumber
	OpIsObject
	OpIsString
	OpJoin
	OpLast
	OpLength
	OpLower
	OpMax
	OpMin
	OpOdd
	OpRange
	OpReplace
	OpRound
	OpSort
	OpUpper
	OpWordCount

	numOps
)

var opNames = [numOps]string{
	OpNop:            "Nop",
	OpCallback:       "Callback",
	OpAt:             "At",
	OpCapitalize:     "Capitalize",
	OpDefault:        "Default",
	OpDivisibleBy:    "DivisibleBy",
	OpEven:           "Even",
	OpExists:         "Exists",
	OpExistsInObject: "ExistsInObject",
	OpFirst:          "First",
	OpFloat:          "Float",
	OpInt:            "Int",
	OpIsArray:        "IsArray",
	OpIsBoolean:      "IsBoolean",
	OpIsFloat:        "IsFloat",
	OpIsInteger:      "IsInteger",
	OpIsNumber:       "IsNumber",
	OpIsObject:       "IsObject",
	OpIsString:       "IsString",
	OpJoin:           "Join",
	OpLast:           "Last",
	OpLength:         "Length",
	OpLower:          "Lower",
	OpMax:            "Max",
	OpMin:            "Min",
	OpOdd:            "Odd",
	OpRange:          "Range",
	OpReplace:        "Replace",
	OpRound:          "Round",
	OpSort:           "Sort",
	OpUpper:          "Upper",
	OpWordCount:      "WordCount",
}

func (o Op) String() string {
	if o < numOps {
		return opNames[o]
	}
	return "Op(" + strconv.FormatUint(uint64(o), 10) + ")"
}

// Valid reports whether o is one of the defined opcodes.
func (o Op) Valid() bool {
	return o < numOps
}
