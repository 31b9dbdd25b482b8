package template

import (
	"strings"
)

// Class is a syntactic operand category, as stored in a template file.
type Class uint8

const (
	CLASS_NONE         = Class(0) // no operand
	CLASS_IMMEDIATE_8  = Class(1) // N
	CLASS_IMMEDIATE_16 = Class(2) // NN
	CLASS_POINTER_16   = Class(3) // (NN)
	CLASS_DISPLACEMENT = Class(4) // DIS

	CLASS_COUNT   = Class(48)   // Number of defined classes.
	CLASS_UNKNOWN = Class(0xff) // Operand text matching no class.
)

// classNames is the canonical operand text of each class, in template order.
var classNames = [CLASS_COUNT]string{
	"", "N", "NN", "(NN)", "DIS", "$",
	"b", "c", "bc", "(bc)",
	"d", "e", "de", "(de)",
	"h", "l", "hl", "(hl)",
	"a", "af", "af'", "sp",
	"(sp)", "i", "r", "(c)",
	"nz", "z", "nc", "po",
	"pe", "p", "m",
	"0", "1", "2", "3", "4", "5", "6", "7",
	"8", "16", "24", "32", "40", "48", "56",
}

var classMap = func() map[string]Class {
	m := make(map[string]Class, len(classNames))
	for n, name := range classNames {
		m[name] = Class(n)
	}
	return m
}()

// ClassOf returns the class of an operand text, compared case-insensitively,
// or CLASS_UNKNOWN.
func ClassOf(operand string) Class {
	class, ok := classMap[operand]
	if !ok {
		class, ok = classMap[strings.ToLower(operand)]
	}
	if !ok {
		return CLASS_UNKNOWN
	}
	return class
}

// Valid returns true for the defined classes.
func (class Class) Valid() bool {
	return class < CLASS_COUNT
}

// Placeholder returns true for the classes that stand in for numeric operands.
func (class Class) Placeholder() bool {
	return class >= CLASS_IMMEDIATE_8 && class <= CLASS_DISPLACEMENT
}

func (class Class) String() string {
	if !class.Valid() {
		return "?"
	}
	return classNames[class]
}
