package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIdentifier(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsIdentifier("loop"))
	assert.True(IsIdentifier("Loop_2"))
	assert.True(IsIdentifier("a"))
	assert.False(IsIdentifier(""))
	assert.False(IsIdentifier("2loop"))
	assert.False(IsIdentifier("_loop"))
	assert.False(IsIdentifier("lo op"))
	assert.False(IsIdentifier("loop:"))
}

func TestIsNumeric(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsNumeric("0"))
	assert.True(IsNumeric("255"))
	assert.True(IsNumeric("-128"))
	assert.True(IsNumeric("0x1F"))
	assert.True(IsNumeric("-0x10"))
	assert.False(IsNumeric(""))
	assert.False(IsNumeric("-"))
	assert.False(IsNumeric("(5)"))
	assert.False(IsNumeric("5-"))
	assert.False(IsNumeric("0x"))
	assert.False(IsNumeric("hl"))
}

func TestPointer(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsPointer("(hl)"))
	assert.True(IsPointer("(1234)"))
	assert.True(IsPointer("()"))
	assert.False(IsPointer("("))
	assert.False(IsPointer("hl"))
	assert.False(IsPointer("(hl"))

	assert.Equal("hl", Unwrap("(hl)"))
	assert.Equal("1234", Unwrap("(1234)"))
	assert.Equal("hl", Unwrap("hl"))
}

func TestValue(t *testing.T) {
	assert := assert.New(t)

	tests := map[string]int64{
		"0":      0,
		"5":      5,
		"-1":     -1,
		"65535":  65535,
		"0x10":   16,
		"0XfF":   255,
		"-0x80":  -128,
		"000012": 12,
	}
	for word, expected := range tests {
		value, ok := Value(word)
		assert.True(ok, word)
		assert.Equal(expected, value, word)
	}

	value, ok := Value("loop")
	assert.False(ok)
	assert.Equal(int64(0), value)

	value, ok = Value("99999999999999999999999")
	assert.True(ok)
	assert.False(FitsWord(value))
}

func TestRanges(t *testing.T) {
	assert := assert.New(t)

	assert.True(FitsWord(-32768))
	assert.True(FitsWord(65535))
	assert.False(FitsWord(-32769))
	assert.False(FitsWord(65536))

	assert.True(FitsByte(-128))
	assert.True(FitsByte(255))
	assert.False(FitsByte(-129))
	assert.False(FitsByte(256))

	assert.True(FitsSignedByte(-128))
	assert.True(FitsSignedByte(127))
	assert.False(FitsSignedByte(128))
	assert.False(FitsSignedByte(-129))
}

func TestBytes(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(byte(0x34), Low(0x1234))
	assert.Equal(byte(0x12), High(0x1234))
	assert.Equal(byte(0xff), Low(-1))
	assert.Equal(byte(0xff), High(-1))
	assert.Equal(byte(0x00), High(0xff))
}

func TestSplitInstruction(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		line               string
		mnemonic, op1, op2 string
	}{
		{"NOP", "NOP", "", ""},
		{"  NOP  ", "NOP", "", ""},
		{"JP 1234", "JP", "1234", ""},
		{"LD A,5", "LD", "A", "5"},
		{"LD  a , (hl)", "LD", "a", "(hl)"},
		{"LD\tA,5", "LD", "A", "5"},
		{"EX af,af'", "EX", "af", "af'"},
	}

	for _, test := range tests {
		mnemonic, op1, op2 := SplitInstruction(test.line)
		assert.Equal(test.mnemonic, mnemonic, test.line)
		assert.Equal(test.op1, op1, test.line)
		assert.Equal(test.op2, op2, test.line)
	}
}
