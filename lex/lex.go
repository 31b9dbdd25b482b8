// Package lex holds the lexical helpers shared by the preprocessor, the
// template builder and the assembler: token classification, literal parsing,
// range checks and byte splitting.
package lex

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reIdentifier = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	reDecimal    = regexp.MustCompile(`^-?[0-9]+$`)
	reHex        = regexp.MustCompile(`^-?0[xX][0-9A-Fa-f]+$`)
)

// IsIdentifier returns true for a letter followed by letters, digits or underscores.
func IsIdentifier(word string) bool {
	return reIdentifier.MatchString(word)
}

// IsNumeric returns true if word is a decimal or 0x-prefixed hexadecimal
// integer literal, with an optional leading minus sign.
func IsNumeric(word string) bool {
	return reDecimal.MatchString(word) || reHex.MatchString(word)
}

// IsPointer returns true if word is wrapped in parentheses.
func IsPointer(word string) bool {
	return len(word) >= 2 && word[0] == '(' && word[len(word)-1] == ')'
}

// Unwrap removes the parentheses of a pointer operand. Other words are
// returned unchanged.
func Unwrap(word string) string {
	if IsPointer(word) {
		return word[1 : len(word)-1]
	}
	return word
}

// Value returns the integer value of a numeric literal.
// Non-numeric words yield zero and ok == false.
func Value(word string) (value int64, ok bool) {
	if !IsNumeric(word) {
		return
	}

	negative := strings.HasPrefix(word, "-")
	digits := strings.TrimPrefix(word, "-")
	base := 10
	if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
		digits = digits[2:]
		base = 16
	}

	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		// Too large for any range check to accept.
		v = 1 << 62
	}
	if negative {
		v = -v
	}

	return v, true
}

// FitsWord returns true if value is representable as a 16-bit signed or unsigned quantity.
func FitsWord(value int64) bool {
	return value >= -32768 && value <= 0xffff
}

// FitsByte returns true if value is representable as an 8-bit signed or unsigned quantity.
func FitsByte(value int64) bool {
	return value >= -128 && value <= 0xff
}

// FitsSignedByte returns true if value is representable as a signed 8-bit displacement.
func FitsSignedByte(value int64) bool {
	return value >= -128 && value <= 127
}

// Low returns the least significant byte of value.
func Low(value int64) byte {
	return byte(value & 0xff)
}

// High returns the second least significant byte of value.
func High(value int64) byte {
	return byte((value >> 8) & 0xff)
}

// SplitInstruction splits a trimmed instruction line of the form
// `mnemonic [operand1 [, operand2]]` into its three parts.
func SplitInstruction(line string) (mnemonic, operand1, operand2 string) {
	line = strings.TrimSpace(line)

	split := strings.IndexAny(line, " \t")
	if split < 0 {
		mnemonic = line
		return
	}

	mnemonic, rest := line[:split], line[split+1:]

	operand1, operand2, _ = strings.Cut(rest, ",")
	operand1 = strings.TrimSpace(operand1)
	operand2 = strings.TrimSpace(operand2)

	return
}
