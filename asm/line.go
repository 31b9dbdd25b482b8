package asm

import (
	"github.com/ezrec/siasm/lex"
)

// Line is a single logical instruction line.
type Line struct {
	Mnemonic string
	Operand1 string
	Operand2 string
}

// ParseLine splits a `mnemonic [operand1 [, operand2]]` instruction line.
func ParseLine(text string) (ln Line) {
	ln.Mnemonic, ln.Operand1, ln.Operand2 = lex.SplitInstruction(text)
	return
}

// Operands returns the number of operands present.
func (ln Line) Operands() (count int) {
	if len(ln.Operand1) != 0 {
		count++
	}
	if len(ln.Operand2) != 0 {
		count++
	}
	return
}

// Operand returns operand 1 or 2.
func (ln Line) Operand(index int) string {
	if index == 2 {
		return ln.Operand2
	}
	return ln.Operand1
}

func (ln Line) String() (text string) {
	text = ln.Mnemonic
	if len(ln.Operand1) != 0 {
		text += " " + ln.Operand1
		if len(ln.Operand2) != 0 {
			text += "," + ln.Operand2
		}
	}
	return
}
