package asm

import (
	"log"

	"github.com/ezrec/siasm/lex"
	"github.com/ezrec/siasm/template"
)

const (
	PASS_LITERAL      = 0 // Operands as written.
	PASS_WIDE         = 1 // 16-bit immediate or pointer placeholder.
	PASS_NARROW       = 2 // 8-bit immediate placeholder.
	PASS_DISPLACEMENT = 3 // Signed 8-bit displacement placeholder.
)

// operand is the operand of a line chosen for placeholder substitution.
type operand struct {
	index   int    // Operand 1 or 2.
	text    string // Operand as written.
	inner   string // Operand without pointer parentheses.
	pointer bool   // Set if the operand is parenthesized.
	label   string // Label named by the operand, if any.
}

// value is the numeric value of the operand; zero for labels.
func (op operand) value() (value int64, numeric bool) {
	return lex.Value(op.inner)
}

// attempt is the outcome of a successful resolution pass.
type attempt struct {
	form template.Form
	pass int
	size int // Operand bytes following the opcode.
}

// pass is a single placeholder substitution. A pass that does not match
// returns ok == false; an error ends the resolution.
type pass func(asm *Assembler, ln Line, op operand) (at attempt, ok bool, err error)

// placeholderPasses are tried in order once the literal pass fails.
var placeholderPasses = []pass{
	(*Assembler).wide,
	(*Assembler).narrow,
	(*Assembler).displacement,
}

// sourceClass classifies operand text written in the source. Placeholder
// class names are not valid operands.
func sourceClass(text string) template.Class {
	class := template.ClassOf(text)
	if class.Placeholder() {
		return template.CLASS_UNKNOWN
	}
	return class
}

// choose selects the operand that carries the encoded value: the first,
// when it is the only operand or is numeric, otherwise the second.
func (asm *Assembler) choose(ln Line) (op operand) {
	op.index = 1
	if len(ln.Operand2) != 0 && !lex.IsNumeric(lex.Unwrap(ln.Operand1)) {
		op.index = 2
	}

	op.text = ln.Operand(op.index)
	op.inner = lex.Unwrap(op.text)
	op.pointer = lex.IsPointer(op.text)
	if lex.IsIdentifier(op.inner) && asm.Labels.Has(op.inner) {
		op.label = op.inner
	}

	return
}

// lookup queries the template, skipping unclassified operands.
func (asm *Assembler) lookup(ln Line, class1, class2 template.Class) (form template.Form, ok bool, err error) {
	if class1 == template.CLASS_UNKNOWN || class2 == template.CLASS_UNKNOWN {
		return
	}
	return asm.Template.Lookup(ln.Mnemonic, class1, class2)
}

// substitute queries the template with the chosen operand replaced by a placeholder class.
func (asm *Assembler) substitute(ln Line, op operand, class template.Class, size int, pass int) (at attempt, ok bool, err error) {
	class1 := sourceClass(ln.Operand1)
	class2 := sourceClass(ln.Operand2)
	if op.index == 1 {
		class1 = class
	} else {
		class2 = class
	}

	form, ok, err := asm.lookup(ln, class1, class2)
	if ok {
		at = attempt{form: form, pass: pass, size: size}
	}

	return
}

// literal matches the operands as written.
func (asm *Assembler) literal(ln Line) (at attempt, ok bool, err error) {
	form, ok, err := asm.lookup(ln, sourceClass(ln.Operand1), sourceClass(ln.Operand2))
	if ok {
		at = attempt{form: form, pass: PASS_LITERAL}
	}
	return
}

// wide substitutes a 16-bit immediate, or a 16-bit pointer for parenthesized operands.
func (asm *Assembler) wide(ln Line, op operand) (at attempt, ok bool, err error) {
	value, numeric := op.value()
	switch {
	case numeric:
		if !lex.FitsWord(value) {
			err = ErrArgumentOutOfRange
			return
		}
	case len(op.label) != 0:
		if asm.Verbose {
			log.Printf("%v: label %v as a 16-bit placeholder", ln, op.label)
		}
	default:
		err = ErrInstructionNotFound
		return
	}

	class := template.CLASS_IMMEDIATE_16
	if op.pointer {
		class = template.CLASS_POINTER_16
	}

	return asm.substitute(ln, op, class, 2, PASS_WIDE)
}

// narrow substitutes an 8-bit immediate. 8-bit values are never addresses.
func (asm *Assembler) narrow(ln Line, op operand) (at attempt, ok bool, err error) {
	if op.pointer {
		err = ErrInstructionNotFound
		return
	}

	value, _ := op.value()
	if !lex.FitsByte(value) {
		err = ErrArgumentOutOfRange
		return
	}

	return asm.substitute(ln, op, template.CLASS_IMMEDIATE_8, 1, PASS_NARROW)
}

// displacement substitutes a signed 8-bit displacement.
func (asm *Assembler) displacement(ln Line, op operand) (at attempt, ok bool, err error) {
	value, _ := op.value()
	if !lex.FitsSignedByte(value) {
		err = ErrArgumentOutOfRange
		return
	}

	return asm.substitute(ln, op, template.CLASS_DISPLACEMENT, 1, PASS_DISPLACEMENT)
}

// resolve finds the template form of a line, trying the literal pass and
// then each placeholder pass until one matches.
func (asm *Assembler) resolve(ln Line) (at attempt, op operand, err error) {
	at, ok, err := asm.literal(ln)
	if ok || err != nil {
		return
	}

	if ln.Operands() == 0 {
		err = ErrInstructionNotFound
		return
	}

	op = asm.choose(ln)
	for _, try := range placeholderPasses {
		at, ok, err = try(asm, ln, op)
		if ok || err != nil {
			return
		}
	}

	err = ErrInstructionNotFound

	return
}

// encode resolves a line and emits its bytes: the prefix if non-zero, the
// opcode, then the operand value little-endian.
func (asm *Assembler) encode(ln Line) (inst Instruction, err error) {
	at, op, err := asm.resolve(ln)
	if err != nil {
		return
	}

	inst = Instruction{Line: ln, Pass: at.pass}
	if at.form.Prefix != 0 {
		inst.Bytes = append(inst.Bytes, at.form.Prefix)
	}
	inst.Bytes = append(inst.Bytes, at.form.Opcode)

	if at.size == 0 {
		return
	}

	if len(op.label) != 0 && !asm.NoLink {
		inst.Link = &Link{Label: op.label, Kind: linkKinds[at.pass], Offset: len(inst.Bytes)}
	}

	value, _ := op.value()
	inst.Bytes = append(inst.Bytes, lex.Low(value))
	if at.size == 2 {
		inst.Bytes = append(inst.Bytes, lex.High(value))
	}

	return
}
