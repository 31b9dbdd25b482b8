// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"io"
	"log"
	"math"
	"strings"

	"github.com/ezrec/siasm/label"
	"github.com/ezrec/siasm/lex"
	"github.com/ezrec/siasm/template"
)

// Template is the opcode template queried for every instruction.
type Template interface {
	Lookup(mnemonic string, operand1, operand2 template.Class) (form template.Form, ok bool, err error)
}

// Assembler is a single pass, template driven assembler.
type Assembler struct {
	Verbose  bool         // If set, verbosely logs the assembler actions.
	Template Template     // Opcode template. Required.
	Labels   *label.Table // Labels of the instruction stream; addresses are bound during assembly.
	Origin   int          // Address of the first assembled byte.
	NoLink   bool         // If set, label operands are emitted as zero placeholders.
}

// progress is the running state of an assembly, threaded through each line.
type progress struct {
	offset  int            // Bytes emitted so far.
	pending []*label.Label // Labels ordered by line.
	cursor  int            // Next unbound label in pending.
}

// bind binds every pending label declared at or before lineno to address.
func (pg progress) bind(lineno int, address int) progress {
	for pg.cursor < len(pg.pending) && pg.pending[pg.cursor].Line <= lineno {
		lb := pg.pending[pg.cursor]
		lb.Address = address
		lb.Resolved = true
		pg.cursor++
	}

	return pg
}

// Assemble reads a flattened instruction stream and assembles it.
//
// Lines that cannot be assembled are collected, and assembly continues with
// the next line. If any line failed, the returned error is an ErrAssembly
// listing every ErrLine; the partial program is still returned. Other
// errors, such as a corrupt template, stop the assembly.
func (asm *Assembler) Assemble(input io.Reader, filename string) (prog *Program, err error) {
	prog = &Program{Origin: asm.Origin}
	pg := progress{pending: asm.Labels.Pending()}

	var errs ErrAssembly
	var lineno int

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lineno++
		text := strings.TrimSpace(scanner.Text())
		if len(text) == 0 {
			continue
		}

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		ln := ParseLine(text)
		address := asm.Origin + pg.offset
		pg = pg.bind(lineno, address)

		inst, lerr := asm.encode(ln)
		if lerr != nil {
			if !lineError(lerr) {
				prog = nil
				err = &ErrLine{File: filename, LineNo: lineno, Line: ln, Err: lerr}
				return
			}
			errs = append(errs, &ErrLine{File: filename, LineNo: lineno, Line: ln, Err: lerr})
			continue
		}

		inst.LineNo = lineno
		inst.Address = address
		prog.Instructions = append(prog.Instructions, inst)
		pg.offset += len(inst.Bytes)
	}

	err = scanner.Err()
	if err != nil {
		prog = nil
		return
	}

	// Labels after the last instruction address the end of the program.
	pg = pg.bind(math.MaxInt, asm.Origin+pg.offset)

	if !asm.NoLink {
		errs = append(errs, asm.link(prog, filename)...)
	}

	if len(errs) != 0 {
		err = errs
	}

	return
}

// link patches every label placeholder with its label's address.
func (asm *Assembler) link(prog *Program, filename string) (errs []error) {
	for n := range prog.Instructions {
		inst := &prog.Instructions[n]
		if inst.Link == nil {
			continue
		}

		lerr := asm.patch(inst)
		if lerr != nil {
			errs = append(errs, &ErrLine{File: filename, LineNo: inst.LineNo, Line: inst.Line, Err: lerr})
		}
	}

	return
}

// patch writes the address of the linked label into an instruction.
func (asm *Assembler) patch(inst *Instruction) (err error) {
	link := inst.Link

	lb := asm.Labels.Lookup(link.Label)
	if lb == nil || !lb.Resolved {
		return &label.ErrName{Name: link.Label, Err: ErrLabelUnresolved}
	}

	target := int64(lb.Address)

	switch link.Kind {
	case LINK_ABSOLUTE_16:
		if !lex.FitsWord(target) {
			return ErrArgumentOutOfRange
		}
		inst.Bytes[link.Offset] = lex.Low(target)
		inst.Bytes[link.Offset+1] = lex.High(target)
	case LINK_ABSOLUTE_8:
		if !lex.FitsByte(target) {
			return ErrArgumentOutOfRange
		}
		inst.Bytes[link.Offset] = lex.Low(target)
	case LINK_RELATIVE_8:
		displacement := target - int64(inst.Address+len(inst.Bytes))
		if !lex.FitsSignedByte(displacement) {
			return ErrArgumentOutOfRange
		}
		inst.Bytes[link.Offset] = lex.Low(displacement)
	}

	if asm.Verbose {
		log.Printf("%v: linked %v to %#04x\n", inst.LineNo, link.Label, target)
	}

	return
}
