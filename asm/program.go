package asm

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// LinkKind is the encoding of a label placeholder:
// LINK_ABSOLUTE_16 is the little-endian 16-bit address,
// LINK_ABSOLUTE_8 the low byte of the address, and
// LINK_RELATIVE_8 the signed displacement from the next instruction.
type LinkKind int

//go:generate go tool stringer -linecomment -type=LinkKind
const (
	LINK_ABSOLUTE_16 = LinkKind(0) // abs16
	LINK_ABSOLUTE_8  = LinkKind(1) // abs8
	LINK_RELATIVE_8  = LinkKind(2) // rel8
)

// linkKinds maps the placeholder passes to their label encoding.
var linkKinds = map[int]LinkKind{
	PASS_WIDE:         LINK_ABSOLUTE_16,
	PASS_NARROW:       LINK_ABSOLUTE_8,
	PASS_DISPLACEMENT: LINK_RELATIVE_8,
}

// Link is a label placeholder awaiting the label's address.
type Link struct {
	Label  string   // Label name.
	Kind   LinkKind // Placeholder encoding.
	Offset int      // Offset of the placeholder within the instruction bytes.
}

// Instruction is a single assembled line.
type Instruction struct {
	LineNo  int    // Line of the flattened instruction stream.
	Address int    // Address of the first byte.
	Line    Line   // Source line.
	Pass    int    // Resolution pass that matched.
	Bytes   []byte // Prefix, opcode and operand bytes.
	Link    *Link  // Label placeholder, if any.
}

// Program is an assembled instruction stream.
type Program struct {
	Origin       int
	Instructions []Instruction
}

// Size returns the number of assembled bytes.
func (prog *Program) Size() (size int) {
	for _, inst := range prog.Instructions {
		size += len(inst.Bytes)
	}
	return
}

// Binary returns the assembled bytes.
func (prog *Program) Binary() (bin []byte) {
	bin = make([]byte, 0, prog.Size())
	for _, inst := range prog.Instructions {
		bin = append(bin, inst.Bytes...)
	}
	return
}

// Bytes iterates over the assembled bytes and their addresses.
func (prog *Program) Bytes() iter.Seq2[int, byte] {
	return func(yield func(address int, b byte) bool) {
		for _, inst := range prog.Instructions {
			for n, b := range inst.Bytes {
				if !yield(inst.Address+n, b) {
					return
				}
			}
		}
	}
}

// Debug locates a byte of the program in its instruction.
type Debug struct {
	*Instruction
	Index int
}

// Debug finds the instruction covering an address.
func (prog *Program) Debug(address int) (dbg Debug) {
	for n, inst := range prog.Instructions {
		if address >= inst.Address && address < inst.Address+len(inst.Bytes) {
			dbg = Debug{
				Instruction: &prog.Instructions[n],
				Index:       address - inst.Address,
			}
			break
		}
	}

	return
}

// WriteListing writes one line per instruction: address, bytes in hex, and source.
func (prog *Program) WriteListing(w io.Writer) (err error) {
	for _, inst := range prog.Instructions {
		hex := make([]string, len(inst.Bytes))
		for n, b := range inst.Bytes {
			hex[n] = fmt.Sprintf("%02x", b)
		}
		_, err = fmt.Fprintf(w, "%04x  %-12s %5d  %v\n", inst.Address, strings.Join(hex, " "), inst.LineNo, inst.Line)
		if err != nil {
			return
		}
	}

	return
}
