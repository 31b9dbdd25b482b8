// Package asm implements the SIASM instruction resolver.
//
// Each line of a flattened instruction stream is split into a mnemonic and
// up to two operands, then matched against an opcode template. Operands that
// match no fixed operand class are retried, in order, as a 16-bit
// immediate or pointer, an 8-bit immediate, and a signed 8-bit displacement.
// Labels collected by the preprocessor are bound to the address of the line
// they precede as the stream is emitted, and label operands are patched with
// those addresses once the whole stream has been read.
package asm
