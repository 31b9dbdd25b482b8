package asm

import (
	"errors"

	"github.com/ezrec/siasm/translate"
)

var f = translate.From

var (
	// Line errors
	ErrInstructionNotFound = errors.New(f("could not resolve"))
	ErrArgumentOutOfRange  = errors.New(f("argument out of range"))
	ErrLabelUnresolved     = errors.New(f("label unresolved"))
)

// ErrLine locates an assembly error in the instruction stream.
type ErrLine struct {
	File   string
	LineNo int
	Line   Line
	Err    error
}

func (err *ErrLine) Error() string {
	return f("Assembly error, in %v at line %d -> %v %v", err.File, err.LineNo, err.Err, err.Line)
}

func (err *ErrLine) Unwrap() error {
	return err.Err
}

// ErrAssembly collects every line error of an assembly run.
type ErrAssembly []error

func (err ErrAssembly) Error() string {
	return f("Could not go further due to %d error(s).", len(err))
}

func (err ErrAssembly) Unwrap() []error {
	return err
}

// lineError returns true for errors that fail a single line without
// stopping the assembly.
func lineError(err error) bool {
	return errors.Is(err, ErrInstructionNotFound) || errors.Is(err, ErrArgumentOutOfRange)
}
