package template

import (
	"errors"

	"github.com/ezrec/siasm/translate"
)

var f = translate.From

var (
	// Template file errors
	ErrFormat  = errors.New(f("template format invalid"))
	ErrCorrupt = errors.New(f("template file corruption"))

	// Template builder errors
	ErrMnemonicLength = errors.New(f("mnemonic must be 2 to 5 characters"))
	ErrOperandInvalid = errors.New(f("operand has no class"))
	ErrFormMissing    = errors.New(f("instruction form missing"))
	ErrByteRange      = errors.New(f("opcode or prefix out of byte range"))
	ErrTooManyRecords = errors.New(f("too many mnemonics"))
	ErrTooManyForms   = errors.New(f("too many forms for a mnemonic"))
)

// ErrFormatMagic reports a template file without the format identifier.
type ErrFormatMagic string

func (err ErrFormatMagic) Error() string {
	return f("%v: not of the correct format (%q)", ErrFormat, string(err))
}

func (err ErrFormatMagic) Is(target error) bool {
	return target == ErrFormat
}

// ErrFormatVersion reports a template file of an unsupported version.
type ErrFormatVersion int

func (err ErrFormatVersion) Error() string {
	return f("%v: version %d is outdated, expected %d", ErrFormat, int(err), VERSION)
}

func (err ErrFormatVersion) Is(target error) bool {
	return target == ErrFormat
}

// ErrForm locates a builder error in its instruction form.
type ErrForm struct {
	Form string
	Err  error
}

func (err *ErrForm) Error() string {
	return f("'%v' %v", err.Form, err.Err)
}

func (err *ErrForm) Unwrap() error {
	return err.Err
}
