package preprocess

import (
	"errors"
	"strings"

	"github.com/ezrec/siasm/translate"
)

var f = translate.From

var (
	ErrDirectiveMalformed = errors.New(f("unknown or malformed preprocessor command"))
	ErrSelfInclude        = errors.New(f("included file cannot be source file"))
	ErrCycleDetected      = errors.New(f("include cycle"))
	ErrLabelInvalid       = errors.New(f("incorrect label format"))
)

// ErrPreprocess locates a preprocessing error in its source file.
type ErrPreprocess struct {
	File   string
	LineNo int
	Err    error
}

func (err *ErrPreprocess) Error() string {
	return f("Preprocess error, in %v at line %d -> %v", err.File, err.LineNo, err.Err)
}

func (err *ErrPreprocess) Unwrap() error {
	return err.Err
}

// ErrCycle lists the chain of files that include each other.
type ErrCycle []string

func (err ErrCycle) Error() string {
	return f("%v %v", ErrCycleDetected, strings.Join(err, " -> "))
}

func (err ErrCycle) Is(target error) bool {
	return target == ErrCycleDetected
}
