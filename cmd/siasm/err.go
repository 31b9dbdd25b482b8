package main

import (
	"errors"
	"strings"

	"github.com/ezrec/siasm/translate"
)

var f = translate.From

var (
	ErrArguments = errors.New(f("expected a single source file"))
	ErrTerminal  = errors.New(f("refusing to write binary output to a terminal"))

	// ErrFailed is returned once the diagnostics of a failed run are printed.
	ErrFailed = errors.New(f("assembly failed"))
)

// ErrConfig reports keys of a configuration file that are not understood.
type ErrConfig struct {
	File string
	Keys []string
}

func (err *ErrConfig) Error() string {
	return f("%v: unknown configuration keys: %v", err.File, strings.Join(err.Keys, ", "))
}
