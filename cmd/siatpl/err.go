package main

import (
	"errors"

	"github.com/ezrec/siasm/translate"
)

var f = translate.From

var (
	ErrArguments      = errors.New(f("expected a single input file"))
	ErrDefinitionType = errors.New(f("definition must be a .star, .yaml or .yml file"))
)
