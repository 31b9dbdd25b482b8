package template

import (
	"errors"
	"io"
	"log"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"gopkg.in/yaml.v3"
)

// LoadScript runs a Starlark template definition.
//
// The script declares forms by calling `op(form, code, prefix=0)`, for
// example `op("LD a,N", 0x3e)`. Top level loops and reassignment are
// permitted, so families of forms can be generated:
//
//	for n, reg in enumerate(["b", "c", "d", "e", "h", "l", "(hl)", "a"]):
//	    op("INC " + reg, 0x04 + 8*n)
//
// src is as for starlark.ExecFileOptions; if nil, filename is read.
func LoadScript(filename string, src any) (bd *Builder, err error) {
	bd = &Builder{}

	op := func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var form string
		var code, prefix int
		err := starlark.UnpackArgs(fn.Name(), args, kwargs, "form", &form, "code", &code, "prefix?", &prefix)
		if err != nil {
			return nil, err
		}

		err = bd.Add(form, code, prefix)
		if err != nil {
			return nil, err
		}

		return starlark.None, nil
	}

	predeclared := starlark.StringDict{
		"op":      starlark.NewBuiltin("op", op),
		"VERSION": starlark.MakeInt(VERSION),
	}

	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("%v: %v", filename, msg)
		},
	}
	opts := syntax.FileOptions{TopLevelControl: true, GlobalReassign: true}

	_, err = starlark.ExecFileOptions(&opts, thread, filename, src, predeclared)
	if err != nil {
		bd = nil
		return
	}

	return
}

// Definition is the YAML form of a template definition.
type Definition struct {
	Forms []DefinitionForm `yaml:"forms"`
}

// DefinitionForm is a single instruction form of a Definition.
type DefinitionForm struct {
	Form   string `yaml:"form"`
	Code   int    `yaml:"code"`
	Prefix int    `yaml:"prefix,omitempty"`
}

// LoadYAML reads a YAML template definition.
//
//	forms:
//	  - { form: "NOP", code: 0x00 }
//	  - { form: "LD a,N", code: 0x3e }
//	  - { form: "IM 1", code: 0x56, prefix: 0xed }
func LoadYAML(r io.Reader) (bd *Builder, err error) {
	var def Definition

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err = dec.Decode(&def)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		return
	}

	bd = &Builder{}
	for _, form := range def.Forms {
		err = bd.Add(form.Form, form.Code, form.Prefix)
		if err != nil {
			bd = nil
			return
		}
	}

	return
}
