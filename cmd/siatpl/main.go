// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command siatpl builds SIASM opcode templates from instruction form
// definitions, and dumps existing templates.
//
// Definitions are either Starlark scripts (.star) calling
// `op(form, code, prefix=0)`, or YAML files (.yaml, .yml) listing forms.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ezrec/siasm/template"
)

func main() {
	log.SetFlags(0)

	err := run(os.Args[1:], os.Stdout)
	if err == flag.ErrHelp {
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}

func run(args []string, stdout io.Writer) (err error) {
	var output string
	var dump bool
	var verbose bool

	fs := flag.NewFlagSet("siatpl", flag.ContinueOnError)
	fs.StringVar(&output, "o", "", "Template output file (default: input with a .tpl extension)")
	fs.BoolVar(&dump, "d", false, "Dump a template file")
	fs.BoolVar(&verbose, "v", false, "Verbose mode")

	err = fs.Parse(args)
	if err != nil {
		return
	}

	if fs.NArg() != 1 {
		return ErrArguments
	}
	input := fs.Arg(0)

	if dump {
		return dumpTemplate(stdout, input)
	}

	if len(output) == 0 {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".tpl"
	}

	bd, err := load(input)
	if err != nil {
		return
	}

	if verbose {
		log.Printf("%v: %d mnemonic(s)", input, len(bd.Records))
	}

	data, err := bd.Bytes()
	if err != nil {
		return
	}

	return os.WriteFile(output, data, 0o644)
}

// load reads a definition file, by extension.
func load(name string) (bd *template.Builder, err error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".star":
		return template.LoadScript(name, nil)
	case ".yaml", ".yml":
		var inf *os.File
		inf, err = os.Open(name)
		if err != nil {
			return
		}
		defer inf.Close()
		return template.LoadYAML(inf)
	}

	err = ErrDefinitionType

	return
}

// dumpTemplate prints every form of a template, one per line, as
// `MNEMONIC op1,op2 = [prefix] opcode`.
func dumpTemplate(w io.Writer, name string) (err error) {
	st, err := template.Open(name)
	if err != nil {
		return
	}
	defer st.Close()

	for rec, rerr := range st.Records() {
		if rerr != nil {
			return rerr
		}
		for _, form := range rec.Forms {
			_, err = fmt.Fprintln(w, formString(rec.Mnemonic, form))
			if err != nil {
				return
			}
		}
	}

	return
}

func formString(mnemonic string, form template.Form) (text string) {
	text = mnemonic
	if form.Operand1 != template.CLASS_NONE {
		text += " " + form.Operand1.String()
		if form.Operand2 != template.CLASS_NONE {
			text += "," + form.Operand2.String()
		}
	}

	text += " ="
	if form.Prefix != 0 {
		text += fmt.Sprintf(" 0x%02x", form.Prefix)
	}
	text += fmt.Sprintf(" 0x%02x", form.Opcode)

	return
}
