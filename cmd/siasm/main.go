// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command siasm assembles a SIASM source file against an opcode template.
//
// The source is first flattened into `<file>.combined`, which is then
// assembled. On success the assembled bytes are printed in decimal, one per
// line, followed by the label table.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/ezrec/siasm/asm"
	"github.com/ezrec/siasm/label"
	"github.com/ezrec/siasm/preprocess"
	"github.com/ezrec/siasm/template"
	"github.com/ezrec/siasm/translate"
)

func main() {
	log.SetFlags(0)

	err := run(os.Args[1:], os.Stdout)
	if errors.Is(err, ErrFailed) || errors.Is(err, flag.ErrHelp) {
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}

func run(args []string, stdout io.Writer) (err error) {
	var opt Config
	var config string

	fs := flag.NewFlagSet("siasm", flag.ContinueOnError)
	fs.StringVar(&opt.Template, "t", DEFAULT_TEMPLATE, "Opcode template file")
	fs.StringVar(&config, "c", "", "TOML project file (default "+DEFAULT_CONFIG+", if present)")
	fs.StringVar(&opt.Output, "o", "", "Binary output file, '-' for stdout")
	fs.IntVar(&opt.Origin, "org", 0, "Address of the first assembled byte")
	fs.BoolVar(&opt.Listing, "l", false, "Print a listing")
	fs.BoolVar(&opt.NoLink, "nolink", false, "Leave label operands as zero placeholders")
	fs.BoolVar(&opt.Verbose, "v", false, "Verbose mode")

	err = fs.Parse(args)
	if err != nil {
		return
	}

	if fs.NArg() != 1 {
		return ErrArguments
	}
	input := fs.Arg(0)

	if len(config) == 0 {
		if _, serr := os.Stat(DEFAULT_CONFIG); serr == nil {
			config = DEFAULT_CONFIG
		}
	}
	if len(config) != 0 {
		var cfg Config
		cfg, err = LoadConfig(config)
		if err != nil {
			return
		}
		cfg.Apply(&opt, fs)
	}

	pp := &preprocess.Preprocessor{Verbose: opt.Verbose}
	res, err := pp.File(input)
	if err != nil {
		return
	}

	combined := input + ".combined"
	err = res.WriteFile(combined)
	if err != nil {
		return
	}

	if opt.Verbose {
		log.Printf("%v: %d line(s), %d label(s)", combined, res.Lines-1, res.Labels.Len())
	}

	if res.Failed() {
		return failure(stdout, res.Errors)
	}

	st, err := template.Open(opt.Template)
	if err != nil {
		return
	}
	defer st.Close()

	inf, err := os.Open(combined)
	if err != nil {
		return
	}
	defer inf.Close()

	assembler := &asm.Assembler{
		Verbose:  opt.Verbose,
		Template: st,
		Labels:   res.Labels,
		Origin:   opt.Origin,
		NoLink:   opt.NoLink,
	}

	prog, err := assembler.Assemble(inf, combined)
	var errs asm.ErrAssembly
	if errors.As(err, &errs) {
		return failure(stdout, errs)
	}
	if err != nil {
		return
	}

	if opt.Output == "-" {
		return writeBinary(stdout, prog.Binary())
	}

	err = report(stdout, prog, res.Labels)
	if err != nil {
		return
	}

	if opt.Listing {
		fmt.Fprintln(stdout)
		err = prog.WriteListing(stdout)
		if err != nil {
			return
		}
	}

	if len(opt.Output) != 0 {
		err = os.WriteFile(opt.Output, prog.Binary(), 0o644)
	}

	return
}

// failure prints each error, then the error count.
func failure(w io.Writer, errs []error) (err error) {
	for _, e := range errs {
		fmt.Fprintln(w, e)
	}
	translate.Fprintln(w, "Could not go further due to %d error(s).", len(errs))

	return ErrFailed
}

// report prints the assembled bytes in decimal, then the label table.
func report(w io.Writer, prog *asm.Program, labels *label.Table) (err error) {
	for _, b := range prog.Binary() {
		_, err = fmt.Fprintln(w, b)
		if err != nil {
			return
		}
	}

	translate.Fprintln(w, "SUCCESS")
	fmt.Fprintln(w)
	translate.Fprintln(w, "Displaying label table:")
	for _, lb := range labels.All() {
		_, err = fmt.Fprintf(w, "%v, %v, %v\n", lb.Name, lb.Line, lb.Address)
		if err != nil {
			return
		}
	}

	return
}

// writeBinary writes the raw program bytes, unless w is a terminal.
func writeBinary(w io.Writer, data []byte) (err error) {
	if fd, ok := w.(interface{ Fd() uintptr }); ok && term.IsTerminal(int(fd.Fd())) {
		return ErrTerminal
	}

	_, err = w.Write(data)

	return
}
