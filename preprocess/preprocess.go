// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package preprocess flattens SIASM source files.
//
// The preprocessor expands `#inject <file>` directives depth first, strips
// `//` comments and collects `.label` declarations into a label table. The
// result is a single instruction stream, one instruction per line, whose
// line numbers the labels refer to.
package preprocess

import (
	"bufio"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ezrec/siasm/label"
	"github.com/ezrec/siasm/lex"
)

const (
	commentMarker = "//"
	injectPrefix  = "#inject <"
	injectSuffix  = ">"
)

// Preprocessor expands source files.
type Preprocessor struct {
	Verbose bool // If set, verbosely logs each line read.
}

// Result is a flattened instruction stream.
type Result struct {
	Filename string       // Source file the stream was expanded from.
	Text     string       // Flattened instructions, each terminated by '\n'.
	Labels   *label.Table // Labels, numbered by line of Text.
	Lines    int          // Output line counter, one past the last line of Text.
	Errors   []error      // All preprocessing errors, in the order found.
}

// Failed returns true if any preprocessing error was found.
func (res *Result) Failed() bool {
	return len(res.Errors) > 0
}

// WriteFile writes the flattened instruction stream to a file.
func (res *Result) WriteFile(name string) (err error) {
	return os.WriteFile(name, []byte(res.Text), 0o644)
}

func (res *Result) errorf(lineno int, err error) {
	res.Errors = append(res.Errors, &ErrPreprocess{File: res.Filename, LineNo: lineno, Err: err})
}

// File preprocesses a file with the default settings.
func File(name string) (res *Result, err error) {
	pp := &Preprocessor{}
	return pp.File(name)
}

// File preprocesses the named file. Only an unreadable file is returned as
// an error; every other problem is collected in Result.Errors.
func (pp *Preprocessor) File(name string) (res *Result, err error) {
	return pp.expand(name, nil)
}

// expand preprocesses one file, with stack holding the canonical paths
// of the files currently being expanded.
func (pp *Preprocessor) expand(name string, stack []string) (res *Result, err error) {
	canonical, err := filepath.Abs(name)
	if err != nil {
		return
	}

	inf, err := os.Open(name)
	if err != nil {
		return
	}
	defer inf.Close()

	stack = append(stack, canonical)

	res = &Result{
		Filename: name,
		Labels:   &label.Table{},
		Lines:    1,
	}

	var out strings.Builder
	var lineno int

	scanner := bufio.NewScanner(inf)
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())

		if pp.Verbose {
			log.Printf("%v:%v: %v\n", name, lineno, line)
		}

		line = stripComment(line)
		if len(line) == 0 {
			continue
		}

		switch line[0] {
		case '#':
			pp.inject(res, &out, line, lineno, stack)
		case '.':
			res.declare(line[1:], lineno)
		default:
			out.WriteString(line)
			out.WriteByte('\n')
			res.Lines++
		}
	}

	err = scanner.Err()
	if err != nil {
		res = nil
		return
	}

	res.Text = out.String()

	return
}

// stripComment removes a trailing comment from a trimmed line.
func stripComment(line string) string {
	before, _, _ := strings.Cut(line, commentMarker)
	return strings.TrimSpace(before)
}

// declare records a label bound to the next emitted line.
func (res *Result) declare(name string, lineno int) {
	if !lex.IsIdentifier(name) {
		res.errorf(lineno, &label.ErrName{Name: name, Err: ErrLabelInvalid})
		return
	}

	_, err := res.Labels.Add(name, res.Lines)
	if err != nil {
		res.errorf(lineno, err)
	}
}

// inject expands an `#inject <file>` directive into out.
func (pp *Preprocessor) inject(res *Result, out *strings.Builder, line string, lineno int, stack []string) {
	if len(line) < len(injectPrefix)+len(injectSuffix)+1 ||
		!strings.HasPrefix(line, injectPrefix) ||
		!strings.HasSuffix(line, injectSuffix) {
		res.errorf(lineno, ErrDirectiveMalformed)
		return
	}

	target := strings.TrimSuffix(strings.TrimPrefix(line, injectPrefix), injectSuffix)
	target = locate(res.Filename, strings.TrimSpace(target))

	canonical, err := filepath.Abs(target)
	if err != nil {
		res.errorf(lineno, err)
		return
	}

	if canonical == stack[len(stack)-1] {
		res.errorf(lineno, ErrSelfInclude)
		return
	}

	if slices.Contains(stack, canonical) {
		res.errorf(lineno, ErrCycle(append(slices.Clone(stack), canonical)))
		return
	}

	child, err := pp.expand(target, stack)
	if err != nil {
		res.errorf(lineno, err)
		return
	}

	res.Errors = append(res.Errors, child.Errors...)

	// Child lines are numbered from one; renumber into our stream.
	child.Labels.Shift(res.Lines - 1)
	out.WriteString(child.Text)
	res.Lines += child.Lines - 1

	for _, err := range res.Labels.Append(child.Labels) {
		res.errorf(lineno, err)
	}
}

// locate resolves an injected path relative to the directory of the
// injecting file, falling back to the working directory.
func locate(from string, target string) string {
	if filepath.IsAbs(target) {
		return target
	}

	relative := filepath.Join(filepath.Dir(from), target)
	_, err := os.Stat(relative)
	if err == nil {
		return relative
	}

	return target
}
