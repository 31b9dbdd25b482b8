// Package label implements the label table shared by the preprocessor and the assembler.
//
// The preprocessor records each label with the line of the flattened
// instruction stream it precedes; the assembler later binds each label to the
// byte address of that line.
package label

import (
	"errors"
	"iter"
	"slices"

	"github.com/ezrec/siasm/translate"
)

var f = translate.From

var (
	ErrDuplicate = errors.New(f("duplicate label"))
)

// Label is a named position in the flattened instruction stream.
type Label struct {
	Name     string // Label identifier, without the leading '.'.
	Line     int    // 1-based line of the flattened stream the label precedes.
	Address  int    // Bound address, valid once Resolved is set.
	Resolved bool   // Set when the assembler reaches Line.
}

// Table is an append-only, declaration ordered list of labels.
type Table struct {
	Labels []*Label
}

// Len returns the number of labels, duplicates included.
func (tab *Table) Len() int {
	if tab == nil {
		return 0
	}
	return len(tab.Labels)
}

// Add records a new label. A name already in use yields an ErrName wrapping
// ErrDuplicate, but the label is recorded regardless.
func (tab *Table) Add(name string, line int) (lb *Label, err error) {
	if tab.Has(name) {
		err = &ErrName{Name: name, Err: ErrDuplicate}
	}

	lb = &Label{Name: name, Line: line}
	tab.Labels = append(tab.Labels, lb)

	return
}

// Lookup returns the first label declared with name, or nil.
func (tab *Table) Lookup(name string) *Label {
	if tab == nil {
		return nil
	}

	for _, lb := range tab.Labels {
		if lb.Name == name {
			return lb
		}
	}

	return nil
}

// Has returns true if name is a declared label.
func (tab *Table) Has(name string) bool {
	return tab.Lookup(name) != nil
}

// Shift moves every label delta lines further down the stream.
func (tab *Table) Shift(delta int) {
	for _, lb := range tab.Labels {
		lb.Line += delta
	}
}

// Append adds all the labels of other to the end of the table, with an
// error for each label whose name was in use before the append. Duplicates
// within other are its own to report.
func (tab *Table) Append(other *Table) (errs []error) {
	if other == nil {
		return
	}

	prior := &Table{Labels: tab.Labels[:len(tab.Labels):len(tab.Labels)]}
	for _, lb := range other.Labels {
		if prior.Has(lb.Name) {
			errs = append(errs, &ErrName{Name: lb.Name, Err: ErrDuplicate})
		}
	}

	tab.Labels = append(tab.Labels, other.Labels...)

	return
}

// Pending returns the unresolved labels ordered by line.
// Labels sharing a line keep their declaration order.
func (tab *Table) Pending() (pending []*Label) {
	if tab == nil {
		return
	}

	for _, lb := range tab.Labels {
		if !lb.Resolved {
			pending = append(pending, lb)
		}
	}

	slices.SortStableFunc(pending, func(a, b *Label) int {
		return a.Line - b.Line
	})

	return
}

// Reset clears every bound address.
func (tab *Table) Reset() {
	for _, lb := range tab.All() {
		lb.Address = 0
		lb.Resolved = false
	}
}

// All iterates over the labels in declaration order.
func (tab *Table) All() iter.Seq2[int, *Label] {
	return func(yield func(int, *Label) bool) {
		if tab == nil {
			return
		}
		for n, lb := range tab.Labels {
			if !yield(n, lb) {
				return
			}
		}
	}
}

// ErrName associates a label name with an error.
type ErrName struct {
	Name string
	Err  error
}

func (err *ErrName) Error() string {
	return f("%v '%v'", err.Err, err.Name)
}

func (err *ErrName) Unwrap() error {
	return err.Err
}
