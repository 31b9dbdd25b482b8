// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package template

import (
	"bytes"
	"errors"
	"io"
	"iter"
	"os"
	"strings"
)

const (
	MAGIC   = "siasm" // File format identifier.
	VERSION = 0       // Supported file format version.

	HEADER_SIZE = len(MAGIC) + 2 // Magic, version and record count.
	FORM_SIZE   = 4              // Bytes per operand form entry.

	MNEMONIC_MIN = 2 // Shortest encodable mnemonic.
	MNEMONIC_MAX = 5 // Longest encodable mnemonic.
)

// Form is one legal operand combination of a mnemonic.
type Form struct {
	Operand1 Class // Class of the first operand, CLASS_NONE if absent.
	Operand2 Class // Class of the second operand, CLASS_NONE if absent.
	Opcode   byte  // Opcode byte.
	Prefix   byte  // Prefix byte, emitted before the opcode if non-zero.
}

// Record is the set of forms of a single mnemonic.
type Record struct {
	Mnemonic string
	Forms    []Form
}

// Store is a read-only opcode template.
//
// Every lookup scans the template from the first record, so the backing
// reader must stay valid until the Store is closed.
type Store struct {
	r      io.ReaderAt
	closer io.Closer
	count  int
}

// Open opens and validates a template file.
func Open(name string) (st *Store, err error) {
	inf, err := os.Open(name)
	if err != nil {
		return
	}

	st, err = NewStore(inf)
	if err != nil {
		inf.Close()
		st = nil
		return
	}

	st.closer = inf

	return
}

// NewStore validates the template header read from r.
func NewStore(r io.ReaderAt) (st *Store, err error) {
	header := make([]byte, HEADER_SIZE)
	n, err := r.ReadAt(header, 0)
	if n < len(MAGIC) || !bytes.Equal(header[:len(MAGIC)], []byte(MAGIC)) {
		err = ErrFormatMagic(header[:n])
		return
	}
	if n < HEADER_SIZE {
		err = ErrCorrupt
		return
	}
	err = nil

	version := int(header[len(MAGIC)])
	if version != VERSION {
		err = ErrFormatVersion(version)
		return
	}

	st = &Store{
		r:     r,
		count: int(header[len(MAGIC)+1]),
	}

	return
}

// Close releases the template file.
func (st *Store) Close() (err error) {
	if st.closer != nil {
		err = st.closer.Close()
		st.closer = nil
	}
	return
}

// Count returns the number of records in the template.
func (st *Store) Count() int {
	return st.count
}

// cursor reads records sequentially from a store.
type cursor struct {
	r      io.ReaderAt
	offset int64
}

func (cr *cursor) read(size int) (data []byte, err error) {
	data = make([]byte, size)
	n, err := cr.r.ReadAt(data, cr.offset)
	cr.offset += int64(n)
	if n == size {
		err = nil
	} else if err == nil || errors.Is(err, io.EOF) {
		err = ErrCorrupt
	}
	return
}

// header reads the mnemonic and form count of the next record.
func (cr *cursor) header() (mnemonic string, forms int, err error) {
	control, err := cr.read(1)
	if err != nil {
		return
	}

	length := int(control[0]&0x3) + MNEMONIC_MIN
	name, err := cr.read(length + 1)
	if err != nil {
		return
	}

	mnemonic = string(name[:length])
	forms = int(name[length])

	return
}

// forms decodes count form entries.
func (cr *cursor) forms(count int) (forms []Form, err error) {
	data, err := cr.read(count * FORM_SIZE)
	if err != nil {
		return
	}

	forms = make([]Form, count)
	for n := range forms {
		entry := data[n*FORM_SIZE : (n+1)*FORM_SIZE]
		forms[n] = Form{
			Operand1: Class(entry[0]),
			Operand2: Class(entry[1]),
			Opcode:   entry[2],
			Prefix:   entry[3],
		}
	}

	return
}

func (cr *cursor) skip(count int) {
	cr.offset += int64(count * FORM_SIZE)
}

// Lookup returns the first form of mnemonic, in template order, whose
// operand classes match.
func (st *Store) Lookup(mnemonic string, operand1, operand2 Class) (form Form, ok bool, err error) {
	cr := &cursor{r: st.r, offset: int64(HEADER_SIZE)}

	for range st.count {
		var name string
		var count int
		name, count, err = cr.header()
		if err != nil {
			return
		}

		if !strings.EqualFold(name, mnemonic) {
			cr.skip(count)
			continue
		}

		for range count {
			var forms []Form
			forms, err = cr.forms(1)
			if err != nil {
				return
			}
			if forms[0].Operand1 == operand1 && forms[0].Operand2 == operand2 {
				form = forms[0]
				ok = true
				return
			}
		}
	}

	return
}

// Records iterates over every record of the template, in file order.
// Iteration stops after the first error.
func (st *Store) Records() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		cr := &cursor{r: st.r, offset: int64(HEADER_SIZE)}
		for range st.count {
			name, count, err := cr.header()
			if err != nil {
				yield(Record{}, err)
				return
			}

			forms, err := cr.forms(count)
			if err != nil {
				yield(Record{}, err)
				return
			}

			if !yield(Record{Mnemonic: name, Forms: forms}, nil) {
				return
			}
		}
	}
}
