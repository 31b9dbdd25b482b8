package template

import (
	"bytes"
	"io"

	"github.com/ezrec/siasm/lex"
)

// Builder assembles a template file from instruction forms.
type Builder struct {
	Records []Record // Records, in order of first appearance.

	index map[string]int // Map of mnemonics to Records indexes.
}

// Add adds an instruction form, written as `MNEMONIC [op1[,op2]]` using the
// canonical class names, with its opcode and prefix bytes.
func (bd *Builder) Add(form string, opcode, prefix int) (err error) {
	defer func() {
		if err != nil {
			err = &ErrForm{Form: form, Err: err}
		}
	}()

	mnemonic, op1, op2 := lex.SplitInstruction(form)
	if len(mnemonic) == 0 {
		return ErrFormMissing
	}

	class1 := ClassOf(op1)
	class2 := ClassOf(op2)
	if class1 == CLASS_UNKNOWN || class2 == CLASS_UNKNOWN {
		return ErrOperandInvalid
	}

	if opcode < 0 || opcode > 0xff || prefix < 0 || prefix > 0xff {
		return ErrByteRange
	}

	return bd.AddForm(mnemonic, Form{
		Operand1: class1,
		Operand2: class2,
		Opcode:   byte(opcode),
		Prefix:   byte(prefix),
	})
}

// AddForm appends a form to the record of mnemonic, creating the record if needed.
func (bd *Builder) AddForm(mnemonic string, form Form) (err error) {
	if len(mnemonic) < MNEMONIC_MIN || len(mnemonic) > MNEMONIC_MAX {
		return ErrMnemonicLength
	}
	if !form.Operand1.Valid() || !form.Operand2.Valid() {
		return ErrOperandInvalid
	}

	if bd.index == nil {
		bd.index = make(map[string]int)
		for n, rec := range bd.Records {
			bd.index[rec.Mnemonic] = n
		}
	}

	n, ok := bd.index[mnemonic]
	if !ok {
		n = len(bd.Records)
		bd.index[mnemonic] = n
		bd.Records = append(bd.Records, Record{Mnemonic: mnemonic})
	}

	bd.Records[n].Forms = append(bd.Records[n].Forms, form)

	return
}

// Bytes encodes the template.
func (bd *Builder) Bytes() (data []byte, err error) {
	if len(bd.Records) > 0xff {
		err = ErrTooManyRecords
		return
	}

	var buf bytes.Buffer
	buf.WriteString(MAGIC)
	buf.WriteByte(VERSION)
	buf.WriteByte(byte(len(bd.Records)))

	for _, rec := range bd.Records {
		if len(rec.Mnemonic) < MNEMONIC_MIN || len(rec.Mnemonic) > MNEMONIC_MAX {
			err = &ErrForm{Form: rec.Mnemonic, Err: ErrMnemonicLength}
			return
		}
		if len(rec.Forms) > 0xff {
			err = &ErrForm{Form: rec.Mnemonic, Err: ErrTooManyForms}
			return
		}

		buf.WriteByte(byte(len(rec.Mnemonic) - MNEMONIC_MIN))
		buf.WriteString(rec.Mnemonic)
		buf.WriteByte(byte(len(rec.Forms)))
		for _, form := range rec.Forms {
			buf.Write([]byte{byte(form.Operand1), byte(form.Operand2), form.Opcode, form.Prefix})
		}
	}

	data = buf.Bytes()

	return
}

// WriteTo writes the encoded template to w.
func (bd *Builder) WriteTo(w io.Writer) (n int64, err error) {
	data, err := bd.Bytes()
	if err != nil {
		return
	}

	written, err := w.Write(data)
	n = int64(written)

	return
}
