package template

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func z80Subset(t *testing.T) *Builder {
	bd := &Builder{}
	forms := []struct {
		form           string
		opcode, prefix int
	}{
		{"NOP", 0x00, 0},
		{"LD a,N", 0x3e, 0},
		{"LD a,b", 0x78, 0},
		{"LD hl,NN", 0x21, 0},
		{"LD a,(NN)", 0x3a, 0},
		{"JP NN", 0xc3, 0},
		{"JR DIS", 0x18, 0},
		{"HALT", 0x76, 0},
		{"IM 1", 0x56, 0xed},
		{"LD a,N", 0x99, 0}, // shadowed by the first LD a,N
	}
	for _, f := range forms {
		require.NoError(t, bd.Add(f.form, f.opcode, f.prefix))
	}
	return bd
}

func TestBuilder_Bytes(t *testing.T) {
	assert := assert.New(t)

	bd := &Builder{}
	assert.NoError(bd.Add("NOP", 0x00, 0))
	assert.NoError(bd.Add("LD a,N", 0x3e, 0))
	assert.NoError(bd.Add("LDIR", 0xb0, 0xed))
	assert.NoError(bd.Add("LD b,N", 0x06, 0))

	data, err := bd.Bytes()
	assert.NoError(err)

	expected := []byte{
		's', 'i', 'a', 's', 'm', VERSION, 3,
		1, 'N', 'O', 'P', 1,
		0, 0, 0x00, 0,
		0, 'L', 'D', 2,
		18, 1, 0x3e, 0,
		6, 1, 0x06, 0,
		2, 'L', 'D', 'I', 'R', 1,
		0, 0, 0xb0, 0xed,
	}
	assert.Equal(expected, data)
}

func TestBuilder_FixedNumericOperand(t *testing.T) {
	assert := assert.New(t)

	bd := &Builder{}
	assert.NoError(bd.Add("BIT 5,a", 0x6f, 0xcb))
	assert.NoError(bd.Add("RST 56", 0xff, 0))
	if assert.Len(bd.Records, 2) {
		assert.Equal(Form{Operand1: ClassOf("5"), Operand2: ClassOf("a"), Opcode: 0x6f, Prefix: 0xcb}, bd.Records[0].Forms[0])
	}
}

func TestBuilder_Errors(t *testing.T) {
	assert := assert.New(t)

	bd := &Builder{}
	assert.True(errors.Is(bd.Add("", 0, 0), ErrFormMissing))
	assert.True(errors.Is(bd.Add("X", 0, 0), ErrMnemonicLength))
	assert.True(errors.Is(bd.Add("TOOLONG", 0, 0), ErrMnemonicLength))
	assert.True(errors.Is(bd.Add("LD a,9", 0, 0), ErrOperandInvalid))
	assert.True(errors.Is(bd.Add("LD a,ix", 0, 0), ErrOperandInvalid))
	assert.True(errors.Is(bd.Add("LD a,N", 0x100, 0), ErrByteRange))
	assert.True(errors.Is(bd.Add("LD a,N", 0, -1), ErrByteRange))

	var errForm *ErrForm
	assert.True(errors.As(bd.Add("LD q,N", 0, 0), &errForm))
	assert.Equal("LD q,N", errForm.Form)

	assert.Len(bd.Records, 0)

	bd = &Builder{}
	for range 256 {
		bd.Records = append(bd.Records, Record{Mnemonic: "NOP"})
	}
	_, err := bd.Bytes()
	assert.True(errors.Is(err, ErrTooManyRecords))
}

func TestStore_Lookup(t *testing.T) {
	assert := assert.New(t)

	data, err := z80Subset(t).Bytes()
	require.NoError(t, err)

	st, err := NewStore(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(6, st.Count())

	form, ok, err := st.Lookup("NOP", CLASS_NONE, CLASS_NONE)
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(Form{Opcode: 0x00}, form)

	form, ok, err = st.Lookup("LD", ClassOf("a"), CLASS_IMMEDIATE_8)
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(byte(0x3e), form.Opcode)

	form, ok, err = st.Lookup("ld", ClassOf("a"), ClassOf("b"))
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(byte(0x78), form.Opcode)

	form, ok, err = st.Lookup("IM", ClassOf("1"), CLASS_NONE)
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(Form{Operand1: ClassOf("1"), Opcode: 0x56, Prefix: 0xed}, form)

	_, ok, err = st.Lookup("HALT", CLASS_IMMEDIATE_8, CLASS_NONE)
	assert.NoError(err)
	assert.False(ok)

	_, ok, err = st.Lookup("XOR", CLASS_NONE, CLASS_NONE)
	assert.NoError(err)
	assert.False(ok)

	_, ok, err = st.Lookup("LD", CLASS_UNKNOWN, CLASS_IMMEDIATE_8)
	assert.NoError(err)
	assert.False(ok)
}

func TestStore_Records(t *testing.T) {
	assert := assert.New(t)

	bd := z80Subset(t)
	data, err := bd.Bytes()
	require.NoError(t, err)

	st, err := NewStore(bytes.NewReader(data))
	require.NoError(t, err)

	var records []Record
	for rec, err := range st.Records() {
		assert.NoError(err)
		records = append(records, rec)
	}
	assert.Equal(bd.Records, records)
}

func TestStore_Format(t *testing.T) {
	assert := assert.New(t)

	_, err := NewStore(bytes.NewReader([]byte("SIASM\x00\x00")))
	assert.True(errors.Is(err, ErrFormat))
	var errMagic ErrFormatMagic
	assert.True(errors.As(err, &errMagic))

	_, err = NewStore(bytes.NewReader(nil))
	assert.True(errors.Is(err, ErrFormat))

	_, err = NewStore(bytes.NewReader([]byte("siasm\x01\x00")))
	assert.True(errors.Is(err, ErrFormat))
	var errVersion ErrFormatVersion
	assert.True(errors.As(err, &errVersion))
	assert.Equal(ErrFormatVersion(1), errVersion)

	_, err = NewStore(bytes.NewReader([]byte("siasm\x00")))
	assert.True(errors.Is(err, ErrCorrupt))

	st, err := NewStore(bytes.NewReader([]byte("siasm\x00\x00")))
	assert.NoError(err)
	assert.Equal(0, st.Count())
}

func TestStore_Corrupt(t *testing.T) {
	assert := assert.New(t)

	data, err := z80Subset(t).Bytes()
	require.NoError(t, err)

	st, err := NewStore(bytes.NewReader(data[:len(data)-2]))
	require.NoError(t, err)

	// Early records are still found.
	_, ok, err := st.Lookup("NOP", CLASS_NONE, CLASS_NONE)
	assert.NoError(err)
	assert.True(ok)

	_, _, err = st.Lookup("IM", ClassOf("1"), CLASS_NONE)
	assert.True(errors.Is(err, ErrCorrupt))

	count := 0
	for _, err := range st.Records() {
		if err != nil {
			assert.True(errors.Is(err, ErrCorrupt))
			break
		}
		count++
	}
	assert.Equal(5, count)
}

func TestOpen(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	name := filepath.Join(dir, "z80.tpl")

	ouf, err := os.Create(name)
	require.NoError(t, err)
	_, err = z80Subset(t).WriteTo(ouf)
	require.NoError(t, err)
	require.NoError(t, ouf.Close())

	st, err := Open(name)
	require.NoError(t, err)
	defer st.Close()

	form, ok, err := st.Lookup("JR", CLASS_DISPLACEMENT, CLASS_NONE)
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(byte(0x18), form.Opcode)

	bad := filepath.Join(dir, "bad.tpl")
	require.NoError(t, os.WriteFile(bad, []byte("notatemplate"), 0o644))
	st2, err := Open(bad)
	assert.Nil(st2)
	assert.True(errors.Is(err, ErrFormat))

	_, err = Open(filepath.Join(dir, "missing.tpl"))
	assert.True(errors.Is(err, os.ErrNotExist))
}
