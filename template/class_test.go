package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassOf(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(CLASS_NONE, ClassOf(""))
	assert.Equal(CLASS_IMMEDIATE_8, ClassOf("N"))
	assert.Equal(CLASS_IMMEDIATE_16, ClassOf("NN"))
	assert.Equal(CLASS_POINTER_16, ClassOf("(NN)"))
	assert.Equal(CLASS_DISPLACEMENT, ClassOf("DIS"))
	assert.Equal(Class(18), ClassOf("a"))
	assert.Equal(Class(18), ClassOf("A"))
	assert.Equal(Class(17), ClassOf("(HL)"))
	assert.Equal(Class(20), ClassOf("af'"))
	assert.Equal(Class(47), ClassOf("56"))
	assert.Equal(Class(38), ClassOf("5"))
	assert.Equal(CLASS_UNKNOWN, ClassOf("9"))
	assert.Equal(CLASS_UNKNOWN, ClassOf("300"))
	assert.Equal(CLASS_UNKNOWN, ClassOf("loop"))
	assert.Equal(CLASS_UNKNOWN, ClassOf("(ix+5)"))
}

func TestClass_String(t *testing.T) {
	assert := assert.New(t)

	for n := range int(CLASS_COUNT) {
		class := Class(n)
		assert.True(class.Valid())
		assert.Equal(class, ClassOf(class.String()))
	}

	assert.False(CLASS_UNKNOWN.Valid())
	assert.Equal("?", CLASS_UNKNOWN.String())
}

func TestClass_Placeholder(t *testing.T) {
	assert := assert.New(t)

	assert.False(CLASS_NONE.Placeholder())
	assert.True(CLASS_IMMEDIATE_8.Placeholder())
	assert.True(CLASS_IMMEDIATE_16.Placeholder())
	assert.True(CLASS_POINTER_16.Placeholder())
	assert.True(CLASS_DISPLACEMENT.Placeholder())
	assert.False(ClassOf("a").Placeholder())
}
