package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnce_Unset(t *testing.T) {
	var o once[int]

	v, ok := o.Get()
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.Nil(t, o.ptr())
}

func TestOnce_Ptr(t *testing.T) {
	o := once[int]{value: 7, set: true}

	p := o.ptr()
	if assert.NotNil(t, p) {
		assert.Equal(t, 7, *p)
	}

	*p = 8
	v, _ := o.Get()
	assert.Equal(t, 7, v)
}

func TestDuplicateOptionError(t *testing.T) {
	err := &DuplicateOptionError{Option: "--input"}

	assert.EqualError(t, err, "--input argument may not be specified more than once")
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "a=b", tokenString("a=b"))
	assert.Equal(t, "42", tokenString(uint64(42)))
	assert.Equal(t, "true", tokenString(true))
}
