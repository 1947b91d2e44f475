package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceError(t *testing.T) {
	err := NewReferenceError("Unknown message: %s", "foo")
	assert.Equal(t, "Unknown message: foo", err.Error())
	assert.Equal(t, KindReference, err.Kind())
}

func TestCyclicReferenceError(t *testing.T) {
	err := NewCyclicReferenceError("Cyclic reference")
	assert.Equal(t, KindCyclicReference, err.Kind())
}

func TestDuplicateMessageIDError(t *testing.T) {
	err := NewDuplicateMessageIDError("foo")
	assert.Equal(t, KindDuplicateMessageID, err.Kind())
	assert.Contains(t, err.Error(), "foo")
}

func TestTypeErrorIsMatching(t *testing.T) {
	err1 := NewTypeError("bad thing")
	err2 := NewTypeError("other bad thing")
	assert.True(t, errors.Is(err1, err2))

	var ref *FluentError = err1.FluentError
	var val *FluentError = NewValueError("too many parts").FluentError
	assert.False(t, errors.Is(ref, val))
}

func TestLookupError(t *testing.T) {
	err := NewLookupError("missing-id")
	assert.Contains(t, err.Error(), "missing-id")
}
