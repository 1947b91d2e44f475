package parts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartKinds(t *testing.T) {
	text := Part{Kind: KindText, Value: "Hello, "}
	name := Part{Kind: KindString, Value: "Sam"}
	assert.Equal(t, KindText, text.Kind)
	assert.Equal(t, "Hello, ", text.Value)
	assert.Equal(t, KindString, name.Kind)
	assert.Equal(t, "Sam", name.Value)
}
