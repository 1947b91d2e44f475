package value

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoneRender(t *testing.T) {
	assert.Equal(t, "foo", NewNone("foo").Render())
	assert.Equal(t, "???", NewNone("").Render())
}

func TestStringValue(t *testing.T) {
	s := NewString("hello")
	assert.Equal(t, "hello", s.Text)
}

func TestNumberNative(t *testing.T) {
	n := NewNumber(5, false, NumberOptions{})
	assert.Equal(t, float64(5), n.Native())
}

func TestDateValue(t *testing.T) {
	now := time.Now()
	d := NewDate(now, DateOptions{DateStyle: "medium"})
	assert.Equal(t, now, d.Time)
}

func TestEscapedValue(t *testing.T) {
	e := NewEscaped("<b>x</b>")
	assert.Equal(t, "<b>x</b>", e.Inner)
}

func TestSanitizeArgumentNative(t *testing.T) {
	s, ok := SanitizeArgument("hi")
	assert.True(t, ok)
	assert.Equal(t, NewString("hi"), s)

	n, ok := SanitizeArgument(5)
	assert.True(t, ok)
	assert.Equal(t, NewNumber(5, false, NumberOptions{}), n)

	f, ok := SanitizeArgument(5.5)
	assert.True(t, ok)
	assert.Equal(t, NewNumber(5.5, true, NumberOptions{}), f)

	now := time.Now()
	d, ok := SanitizeArgument(now)
	assert.True(t, ok)
	assert.Equal(t, NewDate(now, DateOptions{}), d)
}

func TestSanitizeArgumentPassthrough(t *testing.T) {
	want := NewNumber(3, false, NumberOptions{Style: "currency", Currency: "USD"})
	got, ok := SanitizeArgument(want)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestSanitizeArgumentUnsupported(t *testing.T) {
	_, ok := SanitizeArgument(struct{ X int }{X: 1})
	assert.False(t, ok)
}
