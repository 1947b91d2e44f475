package fluent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaptinlin/fluent-go/pkg/bidi"
	"github.com/kaptinlin/fluent-go/pkg/parts"
	"github.com/kaptinlin/fluent-go/pkg/value"
)

func TestAddMessagesAndFormat(t *testing.T) {
	ctx := New([]string{"en-US"})
	errs := ctx.AddMessages("hello = Hello, world!\n")
	require.Empty(t, errs)

	out, errs := ctx.Format("hello", nil)
	assert.Empty(t, errs)
	assert.Equal(t, "Hello, world!", out)
}

func TestFormatWithVariable(t *testing.T) {
	ctx := New([]string{"en-US"})
	ctx.AddMessages("greet = Hi, { $name }!\n")

	out, errs := ctx.Format("greet", map[string]interface{}{"name": value.NewString("Sam")})
	assert.Empty(t, errs)
	assert.Equal(t, "Hi, ⁨Sam⁩!", out)
}

func TestFormatWithNativeArgument(t *testing.T) {
	ctx := New([]string{"en-US"})
	ctx.AddMessages("greet = Hi, { $name }! You are { $age }.\n")

	out, errs := ctx.Format("greet", map[string]interface{}{"name": "Sam", "age": 7})
	assert.Empty(t, errs)
	assert.Equal(t, "Hi, ⁨Sam⁩! You are ⁨7⁩.", out)
}

func TestFormatWithNativeTimeArgument(t *testing.T) {
	ctx := New([]string{"en-US"})
	ctx.AddMessages("today = Today is { DATETIME($when) }\n")

	out, errs := ctx.Format("today", map[string]interface{}{"when": time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)})
	assert.Empty(t, errs)
	assert.NotEmpty(t, out)
}

func TestFormatWithUnsupportedArgumentType(t *testing.T) {
	ctx := New([]string{"en-US"})
	ctx.AddMessages("greet = Hi, { $name }!\n")

	type unsupported struct{ X int }
	_, errs := ctx.Format("greet", map[string]interface{}{"name": unsupported{X: 1}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Unsupported external type")
}

func TestFormatUnknownMessageReturnsLookupError(t *testing.T) {
	ctx := New(nil)
	_, errs := ctx.Format("missing", nil)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "missing")
}

func TestDuplicateMessageIDRejected(t *testing.T) {
	ctx := New(nil)
	errs := ctx.AddMessages("hello = Hi\nhello = Hi again\n")
	require.Len(t, errs, 1)
}

func TestHasMessageAndMessageIDs(t *testing.T) {
	ctx := New(nil)
	ctx.AddMessages("a = A\nb = B\n")
	assert.True(t, ctx.HasMessage("a"))
	assert.False(t, ctx.HasMessage("z"))
	assert.Equal(t, []string{"a", "b"}, ctx.MessageIDs())
}

func TestCheckMessagesReportsMissingReference(t *testing.T) {
	ctx := New(nil)
	ctx.AddMessages("about = About { brand }\n")
	errs := ctx.CheckMessages()
	require.NotEmpty(t, errs)
}

func TestCompileModeMatchesInterpretMode(t *testing.T) {
	src := "emails = { $count ->\n    [one] One email\n   *[other] { $count } emails\n}\n"

	interp := New([]string{"en-US"}, WithUseIsolating(false))
	interp.AddMessages(src)
	compiled := New([]string{"en-US"}, WithMode(ModeCompile), WithUseIsolating(false))
	compiled.AddMessages(src)

	args := map[string]interface{}{"count": value.NewNumber(3, false, value.NumberOptions{})}
	a, _ := interp.Format("emails", args)
	b, _ := compiled.Format("emails", args)
	assert.Equal(t, a, b)
	assert.Equal(t, "3 emails", a)
}

func TestDumpJSON(t *testing.T) {
	ctx := New(nil)
	ctx.AddMessages("hello = Hi\n")
	out, err := ctx.DumpJSON()
	require.NoError(t, err)
	assert.Contains(t, out, "hello")
}

func TestJunkReported(t *testing.T) {
	ctx := New(nil)
	errs := ctx.AddMessages("= no id here\nhello = Hi\n")
	require.Len(t, errs, 1)
	assert.True(t, ctx.HasMessage("hello"))
}

func TestDirection(t *testing.T) {
	assert.Equal(t, bidi.DirLTR, New([]string{"en-US"}).Direction())
	assert.Equal(t, bidi.DirRTL, New([]string{"he"}).Direction())
}

func TestFormatToParts(t *testing.T) {
	ctx := New([]string{"en-US"})
	ctx.AddMessages("greet = Hi, { $name }!\n")

	got, errs := ctx.FormatToParts("greet", map[string]interface{}{"name": value.NewString("Sam")})
	assert.Empty(t, errs)
	require.Len(t, got, 3)
	assert.Equal(t, parts.KindText, got[0].Kind)
	assert.Equal(t, "Hi, ", got[0].Value)
	assert.Equal(t, parts.KindString, got[1].Kind)
	assert.Contains(t, got[1].Value, "Sam")
	assert.Equal(t, parts.KindText, got[2].Kind)
	assert.Equal(t, "!", got[2].Value)
}

func TestFormatToPartsUnknownMessage(t *testing.T) {
	ctx := New(nil)
	got, errs := ctx.FormatToParts("missing", nil)
	require.Len(t, errs, 1)
	require.Len(t, got, 1)
	assert.Equal(t, parts.KindFallback, got[0].Kind)
}
