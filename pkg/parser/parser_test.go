package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaptinlin/fluent-go/pkg/ast"
)

func TestParseSimpleMessage(t *testing.T) {
	res := Parse("hello = Hello, world!\n")
	require.Len(t, res.Body, 1)
	msg, ok := res.Body[0].(*ast.Message)
	require.True(t, ok)
	assert.Equal(t, "hello", msg.ID)
	require.Len(t, msg.Value.Elements, 1)
	text, ok := msg.Value.Elements[0].(*ast.TextElement)
	require.True(t, ok)
	assert.Equal(t, "Hello, world!", text.Value)
}

func TestParseMessageWithPlaceable(t *testing.T) {
	res := Parse("greet = Hello, { $name }!\n")
	msg := res.Body[0].(*ast.Message)
	require.Len(t, msg.Value.Elements, 3)
	ph, ok := msg.Value.Elements[1].(*ast.Placeable)
	require.True(t, ok)
	varRef, ok := ph.Expression.(*ast.VariableReference)
	require.True(t, ok)
	assert.Equal(t, "name", varRef.Name)
}

func TestParseTermAndReference(t *testing.T) {
	res := Parse("-brand = Firefox\nabout = About { -brand }\n")
	require.Len(t, res.Body, 2)
	term, ok := res.Body[0].(*ast.Term)
	require.True(t, ok)
	assert.Equal(t, "-brand", term.ID)

	msg := res.Body[1].(*ast.Message)
	ph := msg.Value.Elements[1].(*ast.Placeable)
	termRef, ok := ph.Expression.(*ast.TermReference)
	require.True(t, ok)
	assert.Equal(t, "-brand", termRef.ID)
}

func TestParseAttribute(t *testing.T) {
	res := Parse("login-input = Placeholder\n    .placeholder = name@example.com\n")
	msg := res.Body[0].(*ast.Message)
	require.Len(t, msg.Attributes, 1)
	assert.Equal(t, "placeholder", msg.Attributes[0].ID)
}

func TestParseSelectExpression(t *testing.T) {
	res := Parse("emails = { $count ->\n    [one] One new email\n   *[other] { $count } new emails\n}\n")
	msg := res.Body[0].(*ast.Message)
	ph := msg.Value.Elements[0].(*ast.Placeable)
	sel, ok := ph.Expression.(*ast.SelectExpression)
	require.True(t, ok)
	require.Len(t, sel.Variants, 2)
	assert.Equal(t, "one", sel.Variants[0].Key.(*ast.VariantName).Name)
	assert.True(t, sel.Variants[1].Default)
}

func TestParseCallExpression(t *testing.T) {
	res := Parse("amount = { NUMBER($n, minimumFractionDigits: 2) }\n")
	msg := res.Body[0].(*ast.Message)
	ph := msg.Value.Elements[0].(*ast.Placeable)
	call, ok := ph.Expression.(*ast.CallExpression)
	require.True(t, ok)
	assert.Equal(t, "NUMBER", call.Callee)
	require.Len(t, call.Positional, 1)
	require.Len(t, call.Named, 1)
	assert.Equal(t, "minimumFractionDigits", call.Named[0].Name)
}

func TestParseStringAndNumberLiteral(t *testing.T) {
	res := Parse(`lit = { "a \"quoted\" string" } { 3.5 }` + "\n")
	msg := res.Body[0].(*ast.Message)
	str := msg.Value.Elements[0].(*ast.Placeable).Expression.(*ast.StringLiteral)
	assert.Equal(t, `a "quoted" string`, str.Value)
	num := msg.Value.Elements[2].(*ast.Placeable).Expression.(*ast.NumberLiteral)
	assert.Equal(t, "3.5", num.Raw)
}

func TestParseNegativeNumberLiteral(t *testing.T) {
	res := Parse(`temp = { -5 } degrees, { NUMBER(-3.25) } change` + "\n")
	msg := res.Body[0].(*ast.Message)
	num := msg.Value.Elements[0].(*ast.Placeable).Expression.(*ast.NumberLiteral)
	assert.Equal(t, "-5", num.Raw)

	call := msg.Value.Elements[2].(*ast.Placeable).Expression.(*ast.CallExpression)
	arg := call.Positional[0].(*ast.NumberLiteral)
	assert.Equal(t, "-3.25", arg.Raw)
}

func TestParseTermReferenceStillParsesAfterNegativeNumberFix(t *testing.T) {
	res := Parse("brand = { -brand-name }\n")
	msg := res.Body[0].(*ast.Message)
	ref := msg.Value.Elements[0].(*ast.Placeable).Expression.(*ast.TermReference)
	assert.Equal(t, "-brand-name", ref.ID)
}

func TestParseJunkOnMalformedEntry(t *testing.T) {
	res := Parse("= missing id\nhello = Hi\n")
	require.Len(t, res.Body, 2)
	_, ok := res.Body[0].(*ast.Junk)
	assert.True(t, ok)
	_, ok = res.Body[1].(*ast.Message)
	assert.True(t, ok)
}

func TestParseComment(t *testing.T) {
	res := Parse("# a comment\nhello = Hi\n")
	require.Len(t, res.Body, 1)
	_, ok := res.Body[0].(*ast.Message)
	assert.True(t, ok)
}

func TestParseSelectExpressionShape(t *testing.T) {
	src := "emails = { $count ->\n    [one] One email\n   *[other] { $count } emails\n}\n"
	res := Parse(src)

	want := &ast.Resource{
		Body: []ast.Entry{
			&ast.Message{
				ID: "emails",
				Value: &ast.Pattern{
					Elements: []ast.PatternElement{
						&ast.Placeable{
							Expression: &ast.SelectExpression{
								Selector: &ast.VariableReference{Name: "count"},
								Variants: []*ast.Variant{
									{
										Key:   &ast.VariantName{Name: "one"},
										Value: &ast.Pattern{Elements: []ast.PatternElement{&ast.TextElement{Value: "One email"}}},
									},
									{
										Key: &ast.VariantName{Name: "other"},
										Value: &ast.Pattern{Elements: []ast.PatternElement{
											&ast.Placeable{Expression: &ast.VariableReference{Name: "count"}},
											&ast.TextElement{Value: " emails"},
										}},
										Default: true,
									},
								},
							},
						},
					},
				},
			},
		},
	}

	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("parsed AST mismatch (-want +got):\n%s", diff)
	}
}
