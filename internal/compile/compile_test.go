package compile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaptinlin/fluent-go/internal/resolve"
	"github.com/kaptinlin/fluent-go/pkg/ast"
	"github.com/kaptinlin/fluent-go/pkg/escape"
	"github.com/kaptinlin/fluent-go/pkg/function"
	"github.com/kaptinlin/fluent-go/pkg/locale"
	"github.com/kaptinlin/fluent-go/pkg/value"
)

type fakeStore struct {
	messages map[string]*ast.Message
	terms    map[string]*ast.Term
	funcs    *function.Registry
	escapers *escape.Registry
	loc      *locale.Locale
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		messages: make(map[string]*ast.Message),
		terms:    make(map[string]*ast.Term),
		funcs:    function.NewDefaultRegistry(),
		escapers: escape.NewRegistry(nil),
		loc:      locale.Resolve([]string{"en-US"}),
	}
}

func (s *fakeStore) Message(id string) (*ast.Message, bool) { m, ok := s.messages[id]; return m, ok }
func (s *fakeStore) Term(id string) (*ast.Term, bool)       { t, ok := s.terms[id]; return t, ok }
func (s *fakeStore) Functions() *function.Registry          { return s.funcs }
func (s *fakeStore) Escapers() *escape.Registry              { return s.escapers }
func (s *fakeStore) Locale() *locale.Locale                  { return s.loc }
func (s *fakeStore) UseIsolating() bool                      { return false }

func textPattern(s string) *ast.Pattern {
	return &ast.Pattern{Elements: []ast.PatternElement{&ast.TextElement{Value: s}}}
}

func TestCompileSimpleMessage(t *testing.T) {
	store := newFakeStore()
	store.messages["hello"] = &ast.Message{ID: "hello", Value: textPattern("Hello!")}

	units := Compile(store, []string{"hello"})
	require.Contains(t, units, "hello")
	assert.Empty(t, units["hello"].Diagnostics)

	out, errs := units["hello"].Run(nil)
	assert.Empty(t, errs)
	assert.Equal(t, "Hello!", out)
}

func TestCompileDetectsStaticMissingReference(t *testing.T) {
	store := newFakeStore()
	store.messages["about"] = &ast.Message{ID: "about", Value: &ast.Pattern{
		Elements: []ast.PatternElement{&ast.Placeable{Expression: &ast.MessageReference{ID: "brand"}}},
	}}

	units := Compile(store, []string{"about"})
	require.NotEmpty(t, units["about"].Diagnostics)
}

func TestCompileUnknownMessageStillProducesRunnable(t *testing.T) {
	store := newFakeStore()
	units := Compile(store, []string{"missing"})
	require.Contains(t, units, "missing")
	require.NotEmpty(t, units["missing"].Diagnostics)

	out, errs := units["missing"].Run(nil)
	assert.NotEmpty(t, errs)
	assert.Equal(t, "{missing}", out)
}

func TestCompileInterpreterParity(t *testing.T) {
	store := newFakeStore()
	store.messages["greet"] = &ast.Message{ID: "greet", Value: &ast.Pattern{
		Elements: []ast.PatternElement{
			&ast.TextElement{Value: "Hi, "},
			&ast.Placeable{Expression: &ast.VariableReference{Name: "name"}},
		},
	}}

	units := Compile(store, []string{"greet"})
	compiled, _ := units["greet"].Run(map[string]interface{}{"name": value.NewString("Robin")})

	interpreted, _ := resolve.Format(store, "greet", map[string]interface{}{"name": value.NewString("Robin")})
	assert.Equal(t, interpreted, compiled)
	assert.Equal(t, "Hi, Robin", compiled)
}

func TestDescribeJoinsDiagnostics(t *testing.T) {
	store := newFakeStore()
	store.messages["x"] = &ast.Message{ID: "x", Value: &ast.Pattern{
		Elements: []ast.PatternElement{
			&ast.Placeable{Expression: &ast.MessageReference{ID: "a"}},
			&ast.Placeable{Expression: &ast.MessageReference{ID: "b"}},
		},
	}}
	units := Compile(store, []string{"x"})
	require.Len(t, units["x"].Diagnostics, 2)
	assert.Contains(t, Describe(units["x"].Diagnostics), "; ")
}
