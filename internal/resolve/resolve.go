// Package resolve is the tree-walking interpreter: it evaluates an
// ast.Pattern against a set of caller-supplied arguments, producing a
// rendered value plus any non-fatal errors encountered along the way. It
// mirrors python-fluent's resolver.py, with Go's type switch standing in for
// Python's singledispatch and environment.scoped standing in for its
// contextlib-managed "current escaper" stack.
package resolve

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kaptinlin/fluent-go/pkg/ast"
	"github.com/kaptinlin/fluent-go/pkg/bidi"
	"github.com/kaptinlin/fluent-go/pkg/errors"
	"github.com/kaptinlin/fluent-go/pkg/escape"
	"github.com/kaptinlin/fluent-go/pkg/function"
	"github.com/kaptinlin/fluent-go/pkg/locale"
	"github.com/kaptinlin/fluent-go/pkg/logger"
	"github.com/kaptinlin/fluent-go/pkg/parts"
	"github.com/kaptinlin/fluent-go/pkg/value"
)

// Resource caps mirroring the reference implementation: a pattern that
// exceeds MaxParts stops adding parts, and a substituted part longer than
// MaxPartLength is truncated; either way a ValueError is reported rather
// than building unbounded output from a runaway message graph.
const (
	MaxParts      = 1000
	MaxPartLength = 2500
)

// Store is the read-only view of message storage the resolver needs. The
// façade's Context implements this directly.
type Store interface {
	Message(id string) (*ast.Message, bool)
	Term(id string) (*ast.Term, bool)
	Functions() *function.Registry
	Escapers() *escape.Registry
	Locale() *locale.Locale
	UseIsolating() bool
}

// environment carries per-call mutable state through a single Format, the Go
// analogue of python-fluent's ResolverEnvironment plus CurrentEnvironment.
type environment struct {
	store     Store
	args      map[string]interface{}
	errs      []error
	dirty     map[*ast.Pattern]bool
	partCount int
	escaper   escape.Escaper
}

// scoped temporarily swaps the environment's current escaper for next,
// returning a restore closure the caller defers. This is what stands in for
// python-fluent's contextlib-managed escaper stack when resolution crosses
// into a referenced message or term that selects a different escaper.
func (env *environment) scoped(next escape.Escaper) func() {
	prev := env.escaper
	env.escaper = next
	return func() { env.escaper = prev }
}

// Format resolves the message or term named id (optionally qualified as
// "id.attribute") against args, returning the rendered output in the
// escaper's output type (a plain string when no escaper selects id) along
// with every non-fatal error encountered. args holds native Go values
// (string, numeric types, time.Time) or already-constructed value.Value
// instances; each is sanitized lazily, only when a variable is actually
// referenced.
func Format(store Store, id string, args map[string]interface{}) (interface{}, []error) {
	env := &environment{
		store:   store,
		args:    args,
		dirty:   make(map[*ast.Pattern]bool),
		escaper: store.Escapers().For(id),
	}

	pattern, ok := env.lookupPattern(id)
	if !ok {
		env.errs = append(env.errs, errors.NewReferenceError("unknown message: %s", id))
		return env.escaper.Escape(value.NewNone("{" + id + "}").Render()), env.errs
	}

	parts := env.resolvePatternParts(pattern)
	out := env.escaper.StringJoin(parts)
	return out, env.errs
}

// FormatParts resolves id like Format, but returns the pattern's elements as
// typed parts instead of one joined string, so a caller can tell literal
// text apart from substituted values. It always renders through plain
// strings, regardless of any escaper registered for id.
func FormatParts(store Store, id string, args map[string]interface{}) ([]parts.Part, []error) {
	env := &environment{
		store:   store,
		args:    args,
		dirty:   make(map[*ast.Pattern]bool),
		escaper: escape.Null,
	}

	pattern, ok := env.lookupPattern(id)
	if !ok {
		env.errs = append(env.errs, errors.NewReferenceError("unknown message: %s", id))
		return []parts.Part{{Kind: parts.KindFallback, Value: "{" + id + "}"}}, env.errs
	}

	return env.resolveToParts(pattern), env.errs
}

func (env *environment) resolveToParts(p *ast.Pattern) []parts.Part {
	if p == nil {
		return nil
	}
	if env.dirty[p] {
		env.errs = append(env.errs, errors.NewCyclicReferenceError("cyclic reference detected"))
		return []parts.Part{{Kind: parts.KindFallback, Value: "???"}}
	}
	env.dirty[p] = true
	defer delete(env.dirty, p)

	// A pattern made of a single element never carries isolation marks: the
	// FSI/PDI pair exists to separate substitutions from surrounding text,
	// and there is no surrounding text to separate them from.
	isolatable := len(p.Elements) > 1

	out := make([]parts.Part, 0, len(p.Elements))
	for _, elem := range p.Elements {
		if env.partCount >= MaxParts {
			env.errs = append(env.errs, errors.NewValueError("resolution exceeded the maximum number of parts"))
			out = append(out, parts.Part{Kind: parts.KindFallback, Value: value.NewNone("").Render()})
			break
		}
		env.partCount++

		switch e := elem.(type) {
		case *ast.TextElement:
			out = append(out, parts.Part{Kind: parts.KindText, Value: e.Value})
		case *ast.Placeable:
			v := env.handle(e.Expression)
			p := env.partOf(v, isolatable)
			p.Value = env.capPartLength(p.Value)
			out = append(out, p)
		}
	}
	return out
}

func (env *environment) partOf(v value.Value, isolatable bool) parts.Part {
	switch val := v.(type) {
	case value.String:
		return parts.Part{Kind: parts.KindString, Value: env.isolateString(val.Text, isolatable)}
	case value.Number:
		return parts.Part{Kind: parts.KindNumber, Value: env.isolateString(env.store.Locale().RenderNumber(val), isolatable)}
	case value.Date:
		return parts.Part{Kind: parts.KindDate, Value: env.isolateString(env.store.Locale().RenderDate(val), isolatable)}
	case value.Escaped:
		if s, ok := val.Inner.(string); ok {
			return parts.Part{Kind: parts.KindString, Value: env.isolateString(s, isolatable)}
		}
		return parts.Part{Kind: parts.KindString, Value: fmt.Sprintf("%v", val.Inner)}
	case value.None:
		return parts.Part{Kind: parts.KindFallback, Value: val.Render()}
	default:
		return parts.Part{Kind: parts.KindFallback, Value: "???"}
	}
}

func (env *environment) isolateString(s string, isolatable bool) string {
	out := env.isolate(s, isolatable)
	if s, ok := out.(string); ok {
		return s
	}
	return s
}

// capPartLength truncates a substituted part's rendered text once it exceeds
// MaxPartLength, recording a ValueError. Literal source text is never
// truncated here; only substitution output can grow unboundedly from a
// caller-supplied argument.
func (env *environment) capPartLength(s string) string {
	if len(s) <= MaxPartLength {
		return s
	}
	env.errs = append(env.errs, errors.NewValueError("resolved value exceeded the maximum part length"))
	return s[:MaxPartLength]
}

// lookupPattern resolves id (optionally qualified as "parent.attribute") to
// the pattern it should render. A qualified id whose attribute is missing
// falls back to the parent's own value, if it has one, so best-effort
// rendering still produces the parent's text rather than a bare fallback;
// the miss itself is still recorded as a reference error.
func (env *environment) lookupPattern(id string) (*ast.Pattern, bool) {
	if parent, attr, ok := ast.SplitQualifiedID(id); ok {
		if ast.IsTermID(parent) {
			term, found := env.store.Term(parent)
			if !found {
				return nil, false
			}
			if p, ok := attributeOf(term.Attributes, attr); ok {
				return p, true
			}
			if term.Value != nil {
				env.errs = append(env.errs, errors.NewReferenceError("unknown attribute: %s", id))
				return term.Value, true
			}
			return nil, false
		}
		msg, found := env.store.Message(parent)
		if !found {
			return nil, false
		}
		if p, ok := attributeOf(msg.Attributes, attr); ok {
			return p, true
		}
		if msg.Value != nil {
			env.errs = append(env.errs, errors.NewReferenceError("unknown attribute: %s", id))
			return msg.Value, true
		}
		return nil, false
	}

	if ast.IsTermID(id) {
		term, ok := env.store.Term(id)
		if !ok || term.Value == nil {
			return nil, false
		}
		return term.Value, true
	}
	msg, ok := env.store.Message(id)
	if !ok || msg.Value == nil {
		return nil, false
	}
	return msg.Value, true
}

func attributeOf(attrs []*ast.Attribute, name string) (*ast.Pattern, bool) {
	for _, a := range attrs {
		if a.ID == name {
			return a.Value, true
		}
	}
	return nil, false
}

// resolvePatternParts walks a pattern's elements, producing one escaper
// output-typed part per element, honoring MaxParts/MaxPartLength.
func (env *environment) resolvePatternParts(p *ast.Pattern) []interface{} {
	if p == nil {
		return nil
	}
	if env.dirty[p] {
		env.errs = append(env.errs, errors.NewCyclicReferenceError("cyclic reference detected"))
		return []interface{}{env.escaper.Escape("???")}
	}
	env.dirty[p] = true
	defer delete(env.dirty, p)

	// See the matching comment in resolveToParts: isolation only applies
	// when a pattern has more than one element.
	isolatable := len(p.Elements) > 1

	parts := make([]interface{}, 0, len(p.Elements))
	for _, elem := range p.Elements {
		if env.partCount >= MaxParts {
			env.errs = append(env.errs, errors.NewValueError("resolution exceeded the maximum number of parts"))
			parts = append(parts, env.escaper.Escape(value.NewNone("").Render()))
			break
		}
		env.partCount++

		switch e := elem.(type) {
		case *ast.TextElement:
			parts = append(parts, env.escaper.MarkEscaped(e.Value))
		case *ast.Placeable:
			v := env.handle(e.Expression)
			parts = append(parts, env.capLength(env.render(v, isolatable)))
		}
	}
	return parts
}

// capLength is capPartLength's counterpart for the escaper-output path: it
// only caps plain string output, since an escaper's own output type (e.g. an
// HTML node) isn't something this package can measure or truncate safely.
func (env *environment) capLength(out interface{}) interface{} {
	s, ok := out.(string)
	if !ok || len(s) <= MaxPartLength {
		return out
	}
	env.errs = append(env.errs, errors.NewValueError("resolved value exceeded the maximum part length"))
	return s[:MaxPartLength]
}

// render converts a resolved Value into this environment's escaper output
// type, formatting numbers/dates through the locale and isolating
// reference-valued substitutions per UseIsolating.
func (env *environment) render(v value.Value, isolatable bool) interface{} {
	switch val := v.(type) {
	case value.String:
		return env.isolate(env.escaper.Escape(val.Text), isolatable)
	case value.Number:
		return env.isolate(env.escaper.Escape(env.store.Locale().RenderNumber(val)), isolatable)
	case value.Date:
		return env.isolate(env.escaper.Escape(env.store.Locale().RenderDate(val)), isolatable)
	case value.Escaped:
		return env.isolate(val.Inner, isolatable)
	case value.None:
		return env.escaper.Escape(val.Render())
	default:
		return env.escaper.Escape("???")
	}
}

// isolate wraps the rendered text in FSI/PDI bidi isolation characters when
// the enclosing pattern has more than one element and the context (or the
// escaper override) requests it. Only plain-string output types are
// isolated; non-string escaper outputs pass through untouched.
func (env *environment) isolate(out interface{}, isolatable bool) interface{} {
	if !isolatable {
		return out
	}
	use := env.store.UseIsolating()
	if ov := env.escaper.UseIsolating(); ov != nil {
		use = *ov
	}
	if !use {
		return out
	}
	s, ok := out.(string)
	if !ok {
		return out
	}
	return string(bidi.FSI) + s + string(bidi.PDI)
}

// handle is the type-switch dispatcher standing in for singledispatch.
func (env *environment) handle(expr ast.Expression) value.Value {
	switch e := expr.(type) {
	case *ast.StringLiteral:
		return value.NewString(e.Value)
	case *ast.NumberLiteral:
		return numberFromLiteral(e.Raw)
	case *ast.VariableReference:
		return env.handleVariable(e)
	case *ast.MessageReference:
		return env.handleReference(e.ID)
	case *ast.TermReference:
		return env.handleReference(e.ID)
	case *ast.AttributeExpression:
		return env.handleAttribute(e)
	case *ast.VariantExpression:
		return env.handleVariant(e)
	case *ast.SelectExpression:
		return env.handleSelect(e)
	case *ast.CallExpression:
		return env.handleCall(e)
	case *ast.VariantList:
		if len(e.Variants) == 0 {
			return value.NewNone("")
		}
		return env.resolveVariantValue(e.Variants[0])
	default:
		return value.NewNone("")
	}
}

func numberFromLiteral(raw string) value.Number {
	isFloat := strings.Contains(raw, ".")
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return value.NewNumber(0, false, value.NumberOptions{})
	}
	return value.NewNumber(f, isFloat, value.NumberOptions{})
}

// handleVariable resolves a $variable reference. Raw argument values arrive
// as native Go types (or already-built value.Value instances) and are
// sanitized here, on first use, per the handle_argument contract: a plain
// string/number/time.Time is wrapped, a value.Value passes through
// unchanged, and anything else is an unsupported external type.
func (env *environment) handleVariable(e *ast.VariableReference) value.Value {
	raw, ok := env.args[e.Name]
	if !ok {
		env.errs = append(env.errs, errors.NewReferenceError("unknown variable: $%s", e.Name))
		return value.NewNone("{$" + e.Name + "}")
	}
	v, ok := value.SanitizeArgument(raw)
	if !ok {
		env.errs = append(env.errs, errors.NewTypeError("Unsupported external type: %s, %T", e.Name, raw))
		return value.NewNone("{$" + e.Name + "}")
	}
	return v
}

func (env *environment) handleReference(id string) value.Value {
	pattern, ok := env.lookupPattern(id)
	if !ok {
		env.errs = append(env.errs, errors.NewReferenceError("unknown message: %s", id))
		return value.NewNone("{" + id + "}")
	}
	inner := env.store.Escapers().For(id)
	if !escape.Compatible(env.escaper, inner) {
		env.errs = append(env.errs, errors.NewTypeError("incompatible escaper for reference: %s", id))
		return value.NewNone("{" + id + "}")
	}

	restore := env.scoped(inner)
	defer restore()

	parts := env.resolvePatternParts(pattern)
	return value.NewEscaped(inner.StringJoin(parts))
}

func (env *environment) handleAttribute(e *ast.AttributeExpression) value.Value {
	return env.handleReference(ast.QualifiedID(e.Ref.ID, e.Name))
}

func (env *environment) handleVariant(e *ast.VariantExpression) value.Value {
	term, ok := env.store.Term(e.Ref.ID)
	if !ok || term.Value == nil {
		env.errs = append(env.errs, errors.NewReferenceError("unknown term: %s", e.Ref.ID))
		return value.NewNone("{" + e.Ref.ID + "}")
	}
	for _, elem := range term.Value.Elements {
		ph, ok := elem.(*ast.Placeable)
		if !ok {
			continue
		}
		vl, ok := ph.Expression.(*ast.VariantList)
		if !ok {
			continue
		}
		for _, variant := range vl.Variants {
			if name, ok := variant.Key.(*ast.VariantName); ok && name.Name == e.Key {
				return env.resolveVariantValue(variant)
			}
		}
	}
	// The term exists but carries no variant list matching e.Key: a type
	// mismatch between what was requested and what the term offers, not a
	// missing reference.
	env.errs = append(env.errs, errors.NewTypeError("unknown variant: %s[%s]", e.Ref.ID, e.Key))
	return value.NewNone("{" + e.Ref.ID + "}")
}

func (env *environment) resolveVariantValue(v *ast.Variant) value.Value {
	parts := env.resolvePatternParts(v.Value)
	return value.NewEscaped(env.escaper.StringJoin(parts))
}

func (env *environment) handleSelect(e *ast.SelectExpression) value.Value {
	selector := env.handle(e.Selector)

	var def *ast.Variant
	for _, v := range e.Variants {
		if v.Default {
			def = v
		}
		if env.variantMatches(v, selector) {
			return env.resolveVariantValue(v)
		}
	}
	if def != nil {
		return env.resolveVariantValue(def)
	}
	return value.NewNone("")
}

func (env *environment) variantMatches(v *ast.Variant, selector value.Value) bool {
	switch key := v.Key.(type) {
	case *ast.NumberLiteral:
		num, ok := selector.(value.Number)
		if !ok {
			return false
		}
		want, err := strconv.ParseFloat(key.Raw, 64)
		return err == nil && want == num.Native()
	case *ast.VariantName:
		if s, ok := selector.(value.String); ok {
			return s.Text == key.Name
		}
		if num, ok := selector.(value.Number); ok {
			return env.store.Locale().PluralCategory(num.Native()) == key.Name
		}
		return false
	default:
		return false
	}
}

func (env *environment) handleCall(e *ast.CallExpression) value.Value {
	entry, ok := env.store.Functions().Get(e.Callee)
	if !ok {
		env.errs = append(env.errs, errors.NewReferenceError("unknown function: %s", e.Callee))
		return value.NewNone("{" + e.Callee + "()}")
	}

	positional := make([]value.Value, 0, len(e.Positional))
	for _, arg := range e.Positional {
		positional = append(positional, env.handle(arg))
	}
	kwargs := make(map[string]value.Value, len(e.Named))
	for _, n := range e.Named {
		kwargs[n.Name] = env.handle(n.Value)
	}

	if err := function.Match(e.Callee, positional, kwargs, entry.Spec); err != nil {
		env.errs = append(env.errs, err)
		return value.NewNone("{" + e.Callee + "()}")
	}

	out, err := entry.Fn(positional, kwargs)
	if err != nil {
		env.errs = append(env.errs, err)
		logger.Debug("function call failed", "callee", e.Callee, "error", err)
		return value.NewNone("{" + e.Callee + "()}")
	}
	return out
}
