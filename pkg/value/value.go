// Package value provides the runtime value model: the typed values a
// resolved expression can hold before it is rendered to text.
package value

// Value is any runtime value the resolver can dispatch on: plain text, a
// locale-aware number, a locale-aware date, an opaque escaped value, or the
// None sentinel used as a best-effort substitute on resolution failure.
type Value interface {
	value()
}

// String is plain unescaped text.
type String struct {
	Text string
}

func (String) value() {}

// NewString wraps a plain string as a Value.
func NewString(s string) String { return String{Text: s} }

// Escaped is an opaque value produced by an escaper's MarkEscaped, Escape or
// StringJoin method. Inner holds whatever concrete type that escaper
// produces; the resolver passes it on to StringJoin, and only checks whether
// it is a plain string in order to apply bidi isolation.
type Escaped struct {
	Inner interface{}
}

// NewEscaped wraps an escaper-produced value as a Value.
func NewEscaped(inner interface{}) Escaped { return Escaped{Inner: inner} }

func (Escaped) value() {}

// None is the sentinel substituted wherever resolution failed. ID carries
// an identifier (a message id, a variable name, a function call signature)
// used to render a best-effort fallback of the form "{id}"-equivalent text.
type None struct {
	ID string
}

func (None) value() {}

// NewNone builds a None sentinel carrying an optional identifier.
func NewNone(id string) None { return None{ID: id} }

// Render returns the best-effort text a None sentinel formats as.
func (n None) Render() string {
	if n.ID == "" {
		return "???"
	}
	return n.ID
}
