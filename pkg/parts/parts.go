// Package parts defines the structured output of Context.FormatToParts: a
// sequence of typed fragments instead of one concatenated string, for callers
// that need to tell literal message text apart from substituted values --
// for example to style a number differently from the surrounding sentence.
package parts

// Kind discriminates the origin of a Part's text.
type Kind string

const (
	// KindText is a literal fragment from the message pattern itself.
	KindText Kind = "text"
	// KindString is a resolved string-valued substitution (a variable, a
	// message or term reference, or a function call result).
	KindString Kind = "string"
	// KindNumber is a resolved number-valued substitution, rendered through
	// the locale.
	KindNumber Kind = "number"
	// KindDate is a resolved date/time-valued substitution, rendered
	// through the locale.
	KindDate Kind = "date"
	// KindFallback is the bracketed placeholder text substituted in place
	// of a reference, variable, or call that could not be resolved.
	KindFallback Kind = "fallback"
)

// Part is one fragment of a formatted message.
type Part struct {
	Kind  Kind
	Value string
}
