package value

// NumberOptions controls how a Number renders and participates in plural
// selection. Zero value means "format as a plain decimal".
type NumberOptions struct {
	Style                 string // "", "currency", "percent"
	Currency              string // ISO 4217 code, required when Style == "currency"
	MinimumFractionDigits int
	MaximumFractionDigits int
	UseGrouping           bool
	HasUseGrouping        bool // distinguishes "unset" from explicit false
}

// Number is a locale-aware numeric value: a NUMBER() call result, a bare
// numeric literal, or a native int/float/decimal external argument.
type Number struct {
	Raw     float64
	IsFloat bool
	Options NumberOptions
}

func (Number) value() {}

// NewNumber wraps a native float as a locale-aware Number.
func NewNumber(v float64, isFloat bool, opts NumberOptions) Number {
	return Number{Raw: v, IsFloat: isFloat, Options: opts}
}

// Native returns the plain numeric value for equality comparisons in
// selector matching (spec rule: numeric selector vs. numeric variant key).
func (n Number) Native() float64 { return n.Raw }
