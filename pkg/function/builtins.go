package function

import (
	"github.com/kaptinlin/fluent-go/pkg/errors"
	"github.com/kaptinlin/fluent-go/pkg/value"
)

// defaultFunctions seeds every new Context: NUMBER and DATETIME, the two
// builtins required at minimum.
var defaultFunctions = map[string]Entry{
	"NUMBER":   {Fn: numberFunc, Spec: NewArgSpec(1, "minimumFractionDigits", "maximumFractionDigits", "useGrouping", "style", "currency")},
	"DATETIME": {Fn: datetimeFunc, Spec: NewArgSpec(1, "dateStyle", "timeStyle")},
}

func numberFunc(positional []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	operand := positional[0]

	var num value.Number
	switch v := operand.(type) {
	case value.Number:
		num = v
	case value.None:
		return v, nil
	default:
		return nil, errors.NewTypeError("NUMBER() requires a numeric operand")
	}

	opts := num.Options
	if sv, ok := kwargs["style"]; ok {
		if s, ok := stringOf(sv); ok {
			opts.Style = s
		}
	}
	if cv, ok := kwargs["currency"]; ok {
		if s, ok := stringOf(cv); ok {
			opts.Currency = s
		}
	}
	if mv, ok := kwargs["minimumFractionDigits"]; ok {
		if n, ok := intOf(mv); ok {
			opts.MinimumFractionDigits = n
		}
	}
	if mv, ok := kwargs["maximumFractionDigits"]; ok {
		if n, ok := intOf(mv); ok {
			opts.MaximumFractionDigits = n
		}
	}
	if gv, ok := kwargs["useGrouping"]; ok {
		if b, ok := boolOf(gv); ok {
			opts.UseGrouping = b
			opts.HasUseGrouping = true
		}
	}

	return value.NewNumber(num.Raw, num.IsFloat, opts), nil
}

func datetimeFunc(positional []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	operand := positional[0]

	var dt value.Date
	switch v := operand.(type) {
	case value.Date:
		dt = v
	case value.None:
		return v, nil
	default:
		return nil, errors.NewTypeError("DATETIME() requires a date operand")
	}

	opts := dt.Options
	if v, ok := kwargs["dateStyle"]; ok {
		if s, ok := stringOf(v); ok {
			opts.DateStyle = s
		}
	}
	if v, ok := kwargs["timeStyle"]; ok {
		if s, ok := stringOf(v); ok {
			opts.TimeStyle = s
		}
	}

	return value.NewDate(dt.Time, opts), nil
}

func stringOf(v value.Value) (string, bool) {
	s, ok := v.(value.String)
	if !ok {
		return "", false
	}
	return s.Text, true
}

func intOf(v value.Value) (int, bool) {
	n, ok := v.(value.Number)
	if !ok {
		return 0, false
	}
	return int(n.Raw), true
}

func boolOf(v value.Value) (bool, bool) {
	s, ok := stringOf(v)
	if !ok {
		return false, false
	}
	return s != "never" && s != "false", true
}
