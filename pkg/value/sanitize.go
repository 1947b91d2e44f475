package value

import "time"

// SanitizeArgument converts a caller-supplied external argument into a
// Value: an already-sanitized Value passes through unchanged, native
// strings/numbers/times are wrapped, and anything else is rejected (ok
// false) so the caller can report it as an unsupported external type.
func SanitizeArgument(v interface{}) (Value, bool) {
	switch t := v.(type) {
	case Value:
		return t, true
	case string:
		return NewString(t), true
	case int:
		return NewNumber(float64(t), false, NumberOptions{}), true
	case int8:
		return NewNumber(float64(t), false, NumberOptions{}), true
	case int16:
		return NewNumber(float64(t), false, NumberOptions{}), true
	case int32:
		return NewNumber(float64(t), false, NumberOptions{}), true
	case int64:
		return NewNumber(float64(t), false, NumberOptions{}), true
	case uint:
		return NewNumber(float64(t), false, NumberOptions{}), true
	case uint8:
		return NewNumber(float64(t), false, NumberOptions{}), true
	case uint16:
		return NewNumber(float64(t), false, NumberOptions{}), true
	case uint32:
		return NewNumber(float64(t), false, NumberOptions{}), true
	case uint64:
		return NewNumber(float64(t), false, NumberOptions{}), true
	case float32:
		return NewNumber(float64(t), true, NumberOptions{}), true
	case float64:
		return NewNumber(t, true, NumberOptions{}), true
	case time.Time:
		return NewDate(t, DateOptions{}), true
	default:
		return nil, false
	}
}
