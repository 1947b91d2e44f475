// Package locale wraps locale-tag resolution, CLDR plural categories, and
// number/date formatting behind the small capability surface the resolver
// needs, keeping CLDR data and ICU-style formatting out of the core.
package locale

import (
	"strconv"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kaptinlin/fluent-go/pkg/bidi"
)

// DefaultTag is used whenever no locale in the requested list can be parsed.
var DefaultTag = language.AmericanEnglish

// Locale wraps a resolved language.Tag and exposes plural/number/date
// formatting on top of it.
type Locale struct {
	tag language.Tag
}

// Resolve picks the first parsable tag from an ordered list of locale
// identifiers (dashes and underscores accepted equivalently), falling back
// to DefaultTag.
func Resolve(tags []string) *Locale {
	for _, raw := range tags {
		normalized := strings.ReplaceAll(raw, "_", "-")
		tag, err := language.Parse(normalized)
		if err == nil {
			return &Locale{tag: tag}
		}
	}
	return &Locale{tag: DefaultTag}
}

// String returns the BCP 47 tag string, e.g. "en-US".
func (l *Locale) String() string { return l.tag.String() }

// Tag exposes the underlying language.Tag.
func (l *Locale) Tag() language.Tag { return l.tag }

// Direction reports this locale's base writing direction, for callers laying
// out formatted text (e.g. choosing a "dir" attribute on a containing
// element).
func (l *Locale) Direction() bidi.Direction {
	return bidi.GetLocaleDirection(l.tag.String())
}

// PluralCategory returns the CLDR cardinal plural category for n under this
// locale: one of zero, one, two, few, many, other.
func (l *Locale) PluralCategory(n float64) (category string) {
	defer func() {
		if recover() != nil {
			category = "other"
		}
	}()

	abs := n
	if abs < 0 {
		abs = -abs
	}

	intPart := int64(abs)
	frac := abs - float64(intPart)
	var fracDigits, fracValue int
	if frac > 0 {
		fracStr := strconv.FormatFloat(frac, 'f', -1, 64)
		if i := strings.IndexByte(fracStr, '.'); i >= 0 {
			digits := fracStr[i+1:]
			fracDigits = len(digits)
			fracValue, _ = strconv.Atoi(digits)
		}
	}

	form := plural.Cardinal.MatchPlural(l.tag, int(intPart), fracDigits, fracDigits, fracValue, fracValue)
	return mapForm(form)
}

func mapForm(form plural.Form) string {
	switch form {
	case plural.Zero:
		return "zero"
	case plural.One:
		return "one"
	case plural.Two:
		return "two"
	case plural.Few:
		return "few"
	case plural.Many:
		return "many"
	default:
		return "other"
	}
}

// FormatNumber renders a plain decimal using CLDR grouping for this locale's
// integer part and a fixed-precision fraction. Style-specific formatting
// (currency, percent) is layered on top by RenderNumber.
func (l *Locale) FormatNumber(n float64, minFrac, maxFrac int, useGrouping bool) string {
	if maxFrac < minFrac {
		maxFrac = minFrac
	}
	if maxFrac < 0 {
		maxFrac = 0
	}

	formatted := strconv.FormatFloat(n, 'f', maxFrac, 64)
	intText, fracText := splitDecimal(formatted)
	fracText = trimFraction(fracText, minFrac)

	neg := strings.HasPrefix(intText, "-")
	if neg {
		intText = intText[1:]
	}

	if useGrouping {
		intVal, err := strconv.ParseInt(intText, 10, 64)
		if err == nil {
			p := message.NewPrinter(l.tag)
			intText = p.Sprintf("%d", intVal)
		}
	}

	out := intText
	if neg {
		out = "-" + out
	}
	if fracText != "" {
		out += "." + fracText
	}
	return out
}

func splitDecimal(s string) (intPart, fracPart string) {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

// trimFraction drops trailing zeros down to minDigits, matching the
// "maximumFractionDigits set but fewer needed" behavior number formatters
// commonly default to.
func trimFraction(frac string, minDigits int) string {
	for len(frac) > minDigits && strings.HasSuffix(frac, "0") {
		frac = frac[:len(frac)-1]
	}
	return frac
}
