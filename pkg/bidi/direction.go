// Package bidi provides the small bit of bidirectional-text support Fluent
// formatting needs: the base text direction implied by a locale, and the
// First-Strong-Isolate / Pop-Directional-Isolate control characters used to
// wrap substituted references so a right-to-left argument embedded in a
// left-to-right message (or vice versa) doesn't scramble the surrounding
// text's rendering order.
package bidi

import "strings"

// Direction is a locale's base writing direction.
type Direction string

const (
	DirLTR Direction = "ltr"
	DirRTL Direction = "rtl"
)

// FSI and PDI are the isolation characters Format wraps every
// reference-valued substitution in when isolation is enabled: FSI opens an
// isolate whose direction is determined from its own first strongly
// directional character, PDI closes it.
const (
	FSI = '⁨'
	PDI = '⁩'
)

// rtlLanguages are the ISO 639-1 codes of scripts written right-to-left.
var rtlLanguages = map[string]bool{
	"ar": true,
	"he": true,
	"fa": true,
	"ur": true,
	"yi": true,
}

// GetLocaleDirection determines a locale's base direction from its primary
// language subtag, e.g. "ar-EG" -> DirRTL, "en-US" -> DirLTR.
func GetLocaleDirection(locale string) Direction {
	lang, _, _ := strings.Cut(locale, "-")
	if rtlLanguages[strings.ToLower(lang)] {
		return DirRTL
	}
	return DirLTR
}
