package locale

import (
	"time"

	"github.com/dromara/carbon/v2"
)

// FormatDate renders a date/time value using style-based layouts, the same
// dateStyle/timeStyle vocabulary Fluent's DATETIME() builtin exposes.
func (l *Locale) FormatDate(t time.Time, dateStyle, timeStyle string) string {
	c := carbon.CreateFromStdTime(t)

	switch {
	case dateStyle != "" && timeStyle != "":
		return c.Format(dateLayout(dateStyle) + " " + timeLayout(timeStyle))
	case dateStyle != "":
		return c.Format(dateLayout(dateStyle))
	case timeStyle != "":
		return c.Format(timeLayout(timeStyle))
	default:
		return c.Format(dateLayout("medium") + " " + timeLayout("short"))
	}
}

func dateLayout(style string) string {
	switch style {
	case "full":
		return "l, F j, Y"
	case "long":
		return "F j, Y"
	case "short":
		return "n/j/y"
	default: // "medium"
		return "M j, Y"
	}
}

func timeLayout(style string) string {
	switch style {
	case "full", "long":
		return "g:i:s A T"
	case "medium":
		return "g:i:s A"
	default: // "short"
		return "g:i A"
	}
}
