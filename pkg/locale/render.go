package locale

import (
	"github.com/Rhymond/go-money"

	"github.com/kaptinlin/fluent-go/pkg/value"
)

// RenderNumber formats a Number per its Options: plain decimal, percent, or
// currency (delegating the currency case to go-money so symbol placement and
// minor-unit rounding follow the currency's own convention rather than a
// hand-rolled one).
func (l *Locale) RenderNumber(n value.Number) string {
	opts := n.Options

	switch opts.Style {
	case "percent":
		return l.FormatNumber(n.Raw*100, opts.MinimumFractionDigits, maxOr(opts.MaximumFractionDigits, 0), groupingOf(opts)) + "%"
	case "currency":
		if opts.Currency == "" {
			break
		}
		m := money.NewFromFloat(n.Raw, opts.Currency)
		return m.Display()
	}

	minFrac := opts.MinimumFractionDigits
	maxFrac := opts.MaximumFractionDigits
	if maxFrac < minFrac {
		maxFrac = minFrac
	}
	if !n.IsFloat && maxFrac == 0 {
		return l.FormatNumber(n.Raw, 0, 0, groupingOf(opts))
	}
	return l.FormatNumber(n.Raw, minFrac, maxFrac, groupingOf(opts))
}

func groupingOf(opts value.NumberOptions) bool {
	if opts.HasUseGrouping {
		return opts.UseGrouping
	}
	return true
}

func maxOr(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

// RenderDate formats a Date per its Options.
func (l *Locale) RenderDate(d value.Date) string {
	return l.FormatDate(d.Time, d.Options.DateStyle, d.Options.TimeStyle)
}
