package fluent

import (
	"log/slog"

	"github.com/kaptinlin/fluent-go/pkg/escape"
	"github.com/kaptinlin/fluent-go/pkg/function"
)

// Option configures a Context at construction time.
type Option func(*config)

type config struct {
	useIsolating bool
	mode         Mode
	functions    map[string]function.Entry
	escapers     []escape.Escaper
	logger       *slog.Logger
}

// WithUseIsolating overrides the default (true) FSI/PDI bidi isolation of
// reference-valued substitutions.
func WithUseIsolating(use bool) Option {
	return func(cfg *config) { cfg.useIsolating = use }
}

// WithMode selects the evaluation backend; the default is ModeInterpret.
func WithMode(mode Mode) Option {
	return func(cfg *config) { cfg.mode = mode }
}

// WithFunction registers a single custom function alongside the built-in
// NUMBER and DATETIME, overriding either by name.
func WithFunction(name string, fn function.Func, spec function.ArgSpec) Option {
	return func(cfg *config) {
		if cfg.functions == nil {
			cfg.functions = make(map[string]function.Entry)
		}
		cfg.functions[name] = function.Entry{Fn: fn, Spec: spec}
	}
}

// WithFunctions registers a batch of custom functions.
func WithFunctions(funcs map[string]function.Entry) Option {
	return func(cfg *config) {
		if cfg.functions == nil {
			cfg.functions = make(map[string]function.Entry)
		}
		for name, entry := range funcs {
			cfg.functions[name] = entry
		}
	}
}

// WithEscapers registers the escapers a Context selects among, in priority
// order; the first one whose Select(id) matches wins.
func WithEscapers(escapers ...escape.Escaper) Option {
	return func(cfg *config) { cfg.escapers = append(cfg.escapers, escapers...) }
}

// WithLogger sets the Context's logger, overriding the package-level default.
func WithLogger(log *slog.Logger) Option {
	return func(cfg *config) { cfg.logger = log }
}
