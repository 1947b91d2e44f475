// Package fluent provides the Context façade: the growable, multi-message
// store applications build against, paralleling Fluent's own
// MessageContext -- one locale-bound bundle that accumulates .ftl resources
// over its lifetime, rather than a single parsed message.
package fluent

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	jsonv2 "github.com/go-json-experiment/json"

	"github.com/kaptinlin/fluent-go/internal/compile"
	"github.com/kaptinlin/fluent-go/internal/resolve"
	"github.com/kaptinlin/fluent-go/pkg/ast"
	"github.com/kaptinlin/fluent-go/pkg/bidi"
	"github.com/kaptinlin/fluent-go/pkg/errors"
	"github.com/kaptinlin/fluent-go/pkg/escape"
	"github.com/kaptinlin/fluent-go/pkg/function"
	"github.com/kaptinlin/fluent-go/pkg/locale"
	"github.com/kaptinlin/fluent-go/pkg/logger"
	"github.com/kaptinlin/fluent-go/pkg/parser"
	"github.com/kaptinlin/fluent-go/pkg/parts"
)

// Mode selects the evaluation backend Format uses.
type Mode string

const (
	// ModeInterpret walks each pattern's AST on every Format call.
	ModeInterpret Mode = "interpret"
	// ModeCompile builds one closure per message id on first use and reuses
	// it across calls; the closure still resolves the pattern through the
	// interpreter on every call.
	ModeCompile Mode = "compile"
)

// Context is a locale-bound, mutable collection of Fluent messages and
// terms. It is safe for concurrent use: reads and formats may run
// concurrently with AddMessages, which takes an exclusive lock while it
// mutates the store.
type Context struct {
	mu sync.RWMutex

	loc          *locale.Locale
	messages     map[string]*ast.Message
	terms        map[string]*ast.Term
	order        []string
	functions    *function.Registry
	escapers     *escape.Registry
	useIsolating bool
	mode         Mode
	log          *slog.Logger

	compiled map[string]*compile.Unit
}

// New builds an empty Context for the given locale fallback chain (resolved
// via pkg/locale; an empty or entirely unrecognized chain falls back to
// locale.DefaultTag).
func New(locales []string, opts ...Option) *Context {
	cfg := &config{useIsolating: true, mode: ModeInterpret}
	for _, opt := range opts {
		opt(cfg)
	}

	funcs := function.NewDefaultRegistry()
	if len(cfg.functions) > 0 {
		funcs = funcs.Clone()
		funcs.Merge(cfg.functions)
	}

	log := cfg.logger
	if log == nil {
		log = logger.GetLogger()
	}

	return &Context{
		loc:          locale.Resolve(locales),
		messages:     make(map[string]*ast.Message),
		terms:        make(map[string]*ast.Term),
		functions:    funcs,
		escapers:     escape.NewRegistry(cfg.escapers),
		useIsolating: cfg.useIsolating,
		mode:         cfg.mode,
		log:          log,
		compiled:     make(map[string]*compile.Unit),
	}
}

// AddMessages parses an .ftl resource and merges its entries into the
// store. A message or term id already present is rejected with a
// DuplicateMessageIDError and the existing entry is kept; junk the parser
// could not make sense of is reported with a JunkError. Both are collected
// and returned together rather than stopping at the first problem, so one
// bad entry in a large resource doesn't hide the rest.
func (c *Context) AddMessages(source string) []error {
	res := parser.Parse(source)

	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for _, entry := range res.Body {
		switch e := entry.(type) {
		case *ast.Message:
			if _, exists := c.messages[e.ID]; exists {
				errs = append(errs, errors.NewDuplicateMessageIDError(e.ID))
				continue
			}
			c.messages[e.ID] = e
			c.order = append(c.order, e.ID)
		case *ast.Term:
			if _, exists := c.terms[e.ID]; exists {
				errs = append(errs, errors.NewDuplicateMessageIDError(e.ID))
				continue
			}
			c.terms[e.ID] = e
			c.order = append(c.order, e.ID)
		case *ast.Junk:
			errs = append(errs, errors.NewJunkError(strings.Join(e.Annotations, "; ")))
		}
	}

	if len(c.compiled) > 0 {
		c.log.Debug("invalidating compiled message cache", "reason", "AddMessages")
		c.compiled = make(map[string]*compile.Unit)
	}

	return errs
}

// HasMessage reports whether id names a known message or term.
func (c *Context) HasMessage(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if ast.IsTermID(id) {
		_, ok := c.terms[id]
		return ok
	}
	_, ok := c.messages[id]
	return ok
}

// MessageIDs returns every top-level message and term id, in the order
// AddMessages first saw them.
func (c *Context) MessageIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Format renders the message or term named id (optionally qualified as
// "id.attribute") against args, returning the formatted string and any
// non-fatal errors (missing references, cyclic patterns, incompatible
// escapers). When id names nothing the Context knows about at all, nothing
// is formatted: the result is "{id}" and the error list holds only a
// LookupError. When an escaper selects id, its output value is converted to
// text with fmt's %v verb; the typed escaper value itself is not returned
// from this method. args accepts native Go
// values (string, numeric types, time.Time) as well as already-constructed
// value.Value instances; an argument of any other type is reported as a
// TypeError once the message actually references it.
func (c *Context) Format(id string, args map[string]interface{}) (string, []error) {
	if !c.HasMessage(rootID(id)) {
		return "{" + id + "}", []error{errors.NewLookupError(id)}
	}

	var out interface{}
	var errs []error

	switch c.mode {
	case ModeCompile:
		unit := c.compiledUnit(id)
		c.mu.RLock()
		out, errs = unit.Run(args)
		c.mu.RUnlock()
	default:
		c.mu.RLock()
		out, errs = resolve.Format(c, id, args)
		c.mu.RUnlock()
	}

	if s, ok := out.(string); ok {
		return s, errs
	}
	return fmt.Sprintf("%v", out), errs
}

// FormatToParts resolves id like Format, but returns the pattern's elements
// as typed parts (literal text, string/number/date substitutions,
// unresolved fallbacks) instead of one concatenated string. Unlike Format it
// always goes through the interpreter and ignores any registered escaper,
// since it is meant for callers that want to style or inspect the pieces of
// a message themselves rather than for rendering to an escaped sink.
func (c *Context) FormatToParts(id string, args map[string]interface{}) ([]parts.Part, []error) {
	if !c.HasMessage(rootID(id)) {
		return []parts.Part{{Kind: parts.KindFallback, Value: "{" + id + "}"}}, []error{errors.NewLookupError(id)}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return resolve.FormatParts(c, id, args)
}

func rootID(id string) string {
	parent, _, ok := ast.SplitQualifiedID(id)
	if !ok {
		return id
	}
	return parent
}

func (c *Context) compiledUnit(id string) *compile.Unit {
	c.mu.Lock()
	defer c.mu.Unlock()
	if unit, ok := c.compiled[id]; ok {
		return unit
	}
	units := compile.Compile(c, []string{id})
	unit := units[id]
	c.compiled[id] = unit
	return unit
}

// CheckMessages statically validates every stored message and term,
// returning every reference the compiler can prove will fail regardless of
// arguments (unknown message, term, or function references). It does not
// require a Format call to surface these. Junk and duplicate ids found while
// parsing are not stored, so they are reported by AddMessages only and are
// not part of this list.
func (c *Context) CheckMessages() []error {
	ids := c.MessageIDs()
	c.mu.RLock()
	units := compile.Compile(c, ids)
	c.mu.RUnlock()

	var errs []error
	for _, id := range ids {
		if unit, ok := units[id]; ok {
			errs = append(errs, unit.Diagnostics...)
		}
	}
	return errs
}

// DumpJSON serializes the current resource (messages and terms, in
// insertion order) as JSON, primarily for debugging and golden-file tests.
func (c *Context) DumpJSON() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	type dump struct {
		Messages []*ast.Message `json:"messages"`
		Terms    []*ast.Term    `json:"terms"`
	}
	d := dump{}
	for _, id := range c.order {
		if m, ok := c.messages[id]; ok {
			d.Messages = append(d.Messages, m)
		}
		if t, ok := c.terms[id]; ok {
			d.Terms = append(d.Terms, t)
		}
	}

	b, err := jsonv2.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Message implements resolve.Store / compile's lookup needs.
func (c *Context) Message(id string) (*ast.Message, bool) {
	m, ok := c.messages[id]
	return m, ok
}

// Term implements resolve.Store / compile's lookup needs.
func (c *Context) Term(id string) (*ast.Term, bool) {
	t, ok := c.terms[id]
	return t, ok
}

// Functions implements resolve.Store.
func (c *Context) Functions() *function.Registry { return c.functions }

// Escapers implements resolve.Store.
func (c *Context) Escapers() *escape.Registry { return c.escapers }

// Locale implements resolve.Store.
func (c *Context) Locale() *locale.Locale { return c.loc }

// UseIsolating implements resolve.Store.
func (c *Context) UseIsolating() bool { return c.useIsolating }

// Direction reports this Context's locale's base writing direction.
func (c *Context) Direction() bidi.Direction { return c.loc.Direction() }
