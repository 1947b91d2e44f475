// Package compile provides the ahead-of-time backend: Compile builds one
// ready-to-call closure per message id and runs a static reference check
// over its pattern once, at compile time. Go has no runtime code generation
// the way python-fluent's compiler emits Python source, so each closure
// delegates the actual evaluation to resolve.Format, the same engine the
// interpreter uses; the pattern's AST is still walked on every call. Sharing
// that engine is what keeps the two backends' output identical.
package compile

import (
	"fmt"

	"github.com/kaptinlin/fluent-go/pkg/ast"
	"github.com/kaptinlin/fluent-go/pkg/errors"

	"github.com/kaptinlin/fluent-go/internal/resolve"
)

// Compiled is a ready-to-invoke compiled message or term attribute. args
// holds native Go values or already-built value.Value instances; see
// resolve.Format for the sanitization contract applied to each.
type Compiled func(args map[string]interface{}) (interface{}, []error)

// Unit is one compiled entry plus the diagnostics found for it at compile
// time (statically-missing references, unknown functions).
type Unit struct {
	ID          string
	Run         Compiled
	Diagnostics []error
}

// Compile builds a Compiled closure for every id in ids, looked up in store,
// plus a static diagnostics pass per entry. It never fails outright: a
// message whose pattern cannot be statically validated still gets a Compiled
// closure, so a single bad reference doesn't block the rest of the resource
// from compiling.
func Compile(store resolve.Store, ids []string) map[string]*Unit {
	units := make(map[string]*Unit, len(ids))
	for _, id := range ids {
		units[id] = compileOne(store, id)
	}
	return units
}

func compileOne(store resolve.Store, id string) *Unit {
	pattern, ok := lookup(store, id)
	if !ok {
		return &Unit{
			ID:          id,
			Diagnostics: []error{errors.NewReferenceError("unknown message: %s", id)},
			Run: func(map[string]interface{}) (interface{}, []error) {
				return "{" + id + "}", []error{errors.NewReferenceError("unknown message: %s", id)}
			},
		}
	}

	diags := checkStatic(store, pattern)

	run := func(args map[string]interface{}) (interface{}, []error) {
		return resolve.Format(store, id, args)
	}

	return &Unit{ID: id, Run: run, Diagnostics: diags}
}

func lookup(store resolve.Store, id string) (*ast.Pattern, bool) {
	if parent, attr, ok := ast.SplitQualifiedID(id); ok {
		if ast.IsTermID(parent) {
			term, found := store.Term(parent)
			if !found {
				return nil, false
			}
			return attributeOf(term.Attributes, attr)
		}
		msg, found := store.Message(parent)
		if !found {
			return nil, false
		}
		return attributeOf(msg.Attributes, attr)
	}
	if ast.IsTermID(id) {
		term, ok := store.Term(id)
		if !ok || term.Value == nil {
			return nil, false
		}
		return term.Value, true
	}
	msg, ok := store.Message(id)
	if !ok || msg.Value == nil {
		return nil, false
	}
	return msg.Value, true
}

func attributeOf(attrs []*ast.Attribute, name string) (*ast.Pattern, bool) {
	for _, a := range attrs {
		if a.ID == name {
			return a.Value, true
		}
	}
	return nil, false
}

// checkStatic walks a pattern's expressions looking for references the
// compiler can prove will fail at format time regardless of arguments:
// unknown message/term ids and unknown function names. Variable references
// are never flagged here since their availability depends on the caller's
// arguments, supplied only at Format time.
func checkStatic(store resolve.Store, p *ast.Pattern) []error {
	var diags []error
	var walkExpr func(ast.Expression)
	var walkPattern func(*ast.Pattern)

	walkPattern = func(pat *ast.Pattern) {
		if pat == nil {
			return
		}
		for _, elem := range pat.Elements {
			if ph, ok := elem.(*ast.Placeable); ok {
				walkExpr(ph.Expression)
			}
		}
	}

	walkExpr = func(e ast.Expression) {
		switch expr := e.(type) {
		case *ast.MessageReference:
			if _, ok := store.Message(expr.ID); !ok {
				diags = append(diags, errors.NewReferenceError("unknown message: %s", expr.ID))
			}
		case *ast.TermReference:
			if _, ok := store.Term(expr.ID); !ok {
				diags = append(diags, errors.NewReferenceError("unknown term: %s", expr.ID))
			}
		case *ast.AttributeExpression:
			if _, ok := store.Message(expr.Ref.ID); !ok {
				if _, ok := store.Term(expr.Ref.ID); !ok {
					diags = append(diags, errors.NewReferenceError("unknown message: %s", expr.Ref.ID))
				}
			}
		case *ast.VariantExpression:
			if _, ok := store.Term(expr.Ref.ID); !ok {
				diags = append(diags, errors.NewReferenceError("unknown term: %s", expr.Ref.ID))
			}
		case *ast.CallExpression:
			if _, ok := store.Functions().Get(expr.Callee); !ok {
				diags = append(diags, errors.NewReferenceError("unknown function: %s", expr.Callee))
			}
			for _, arg := range expr.Positional {
				walkExpr(arg)
			}
			for _, named := range expr.Named {
				walkExpr(named.Value)
			}
		case *ast.SelectExpression:
			walkExpr(expr.Selector)
			for _, v := range expr.Variants {
				walkPattern(v.Value)
			}
		}
	}

	walkPattern(p)
	return diags
}

// Describe renders a diagnostic list as a single human-readable string,
// joining multiple issues on one entry with "; ".
func Describe(diags []error) string {
	if len(diags) == 0 {
		return ""
	}
	s := diags[0].Error()
	for _, d := range diags[1:] {
		s = fmt.Sprintf("%s; %s", s, d.Error())
	}
	return s
}
