package querybuilder

import (
	"fmt"
	"reflect"

	"github.com/byte4ever/querybuilder/templating"
)

// DefaultPrefix labels statements when no prefix is given.
const DefaultPrefix = "QueryBuilder"

// QueryBuilder renders one compiled statement template.
// It is immutable after New and safe for concurrent use.
type QueryBuilder struct {
	original string
	prefix   string
	template templating.Template
}

type options struct {
	prefix   string
	compiler templating.Compiler
}

// Option configures a QueryBuilder.
type Option func(*options)

// WithPrefix sets the label written in each statement
// header, typically the template file name.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithCompiler selects the template engine. The default
// is templating.Pongo2.
func WithCompiler(co templating.Compiler) Option {
	return func(o *options) {
		if co != nil {
			o.compiler = co
		}
	}
}

// New compiles statements. A compile failure wraps
// ErrTemplateCompile.
func New(statements string, opts ...Option) (*QueryBuilder, error) {
	const errCtx = "creating query builder"

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if o.prefix == "" {
		o.prefix = DefaultPrefix
	}

	if o.compiler == nil {
		o.compiler = templating.NewPongo2()
	}

	tpl, err := o.compiler.Compile(statements)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: %w: %w", errCtx, ErrTemplateCompile, err,
		)
	}

	return &QueryBuilder{
		original: statements,
		prefix:   o.prefix,
		template: tpl,
	}, nil
}

// Original returns the template text as given to New.
func (qb *QueryBuilder) Original() string {
	return qb.original
}

// Prefix returns the statement header label.
func (qb *QueryBuilder) Prefix() string {
	return qb.prefix
}

// Render renders the template with params and returns
// the formatted statements. params may be nil or any map
// keyed by strings.
func (qb *QueryBuilder) Render(params any) ([]string, error) {
	units, err := qb.RenderUnits(params)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(units))
	for _, un := range units {
		out = append(out, un.String())
	}

	return out, nil
}

// RenderUnits is Render without the final formatting.
func (qb *QueryBuilder) RenderUnits(params any) ([]Unit, error) {
	const errCtx = "rendering statements"

	bindings, err := toBindings(params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	rendered, err := qb.template.Render(bindings)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: %w: %w", errCtx, ErrTemplateRender, err,
		)
	}

	return Split(qb.prefix, StripComments(rendered)), nil
}

// toBindings accepts nil, map[string]any and any other
// map type whose key kind is string.
func toBindings(params any) (map[string]any, error) {
	switch pa := params.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		if pa == nil {
			return map[string]any{}, nil
		}

		return pa, nil
	}

	rv := reflect.ValueOf(params)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf(
			"%w: params is not a map keyed by strings (type=%T)",
			ErrInvalidArgument, params,
		)
	}

	bindings := make(map[string]any, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		bindings[iter.Key().String()] = iter.Value().Interface()
	}

	return bindings, nil
}
