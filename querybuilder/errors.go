package querybuilder

import "errors"

var (
	// ErrInvalidArgument is returned when render params are
	// not a string-keyed map, or an output format is unknown.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTemplateCompile is returned by New when the
	// template text cannot be compiled.
	ErrTemplateCompile = errors.New("template compile error")

	// ErrTemplateRender is returned when the template engine
	// fails while rendering.
	ErrTemplateRender = errors.New("template render error")
)
