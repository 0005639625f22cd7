package templating

import (
	"fmt"
	"strings"
)

// Compiler turns template text into a reusable Template.
type Compiler interface {
	Compile(text string) (Template, error)
}

// Template is a compiled template. Render must be safe
// to call from concurrently running goroutines.
type Template interface {
	Render(bindings map[string]any) (string, error)
}

// Engine names accepted by Lookup.
const (
	EnginePongo2 = "pongo2"
	EngineFast   = "fast"
)

// Lookup returns a compiler by engine name. An empty
// name, "pongo2" and "jinja" select the Pongo2 engine;
// "fast" selects the Fast engine with default tags.
func Lookup(name string) (Compiler, error) {
	const errCtx = "looking up engine"

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EnginePongo2, "jinja":
		return NewPongo2(), nil
	case EngineFast:
		return &Fast{}, nil
	}

	return nil, fmt.Errorf(
		"%s: unknown engine %q", errCtx, name,
	)
}
