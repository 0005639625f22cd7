package templating

import (
	"fmt"
	"io"
	"strings"

	"github.com/valyala/fasttemplate"
)

// Fast compiles placeholder-only templates with
// valyala/fasttemplate. It has no loops or conditionals.
// Tag names are trimmed, so "{{ table }}" and "{{table}}"
// are the same placeholder. A dotted name such as
// "db.schema" is resolved through nested maps when the
// bindings carry no flat key of that name.
type Fast struct {
	StartTag string
	EndTag   string
}

// Compile splits text into static parts and tags. A
// start tag with no matching end tag is an error.
func (fa *Fast) Compile(text string) (Template, error) {
	const errCtx = "compiling fast template"

	startTag, endTag := fa.tags()

	tpl, err := fasttemplate.NewTemplate(text, startTag, endTag)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return &fastTemplate{tpl: tpl}, nil
}

// tags returns the configured start/end tags, falling
// back to double-brace defaults.
func (fa *Fast) tags() (string, string) {
	startTag := fa.StartTag
	if startTag == "" {
		startTag = "{{"
	}

	endTag := fa.EndTag
	if endTag == "" {
		endTag = "}}"
	}

	return startTag, endTag
}

type fastTemplate struct {
	tpl *fasttemplate.Template
}

func (ft *fastTemplate) Render(
	bindings map[string]any,
) (string, error) {
	const errCtx = "rendering fast template"

	out, err := ft.tpl.ExecuteFuncStringWithErr(
		func(w io.Writer, tag string) (int, error) {
			val, ok := lookup(bindings, strings.TrimSpace(tag))
			if !ok {
				return 0, nil
			}

			return writeValue(w, val)
		},
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return out, nil
}

// lookup resolves name in bindings, first as a flat key
// and then as a dot-separated path through nested maps.
func lookup(bindings map[string]any, name string) (any, bool) {
	if val, ok := bindings[name]; ok {
		return val, true
	}

	if !strings.Contains(name, ".") {
		return nil, false
	}

	var cur any = bindings

	for _, part := range strings.Split(name, ".") {
		switch node := cur.(type) {
		case map[string]any:
			val, ok := node[part]
			if !ok {
				return nil, false
			}

			cur = val
		case map[string]string:
			val, ok := node[part]
			if !ok {
				return nil, false
			}

			cur = val
		default:
			return nil, false
		}
	}

	return cur, true
}

func writeValue(w io.Writer, val any) (int, error) {
	switch v := val.(type) {
	case nil:
		return 0, nil
	case string:
		return io.WriteString(w, v)
	case []byte:
		return w.Write(v)
	default:
		return fmt.Fprint(w, v)
	}
}
