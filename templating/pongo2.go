package templating

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// Autoescaping is switched off per template by wrapping
// the source, leaving pongo2's package-level switch alone.
const (
	noEscapeOpen  = "{% autoescape off %}"
	noEscapeClose = "{% endautoescape %}"
)

// fileTags are the pongo2 tags that load other templates
// or files through the set's loader.
var fileTags = []string{"include", "ssi", "import", "extends"}

var errNoLoader = errors.New("loading templates by name is disabled")

// noLoader rejects every template name, so nothing a
// template contains can reach the file system.
type noLoader struct{}

func (noLoader) Abs(_, name string) string {
	return name
}

func (noLoader) Get(path string) (io.Reader, error) {
	return nil, fmt.Errorf("%w: %q", errNoLoader, path)
}

// Pongo2 compiles Jinja/Django style templates with
// flosch/pongo2. Each Pongo2 owns a private template set
// with no file access: include, ssi, import and extends
// fail to compile. The zero value is ready to use and may
// be shared between goroutines.
type Pongo2 struct {
	once sync.Once
	mu   sync.Mutex
	set  *pongo2.TemplateSet
	err  error
}

// NewPongo2 returns a Pongo2 compiler.
func NewPongo2() *Pongo2 {
	return &Pongo2{}
}

func (p *Pongo2) init() {
	set := pongo2.NewSet("querybuilder", noLoader{})

	for _, tag := range fileTags {
		if err := set.BanTag(tag); err != nil {
			p.err = fmt.Errorf("banning tag %s: %w", tag, err)

			return
		}
	}

	p.set = set
}

// Compile parses text. Syntax errors such as an unclosed
// {% for %} block, and any use of a file loading tag, are
// reported here.
func (p *Pongo2) Compile(text string) (Template, error) {
	const errCtx = "compiling pongo2 template"

	p.once.Do(p.init)

	if p.err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, p.err)
	}

	var sb strings.Builder

	sb.Grow(len(noEscapeOpen) + len(text) + len(noEscapeClose))
	sb.WriteString(noEscapeOpen)
	sb.WriteString(text)
	sb.WriteString(noEscapeClose)

	// FromString marks the set as used; compiles are
	// serialized, renders are not.
	p.mu.Lock()
	tpl, err := p.set.FromString(sb.String())
	p.mu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return &pongo2Template{tpl: tpl}, nil
}

type pongo2Template struct {
	tpl *pongo2.Template
}

// Render executes the template. Keys that are not valid
// identifiers are rejected by pongo2 at this point.
func (pt *pongo2Template) Render(
	bindings map[string]any,
) (string, error) {
	const errCtx = "rendering pongo2 template"

	out, err := pt.tpl.Execute(pongo2.Context(bindings))
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return out, nil
}
