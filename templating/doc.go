// Package templating provides the template engines used to render statement
// templates. A Compiler turns template text into a Template; a Template
// renders itself against a bindings map.
//
// Two engines are available. Pongo2 understands Jinja/Django syntax
// (interpolation, {% for %} loops, {% if %} conditionals) and is the default.
// Fast uses valyala/fasttemplate for placeholder-only substitution with
// configurable delimiters (default "{{" and "}}"). In both engines a
// placeholder whose key is absent from the bindings renders as empty text.
package templating
