package querybuilder

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineComment  = regexp.MustCompile(`(?:--|#)[^\n]*\n?`)
)

// Unit is one rendered statement. Ordinal is the 1-based
// position of its segment among all ";" separated
// segments, blank ones included.
type Unit struct {
	Prefix    string `json:"prefix"`
	Ordinal   int    `json:"ordinal"`
	Statement string `json:"statement"`
}

// String formats the unit with its header line and a
// trailing newline.
func (un Unit) String() string {
	return fmt.Sprintf(
		"-- %s (#%d) --\n%s\n", un.Prefix, un.Ordinal, un.Statement,
	)
}

// StripComments removes /* ... */ block comments, then
// -- and # comments through the end of their line. A
// line comment on the last line is removed even when no
// newline follows it.
func StripComments(text string) string {
	text = blockComment.ReplaceAllString(text, "")

	return lineComment.ReplaceAllString(text, "")
}

// Split cuts text on ";" and returns the trimmed,
// non-blank segments labelled with prefix.
func Split(prefix string, text string) []Unit {
	var units []Unit

	for i, seg := range strings.Split(text, ";") {
		stmt := strings.TrimSpace(seg)
		if stmt == "" {
			continue
		}

		units = append(units, Unit{
			Prefix:    prefix,
			Ordinal:   i + 1,
			Statement: stmt,
		})
	}

	return units
}
