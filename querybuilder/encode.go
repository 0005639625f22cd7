package querybuilder

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// Format selects how Encode writes units.
type Format string

// Supported output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Encode writes units to w. FormatText writes each
// formatted unit followed by a blank line; FormatJSON
// writes an indented JSON array of units.
func Encode(w io.Writer, units []Unit, format Format) error {
	const errCtx = "encoding statements"

	switch format {
	case FormatText, "":
		for _, un := range units {
			if _, err := io.WriteString(w, un.String()+"\n"); err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}
		}

		return nil
	case FormatJSON:
		if units == nil {
			units = []Unit{}
		}

		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)

		if err := enc.Encode(units); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		return nil
	}

	return fmt.Errorf(
		"%s: %w: unknown format %q",
		errCtx, ErrInvalidArgument, format,
	)
}
