package params

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/tidwall/jsonc"
	"github.com/valyala/fasttemplate"
)

// Load reads files in order, then applies vars. Later
// files override earlier ones and vars override files.
func Load(
	files []string,
	vars []string,
) (map[string]any, error) {
	const errCtx = "loading params"

	bindings, err := LoadFiles(files)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	bindings, err = ParseVars(vars, bindings)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return bindings, nil
}

// LoadFiles reads and merges params files. Top-level keys
// of later files replace those of earlier ones.
func LoadFiles(files []string) (map[string]any, error) {
	bindings := make(map[string]any)

	for _, fn := range files {
		loaded, err := LoadFile(fn)
		if err != nil {
			return nil, err
		}

		for key, val := range loaded {
			bindings[key] = val
		}
	}

	return bindings, nil
}

// LoadFile reads one params file. The format follows the
// extension: .yaml/.yml is YAML, .json/.jsonc is JSON with
// optional comments and trailing commas, anything else is
// a status file of "KEY VALUE" lines. JSON numbers keep
// their literal text.
func LoadFile(path string) (map[string]any, error) {
	const errCtx = "reading params file"

	content, err := os.ReadFile(path) //nolint:gosec // paths from CLI flags
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var loaded map[string]any

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		loaded, err = decodeYAML(content)
	case ".json", ".jsonc":
		loaded, err = decodeJSON(content)
	default:
		loaded = decodeStamps(content)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", errCtx, path, err)
	}

	return loaded, nil
}

func decodeYAML(content []byte) (map[string]any, error) {
	out := make(map[string]any)

	if err := yaml.Unmarshal(content, &out); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}

	if out == nil {
		out = make(map[string]any)
	}

	return out, nil
}

var errTrailingData = errors.New("trailing data after top-level value")

func decodeJSON(content []byte) (map[string]any, error) {
	out := make(map[string]any)

	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(content)))
	dec.UseNumber()

	err := dec.Decode(&out)
	if errors.Is(err, io.EOF) {
		return out, nil
	}

	if err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}

	// Only whitespace may follow the top-level object.
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}

		return nil, fmt.Errorf("decoding json: %w", err)
	}

	return out, nil
}

// decodeStamps parses "KEY VALUE" lines with the first
// space as delimiter. Lines without a space are skipped.
func decodeStamps(content []byte) map[string]any {
	out := make(map[string]any)

	for _, line := range strings.Split(string(content), "\n") {
		parts := strings.SplitN(
			strings.TrimRight(line, "\r"), " ", 2,
		)
		if len(parts) == 2 {
			out[parts[0]] = parts[1]
		}
	}

	return out
}

// ParseVars applies NAME=VALUE pairs on top of a copy of
// base. Each VALUE has its {KEY} placeholders replaced
// with values from base; unknown placeholders are kept.
func ParseVars(
	vars []string,
	base map[string]any,
) (map[string]any, error) {
	const errCtx = "parsing variables"

	out := make(map[string]any, len(base)+len(vars))
	for key, val := range base {
		out[key] = val
	}

	for _, vr := range vars {
		parts := strings.SplitN(vr, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf(
				"%s: variable must be NAME=value, got %s",
				errCtx, vr,
			)
		}

		out[parts[0]] = expand(parts[1], base)
	}

	return out, nil
}

// expand substitutes single-brace placeholders in value
// with entries of base.
func expand(value string, base map[string]any) string {
	return fasttemplate.ExecuteFuncString(
		value, "{", "}",
		func(w io.Writer, tag string) (int, error) {
			val, ok := base[tag]
			if !ok {
				return fmt.Fprintf(w, "{%s}", tag)
			}

			if val == nil {
				return 0, nil
			}

			return fmt.Fprint(w, val)
		},
	)
}
