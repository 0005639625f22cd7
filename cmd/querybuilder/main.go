// Binary querybuilder renders a SQL statement template
// with params files and NAME=VALUE variables, and prints
// one labelled statement per ";" separated segment.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/byte4ever/querybuilder/params"
	"github.com/byte4ever/querybuilder/querybuilder"
	"github.com/byte4ever/querybuilder/templating"
)

type config struct {
	template   string
	prefix     string
	paramFiles []string
	vars       []string
	engine     string
	startTag   string
	endTag     string
	format     string
	output     string
	verbose    bool
}

func parseFlags(args []string) (config, error) {
	var cfg config

	fs := pflag.NewFlagSet("querybuilder", pflag.ContinueOnError)

	fs.StringVarP(
		&cfg.template, "template", "t", "",
		"Template file path (stdin if empty)",
	)

	fs.StringVarP(
		&cfg.prefix, "prefix", "p", "",
		"Statement header label (default: template file name)",
	)

	fs.StringArrayVarP(
		&cfg.paramFiles, "params", "f", nil,
		"Params file: .yaml, .yml, .json, .jsonc or KEY VALUE lines (repeatable)",
	)

	fs.StringArrayVarP(
		&cfg.vars, "var", "v", nil,
		"Variable in NAME=VALUE format (repeatable)",
	)

	fs.StringVarP(
		&cfg.engine, "engine", "e", templating.EnginePongo2,
		"Template engine: pongo2 or fast",
	)

	fs.StringVar(
		&cfg.startTag, "start_tag", "{{",
		"Start tag for fast engine placeholders",
	)

	fs.StringVar(
		&cfg.endTag, "end_tag", "}}",
		"End tag for fast engine placeholders",
	)

	fs.StringVar(
		&cfg.format, "format", string(querybuilder.FormatText),
		"Output format: text or json",
	)

	fs.StringVarP(
		&cfg.output, "output", "o", "",
		"Output file path (stdout if empty)",
	)

	fs.BoolVar(
		&cfg.verbose, "verbose", false,
		"Log progress to stderr",
	)

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return cfg, nil
}

func (cfg config) compiler() (templating.Compiler, error) {
	co, err := templating.Lookup(cfg.engine)
	if err != nil {
		return nil, err
	}

	if fa, ok := co.(*templating.Fast); ok {
		fa.StartTag = cfg.startTag
		fa.EndTag = cfg.endTag
	}

	return co, nil
}

func readTemplate(path string, stdin io.Reader) (string, error) {
	if path == "" {
		content, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}

		return string(content), nil
	}

	content, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return "", err
	}

	return string(content), nil
}

func run(
	args []string,
	stdin io.Reader,
	stdout io.Writer,
) (retErr error) {
	const errCtx = "querybuilder"

	cfg, err := parseFlags(args)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if cfg.verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	co, err := cfg.compiler()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	text, err := readTemplate(cfg.template, stdin)
	if err != nil {
		return fmt.Errorf("%s: reading template: %w", errCtx, err)
	}

	prefix := cfg.prefix
	if prefix == "" && cfg.template != "" {
		prefix = filepath.Base(cfg.template)
	}

	qb, err := querybuilder.New(
		text,
		querybuilder.WithPrefix(prefix),
		querybuilder.WithCompiler(co),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	bindings, err := params.Load(cfg.paramFiles, cfg.vars)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Debug(
		"rendering",
		"template", cfg.template,
		"engine", cfg.engine,
		"prefix", qb.Prefix(),
		"params", len(bindings),
	)

	units, err := qb.RenderUnits(bindings)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Debug("rendered", "statements", len(units))

	out := stdout

	if cfg.output != "" {
		fi, err := os.Create(cfg.output) //nolint:gosec // path from CLI flag
		if err != nil {
			return fmt.Errorf("%s: opening output: %w", errCtx, err)
		}

		defer func() {
			if closeErr := fi.Close(); closeErr != nil && retErr == nil {
				retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
			}
		}()

		out = fi
	}

	err = querybuilder.Encode(
		out, units, querybuilder.Format(cfg.format),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout)
	if errors.Is(err, pflag.ErrHelp) {
		return
	}

	if err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}
