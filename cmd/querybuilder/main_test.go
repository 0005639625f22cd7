package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/querybuilder/querybuilder"
)

func writeTemp(
	tb testing.TB,
	dir string,
	name string,
	content string,
) string {
	tb.Helper()

	pa := filepath.Join(dir, name)
	require.NoError(tb, os.WriteFile(pa, []byte(content), 0o600))

	return pa
}

func TestRun_template_file_with_params(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tpl := writeTemp(
		t, dir, "daily.sql",
		"-- daily report\n"+
			"{% for d in dates %}select * from {{ table }} where day = '{{ d }}';\n{% endfor %}",
	)
	pf := writeTemp(
		t, dir, "params.yaml",
		"table: events\ndates: [\"2016-11-21\", \"2016-11-22\"]\n",
	)

	var out bytes.Buffer

	err := run(
		[]string{"-t", tpl, "-f", pf, "--var", "table=visits"},
		strings.NewReader(""),
		&out,
	)

	require.NoError(t, err)
	assert.Equal(
		t,
		"-- daily.sql (#1) --\nselect * from visits where day = '2016-11-21'\n\n"+
			"-- daily.sql (#2) --\nselect * from visits where day = '2016-11-22'\n\n",
		out.String(),
	)
}

func TestRun_stdin_uses_default_prefix(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := run(
		[]string{"--var", "n=1"},
		strings.NewReader("select {{ n }}"),
		&out,
	)

	require.NoError(t, err)
	assert.Equal(
		t,
		"-- "+querybuilder.DefaultPrefix+" (#1) --\nselect 1\n\n",
		out.String(),
	)
}

func TestRun_fast_engine_json_to_file(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.json")

	err := run(
		[]string{
			"--engine", "fast",
			"--start_tag", "<%",
			"--end_tag", "%>",
			"--prefix", "adhoc",
			"--format", "json",
			"-o", outPath,
			"-v", "table=users",
		},
		strings.NewReader("select * from <%table%>; ;delete from <%table%>"),
		&bytes.Buffer{},
	)
	require.NoError(t, err)

	got, err := os.ReadFile(outPath) //nolint:gosec // test file
	require.NoError(t, err)
	assert.JSONEq(
		t,
		`[
			{"prefix": "adhoc", "ordinal": 1, "statement": "select * from users"},
			{"prefix": "adhoc", "ordinal": 3, "statement": "delete from users"}
		]`,
		string(got),
	)
}

func TestRun_errors(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{
			name: "unknown engine",
			args: []string{"--engine", "mustache"},
			want: "unknown engine",
		},
		{
			name: "missing template",
			args: []string{"-t", "/nonexistent/q.sql"},
			want: "reading template",
		},
		{
			name:  "compile error",
			stdin: "{% if x %}select 1",
			want:  "template compile error",
		},
		{
			name:  "malformed var",
			args:  []string{"--var", "oops"},
			stdin: "select 1",
			want:  "NAME=value",
		},
		{
			name:  "unknown format",
			args:  []string{"--format", "xml"},
			stdin: "select 1",
			want:  "unknown format",
		},
		{
			name: "positional argument",
			args: []string{"q.sql"},
			want: "unexpected arguments",
		},
	} {
		err := run(tc.args, strings.NewReader(tc.stdin), &bytes.Buffer{})

		require.Error(t, err, tc.name)
		assert.Contains(t, err.Error(), tc.want, tc.name)
		assert.Contains(t, err.Error(), "querybuilder", tc.name)
	}
}
