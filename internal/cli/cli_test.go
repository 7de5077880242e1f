package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supermueller/accoutrement-color/internal/colour"
	"github.com/supermueller/accoutrement-color/internal/config"
	"github.com/supermueller/accoutrement-color/internal/resolve"
)

const testPalette = `
brand: "#ff0000"
link: brand
dark: [brand, {darken: 20%}]
contrast-light: "#fafafa"
contrast-dark: "#222"
`

// setup isolates config discovery and writes the test palette.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", filepath.Join(dir, "home"))
	for _, k := range []string{config.EnvPalettes, config.EnvPlugins, config.EnvRequire} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	path := filepath.Join(dir, "palette.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testPalette), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--preview", "never"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestResolveCommand(t *testing.T) {
	pal := setup(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"palette entry", []string{"resolve", "-p", pal, "dark"}, "#990000\n"},
		{"reference", []string{"resolve", "-p", pal, "link"}, "#ff0000\n"},
		{"rgb format", []string{"resolve", "-p", pal, "-f", "rgb", "link"}, "rgb(255, 0, 0)\n"},
		{"inline list", []string{"resolve", "[#336699, {lighten: 20%}]"}, "#6699cc\n"},
		{"named colour", []string{"resolve", "rebeccapurple"}, "#663399\n"},
		{"set override", []string{"resolve", "-p", pal, "--set", "brand=#0000ff", "dark"}, "#000099\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestResolveMultiple(t *testing.T) {
	pal := setup(t)

	out, _, err := run(t, "resolve", "-p", pal, "brand", "dark")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, lines[3], "#990000")
}

func TestResolveJSON(t *testing.T) {
	pal := setup(t)

	out, _, err := run(t, "resolve", "-p", pal, "--format", "json", "link")
	require.NoError(t, err)

	var view map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "link", view["name"])
	assert.Equal(t, "#ff0000", view["hex"])
	assert.Equal(t, "rgb(255, 0, 0)", view["rgb"])
	assert.InDelta(t, 0.2126, view["luminance"], 1e-4)
}

func TestResolveErrors(t *testing.T) {
	pal := setup(t)

	_, _, err := run(t, "resolve", "--set", "a=b", "--set", "b=a", "a")
	assert.ErrorIs(t, err, resolve.ErrCyclicColorReference)

	_, _, err = run(t, "resolve", "-p", pal, "nope")
	assert.ErrorIs(t, err, colour.ErrNotAColor)

	_, _, err = run(t, "resolve", "[brand, {frobnicate: 1}]", "-p", pal)
	assert.Error(t, err)

	_, _, err = run(t, "resolve", "--set", "novalue", "brand")
	assert.ErrorContains(t, err, "name=expression")

	_, _, err = run(t, "resolve", "-p", filepath.Join(t.TempDir(), "missing.yaml"), "brand")
	assert.Error(t, err)

	_, _, err = run(t, "resolve", "--format", "xml", "red")
	assert.ErrorContains(t, err, "must be one of")

	_, _, err = run(t, "resolve", "--log-level", "loud", "red")
	assert.ErrorContains(t, err, "unknown log level")
}

func TestPaletteCommand(t *testing.T) {
	pal := setup(t)

	out, _, err := run(t, "palette", "-p", pal)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[0], "DEFINITION")
	assert.True(t, strings.HasPrefix(lines[2], "brand "))
	assert.True(t, strings.HasPrefix(lines[5], "dark "))
	assert.Contains(t, lines[5], "#990000")
	assert.Contains(t, lines[5], "darken(20%)")

	out, _, err = run(t, "palette", "-p", pal, "-f", "json", "link")
	require.NoError(t, err)
	var views []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "brand", views[0]["definition"])

	_, _, err = run(t, "palette", "-p", pal, "missing")
	assert.ErrorContains(t, err, "not in the palette")

	_, _, err = run(t, "palette")
	assert.ErrorContains(t, err, "palette is empty")
}

func TestLuminanceCommand(t *testing.T) {
	pal := setup(t)

	out, _, err := run(t, "luminance", "white")
	require.NoError(t, err)
	assert.Equal(t, "1.0000\n", out)

	out, _, err = run(t, "luminance", "#777")
	require.NoError(t, err)
	assert.Equal(t, "0.1845\n", out)

	out, _, err = run(t, "luminance", "-p", pal, "brand", "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "brand  0.2126")
	assert.Contains(t, out, "0.5    0.5000")

	_, _, err = run(t, "luminance", "--", "-0.5")
	assert.ErrorIs(t, err, colour.ErrNotAColor)
}

func TestRatioCommand(t *testing.T) {
	setup(t)

	out, _, err := run(t, "ratio", "#777", "white")
	require.NoError(t, err)
	assert.Equal(t, "4.48\n", out)

	out, _, err = run(t, "ratio", "#777", "white", "--require", "AA")
	assert.ErrorIs(t, err, errRequirementNotMet)
	assert.Equal(t, "4.48 fails AA (minimum 4.5)\n", out)

	out, _, err = run(t, "ratio", "#777", "white", "--require", "aa-large")
	require.NoError(t, err)
	assert.Equal(t, "4.48 passes AA-large (minimum 3)\n", out)

	out, _, err = run(t, "ratio", "0", "1", "-f", "json")
	require.NoError(t, err)
	var res colour.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InDelta(t, 21.0, res.Ratio, 1e-9)
	assert.True(t, res.Passes)

	_, _, err = run(t, "ratio", "black", "white", "--require", "AAAA")
	assert.ErrorIs(t, err, colour.ErrUnknownContrastStandard)

	_, _, err = run(t, "ratio", "black")
	assert.Error(t, err)
}

func TestRatioRequireFromConfig(t *testing.T) {
	setup(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("require: AAA\n"), 0o600))

	out, _, err := run(t, "--config", cfgPath, "ratio", "black", "white")
	require.NoError(t, err)
	assert.Equal(t, "21.00 passes AAA (minimum 7)\n", out)

	t.Setenv(config.EnvRequire, "none")
	out, _, err = run(t, "--config", cfgPath, "ratio", "#777", "white")
	require.NoError(t, err)
	assert.Equal(t, "4.48\n", out)
}

func TestContrastCommand(t *testing.T) {
	pal := setup(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"palette defaults", []string{"contrast", "-p", pal, "brand"}, "#222222\n"},
		{"black and white defaults", []string{"contrast", "#333"}, "#ffffff\n"},
		{"explicit options", []string{"contrast", "-p", pal, "dark", "brand", "contrast-light"}, "#fafafa\n"},
		{"two options", []string{"contrast", "#fff", "#777", "#000"}, "#000000\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	_, _, err := run(t, "contrast", "white", "black")
	assert.ErrorIs(t, err, colour.ErrInsufficientContrastOptions)
}

func TestContrastedCommand(t *testing.T) {
	setup(t)

	out, _, err := run(t, "contrasted", "#2b6cb0", "white", "black")
	require.NoError(t, err)
	assert.Equal(t, "background #2b6cb0  color #ffffff  ratio 5.42\n", out)

	out, _, err = run(t, "contrasted", "#2b6cb0", "-f", "json")
	require.NoError(t, err)
	var pair struct {
		Background struct{ Hex string } `json:"background"`
		Foreground struct{ Hex string } `json:"foreground"`
		Ratio      float64             `json:"ratio"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &pair))
	assert.Equal(t, "#2b6cb0", pair.Background.Hex)
	assert.Equal(t, "#ffffff", pair.Foreground.Hex)
	assert.InDelta(t, 5.42, pair.Ratio, 0.01)
}

func TestFunctionsCommand(t *testing.T) {
	setup(t)

	out, _, err := run(t, "functions")
	require.NoError(t, err)
	assert.Contains(t, out, "lighten")
	assert.Contains(t, out, "builtin")
	assert.True(t, strings.HasPrefix(out, "NAME"))

	out, _, err = run(t, "funcs", "-f", "json")
	require.NoError(t, err)
	var defs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &defs))
	assert.Len(t, defs, 15)
}

func TestPreviewAlways(t *testing.T) {
	pal := setup(t)

	var stdout bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"resolve", "-p", pal, "--preview", "always", "brand"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, stdout.String(), "\x1b[")
	assert.True(t, strings.HasSuffix(stdout.String(), " #ff0000\n"))
}

func TestVerboseLogging(t *testing.T) {
	pal := setup(t)

	_, stderr, err := run(t, "resolve", "-p", pal, "-v", "link")
	require.NoError(t, err)
	assert.Contains(t, stderr, "loaded palette")

	_, stderr, err = run(t, "resolve", "-p", pal, "--log-level", "trace", "link")
	require.NoError(t, err)
	assert.Contains(t, stderr, "resolving reference")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "accoutrement "))

	out, _, err = run(t, "version", "--json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info["version"])
	assert.NotEmpty(t, info["go_version"])
}
