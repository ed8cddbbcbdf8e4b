package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/arraymath/internal/testutil"
	"github.com/panbanda/arraymath/pkg/arraymath"
	"github.com/panbanda/arraymath/pkg/config"
	"github.com/panbanda/arraymath/pkg/selection"
)

// runApp runs the CLI with args and returns what it wrote to stdout and stderr.
func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.Run(append([]string{"arraymath", "--quiet", "--no-color"}, args...))
	return stdout.String(), stderr.String(), err
}

func decode(t *testing.T, out string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m), out)
	return m
}

func TestParseInts(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{"empty", "", []int{}, false},
		{"single", "7", []int{7}, false},
		{"spaces", " 1, 2 ,3 ", []int{1, 2, 3}, false},
		{"negative", "-4,5", []int{-4, 5}, false},
		{"invalid", "1,x", nil, true},
		{"trailing comma", "1,", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseInts(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatInts(t *testing.T) {
	assert.Equal(t, "", formatInts(nil, 3))
	assert.Equal(t, "1, 2", formatInts([]int{1, 2}, 3))
	assert.Equal(t, "1, 2, ... (2 more)", formatInts([]int{1, 2, 3, 4}, 2))
}

func TestPercentileCommand(t *testing.T) {
	out, _, err := runApp(t, "-f", "json", "percentile",
		"--values", "20000,160,-2,4,100,6,120,8,140,1800", "--lower", "10", "--upper", "50")
	require.NoError(t, err)

	m := decode(t, out)
	assert.Equal(t, []any{4.0, 100.0, 6.0, 8.0}, m["values"])
	assert.Equal(t, 4.0, m["low"])
	assert.Equal(t, 100.0, m["high"])
	assert.Equal(t, map[string]any{"count": 4.0, "max_rank": 6.0, "min_rank": 9.0}, m["plan"])
}

func TestPercentileCommandGeneratedSample(t *testing.T) {
	out, _, err := runApp(t, "-f", "json", "--seed", "3", "percentile", "--size", "1000", "--lower", "20", "--upper", "95")
	require.NoError(t, err)

	m := decode(t, out)
	assert.Equal(t, 1000.0, m["n"])
	assert.Len(t, m["values"], 750)
}

func TestPercentileCommandEmptyInput(t *testing.T) {
	_, _, err := runApp(t, "percentile", "--values", "")
	assert.Error(t, err)
}

func TestPercentileCommandTextOutput(t *testing.T) {
	out, _, err := runApp(t, "percentile", "--values", "5,4,3,2,1", "--lower", "0", "--upper", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "Percentile 0-100")
	assert.Contains(t, out, "5, 4, 3, 2, 1")
}

func TestSelectCommand(t *testing.T) {
	out, _, err := runApp(t, "-f", "json", "select", "--values", "5,1,9,3", "--rank", "1")
	require.NoError(t, err)
	assert.Equal(t, 9.0, decode(t, out)["value"])

	_, _, err = runApp(t, "select", "--values", "5,1,9,3", "--rank", "5")
	assert.ErrorIs(t, err, selection.ErrOutOfRange)
}

func TestSameCommand(t *testing.T) {
	out, _, err := runApp(t, "-f", "json", "same", "1,2,2", "2,1,2")
	require.NoError(t, err)
	assert.Equal(t, true, decode(t, out)["same"])

	out, _, err = runApp(t, "-f", "json", "same", "1,2,2", "1,1,2")
	require.NoError(t, err)
	assert.Equal(t, false, decode(t, out)["same"])

	_, _, err = runApp(t, "same", "1,2")
	assert.Error(t, err)
}

func TestDistanceCommand(t *testing.T) {
	out, _, err := runApp(t, "-f", "json", "distance", "2,5,3,9", "15,12,1,3")
	require.NoError(t, err)
	assert.Equal(t, 86.0, decode(t, out)["distance"])

	_, _, err = runApp(t, "distance", "1,2", "3")
	assert.ErrorIs(t, err, arraymath.ErrLengthMismatch)
}

func TestTableCommand(t *testing.T) {
	out, stderr, err := runApp(t, "--verbose", "-f", "json", "table", "--delete", "Boston", "--delete", "Nowhere")
	require.NoError(t, err)

	m := decode(t, out)
	sections, ok := m["sections"].([]any)
	require.True(t, ok)
	require.Len(t, sections, 3)

	inserts := sections[0].([]any)
	assert.Len(t, inserts, 16)
	slots := sections[1].([]any)
	assert.Len(t, slots, 14)

	summary := sections[2].(map[string]any)
	assert.Equal(t, 14.0, summary["Entries"])
	assert.Equal(t, 1.0, summary["Deleted"])

	assert.Contains(t, stderr, "table resized")
	assert.Contains(t, stderr, "city not in table")
}

func TestTableCommandTextWarnsMissingCity(t *testing.T) {
	out, _, err := runApp(t, "table", "--delete", "Nowhere")
	require.NoError(t, err)
	assert.Contains(t, out, "Slots")
	assert.Contains(t, out, "WARNING: Nowhere is not in the table")
}

func TestSampleGenerationLogged(t *testing.T) {
	_, stderr, err := runApp(t, "--verbose", "--seed", "5", "-f", "json", "select", "--size", "50", "--rank", "1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "sample generated")
}

func TestTableCommandInvalidLoadFactor(t *testing.T) {
	_, _, err := runApp(t, "table", "--load-factor", "1.5")
	assert.Error(t, err)
}

func TestTrialsCommand(t *testing.T) {
	out, _, err := runApp(t, "-f", "json", "--seed", "11", "trials", "--size", "500", "--count", "4", "--workers", "2")
	require.NoError(t, err)

	m := decode(t, out)
	sections := m["sections"].([]any)
	require.Len(t, sections, 2)
	assert.Len(t, sections[0], 4)

	summary := sections[1].(map[string]any)
	assert.Equal(t, 500.0, summary["n"])
	assert.Equal(t, 250.0, summary["rank"])
	assert.Equal(t, 4.0, summary["trials"])
}

func TestConfigFile(t *testing.T) {
	path := testutil.WriteConfig(t, "arraymath.toml", `
[percentile]
lower = 10
upper = 50
`)

	out, _, err := runApp(t, "-c", path, "-f", "json", "percentile", "--values", "20000,160,-2,4,100,6,120,8,140,1800")
	require.NoError(t, err)
	assert.Equal(t, []any{4.0, 100.0, 6.0, 8.0}, decode(t, out)["values"])

	out, _, err = runApp(t, "-c", path, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, path)
}

func TestInvalidConfigFile(t *testing.T) {
	path := testutil.WriteConfig(t, "arraymath.toml", "[table]\nmax_load_factor = 2.0\n")

	_, _, err := runApp(t, "-c", path, "config", "validate")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestInvalidFormatFlag(t *testing.T) {
	_, _, err := runApp(t, "-f", "xml", "same", "1", "1")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestConfigShow(t *testing.T) {
	out, _, err := runApp(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "[table]")
	assert.Contains(t, out, "max_load_factor = 0.5")
	assert.Contains(t, out, "[percentile]")
}

func TestConfigShowToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "effective.toml")
	out, _, err := runApp(t, "-o", path, "config", "show")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, testutil.ReadFile(t, path), "[percentile]")
}

func TestOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	out, _, err := runApp(t, "-f", "json", "-o", path, "distance", "1,2", "3,4")
	require.NoError(t, err)
	assert.Empty(t, out)

	assert.Equal(t, 8.0, decode(t, testutil.ReadFile(t, path))["distance"])
}

func TestVersionVariable(t *testing.T) {
	assert.NotEmpty(t, version)
}
