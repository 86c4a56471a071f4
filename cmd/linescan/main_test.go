package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/linescan/pkg/config"
	"github.com/ajitpratap0/linescan/pkg/report"
)

const gearSample = `467..114..
...*......
..35..633.
......#...
617*......
.....+.58.
..592.....
......755.
...$.*....
.664.598..
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeInput(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestRunTextOutput(t *testing.T) {
	path := writeInput(t, "day03.txt", gearSample)

	out, err := execute(t, "run", "--puzzle", "gears", "--part", "2", "--input", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Elapsed time: "))
	assert.Equal(t, "Result: 467835", lines[1])
}

func TestRunJSONOutputWithEnvOverlay(t *testing.T) {
	t.Setenv("LINESCAN_WORKERS", "2")
	t.Setenv("LINESCAN_CHUNK_SIZE", "1")
	path := writeInput(t, "day03.txt", gearSample)
	metricsPath := filepath.Join(t.TempDir(), "linescan.prom")

	out, err := execute(t, "run", "-p", "gears", "-n", "1", "-i", path, "--format", "json", "--metrics-path", metricsPath)
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, gojson.Unmarshal([]byte(out), &rep))
	assert.Equal(t, int64(4361), rep.Result)
	assert.Equal(t, 10, rep.Lines)

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "linescan_last_result")
}

func TestRunSavesEffectiveConfig(t *testing.T) {
	t.Setenv("LINESCAN_WORKERS", "3")
	path := writeInput(t, "day03.txt", gearSample)
	saved := filepath.Join(t.TempDir(), "effective.yaml")

	out, err := execute(t, "run", "-p", "gears", "-i", path, "--strict-gears", "--save-config", saved)
	require.NoError(t, err)
	assert.Contains(t, out, "Result: 4361")

	cfg, err := config.LoadBase(saved)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Performance.Workers)
	assert.True(t, cfg.Grid.StrictGears)

	out, err = execute(t, "run", "-p", "gears", "-n", "2", "-i", path, "-c", saved)
	require.NoError(t, err)
	assert.Contains(t, out, "Result: 467835")
}

func TestLoadConfigFileThenFlags(t *testing.T) {
	cfgPath := writeInput(t, "linescan.yaml", "name: batch\nperformance:\n  workers: 3\n  chunk_size: 8\ngrid:\n  placeholder: \".\"\n  gear_symbol: \"*\"\n")

	cmd := newRunCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", cfgPath, "--chunk-size", "4", "--strict-gears"}))

	v := bindSettings(cmd.Flags())
	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "batch", cfg.Name)
	assert.Equal(t, 3, cfg.Performance.Workers)
	assert.Equal(t, 4, cfg.Performance.ChunkSize)
	assert.True(t, cfg.Grid.StrictGears)
}

func TestRunRejectsUnknownPuzzle(t *testing.T) {
	path := writeInput(t, "day03.txt", gearSample)
	_, err := execute(t, "run", "-p", "sonar", "-i", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sonar")
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	path := writeInput(t, "day03.txt", gearSample)
	_, err := execute(t, "run", "-p", "gears", "-i", path, "--format", "xml")
	require.Error(t, err)
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	for _, key := range []string{"gears/1", "gears/2", "cards/1", "cards/2", "cubes/1", "cubes/2"} {
		assert.Contains(t, out, key)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "linescan v"+version)
}

func TestRunRequiresPuzzleAndInput(t *testing.T) {
	_, err := execute(t, "run", "--puzzle", "gears")
	require.EqualError(t, err, "--input is required")

	t.Setenv("LINESCAN_INPUT", writeInput(t, "day03.txt", gearSample))
	out, err := execute(t, "run", "--puzzle", "gears")
	require.NoError(t, err)
	assert.Contains(t, out, "Result: 4361")
}
