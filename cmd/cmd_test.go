package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Sena-ops/reportconverter/internal/adapters"
	"github.com/Sena-ops/reportconverter/internal/export"
	"github.com/Sena-ops/reportconverter/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRoot executa o CLI com uma config isolada em dir.
func runRoot(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	prev := logging.Logger
	t.Cleanup(func() { logging.Logger = prev })

	cfgPath := filepath.Join(dir, "reportconverter.yaml")
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		cfg := "logger:\n  level: error\nconvert:\n  output_dir: " + filepath.Join(dir, "out") + "\n"
		require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	}

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := execute(context.Background(), root)
	return out.String(), err
}

func writePVSResult(t *testing.T, dir string, level int) string {
	t.Helper()
	src := filepath.Join(dir, "main.c")
	require.NoError(t, os.WriteFile(src, []byte("int main() {}\n"), 0o644))

	doc := map[string]any{"warnings": []map[string]any{{
		"code": "V501", "message": "Identical sub-expressions", "level": level,
		"positions": []map[string]any{{"file": src, "line": 3, "column": 2}},
	}}}
	b, err := json.Marshal(doc)
	require.NoError(t, err)

	resDir := filepath.Join(dir, "results")
	require.NoError(t, os.MkdirAll(resDir, 0o755))
	p := filepath.Join(resDir, "pvs.json")
	require.NoError(t, os.WriteFile(p, b, 0o644))
	return resDir
}

func TestConvertJSON(t *testing.T) {
	dir := t.TempDir()
	results := writePVSResult(t, dir, 2)

	out, err := runRoot(t, dir, "convert", "-t", "pvs-studio", results)
	require.NoError(t, err)
	assert.Contains(t, out, "PVS-Studio: 1 report(s)")
	assert.Contains(t, out, "MEDIUM: 1")

	data, err := os.ReadFile(filepath.Join(dir, "out", "pvs-studio.json"))
	require.NoError(t, err)
	var doc export.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Reports, 1)
	assert.Equal(t, filepath.Join(dir, "main.c"), doc.Reports[0].File)
	assert.Equal(t, 3, doc.Reports[0].Line)
	assert.Equal(t, 2, doc.Reports[0].Column)
	assert.Equal(t, "MEDIUM", doc.Reports[0].Severity)
}

func TestConvertSarifFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	results := writePVSResult(t, dir, 1)
	outDir := filepath.Join(dir, "custom")

	_, err := runRoot(t, dir, "convert", "-t", "pvs-studio", "-e", "sarif", "-o", outDir, "-n", "scan", "-w", "2", results)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "scan.sarif"))
}

func TestConvertSeverityOutOfRangeFails(t *testing.T) {
	dir := t.TempDir()
	results := writePVSResult(t, dir, 7)

	_, err := runRoot(t, dir, "convert", "-t", "pvs-studio", results)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 arquivo(s)")
	assert.FileExists(t, filepath.Join(dir, "out", "pvs-studio.json"), "a saída parcial continua sendo gravada")
}

func TestConvertFailureReachesLogFile(t *testing.T) {
	dir := t.TempDir()
	results := writePVSResult(t, dir, 7)
	logFile := filepath.Join(dir, "rc.log")
	cfg := "logger:\n  level: error\n  log_file: " + logFile + "\nconvert:\n  output_dir: " + filepath.Join(dir, "out") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reportconverter.yaml"), []byte(cfg), 0o644))

	_, err := runRoot(t, dir, "convert", "-t", "pvs-studio", results)
	require.Error(t, err)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Falha ao converter resultado")
}

func TestConvertMissingResultIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.MkdirAll(empty, 0o755))

	out, err := runRoot(t, dir, "convert", "-t", "semgrep", empty)
	require.NoError(t, err)
	assert.Contains(t, out, "Semgrep: 0 report(s)")
}

func TestConvertUnknownAnalyzer(t *testing.T) {
	dir := t.TempDir()
	_, err := runRoot(t, dir, "convert", "-t", "trivvy", dir)
	require.ErrorIs(t, err, adapters.ErrUnknownAnalyzer)
	assert.Contains(t, err.Error(), "trivy")
}

func TestConvertRequiresType(t *testing.T) {
	dir := t.TempDir()
	_, err := runRoot(t, dir, "convert", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type")
}

func TestAnalyzersCmd(t *testing.T) {
	out, err := runRoot(t, t.TempDir(), "analyzers")
	require.NoError(t, err)
	assert.Contains(t, out, "TIPO")
	for _, a := range adapters.List() {
		assert.Contains(t, out, a.ToolName())
		assert.Contains(t, out, a.URL())
	}
}
