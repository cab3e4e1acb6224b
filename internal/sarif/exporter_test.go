package sarif

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Sena-ops/reportconverter/internal/model"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReports() []model.Report {
	cache := model.FileCache{}
	f := model.GetOrCreateFile("/src/main.c", cache)

	high := model.NewReport(f, 10, 3, " Identical sub-expressions ", "V501", model.SevHigh)
	high.HelpURI = "https://pvs-studio.com/en/docs/warnings/v501/"
	return []model.Report{
		high,
		model.NewReport(f, 0, 0, "Always true", "V547", model.SevMedium),
		model.NewReport(nil, 5, 0, "orphan", "V501", model.SevUnspecified),
	}
}

func TestBuild(t *testing.T) {
	log := Build(sampleReports(), Driver{Name: "PVS-Studio", InformationURI: "https://pvs-studio.com/en/"})

	require.Len(t, log.Runs, 1)
	run := log.Runs[0]
	_, err := uuid.Parse(run.AutomationDetails.GUID)
	assert.NoError(t, err)

	want := Run{
		Tool: Tool{Driver: Driver{
			Name:           "PVS-Studio",
			InformationURI: "https://pvs-studio.com/en/",
			Rules: []Rule{
				{ID: "V501", HelpURI: "https://pvs-studio.com/en/docs/warnings/v501/"},
				{ID: "V547"},
			},
		}},
		Results: []Result{
			{RuleID: "V501", Level: "error", Message: Message{Text: "Identical sub-expressions"},
				Locations: []Location{{PhysicalLocation: PhysicalLocation{
					ArtifactLocation: ArtifactLocation{URI: "file:///src/main.c"},
					Region:           Region{StartLine: 10, StartColumn: 3}}}}},
			{RuleID: "V547", Level: "warning", Message: Message{Text: "Always true"},
				Locations: []Location{{PhysicalLocation: PhysicalLocation{
					ArtifactLocation: ArtifactLocation{URI: "file:///src/main.c"},
					Region:           Region{StartLine: 1}}}}},
			{RuleID: "V501", Level: "note", Message: Message{Text: "orphan"},
				Locations: []Location{{PhysicalLocation: PhysicalLocation{
					ArtifactLocation: ArtifactLocation{URI: "UNKNOWN"},
					Region:           Region{StartLine: 5}}}}},
		},
	}
	if diff := cmp.Diff(want, run, cmpopts.IgnoreFields(Run{}, "AutomationDetails")); diff != "" {
		t.Errorf("run inesperada (-want +got):\n%s", diff)
	}
}

func TestBuildEmpty(t *testing.T) {
	log := Build(nil, Driver{Name: "Semgrep"})
	assert.Empty(t, log.Runs[0].Results)
	assert.Nil(t, log.Runs[0].Tool.Driver.Rules)

	data, err := json.Marshal(log)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"results":[]`)
}

func TestExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	path, err := Export(sampleReports(), dir, "pvs", Driver{Name: "PVS-Studio"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pvs.sarif"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Log
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, Version, got.Version)
	assert.Equal(t, Schema, got.Schema)
	assert.Len(t, got.Runs[0].Results, 3)
}

func TestToURI(t *testing.T) {
	tests := map[string]string{
		"":             "",
		"/abs/x.go":    "file:///abs/x.go",
		"../../a/b.tf": "a/b.tf",
		"./c.yaml":     "c.yaml",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, toURI(in))
		})
	}
}
