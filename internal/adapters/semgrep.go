package adapters

import (
	"strings"

	"github.com/Sena-ops/reportconverter/internal/model"
)

type semgrepJSON struct {
	Results []struct {
		CheckID string `json:"check_id"`
		Path    string `json:"path"`
		Start   struct {
			Line int `json:"line"`
			Col  int `json:"col"`
		} `json:"start"`
		Extra struct {
			Message  string `json:"message"`
			Severity string `json:"severity"` // INFO|WARNING|ERROR
			Metadata struct {
				Refs       []string `json:"references"`
				Source     string   `json:"source"`
				Confidence string   `json:"confidence"`
			} `json:"metadata"`
		} `json:"extra"`
	} `json:"results"`
}

// Semgrep converte a saída de `semgrep scan --json`.
type Semgrep struct {
	base
}

func NewSemgrep(opts Options) *Semgrep {
	return &Semgrep{base{opts: opts}}
}

func (*Semgrep) ToolName() string { return "semgrep" }
func (*Semgrep) Name() string     { return "Semgrep" }
func (*Semgrep) URL() string      { return "https://semgrep.dev/" }

func (a *Semgrep) GetReports(path string) ([]model.Report, error) {
	log := a.logger(a.ToolName())

	var doc semgrepJSON
	if !loadResult(log, a, path, &doc) {
		return nil, nil
	}

	reports := make([]model.Report, 0, len(doc.Results))
	cache := model.FileCache{}
	for _, r := range doc.Results {
		file, ok := a.resolveSourceFile(log, r.Path, r.Path, cache)
		if !ok {
			continue
		}
		rep := model.NewReport(file, safeLine(r.Start.Line), safeLine(r.Start.Col),
			strings.TrimSpace(r.Extra.Message), r.CheckID, semgrepSeverity(r.Extra.Severity))
		rep.AnalyzerName = a.ToolName()
		rep.HelpURI = r.Extra.Metadata.Source
		if rep.HelpURI == "" && len(r.Extra.Metadata.Refs) > 0 {
			rep.HelpURI = r.Extra.Metadata.Refs[0]
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func semgrepSeverity(s string) model.Severity {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return model.SevHigh
	case "WARNING":
		return model.SevMedium
	case "INFO":
		return model.SevLow
	default:
		return model.SevUnspecified
	}
}
