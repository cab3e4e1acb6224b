package adapters

import (
	"strings"

	"github.com/Sena-ops/reportconverter/internal/model"
)

// Compatível com `trivy config -f json` (misconfig)
type trivyJSON struct {
	Results []struct {
		Target            string `json:"Target"`
		Misconfigurations []struct {
			ID            string   `json:"ID"`
			Title         string   `json:"Title"`
			Description   string   `json:"Description"`
			Severity      string   `json:"Severity"`
			PrimaryURL    string   `json:"PrimaryURL"`
			References    []string `json:"References"`
			CauseMetadata struct {
				StartLine int `json:"StartLine"`
			} `json:"CauseMetadata"`
		} `json:"Misconfigurations"`
	} `json:"Results"`
}

type Trivy struct {
	base
}

func NewTrivy(opts Options) *Trivy {
	return &Trivy{base{opts: opts}}
}

func (*Trivy) ToolName() string { return "trivy" }
func (*Trivy) Name() string     { return "Trivy" }
func (*Trivy) URL() string      { return "https://trivy.dev/" }

func (a *Trivy) GetReports(path string) ([]model.Report, error) {
	log := a.logger(a.ToolName())

	var doc trivyJSON
	if !loadResult(log, a, path, &doc) {
		return nil, nil
	}

	var reports []model.Report
	cache := model.FileCache{}
	for _, r := range doc.Results {
		if len(r.Misconfigurations) == 0 {
			continue
		}
		file, ok := a.resolveSourceFile(log, r.Target, r.Target, cache)
		if !ok {
			continue
		}
		for _, m := range r.Misconfigurations {
			rep := model.NewReport(file, safeLine(m.CauseMetadata.StartLine), 0,
				firstNonEmpty(m.Description, m.Title), m.ID, trivySeverity(m.Severity))
			rep.AnalyzerName = a.ToolName()
			rep.HelpURI = m.PrimaryURL
			if rep.HelpURI == "" && len(m.References) > 0 {
				rep.HelpURI = m.References[0]
			}
			reports = append(reports, rep)
		}
	}
	return reports, nil
}

func trivySeverity(s string) model.Severity {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CRITICAL":
		return model.SevCritical
	case "HIGH":
		return model.SevHigh
	case "MEDIUM":
		return model.SevMedium
	case "LOW":
		return model.SevLow
	default:
		return model.SevUnspecified
	}
}
