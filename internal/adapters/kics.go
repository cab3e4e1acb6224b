package adapters

import (
	"path/filepath"
	"strings"

	"github.com/Sena-ops/reportconverter/internal/model"
)

// encoding/json casa chaves sem diferenciar maiúsculas, então builds antigas
// que exportavam "Queries" também caem aqui.
type kicsJSON struct {
	Queries []struct {
		QueryName   string `json:"query_name"`
		QueryID     string `json:"query_id"`
		QueryURL    string `json:"query_url"`
		Severity    string `json:"severity"`
		Description string `json:"description"`
		Files       []struct {
			FileName string `json:"file_name"`
			Line     int    `json:"line"`
		} `json:"files"`
	} `json:"queries"`
}

type KICS struct {
	base
}

func NewKICS(opts Options) *KICS {
	return &KICS{base{opts: opts}}
}

func (*KICS) ToolName() string { return "kics" }
func (*KICS) Name() string     { return "KICS" }
func (*KICS) URL() string      { return "https://kics.io/" }

func (a *KICS) GetReports(path string) ([]model.Report, error) {
	log := a.logger(a.ToolName())

	var doc kicsJSON
	if !loadResult(log, a, path, &doc) {
		return nil, nil
	}

	var reports []model.Report
	cache := model.FileCache{}
	for _, q := range doc.Queries {
		msg := firstNonEmpty(strings.TrimSpace(q.Description), q.QueryName)
		for _, f := range q.Files {
			file, ok := a.resolveSourceFile(log, f.FileName, kicsPath(f.FileName), cache)
			if !ok {
				continue
			}
			rep := model.NewReport(file, safeLine(f.Line), 0, msg, q.QueryID, kicsSeverity(q.Severity))
			rep.AnalyzerName = a.ToolName()
			rep.HelpURI = q.QueryURL
			reports = append(reports, rep)
		}
	}
	return reports, nil
}

// kicsPath normaliza caminhos vindos do container (../../scan/..., ../, ./, scan/).
func kicsPath(p string) string {
	fp := filepath.ToSlash(p)
	for strings.HasPrefix(fp, "../") {
		fp = strings.TrimPrefix(fp, "../")
	}
	fp = strings.TrimPrefix(fp, "./")
	fp = strings.TrimPrefix(fp, "/scan/")
	fp = strings.TrimPrefix(fp, "scan/")
	return filepath.FromSlash(fp)
}

func kicsSeverity(s string) model.Severity {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CRITICAL":
		return model.SevCritical
	case "HIGH":
		return model.SevHigh
	case "MEDIUM":
		return model.SevMedium
	case "LOW":
		return model.SevLow
	case "INFO", "TRACE":
		return model.SevStyle
	default:
		return model.SevUnspecified
	}
}
