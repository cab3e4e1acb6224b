package model

import (
	"sort"
)

type Severity string

const (
	SevUnspecified Severity = "UNSPECIFIED"
	SevStyle       Severity = "STYLE"
	SevLow         Severity = "LOW"
	SevMedium      Severity = "MEDIUM"
	SevHigh        Severity = "HIGH"
	SevCritical    Severity = "CRITICAL"
)

// Report é a representação comum de um achado, independente do analisador.
type Report struct {
	File         *File    // handle compartilhado por caminho absoluto
	Line         int      // 1-based
	Column       int      // 0 = sem coluna
	Message      string   // descrição curta
	CheckerName  string   // código/regra do analisador
	Severity     Severity // severidade normalizada
	AnalyzerName string   // "pvs-studio" | "semgrep" | "trivy" | "kics"
	HelpURI      string   // link docs/regra (se disponível)
}

func NewReport(file *File, line, column int, message, checkerName string, severity Severity) Report {
	return Report{
		File:        file,
		Line:        line,
		Column:      column,
		Message:     message,
		CheckerName: checkerName,
		Severity:    severity,
	}
}

// FilePath devolve o caminho do arquivo ou "" quando o report não tem handle.
func (r Report) FilePath() string {
	if r.File == nil {
		return ""
	}
	return r.File.Path
}

func SortReports(rs []Report) {
	sort.SliceStable(rs, func(i, j int) bool {
		pi, pj := rs[i].FilePath(), rs[j].FilePath()
		if pi != pj {
			return pi < pj
		}
		if rs[i].Line != rs[j].Line {
			return rs[i].Line < rs[j].Line
		}
		if rs[i].Column != rs[j].Column {
			return rs[i].Column < rs[j].Column
		}
		return rs[i].CheckerName < rs[j].CheckerName
	})
}
