package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sena-ops/reportconverter/internal/adapters"
	"github.com/Sena-ops/reportconverter/internal/model"
	"github.com/Sena-ops/reportconverter/internal/sarif"
)

var ErrUnsupportedFormat = errors.New("formato de saída não suportado")

const DocumentVersion = 1

type Document struct {
	Version  int          `json:"version"`
	Analyzer AnalyzerInfo `json:"analyzer"`
	Reports  []ReportJSON `json:"reports"`
}

type AnalyzerInfo struct {
	ToolName string `json:"tool_name"`
	Name     string `json:"name"`
	URL      string `json:"url"`
}

type ReportJSON struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	Column       int    `json:"column"`
	Message      string `json:"message"`
	CheckerName  string `json:"checker_name"`
	Severity     string `json:"severity"`
	AnalyzerName string `json:"analyzer_name"`
	HelpURI      string `json:"help_uri,omitempty"`
}

// Write grava os reports em outDir/<base>.<ext> no formato pedido e devolve o
// caminho gerado.
func Write(format string, reports []model.Report, outDir, base string, a adapters.Analyzer) (string, error) {
	sorted := append([]model.Report(nil), reports...)
	model.SortReports(sorted)

	switch strings.ToLower(format) {
	case "sarif":
		return sarif.Export(sorted, outDir, base, sarif.Driver{Name: a.Name(), InformationURI: a.URL()})
	case "json":
		data, err := json.MarshalIndent(NewDocument(sorted, a), "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal json: %w", err)
		}
		return writeFile(outDir, base+".json", data)
	case "markdown", "md":
		return writeFile(outDir, base+".md", []byte(Markdown(sorted, a)))
	default:
		return "", fmt.Errorf("%w: '%s'", ErrUnsupportedFormat, format)
	}
}

func NewDocument(reports []model.Report, a adapters.Analyzer) Document {
	doc := Document{
		Version:  DocumentVersion,
		Analyzer: AnalyzerInfo{ToolName: a.ToolName(), Name: a.Name(), URL: a.URL()},
		Reports:  make([]ReportJSON, 0, len(reports)),
	}
	for _, r := range reports {
		doc.Reports = append(doc.Reports, ReportJSON{
			File:         r.FilePath(),
			Line:         r.Line,
			Column:       r.Column,
			Message:      r.Message,
			CheckerName:  r.CheckerName,
			Severity:     string(r.Severity),
			AnalyzerName: r.AnalyzerName,
			HelpURI:      r.HelpURI,
		})
	}
	return doc
}

// Markdown agrupa os reports por arquivo, mantendo a ordem recebida.
func Markdown(reports []model.Report, a adapters.Analyzer) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("## 📋 Resultado %s\n\n", a.Name()))
	if len(reports) == 0 {
		builder.WriteString("Nenhum report encontrado.\n")
		return builder.String()
	}

	var order []string
	byFile := map[string][]model.Report{}
	for _, r := range reports {
		p := r.FilePath()
		if _, ok := byFile[p]; !ok {
			order = append(order, p)
		}
		byFile[p] = append(byFile[p], r)
	}

	for _, p := range order {
		rs := byFile[p]
		builder.WriteString(fmt.Sprintf("### %s (%d report(s))\n\n", p, len(rs)))
		builder.WriteString("| Linha | Coluna | Severidade | Checker | Mensagem |\n")
		builder.WriteString("|---|---|---|---|---|\n")
		for _, r := range rs {
			builder.WriteString(fmt.Sprintf("| %d | %d | %s | %s | %s |\n",
				r.Line, r.Column, r.Severity, r.CheckerName, escapeCell(r.Message)))
		}
		builder.WriteString("\n")
	}
	return builder.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func writeFile(outDir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("criar dir de saída: %w", err)
	}
	outPath := filepath.Join(outDir, name)
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return "", fmt.Errorf("escrever %s: %w", outPath, err)
	}
	return outPath, nil
}
