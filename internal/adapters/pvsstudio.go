package adapters

import (
	"errors"
	"fmt"

	"github.com/Sena-ops/reportconverter/internal/model"
)

var ErrSeverityOutOfRange = errors.New("severity rank out of range")

// pvsSeverities é indexada pelo campo "level" do PVS-Studio.
var pvsSeverities = [...]model.Severity{
	model.SevUnspecified,
	model.SevHigh,
	model.SevMedium,
	model.SevLow,
}

type pvsJSON struct {
	Warnings []struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		Level     *int   `json:"level"`
		Positions []struct {
			File   string `json:"file"`
			Line   int    `json:"line"`
			Column int    `json:"column"`
		} `json:"positions"`
	} `json:"warnings"`
}

// PVSStudio converte o JSON gerado pelo PVS-Studio (plog-converter -t json).
type PVSStudio struct {
	base
}

func NewPVSStudio(opts Options) *PVSStudio {
	return &PVSStudio{base{opts: opts}}
}

func (*PVSStudio) ToolName() string { return "pvs-studio" }
func (*PVSStudio) Name() string     { return "PVS-Studio" }
func (*PVSStudio) URL() string      { return "https://pvs-studio.com/en/" }

func (a *PVSStudio) GetReports(path string) ([]model.Report, error) {
	log := a.logger(a.ToolName())

	var doc pvsJSON
	if !loadResult(log, a, path, &doc) {
		return nil, nil
	}

	var reports []model.Report
	cache := model.FileCache{}
	for _, w := range doc.Warnings {
		for _, pos := range w.Positions {
			file, ok := a.resolveSourceFile(log, pos.File, pos.File, cache)
			if !ok {
				continue
			}
			sev, err := DiagnosticSeverity(w.Level)
			if err != nil {
				return nil, fmt.Errorf("%s: warning %s: %w", path, w.Code, err)
			}

			r := model.NewReport(file, pos.Line, pos.Column, w.Message, w.Code, sev)
			r.AnalyzerName = a.ToolName()
			reports = append(reports, r)
		}
	}
	return reports, nil
}

// DiagnosticSeverity mapeia o rank do PVS-Studio para o rótulo comum.
// level ausente vale rank 0 (UNSPECIFIED).
func DiagnosticSeverity(level *int) (model.Severity, error) {
	rank := 0
	if level != nil {
		rank = *level
	}
	if rank < 0 || rank >= len(pvsSeverities) {
		return "", fmt.Errorf("%w: %d", ErrSeverityOutOfRange, rank)
	}
	return pvsSeverities[rank], nil
}
