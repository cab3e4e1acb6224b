package sarif

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sena-ops/reportconverter/internal/model"
	"github.com/google/uuid"
)

const (
	Version = "2.1.0"
	// schema RTM reconhecido por GitHub/VSCode
	Schema = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
)

type Log struct {
	Version string `json:"version"`
	Schema  string `json:"$schema"`
	Runs    []Run  `json:"runs"`
}

type Run struct {
	Tool              Tool              `json:"tool"`
	AutomationDetails AutomationDetails `json:"automationDetails"`
	Results           []Result          `json:"results"`
}

type AutomationDetails struct {
	GUID string `json:"guid"`
}

type Tool struct {
	Driver Driver `json:"driver"`
}

type Driver struct {
	Name           string `json:"name"`
	Version        string `json:"version,omitempty"`
	InformationURI string `json:"informationUri,omitempty"`
	Rules          []Rule `json:"rules,omitempty"`
}

type Rule struct {
	ID      string `json:"id"`
	HelpURI string `json:"helpUri,omitempty"`
}

type Result struct {
	RuleID    string     `json:"ruleId"`
	Message   Message    `json:"message"`
	Level     string     `json:"level"` // error, warning, note
	Locations []Location `json:"locations"`
}

type Message struct {
	Text string `json:"text"`
}

type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

type ArtifactLocation struct {
	URI string `json:"uri"`
}

type Region struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
}

// Build monta o log SARIF 2.1.0 com uma run para os reports informados.
// As regras saem dos checkers distintos, na ordem em que aparecem.
func Build(reports []model.Report, driver Driver) *Log {
	results := make([]Result, 0, len(reports))
	rules := []Rule{}
	seenRule := map[string]bool{}

	for _, r := range reports {
		if !seenRule[r.CheckerName] {
			seenRule[r.CheckerName] = true
			rules = append(rules, Rule{ID: r.CheckerName, HelpURI: r.HelpURI})
		}

		fileURI := toURI(r.FilePath())
		if strings.TrimSpace(fileURI) == "" {
			fileURI = "UNKNOWN"
		}
		start := r.Line
		if start <= 0 {
			start = 1
		}

		results = append(results, Result{
			RuleID: r.CheckerName,
			Level:  sevToLevel(r.Severity),
			Message: Message{
				Text: strings.TrimSpace(r.Message),
			},
			Locations: []Location{
				{
					PhysicalLocation: PhysicalLocation{
						ArtifactLocation: ArtifactLocation{
							URI: fileURI,
						},
						Region: Region{
							StartLine:   start,
							StartColumn: r.Column,
						},
					},
				},
			},
		})
	}

	if len(rules) > 0 {
		driver.Rules = rules
	}
	return &Log{
		Version: Version,
		Schema:  Schema,
		Runs: []Run{
			{
				Tool:              Tool{Driver: driver},
				AutomationDetails: AutomationDetails{GUID: uuid.NewString()},
				Results:           results,
			},
		},
	}
}

// Export grava <outDir>/<fileBase>.sarif e devolve o caminho.
func Export(reports []model.Report, outDir, fileBase string, driver Driver) (string, error) {
	log := Build(reports, driver)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("criar dir sarif: %w", err)
	}
	outPath := filepath.Join(outDir, fileBase+".sarif")

	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal sarif: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return "", fmt.Errorf("escrever sarif: %w", err)
	}
	return outPath, nil
}

func sevToLevel(s model.Severity) string {
	switch s {
	case model.SevCritical, model.SevHigh:
		return "error"
	case model.SevMedium:
		return "warning"
	default:
		return "note"
	}
}

// toURI devolve uma URI file:// para caminhos absolutos e o caminho com
// barras normais para os relativos.
func toURI(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		s := filepath.ToSlash(p)
		if !strings.HasPrefix(s, "/") {
			s = "/" + s
		}
		return "file://" + s
	}
	p = filepath.ToSlash(p)
	for strings.HasPrefix(p, "../") {
		p = strings.TrimPrefix(p, "../")
	}
	return strings.TrimPrefix(p, "./")
}
