package adapters

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sajari/fuzzy"
)

var ErrUnknownAnalyzer = errors.New("analyzer não suportado")

type Factory func(opts Options) Analyzer

var analyzers = map[string]Factory{
	"pvs-studio": func(o Options) Analyzer { return NewPVSStudio(o) },
	"semgrep":    func(o Options) Analyzer { return NewSemgrep(o) },
	"trivy":      func(o Options) Analyzer { return NewTrivy(o) },
	"kics":       func(o Options) Analyzer { return NewKICS(o) },
}

func Get(name string, opts Options) (Analyzer, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	fn, ok := analyzers[key]
	if !ok {
		if s := Suggest(key); len(s) > 0 {
			return nil, fmt.Errorf("%w: '%s' (você quis dizer %s?)", ErrUnknownAnalyzer, name, strings.Join(s, ", "))
		}
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownAnalyzer, name)
	}
	return fn(opts), nil
}

// Names devolve os nomes registrados em ordem alfabética.
func Names() []string {
	names := make([]string, 0, len(analyzers))
	for n := range analyzers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func List() []Analyzer {
	out := make([]Analyzer, 0, len(analyzers))
	for _, n := range Names() {
		out = append(out, analyzers[n](Options{}))
	}
	return out
}

// Suggest procura nomes registrados próximos de name (até 2 edições) ou que
// começam com ele.
func Suggest(name string) []string {
	m := fuzzy.NewModel()
	m.SetThreshold(1)
	m.SetDepth(2)
	m.Train(Names())

	seen := map[string]bool{}
	var out []string
	for _, s := range m.Suggestions(name, false) {
		if _, ok := analyzers[s]; ok && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, n := range Names() {
		if name != "" && strings.HasPrefix(n, name) && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
