package adapters

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sena-ops/reportconverter/internal/logging"
	"github.com/Sena-ops/reportconverter/internal/model"
	"go.uber.org/zap"
)

// Analyzer é o contrato que todo conversor de resultado implementa.
// GetReports nunca falha por arquivo ausente ou JSON inválido: nesses casos
// loga e devolve lista vazia. Erro só sai para defeitos do próprio resultado
// que não podem ser mapeados (ex.: severidade fora da tabela).
type Analyzer interface {
	ToolName() string
	Name() string
	URL() string
	GetReports(path string) ([]model.Report, error)
}

// Options é compartilhado por todos os adapters.
type Options struct {
	Log *zap.SugaredLogger
	// SourceRoot é a base para caminhos relativos do resultado; vazio = cwd.
	SourceRoot string
}

type base struct {
	opts Options
}

func (b base) logger(tool string) *zap.SugaredLogger {
	if b.opts.Log != nil {
		return b.opts.Log
	}
	return logging.Named(tool)
}

// loadResult lê path inteiro, descarta bytes UTF-8 inválidos e decodifica em v.
// Devolve false (já logado) quando não há nada para converter.
func loadResult(log *zap.SugaredLogger, a Analyzer, path string, v any) bool {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Infof("Report file does not exist: %s", path)
		return false
	}

	b, err := os.ReadFile(path)
	if err == nil {
		err = json.Unmarshal(bytes.ToValidUTF8(b, nil), v)
	}
	if err != nil {
		log.Warnw("Failed to parse the given analyzer result. Please give a valid json file generated by "+a.Name()+".",
			"arquivo", path, "erro", err)
		return false
	}
	return true
}

// resolveSourceFile resolve o caminho do arquivo-fonte para absoluto e
// devolve o handle compartilhado. Arquivo inexistente é logado e ignorado.
func (b base) resolveSourceFile(log *zap.SugaredLogger, original, normalized string, cache model.FileCache) (*model.File, bool) {
	if strings.TrimSpace(normalized) == "" {
		log.Warnf("Source file does not exist: %q", original)
		return nil, false
	}
	p := normalized
	if b.opts.SourceRoot != "" && !filepath.IsAbs(p) {
		p = filepath.Join(b.opts.SourceRoot, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		log.Warnw("Source file path cannot be resolved", "arquivo", original, "erro", err)
		return nil, false
	}
	if _, err := os.Stat(abs); err != nil {
		log.Warnf("Source file does not exist: %s", original)
		return nil, false
	}
	return model.GetOrCreateFileFrom(abs, original, cache), true
}
