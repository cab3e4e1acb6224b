package converter

import (
	"context"
	"io"
	"sync"

	"github.com/Sena-ops/reportconverter/internal/adapters"
	"github.com/Sena-ops/reportconverter/internal/logging"
	"github.com/Sena-ops/reportconverter/internal/model"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	Workers  int
	Progress io.Writer // nil = sem barra de progresso
	Log      *zap.SugaredLogger
}

// FileResult guarda o que saiu de um arquivo de resultado.
type FileResult struct {
	Path    string
	Reports []model.Report
	Err     error
}

type Result struct {
	Files  []FileResult // mesma ordem dos arquivos de entrada
	Failed int
}

// Reports concatena os reports de todos os arquivos na ordem de entrada.
func (r Result) Reports() []model.Report {
	var out []model.Report
	for _, f := range r.Files {
		out = append(out, f.Reports...)
	}
	return out
}

// Convert roda a.GetReports em cada arquivo com no máximo opts.Workers em
// paralelo. Falha em um arquivo não interrompe os demais; só o cancelamento
// do ctx encerra antes do fim.
func Convert(ctx context.Context, a adapters.Analyzer, files []string, opts Options) (Result, error) {
	log := opts.Log
	if log == nil {
		log = logging.Named("converter")
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil && len(files) > 0 {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("convertendo "+a.Name()),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	results := make([]FileResult, len(files))
	var mu sync.Mutex
	failed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports, err := a.GetReports(path)
			results[i] = FileResult{Path: path, Reports: reports, Err: err}
			if err != nil {
				log.Errorw("Falha ao converter resultado", "analyzer", a.ToolName(), "arquivo", path, "erro", err)
				mu.Lock()
				failed++
				mu.Unlock()
			} else {
				log.Debugw("Resultado convertido", "arquivo", path, "reports", len(reports))
			}
			if bar != nil {
				mu.Lock()
				_ = bar.Add(1)
				mu.Unlock()
			}
			return nil
		})
	}
	err := g.Wait()
	if bar != nil {
		_ = bar.Finish()
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return Result{}, err
	}
	return Result{Files: results, Failed: failed}, nil
}
