package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/Sena-ops/reportconverter/internal/adapters"
	"github.com/Sena-ops/reportconverter/internal/converter"
	"github.com/Sena-ops/reportconverter/internal/discovery"
	"github.com/Sena-ops/reportconverter/internal/export"
	"github.com/Sena-ops/reportconverter/internal/logging"
	"github.com/Sena-ops/reportconverter/internal/model"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type convertOptions struct {
	analyzer   string
	outputDir  string
	exportFmt  string
	fileBase   string
	sourceRoot string
	recursive  bool
	workers    int
	progress   bool
}

func newConvertCmd(root *rootOptions) *cobra.Command {
	o := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [caminho...]",
		Short: "Converte arquivos de resultado de um analisador",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// flags explícitas vencem a config
			cc := root.cfg.Convert
			if !cmd.Flags().Changed("output") {
				o.outputDir = cc.OutputDir
			}
			if !cmd.Flags().Changed("export") {
				o.exportFmt = cc.Export
			}
			if !cmd.Flags().Changed("workers") {
				o.workers = cc.Workers
			}
			if !cmd.Flags().Changed("recursive") {
				o.recursive = cc.Recursive
			}
			return runConvert(cmd, o, args)
		},
	}

	cmd.Flags().StringVarP(&o.analyzer, "type", "t", "", "Tipo do analisador (ex: pvs-studio, semgrep, trivy, kics)")
	cmd.Flags().StringVarP(&o.outputDir, "output", "o", "", "Diretório de saída")
	cmd.Flags().StringVarP(&o.exportFmt, "export", "e", "", "Formato da saída (json, markdown, sarif)")
	cmd.Flags().StringVarP(&o.fileBase, "name", "n", "", "Nome base do arquivo gerado (padrão: tipo do analisador)")
	cmd.Flags().StringVar(&o.sourceRoot, "source-root", "", "Base para caminhos relativos dos arquivos-fonte")
	cmd.Flags().BoolVarP(&o.recursive, "recursive", "r", false, "Procura resultados recursivamente em diretórios")
	cmd.Flags().IntVarP(&o.workers, "workers", "w", 0, "Arquivos convertidos em paralelo")
	cmd.Flags().BoolVar(&o.progress, "progress", false, "Mostra barra de progresso")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func runConvert(cmd *cobra.Command, o *convertOptions, paths []string) error {
	log := logging.Named("convert")

	a, err := adapters.Get(o.analyzer, adapters.Options{SourceRoot: o.sourceRoot})
	if err != nil {
		return err
	}

	files, err := discovery.DetectAll(paths, o.recursive)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Warnw("Nenhum arquivo de resultado encontrado", "caminhos", paths)
	}
	if a.ToolName() == "pvs-studio" {
		for _, f := range files {
			if !discovery.LooksLikePVSResult(f) {
				log.Debugw("Arquivo não parece um resultado do PVS-Studio", "arquivo", f)
			}
		}
	}
	log.Infow("Convertendo resultados", "analyzer", a.ToolName(), "arquivos", len(files), "workers", o.workers)

	var progress io.Writer
	if o.progress {
		progress = cmd.ErrOrStderr()
	}
	res, err := converter.Convert(cmd.Context(), a, files, converter.Options{
		Workers:  o.workers,
		Progress: progress,
		Log:      log,
	})
	if err != nil {
		return err
	}

	reports := res.Reports()
	base := o.fileBase
	if base == "" {
		base = a.ToolName()
	}
	outPath, err := export.Write(o.exportFmt, reports, o.outputDir, base, a)
	if err != nil {
		return err
	}
	log.Infow("Resultado salvo com sucesso", "formato", o.exportFmt, "arquivo", outPath)

	printSummary(cmd.OutOrStdout(), a, reports, outPath)

	if res.Failed > 0 {
		return fmt.Errorf("%d arquivo(s) de resultado não puderam ser convertidos", res.Failed)
	}
	return nil
}

var summaryOrder = []model.Severity{
	model.SevCritical, model.SevHigh, model.SevMedium, model.SevLow, model.SevStyle, model.SevUnspecified,
}

func printSummary(w io.Writer, a adapters.Analyzer, reports []model.Report, outPath string) {
	counts := map[model.Severity]int{}
	for _, r := range reports {
		counts[r.Severity]++
	}

	fmt.Fprintf(w, "✅ %s: %d report(s) → %s\n", a.Name(), len(reports), outPath)
	var parts []string
	for _, s := range summaryOrder {
		if counts[s] == 0 {
			continue
		}
		parts = append(parts, severityColor(s).Sprintf("%s: %d", s, counts[s]))
	}
	if len(parts) > 0 {
		fmt.Fprintf(w, "    %s\n", strings.Join(parts, "  "))
	}
}

func severityColor(s model.Severity) *color.Color {
	switch s {
	case model.SevCritical, model.SevHigh:
		return color.New(color.FgRed, color.Bold)
	case model.SevMedium:
		return color.New(color.FgYellow)
	case model.SevLow:
		return color.New(color.FgBlue)
	default:
		return color.New(color.Faint)
	}
}
