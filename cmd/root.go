package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/Sena-ops/reportconverter/internal/config"
	"github.com/Sena-ops/reportconverter/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version é sobrescrita no build via -ldflags.
var Version = "0.1.0"

type rootOptions struct {
	cfgFile string
	debug   bool
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "reportconverter",
		Short:         "Converte resultados de analisadores estáticos para um formato comum",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(viper.New(), opts.cfgFile)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			if err := logging.InitLogger(cfg.Logger, opts.debug); err != nil {
				return err
			}
			logging.Logger.Debugw("Config carregada", "arquivo", opts.cfgFile, "export", cfg.Convert.Export)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "Arquivo de config (padrão ./reportconverter.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Habilita logs em nível debug")

	cmd.AddCommand(newConvertCmd(opts))
	cmd.AddCommand(newAnalyzersCmd())
	return cmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := execute(ctx, newRootCmd())
	stop()
	cobra.CheckErr(err)
}

// execute roda o comando e descarrega o logger mesmo quando RunE falha.
func execute(ctx context.Context, root *cobra.Command) error {
	defer logging.Sync()
	return root.ExecuteContext(ctx)
}
