package logging

import (
	"os"
	"strings"

	"github.com/Sena-ops/reportconverter/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger é o logger global do CLI. Antes de InitLogger é um no-op.
var Logger = zap.NewNop().Sugar()

func InitLogger(cfg config.LoggerConfig, debug bool) error {
	logger, err := Build(cfg, debug, zapcore.Lock(os.Stderr))
	if err != nil {
		return err
	}
	Logger = logger.Sugar()
	return nil
}

// Build monta o logger: console (ou json) no writer informado e, se
// cfg.LogFile estiver setado, uma cópia json com rotação via lumberjack.
func Build(cfg config.LoggerConfig, debug bool, out zapcore.WriteSyncer) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, err
		}
	}

	var encCfg zapcore.EncoderConfig
	if debug {
		level.SetLevel(zap.DebugLevel)
		encCfg = zap.NewDevelopmentEncoderConfig()
	} else {
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	var enc zapcore.Encoder
	if strings.EqualFold(cfg.Format, "json") {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	cores := []zapcore.Core{zapcore.NewCore(enc, out, level)}

	if cfg.LogFile != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), fileWriter, level))
	}

	opts := []zap.Option{zap.AddStacktrace(zap.ErrorLevel)}
	if debug {
		opts = append(opts, zap.AddCaller(), zap.Development())
	}
	return zap.New(zapcore.NewTee(cores...), opts...), nil
}

// Named devolve um sub-logger do global com o nome do componente.
func Named(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

func Sync() {
	_ = Logger.Sync()
}
