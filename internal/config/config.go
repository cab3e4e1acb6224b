package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "REPORTCONVERTER"

// Config agrupa as seções lidas do YAML / variáveis de ambiente.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Convert ConvertConfig `mapstructure:"convert" yaml:"convert"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"` // console | json
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

type ConvertConfig struct {
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	Export    string `mapstructure:"export" yaml:"export"` // json | markdown | sarif
	Workers   int    `mapstructure:"workers" yaml:"workers"`
	Recursive bool   `mapstructure:"recursive" yaml:"recursive"`
}

var exportFormats = map[string]bool{"json": true, "markdown": true, "sarif": true}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)

	v.SetDefault("convert.output_dir", ".reportconverter")
	v.SetDefault("convert.export", "json")
	v.SetDefault("convert.workers", 4)
	v.SetDefault("convert.recursive", false)
}

// Load lê o arquivo de config (se houver) e as variáveis REPORTCONVERTER_*.
// Arquivo ausente não é erro quando cfgFile é vazio.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("reportconverter")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return nil, fmt.Errorf("ler config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config inválida: %w", err)
	}
	return &cfg, nil
}

func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("unmarshal defaults: %v", err))
	}
	return &cfg
}

func (c *Config) Validate() error {
	if c.Convert.Workers <= 0 {
		return fmt.Errorf("convert.workers deve ser positivo")
	}
	if !exportFormats[strings.ToLower(c.Convert.Export)] {
		return fmt.Errorf("convert.export '%s' não suportado (json, markdown, sarif)", c.Convert.Export)
	}
	switch strings.ToLower(c.Logger.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format '%s' não suportado (console, json)", c.Logger.Format)
	}
	return nil
}
