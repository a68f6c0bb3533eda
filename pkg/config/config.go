package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. IRISTOUR_OUT_DIR.
const EnvPrefix = "IRISTOUR"

// Config is the walkthrough configuration.
type Config struct {
	// DataPath is the CSV to analyze. Empty means the embedded Iris table.
	DataPath        string  `mapstructure:"data_path" yaml:"data_path"`
	OutDir          string  `mapstructure:"out_dir" yaml:"out_dir" validate:"required"`
	Plots           bool    `mapstructure:"plots" yaml:"plots"`
	HeadRows        int     `mapstructure:"head_rows" yaml:"head_rows" validate:"min=1"`
	PlotWidthIn     float64 `mapstructure:"plot_width_in" yaml:"plot_width_in" validate:"gte=6"`
	PlotHeightIn    float64 `mapstructure:"plot_height_in" yaml:"plot_height_in" validate:"gte=6"`
	DespineOffsetPt float64 `mapstructure:"despine_offset_pt" yaml:"despine_offset_pt" validate:"min=0"`
	Alpha           float64 `mapstructure:"alpha" yaml:"alpha" validate:"gt=0,lt=1"`
	LogLevel        string  `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat       string  `mapstructure:"log_format" yaml:"log_format" validate:"oneof=text json"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OutDir:          "plots",
		Plots:           true,
		HeadRows:        5,
		PlotWidthIn:     10,
		PlotHeightIn:    10,
		DespineOffsetPt: 10,
		Alpha:           0.05,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("data_path", d.DataPath)
	v.SetDefault("out_dir", d.OutDir)
	v.SetDefault("plots", d.Plots)
	v.SetDefault("head_rows", d.HeadRows)
	v.SetDefault("plot_width_in", d.PlotWidthIn)
	v.SetDefault("plot_height_in", d.PlotHeightIn)
	v.SetDefault("despine_offset_pt", d.DespineOffsetPt)
	v.SetDefault("alpha", d.Alpha)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
}

// Load loads configuration from defaults, an optional YAML file and the environment.
// Precedence: env > config file > defaults. An explicit cfgFile must exist;
// without one, ./iristour.yaml is read when present.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("iristour")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks field ranges and enumerations.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s fails %q (got %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// YAML renders c as a YAML document.
func (c *Config) YAML() ([]byte, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return b, nil
}

// Save writes c to path as YAML, creating the parent directory.
func Save(c *Config, path string) error {
	b, err := c.YAML()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
