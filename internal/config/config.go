package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DataDir          string `mapstructure:"data_dir" yaml:"data_dir"`
	CategoryLimit    int    `mapstructure:"category_limit" yaml:"category_limit"`
	SeriesRowLimit   int    `mapstructure:"series_row_limit" yaml:"series_row_limit"`
	OutputFormat     string `mapstructure:"output_format" yaml:"output_format"`
	DefaultDelimiter string `mapstructure:"default_delimiter" yaml:"default_delimiter"`

	// Logging
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// HTTP surface
	ListenAddr  string `mapstructure:"listen_addr" yaml:"listen_addr"`
	MaxUploadMB int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
}

// Dir returns ~/.tabloom.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".tabloom"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.tabloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env (including a local .env) > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TABLOOM")
	v.AutomaticEnv()

	v.SetDefault("data_dir", "")
	v.SetDefault("category_limit", 12)
	v.SetDefault("series_row_limit", 200)
	v.SetDefault("output_format", "markdown")
	v.SetDefault("default_delimiter", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("listen_addr", "127.0.0.1:8765")
	v.SetDefault("max_upload_mb", 32)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// Resolve data_dir default: ~/.tabloom/data
	if c.DataDir == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		c.DataDir = filepath.Join(dir, "data")
	}
	return &c, nil
}
