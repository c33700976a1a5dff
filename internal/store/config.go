package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"temario/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const configFileName = "config.yaml"

// Config holds user preferences. Sources, lowest precedence first: defaults,
// <config dir>/config.yaml, ./.env, TEMARIO_* environment variables. CLI flags override
// the loaded values.
type Config struct {
	// DataDir is the store directory; empty means discover .temario from the cwd.
	DataDir string `mapstructure:"data_dir" json:"dataDir,omitempty"`
	// File is the default outline file, relative to DataDir unless absolute.
	File           string `mapstructure:"file" json:"file" validate:"required"`
	DepthPolicy    string `mapstructure:"depth_policy" json:"depthPolicy" validate:"oneof=literal guarded subtree"`
	MaxTextBytes   int    `mapstructure:"max_text_bytes" json:"maxTextBytes" validate:"min=16,max=1048576"`
	Backup         bool   `mapstructure:"backup" json:"backup"`
	CheckConflicts bool   `mapstructure:"check_conflicts" json:"checkConflicts"`
}

var validate = validator.New()

func DefaultConfig() Config {
	return Config{
		File:         DefaultFileName,
		DepthPolicy:  "guarded",
		MaxTextBytes: model.DefaultMaxTextBytes,
	}
}

// ConfigDir returns the directory holding config.yaml.
func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.temario).
	if v := strings.TrimSpace(os.Getenv("TEMARIO_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, storeDirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("file", def.File)
	v.SetDefault("depth_policy", def.DepthPolicy)
	v.SetDefault("max_text_bytes", def.MaxTextBytes)
	v.SetDefault("backup", def.Backup)
	v.SetDefault("check_conflicts", def.CheckConflicts)
	v.SetEnvPrefix("TEMARIO")
	v.AutomaticEnv()
	return v
}

// LoadConfig reads the layered configuration and validates it.
func LoadConfig() (Config, error) {
	// .env in the working directory is optional.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	v := newViper()
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.DepthPolicy = strings.ToLower(strings.TrimSpace(cfg.DepthPolicy))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SaveConfig writes cfg to <config dir>/config.yaml.
func SaveConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	v := viper.New()
	v.Set("data_dir", cfg.DataDir)
	v.Set("file", cfg.File)
	v.Set("depth_policy", cfg.DepthPolicy)
	v.Set("max_text_bytes", cfg.MaxTextBytes)
	v.Set("backup", cfg.Backup)
	v.Set("check_conflicts", cfg.CheckConflicts)
	return v.WriteConfigAs(path)
}
