package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// LocalConfigName is the per-project config filename searched for upward
// from the working directory.
const LocalConfigName = ".benchscore.toml"

// Config holds all application configuration
type Config struct {
	General GeneralConfig `toml:"general"`
	Report  ReportConfig  `toml:"report"`
}

// GeneralConfig holds spec and storage locations
type GeneralConfig struct {
	SpecPath  string `toml:"spec_path"`
	RunsDir   string `toml:"runs_dir"`
	Evaluator string `toml:"evaluator"`
}

// ReportConfig holds aggregation output settings
type ReportConfig struct {
	OutputDir string `toml:"output_dir"`
	Basename  string `toml:"basename"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			SpecPath: filepath.Join("benchmarks", "ereefs.yaml"),
			RunsDir:  filepath.Join("results", "runs"),
		},
		Report: ReportConfig{
			OutputDir: "results",
			Basename:  "all_results",
		},
	}
}

// Load reads configuration from a TOML file, falling back to defaults
// when the file does not exist
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.General.SpecPath = ExpandPath(cfg.General.SpecPath)
	cfg.General.RunsDir = ExpandPath(cfg.General.RunsDir)
	cfg.Report.OutputDir = ExpandPath(cfg.Report.OutputDir)

	return cfg, nil
}

// LoadWithLocalFallback loads an explicit config path if given, otherwise a
// .benchscore.toml found in the current directory or any parent, otherwise
// the default config location.
func LoadWithLocalFallback(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if local := FindLocalConfig(); local != "" {
		return Load(local)
	}
	return Load(DefaultConfigPath())
}

// FindLocalConfig searches the working directory and its parents for a
// local config file. Returns "" when none is found.
func FindLocalConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, LocalConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "benchscore", "config.toml")
}
