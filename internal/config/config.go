// Package config loads objshell settings from defaults, .env files, an optional YAML config
// file, environment variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"objshell/internal/parser"
)

// EnvPrefix prefixes every environment variable and .env key objshell reads.
const EnvPrefix = "OBJSHELL"

// Configuration keys, shared by flags, environment variables and files.
const (
	KeyLogLevel          = "log-level"
	KeyLogFile           = "log-file"
	KeyTestMode          = "test-mode"
	KeyPrompt            = "prompt"
	KeyHistoryFile       = "history-file"
	KeyJournalPath       = "journal-path"
	KeyArgumentSeparator = "argument-separator"
	KeyPlain             = "plain"
)

// Config is the resolved objshell configuration.
type Config struct {
	LogLevel          string `mapstructure:"log-level"`
	LogFile           string `mapstructure:"log-file"`
	TestMode          bool   `mapstructure:"test-mode"`
	Prompt            string `mapstructure:"prompt"`
	HistoryFile       string `mapstructure:"history-file"`
	JournalPath       string `mapstructure:"journal-path"`
	ArgumentSeparator string `mapstructure:"argument-separator"`
	Plain             bool   `mapstructure:"plain"`
}

// Delimiter returns the grammar delimiter for the configured argument separator.
func (c *Config) Delimiter() parser.Delimiter {
	return parser.DelimiterFor(c.ArgumentSeparator)
}

// Options locate the configuration sources. Empty directories use the user's config
// directory and the current working directory.
type Options struct {
	ConfigDir string
	WorkDir   string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyTestMode, false)
	v.SetDefault(KeyPrompt, "objshell> ")
	v.SetDefault(KeyHistoryFile, "")
	v.SetDefault(KeyJournalPath, "")
	v.SetDefault(KeyArgumentSeparator, ",")
	v.SetDefault(KeyPlain, false)
}

// Load resolves the configuration held by v. Sources are layered lowest first: defaults,
// config.yaml in the config directory, the config directory .env, the working directory .env,
// then OBJSHELL_* environment variables. Flags bound to v take precedence over all of them.
// Files are skipped in test mode.
func Load(v *viper.Viper, opts Options) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := UserConfigDir()
		if err == nil {
			configDir = dir
		}
	}

	if !v.GetBool(KeyTestMode) {
		if err := loadFiles(v, configDir, opts.WorkDir); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if cfg.HistoryFile == "" && configDir != "" && !cfg.TestMode {
		cfg.HistoryFile = filepath.Join(configDir, "history")
	}
	return &cfg, nil
}

func loadFiles(v *viper.Viper, configDir, workDir string) error {
	if configDir != "" {
		yamlPath := filepath.Join(configDir, "config.yaml")
		if fileExists(yamlPath) {
			v.SetConfigFile(yamlPath)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read config file %s: %w", yamlPath, err)
			}
		}
		if err := mergeDotEnv(v, filepath.Join(configDir, ".env")); err != nil {
			return err
		}
	}

	if workDir == "" {
		dir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		workDir = dir
	}
	return mergeDotEnv(v, filepath.Join(workDir, ".env"))
}

// mergeDotEnv merges the OBJSHELL_* entries of a .env file into v's config layer. A missing
// file is not an error.
func mergeDotEnv(v *viper.Viper, envPath string) error {
	if !fileExists(envPath) {
		return nil
	}
	data, err := os.ReadFile(envPath)
	if err != nil {
		return fmt.Errorf("failed to read .env file %s: %w", envPath, err)
	}
	envMap, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse .env file %s: %w", envPath, err)
	}

	values := make(map[string]any)
	for key, value := range envMap {
		if name, ok := KeyForEnv(key); ok {
			values[name] = value
		}
	}
	if len(values) == 0 {
		return nil
	}
	return v.MergeConfigMap(values)
}

// KeyForEnv maps an environment variable name such as OBJSHELL_LOG_LEVEL to its
// configuration key. It reports false for names without the objshell prefix.
func KeyForEnv(name string) (string, bool) {
	rest, ok := strings.CutPrefix(name, EnvPrefix+"_")
	if !ok || rest == "" {
		return "", false
	}
	return strings.ReplaceAll(strings.ToLower(rest), "_", "-"), true
}

// UserConfigDir returns $XDG_CONFIG_HOME/objshell, falling back to ~/.config/objshell.
func UserConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, "objshell"), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
