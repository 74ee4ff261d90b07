package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objshell/internal/parser"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func TestKeyForEnv(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"OBJSHELL_LOG_LEVEL", "log-level", true},
		{"OBJSHELL_PLAIN", "plain", true},
		{"OBJSHELL_", "", false},
		{"OTHER_LOG_LEVEL", "", false},
		{"LOG_LEVEL", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			key, ok := KeyForEnv(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, key)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	configDir := t.TempDir()

	cfg, err := Load(viper.New(), Options{ConfigDir: configDir, WorkDir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, "objshell> ", cfg.Prompt)
	assert.Equal(t, ",", cfg.ArgumentSeparator)
	assert.Equal(t, parser.Comma, cfg.Delimiter())
	assert.Equal(t, filepath.Join(configDir, "history"), cfg.HistoryFile)
	assert.Empty(t, cfg.JournalPath)
	assert.False(t, cfg.Plain)
	assert.False(t, cfg.TestMode)
}

func TestLoad_Precedence(t *testing.T) {
	configDir := t.TempDir()
	workDir := t.TempDir()

	writeFile(t, configDir, "config.yaml", "argument-separator: \";\"\nprompt: yaml>\n")
	writeFile(t, configDir, ".env", "OBJSHELL_PROMPT=config-env>\nOBJSHELL_JOURNAL_PATH=config.db\nOTHER_KEY=ignored\n")
	writeFile(t, workDir, ".env", "OBJSHELL_PROMPT=local>\nOBJSHELL_LOG_LEVEL=info\n")
	t.Setenv("OBJSHELL_LOG_LEVEL", "debug")

	cfg, err := Load(viper.New(), Options{ConfigDir: configDir, WorkDir: workDir})
	require.NoError(t, err)

	assert.Equal(t, ";", cfg.ArgumentSeparator)
	assert.Equal(t, parser.Delimiter{Sep: ";", TrimSpace: true}, cfg.Delimiter())
	assert.Equal(t, "local>", cfg.Prompt)
	assert.Equal(t, "config.db", cfg.JournalPath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("OBJSHELL_JOURNAL_PATH", "env.db")

	flags := pflag.NewFlagSet("objshell", pflag.ContinueOnError)
	flags.String(KeyJournalPath, "", "journal path")
	require.NoError(t, flags.Parse([]string{"--journal-path", "flag.db"}))

	v := viper.New()
	require.NoError(t, v.BindPFlag(KeyJournalPath, flags.Lookup(KeyJournalPath)))

	cfg, err := Load(v, Options{ConfigDir: t.TempDir(), WorkDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "flag.db", cfg.JournalPath)
}

func TestLoad_TestModeSkipsFiles(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, workDir, ".env", "OBJSHELL_PROMPT=local>\n")
	t.Setenv("OBJSHELL_TEST_MODE", "true")

	cfg, err := Load(viper.New(), Options{ConfigDir: t.TempDir(), WorkDir: workDir})
	require.NoError(t, err)

	assert.True(t, cfg.TestMode)
	assert.Equal(t, "objshell> ", cfg.Prompt)
	assert.Empty(t, cfg.HistoryFile)
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	configDir := t.TempDir()
	writeFile(t, configDir, "config.yaml", "prompt: [unterminated\n")

	_, err := Load(viper.New(), Options{ConfigDir: configDir, WorkDir: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestUserConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	dir, err := UserConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/objshell", dir)
}
