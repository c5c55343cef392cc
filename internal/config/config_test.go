package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "defcompose.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.True(t, cfg.ToStdout())

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, level)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, "log_level: debug\nmerge_default_first: true\nstrict: true\noutput: merged.yaml\n")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, &Config{
		LogLevel:          "debug",
		MergeDefaultFirst: true,
		Strict:            true,
		Output:            "merged.yaml",
	}, cfg)
	assert.False(t, cfg.ToStdout())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "log_level: debug\nstrict: false\n")
	t.Setenv("DEFCOMPOSE_STRICT", "true")
	t.Setenv("DEFCOMPOSE_LOG_LEVEL", "warn")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.True(t, cfg.Strict)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_BinderOverridesEnv(t *testing.T) {
	t.Setenv("DEFCOMPOSE_OUTPUT", "env.yaml")

	cfg, err := Load("", func(v *viper.Viper) error {
		v.Set(KeyOutput, "flag.yaml")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "flag.yaml", cfg.Output)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   func(t *testing.T) string
		errMsg string
	}{
		{
			name:   "missing file",
			path:   func(t *testing.T) string { return filepath.Join(t.TempDir(), "none.yaml") },
			errMsg: "config file not found",
		},
		{
			name:   "malformed file",
			path:   func(t *testing.T) string { return writeConfig(t, "log_level: [debug\n") },
			errMsg: "failed to read config",
		},
		{
			name:   "unknown level",
			path:   func(t *testing.T) string { return writeConfig(t, "log_level: chatty\n") },
			errMsg: `unknown log level: invalid level: "chatty"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_Level(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{in: "DEBUG", want: log.DebugLevel},
		{in: "", want: log.InfoLevel},
		{in: "warn", want: log.WarnLevel},
		{in: "error", want: log.ErrorLevel},
		{in: "fatal", want: log.FatalLevel},
		{in: "warning", want: log.InfoLevel, wantErr: true},
		{in: "chatty", want: log.InfoLevel, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := (&Config{LogLevel: tt.in}).Level()
			if tt.wantErr {
				require.ErrorIs(t, err, log.ErrInvalidLevel)
				assert.Contains(t, err.Error(), "unknown log level")
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
