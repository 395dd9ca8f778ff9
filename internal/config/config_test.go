package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"port": 9090,
		"database_url": "postgres://localhost/resumes",
		"default_template": "classic",
		"thumbnail_width": 400,
		"uncompressed": true,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/resumes", cfg.DatabaseURL)
	assert.Equal(t, "classic", cfg.DefaultTemplate)
	assert.Equal(t, 400, cfg.ThumbnailWidth)
	assert.True(t, cfg.Uncompressed)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults are valid", cfg: Defaults},
		{name: "empty is valid", cfg: Config{}},
		{name: "port out of range", cfg: Config{Port: 70000}, wantErr: "'port'"},
		{name: "negative thumbnail width", cfg: Config{ThumbnailWidth: -1}, wantErr: "'thumbnail_width'"},
		{name: "quality above 100", cfg: Config{ThumbnailQuality: 101}, wantErr: "'thumbnail_quality'"},
		{name: "unknown default template", cfg: Config{DefaultTemplate: "nope"}, wantErr: "unknown template"},
		{name: "missing chrome binary", cfg: Config{ChromePath: "/no/such/chrome"}, wantErr: "chrome binary not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{
		Port:            9000,
		DefaultTemplate: "tech",
	}

	merged := cfg.MergeWithDefaults(Defaults)

	assert.Equal(t, 9000, merged.Port, "explicit value wins")
	assert.Equal(t, "tech", merged.DefaultTemplate)
	assert.Equal(t, "out", merged.OutputDir, "empty value takes default")
	assert.Equal(t, 300, merged.ThumbnailWidth)
	assert.Equal(t, 75, merged.ThumbnailQuality)
	assert.Equal(t, Config{Port: 9000, DefaultTemplate: "tech"}, cfg, "receiver is not modified")
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{OutputDir: "build"}
	merged := cfg.MergeWithDefaults(Config{})
	assert.Equal(t, cfg, merged)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("PORT", "7070")
	t.Setenv("CORS_ORIGIN", "https://app.example.com")

	cfg := Config{DatabaseURL: "postgres://file/db", Port: 8080}
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "https://app.example.com", cfg.CORSOrigin)

	t.Setenv("PORT", "not-a-number")
	require.Error(t, cfg.ApplyEnv())
}
