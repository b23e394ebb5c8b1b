package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, 1, cfg.VersionID)
	assert.Equal(t, "catppuccin-mocha", cfg.Theme)
	assert.False(t, cfg.Debug)
	assert.NotContains(t, cfg.HistoryDir, "~")
	assert.Equal(t, path, cfg.Path())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"api_base_url: http://api.internal:9000\n"+
			"public_api_base_url: https://bible.example.org\n"+
			"version_id: 4\n"+
			"theme: dracula\n"), 0o644))
	t.Setenv("SCRIPTURE_THEME", "rosepine-dawn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.VersionID)
	assert.Equal(t, "rosepine-dawn", cfg.Theme)
	assert.Equal(t, "http://api.internal:9000", cfg.APIBase(Server))
	assert.Equal(t, "https://bible.example.org", cfg.APIBase(Public))
}

func TestAPIBaseFallback(t *testing.T) {
	cfg := &Config{APIBaseURL: "http://server"}
	assert.Equal(t, "http://server", cfg.APIBase(Public))

	cfg = &Config{PublicAPIBaseURL: "http://public"}
	assert.Equal(t, "http://public", cfg.APIBase(Server))
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [unterminated\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.SetTheme("solarized-light")
	cfg.SetVersionID(9)
	require.NoError(t, Save(cfg))

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "solarized-light", again.Theme)
	assert.Equal(t, 9, again.VersionID)
}

func TestSaveKeepsOverridesOutOfFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("public_api_base_url: https://bible.example.org\n"), 0o644))
	t.Setenv("SCRIPTURE_API_BASE_URL", "http://temporary-override:1")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://temporary-override:1", cfg.APIBaseURL)

	// A one-off flag value is assigned directly and must not be persisted.
	cfg.VersionID = 7
	cfg.SetTheme("dracula")
	require.NoError(t, Save(cfg))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	written := string(raw)
	assert.Contains(t, written, "theme: dracula")
	assert.Contains(t, written, "public_api_base_url: https://bible.example.org")
	for _, key := range []string{"api_base_url:", "version_id", "history_dir", "log_file", "debug"} {
		assert.NotContains(t, strings.ReplaceAll(written, "public_api_base_url:", ""), key)
	}
}

func TestSaveWithoutLoad(t *testing.T) {
	assert.Error(t, Save(&Config{}))
}
