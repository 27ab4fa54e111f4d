package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err, "a missing config file is not an error")
	assert.Equal(t, &ServerConfig{}, cfg)

	timeout, err := cfg.Timeout()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, timeout, "default timeout applies")
}

func TestLoadYml(t *testing.T) {
	dir := t.TempDir()
	content := `
tapBaseURL: http://localhost:9090/TAP
requestTimeout: 45s
httpAddr: :8700
logLevel: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exoquery.yml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9090/TAP", cfg.TAPBaseURL)
	assert.Equal(t, ":8700", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)

	timeout, err := cfg.Timeout()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, timeout)
}

func TestLoadYamlFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exoquery.yaml"), []byte("logLevel: warn\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadInvalidYaml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exoquery.yml"), []byte("tapBaseURL: [broken\n"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestTimeoutValidation(t *testing.T) {
	cfg := &ServerConfig{RequestTimeout: "not-a-duration"}
	_, err := cfg.Timeout()
	assert.Error(t, err)

	cfg = &ServerConfig{RequestTimeout: "-5s"}
	_, err = cfg.Timeout()
	assert.Error(t, err)
}
