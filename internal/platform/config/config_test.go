package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "idcheck/pkg/domain-errors"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 90.0, cfg.Verification.FaceThreshold)
	assert.Equal(t, 20*time.Second, cfg.Verification.EvidenceTimeout)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.Server.JWTSigningKey)
}

func TestLoad_PrecedenceEnvOverYAMLOverDotenv(t *testing.T) {
	dir := chdirTemp(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("IDCHECK_LOG_LEVEL=debug\nIDCHECK_ADDR=:7000\n"), 0o600))

	yamlPath := filepath.Join(dir, "idcheck.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
server:
  addr: ":9000"
verification:
  face_threshold: 85
  evidence_timeout: 5s
  extra_stop_words: [fatura, " Boleto "]
redis:
  url: redis://localhost:6379/0
  ocr_cache_ttl: 1m
`), 0o600))

	t.Setenv("IDCHECK_CONFIG_FILE", yamlPath)
	t.Setenv("IDCHECK_FACE_THRESHOLD", "92.5")
	// godotenv.Load leaves values in the process environment
	t.Cleanup(func() {
		_ = os.Unsetenv("IDCHECK_LOG_LEVEL")
		_ = os.Unsetenv("IDCHECK_ADDR")
	})

	cfg, err := Load()
	require.NoError(t, err)

	// .env only fills variables that are not already set
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, 92.5, cfg.Verification.FaceThreshold)
	assert.Equal(t, 5*time.Second, cfg.Verification.EvidenceTimeout)
	assert.Equal(t, []string{"FATURA", "BOLETO"}, cfg.Verification.ExtraStopWords)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, time.Minute, cfg.Redis.OCRCacheTTL)
}

func TestLoad_ExtraStopWordsFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("IDCHECK_EXTRA_STOP_WORDS", "boleto, nota,,boleto")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"BOLETO", "NOTA"}, cfg.Verification.ExtraStopWords)
}

func TestLoad_InvalidValuesAreFatal(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"threshold above range", "IDCHECK_FACE_THRESHOLD", "100.5"},
		{"threshold below range", "IDCHECK_FACE_THRESHOLD", "-1"},
		{"threshold not a number", "IDCHECK_FACE_THRESHOLD", "high"},
		{"threshold NaN", "IDCHECK_FACE_THRESHOLD", "NaN"},
		{"bad duration", "IDCHECK_EVIDENCE_TIMEOUT", "soon"},
		{"zero duration", "IDCHECK_EVIDENCE_TIMEOUT", "0s"},
		{"bad int", "REDIS_POOL_SIZE", "many"},
		{"bad log format", "IDCHECK_LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.True(t, dErrors.Is(err, dErrors.CodeInvalidConfig))
		})
	}
}

func TestLoad_MissingConfigFileIsFatal(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("IDCHECK_CONFIG_FILE", filepath.Join(dir, "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeInvalidConfig))
}

func TestValidate_ThresholdBoundsInclusive(t *testing.T) {
	for _, v := range []float64{0, 100} {
		cfg := Default()
		cfg.Verification.FaceThreshold = v
		assert.NoError(t, cfg.Validate())
	}
}
