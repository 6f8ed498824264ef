// Package config loads service settings from an optional .env file, an
// optional YAML file and environment variables, in that order of precedence
// (environment wins).
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"idcheck/internal/verification/face"
	dErrors "idcheck/pkg/domain-errors"
	pstrings "idcheck/pkg/platform/strings"
)

// Config is the full service configuration.
type Config struct {
	Server       Server       `yaml:"server"`
	Log          Log          `yaml:"log"`
	Verification Verification `yaml:"verification"`
	AWS          AWS          `yaml:"aws"`
	Redis        RedisConfig  `yaml:"redis"`
	Breaker      Breaker      `yaml:"breaker"`
}

type Server struct {
	Addr            string        `yaml:"addr"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// JWTSigningKey enables bearer authentication on the API when set.
	JWTSigningKey string `yaml:"jwt_signing_key"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Verification struct {
	FaceThreshold   float64       `yaml:"face_threshold"`
	EvidenceTimeout time.Duration `yaml:"evidence_timeout"`
	ExtraStopWords  []string      `yaml:"extra_stop_words"`
}

type AWS struct {
	Region string `yaml:"region"`
}

// RedisConfig configures the optional OCR result cache. An empty URL disables it.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	OCRCacheTTL  time.Duration `yaml:"ocr_cache_ttl"`
}

type Breaker struct {
	FailureThreshold int           `yaml:"failure_threshold"`
	SuccessThreshold int           `yaml:"success_threshold"`
	Cooldown         time.Duration `yaml:"cooldown"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: Server{
			Addr:            ":8080",
			MaxUploadBytes:  15 << 20,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: Log{Level: "info", Format: "text"},
		Verification: Verification{
			FaceThreshold:   face.DefaultThreshold,
			EvidenceTimeout: 20 * time.Second,
		},
		AWS: AWS{Region: "us-east-1"},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			OCRCacheTTL:  15 * time.Minute,
		},
		Breaker: Breaker{
			FailureThreshold: 5,
			SuccessThreshold: 2,
			Cooldown:         30 * time.Second,
		},
	}
}

// Load reads .env (if present), then the YAML file named by
// IDCHECK_CONFIG_FILE (if set), then environment overrides, and validates
// the result. Invalid values are errors, never clamped.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidConfig, "read .env")
	}

	cfg := Default()
	if path := os.Getenv("IDCHECK_CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidConfig, "read config file")
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidConfig, "parse config file "+path)
	}
	return nil
}

type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	e := envReader{lookup: lookup}

	e.str("IDCHECK_ADDR", &c.Server.Addr)
	e.int64("IDCHECK_MAX_UPLOAD_BYTES", &c.Server.MaxUploadBytes)
	e.duration("IDCHECK_SHUTDOWN_TIMEOUT", &c.Server.ShutdownTimeout)
	e.str("JWT_SIGNING_KEY", &c.Server.JWTSigningKey)

	e.str("IDCHECK_LOG_LEVEL", &c.Log.Level)
	e.str("IDCHECK_LOG_FORMAT", &c.Log.Format)

	e.float("IDCHECK_FACE_THRESHOLD", &c.Verification.FaceThreshold)
	e.duration("IDCHECK_EVIDENCE_TIMEOUT", &c.Verification.EvidenceTimeout)
	if v, ok := lookup("IDCHECK_EXTRA_STOP_WORDS"); ok {
		c.Verification.ExtraStopWords = pstrings.SplitList(v)
	}
	c.Verification.ExtraStopWords = pstrings.DedupeAndTrimUpper(c.Verification.ExtraStopWords)

	e.str("AWS_REGION", &c.AWS.Region)

	e.str("REDIS_URL", &c.Redis.URL)
	e.int("REDIS_POOL_SIZE", &c.Redis.PoolSize)
	e.int("REDIS_MIN_IDLE_CONNS", &c.Redis.MinIdleConns)
	e.duration("REDIS_DIAL_TIMEOUT", &c.Redis.DialTimeout)
	e.duration("REDIS_READ_TIMEOUT", &c.Redis.ReadTimeout)
	e.duration("REDIS_WRITE_TIMEOUT", &c.Redis.WriteTimeout)
	e.duration("IDCHECK_OCR_CACHE_TTL", &c.Redis.OCRCacheTTL)

	e.int("IDCHECK_BREAKER_FAILURES", &c.Breaker.FailureThreshold)
	e.int("IDCHECK_BREAKER_SUCCESSES", &c.Breaker.SuccessThreshold)
	e.duration("IDCHECK_BREAKER_COOLDOWN", &c.Breaker.Cooldown)

	return e.err
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if err := face.ValidateThreshold(c.Verification.FaceThreshold); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidConfig, "face_threshold")
	}
	if c.Verification.EvidenceTimeout <= 0 {
		return invalid("evidence_timeout must be positive")
	}
	if c.Server.Addr == "" {
		return invalid("server addr is required")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return invalid("max_upload_bytes must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return invalid("shutdown_timeout must be positive")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return invalid(fmt.Sprintf("log format %q must be text or json", c.Log.Format))
	}
	if c.Redis.URL != "" && c.Redis.OCRCacheTTL <= 0 {
		return invalid("ocr_cache_ttl must be positive when redis is configured")
	}
	if c.Breaker.FailureThreshold <= 0 || c.Breaker.SuccessThreshold <= 0 {
		return invalid("breaker thresholds must be positive")
	}
	if c.Breaker.Cooldown < 0 {
		return invalid("breaker cooldown must not be negative")
	}
	return nil
}

func invalid(msg string) error {
	return dErrors.New(dErrors.CodeInvalidConfig, msg)
}

// envReader applies overrides and keeps the first parse error.
type envReader struct {
	lookup lookupFunc
	err    error
}

func (e *envReader) get(key string) (string, bool) {
	if e.err != nil {
		return "", false
	}
	v, ok := e.lookup(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (e *envReader) fail(key string, err error) {
	e.err = dErrors.Wrap(err, dErrors.CodeInvalidConfig, "invalid "+key)
}

func (e *envReader) str(key string, dst *string) {
	if v, ok := e.get(key); ok {
		*dst = v
	}
}

func (e *envReader) int(key string, dst *int) {
	if v, ok := e.get(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			e.fail(key, err)
			return
		}
		*dst = n
	}
}

func (e *envReader) int64(key string, dst *int64) {
	if v, ok := e.get(key); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			e.fail(key, err)
			return
		}
		*dst = n
	}
}

func (e *envReader) float(key string, dst *float64) {
	if v, ok := e.get(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) {
			e.fail(key, fmt.Errorf("not a number: %q", v))
			return
		}
		*dst = f
	}
}

func (e *envReader) duration(key string, dst *time.Duration) {
	if v, ok := e.get(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			e.fail(key, err)
			return
		}
		*dst = d
	}
}
