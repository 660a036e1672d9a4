// Package metadata publishes issuance-token metadata documents to an
// S3-compatible object store so gateways can serve them by key.
package metadata

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config controls the off-chain metadata publisher. The gateway that token
// URIs point at is a chain param, not part of this config.
type Config struct {
	// Enabled turns uploading on. When false documents are only rendered.
	Enabled bool `toml:"enabled"`

	// Prefix is prepended to every object key.
	Prefix string `toml:"prefix"`

	// Timeout bounds a single upload.
	Timeout duration `toml:"timeout"`

	S3 S3Config `toml:"s3"`
}

// S3Config holds S3-compatible object storage parameters.
type S3Config struct {
	Endpoint       string `toml:"endpoint"`
	Region         string `toml:"region"`
	Bucket         string `toml:"bucket"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	UseSSL         bool   `toml:"use_ssl"`
	ForcePathStyle bool   `toml:"force_path_style"`
}

// duration wraps time.Duration so TOML strings like "5s" decode.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Enabled: false,
		Prefix:  "moonpool/metadata",
		Timeout: duration{5 * time.Second},
		S3: S3Config{
			Endpoint:       "http://localhost:9000",
			Region:         "us-east-1",
			Bucket:         "moonpool-metadata",
			ForcePathStyle: true,
		},
	}
}

// Load reads a TOML configuration file at path, merges it on top of the
// defaults and applies MOONPOOL_METADATA_* environment overrides. An empty
// path skips the file. The result is not validated.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("metadata: decode %s: %w", path, err)
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setBool(&cfg.Enabled, "MOONPOOL_METADATA_ENABLED")
	setStr(&cfg.Prefix, "MOONPOOL_METADATA_PREFIX")
	setDuration(&cfg.Timeout, "MOONPOOL_METADATA_TIMEOUT")

	setStr(&cfg.S3.Endpoint, "MOONPOOL_METADATA_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "MOONPOOL_METADATA_S3_REGION")
	setStr(&cfg.S3.Bucket, "MOONPOOL_METADATA_S3_BUCKET")
	setStr(&cfg.S3.AccessKey, "MOONPOOL_METADATA_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "MOONPOOL_METADATA_S3_SECRET_KEY")
	setBool(&cfg.S3.UseSSL, "MOONPOOL_METADATA_S3_USE_SSL")
	setBool(&cfg.S3.ForcePathStyle, "MOONPOOL_METADATA_S3_FORCE_PATH_STYLE")
}

// Validate reports every missing or invalid setting at once.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	var errs []string
	if c.Timeout.Duration <= 0 {
		errs = append(errs, "timeout must be positive")
	}
	if c.S3.Bucket == "" {
		errs = append(errs, "s3: bucket must not be empty")
	}
	if c.S3.Region == "" {
		errs = append(errs, "s3: region must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("metadata config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}
