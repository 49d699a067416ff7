// Package config reads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every setting the server needs.
type Config struct {
	Port             string
	LogLevel         string
	StorageType      string
	LocalStoragePath string
	DataSourceName   string
	S3Bucket         string
	S3Prefix         string
	PublicURL        string
	ExportScale      float64
	MaxUploadBytes   int64
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Port:             "8080",
		LogLevel:         "info",
		StorageType:      "memory",
		LocalStoragePath: "data/photos",
		DataSourceName:   "data/photos.db",
		ExportScale:      2,
		MaxUploadBytes:   32 << 20,
	}
}

// Load reads envFiles (missing files are ignored) and then the environment.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, falling back to Default.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("PORT", &cfg.Port)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("STORAGE_TYPE", &cfg.StorageType)
	str("LOCAL_STORAGE_PATH", &cfg.LocalStoragePath)
	str("DATA_SOURCE_NAME", &cfg.DataSourceName)
	str("S3_BUCKET", &cfg.S3Bucket)
	str("S3_PREFIX", &cfg.S3Prefix)
	str("PUBLIC_URL", &cfg.PublicURL)

	if v, ok := lookup("EXPORT_SCALE"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return Config{}, fmt.Errorf("EXPORT_SCALE: want a positive number, got %q", v)
		}
		cfg.ExportScale = f
	}
	if v, ok := lookup("MAX_UPLOAD_BYTES"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("MAX_UPLOAD_BYTES: want a positive integer, got %q", v)
		}
		cfg.MaxUploadBytes = n
	}
	return cfg, nil
}

// BaseURL is the public origin used in image links.
func (c Config) BaseURL() string {
	if c.PublicURL != "" {
		return c.PublicURL
	}
	return "http://localhost:" + c.Port
}
