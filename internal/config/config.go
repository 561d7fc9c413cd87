package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	CodebookCache int
	LogLevel      string
	MaxUpload     int64
	ChunkSize     int
}

// Load reads HUFF_* environment variables. Unset or unparsable values fall back to defaults.
func Load() Config {
	return Config{
		Port:          getenv("HUFF_PORT", "8080"),
		DatabaseURL:   os.Getenv("HUFF_DATABASE_URL"),
		CodebookCache: getint("HUFF_CODEBOOK_CACHE", 128),
		LogLevel:      getenv("HUFF_LOG_LEVEL", "INFO"),
		MaxUpload:     int64(getint("HUFF_MAX_UPLOAD", 32<<20)),
		ChunkSize:     getint("HUFF_CHUNK_SIZE", 1<<20),
	}
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
