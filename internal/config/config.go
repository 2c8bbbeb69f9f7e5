package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env string // local | dev | prod

	// Catalog
	CatalogSources []string
	StorePath      string

	// Providers
	HTTPTimeoutSec int
	MaxWorkers     int

	// SFTP
	SFTPHost                  string
	SFTPPort                  int
	SFTPUser                  string
	SFTPPass                  string
	SFTPDir                   string
	SFTPInsecureIgnoreHostKey bool
	SFTPKnownHostKey          string
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Variables already set win over .env entries.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env: getenv("STUDYHUB_ENV", "local"),

		CatalogSources: splitList(os.Getenv("STUDYHUB_CATALOG")),
		StorePath:      getenv("STUDYHUB_STORE", "studyhub-store.json"),

		HTTPTimeoutSec: getenvInt("STUDYHUB_HTTP_TIMEOUT_SEC", 30),
		MaxWorkers:     getenvInt("STUDYHUB_MAX_WORKERS", 4),

		SFTPHost:                  os.Getenv("SFTP_HOST"),
		SFTPPort:                  getenvInt("SFTP_PORT", 22),
		SFTPUser:                  os.Getenv("SFTP_USER"),
		SFTPPass:                  os.Getenv("SFTP_PASS"),
		SFTPDir:                   getenv("SFTP_DIR", "/inbound"),
		SFTPInsecureIgnoreHostKey: getenvBool("SFTP_INSECURE_IGNORE_HOSTKEY", true),
		SFTPKnownHostKey:          os.Getenv("SFTP_KNOWN_HOST_KEY"),
	}
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return def
	}
	return v
}

func getenvBool(k string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
