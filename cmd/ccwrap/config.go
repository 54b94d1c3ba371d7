package main

import (
	"os"

	"github.com/rs/zerolog"
)

// config holds the small set of knobs ccwrap reads from flags with
// environment-variable fallback — there is no config file format and no
// remote config service, since both would only matter for a long-lived
// daemon, and daemonization is out of scope.
type config struct {
	storageURL string
	logLevel   string
}

func loadConfig(flagStorageURL, flagLogLevel string) config {
	c := config{storageURL: flagStorageURL, logLevel: flagLogLevel}
	if c.storageURL == "" {
		c.storageURL = os.Getenv("CCWRAP_STORAGE_URL")
	}
	if c.logLevel == "" {
		c.logLevel = os.Getenv("CCWRAP_LOG_LEVEL")
	}
	return c
}

// zerologLevel maps the same name set the original's SCCACHE_LOG_LEVEL
// bootstrap accepted (off/trace/debug/info/warn/error) onto zerolog's
// levels, defaulting to info when unset or unrecognized.
func zerologLevel(name string) zerolog.Level {
	switch name {
	case "off":
		return zerolog.Disabled
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
