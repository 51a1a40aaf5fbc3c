package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// envSource resolves RATENUM_ variables from the process environment first
// and from an optional .env file second. The file is parsed with
// godotenv.Read, so its values never leak into os.Environ.
type envSource struct {
	file map[string]string
}

// newEnvSource loads the .env file named by -env-file, or by RATENUM_ENV_FILE
// when the flag is absent. No file is read when neither is set.
func newEnvSource(config *AppConfig, fs *flag.FlagSet) (*envSource, error) {
	if !isFlagSet(fs, "env-file") {
		config.EnvFile = os.Getenv(EnvPrefix + "ENV_FILE")
	}
	src := &envSource{file: map[string]string{}}
	if config.EnvFile == "" {
		return src, nil
	}
	values, err := godotenv.Read(config.EnvFile)
	if err != nil {
		return nil, err
	}
	src.file = values
	return src, nil
}

// lookup returns the value of EnvPrefix+key, or "" when unset everywhere.
func (e *envSource) lookup(key string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return e.file[EnvPrefix+key]
}

func (e *envSource) getString(key, defaultVal string) string {
	if val := e.lookup(key); val != "" {
		return val
	}
	return defaultVal
}

// getUint64 returns defaultVal when the variable is unset or malformed.
func (e *envSource) getUint64(key string, defaultVal uint64) uint64 {
	if val := e.lookup(key); val != "" {
		if parsed, err := strconv.ParseUint(val, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func (e *envSource) getInt(key string, defaultVal int) int {
	if val := e.lookup(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getBool accepts "true", "1" and "yes", or "false", "0" and "no", in any case.
func (e *envSource) getBool(key string, defaultVal bool) bool {
	switch strings.ToLower(e.lookup(key)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// getDuration accepts time.ParseDuration formats such as "30s" or "1h30m".
func (e *envSource) getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := e.lookup(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet reports whether a flag was given on the command line.
func isFlagSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// applyOverrides fills every field whose flag was not given from the
// environment. Supported variables, all prefixed with RATENUM_:
//
//	N, OFFSET, AT, KIND, TIMEOUT, FORMAT, INDEX, DETAILS, QUIET, OUTPUT,
//	SERVER, PORT, TRUSTED_PROXIES, NO_COLOR, THEME, LOG_LEVEL, ENV_FILE
func (e *envSource) applyOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "n") {
		config.Count = e.getInt("N", config.Count)
	}
	if !isFlagSet(fs, "offset") {
		config.Offset = e.getUint64("OFFSET", config.Offset)
	}
	if !isFlagSet(fs, "at") {
		if val := e.lookup("AT"); val != "" {
			_ = config.setAt(val)
		}
	}
	if !isFlagSet(fs, "timeout") {
		config.Timeout = e.getDuration("TIMEOUT", config.Timeout)
	}

	if !isFlagSet(fs, "kind") {
		config.Kind = e.getString("KIND", config.Kind)
	}
	if !isFlagSet(fs, "format") {
		config.Format = e.getString("FORMAT", config.Format)
	}
	if !isFlagSet(fs, "o", "output") {
		config.OutputFile = e.getString("OUTPUT", config.OutputFile)
	}
	if !isFlagSet(fs, "port") {
		config.Port = e.getString("PORT", config.Port)
	}
	if !isFlagSet(fs, "trusted-proxies") {
		config.TrustedProxies = e.getString("TRUSTED_PROXIES", config.TrustedProxies)
	}
	if !isFlagSet(fs, "theme") {
		config.Theme = e.getString("THEME", config.Theme)
	}
	if !isFlagSet(fs, "log-level") {
		config.LogLevel = e.getString("LOG_LEVEL", config.LogLevel)
	}

	if !isFlagSet(fs, "index") {
		config.ShowIndex = e.getBool("INDEX", config.ShowIndex)
	}
	if !isFlagSet(fs, "d", "details") {
		config.Details = e.getBool("DETAILS", config.Details)
	}
	if !isFlagSet(fs, "q", "quiet") {
		config.Quiet = e.getBool("QUIET", config.Quiet)
	}
	if !isFlagSet(fs, "server") {
		config.ServerMode = e.getBool("SERVER", config.ServerMode)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = e.getBool("NO_COLOR", config.NoColor)
	}
}
