// Package config defines the configuration of the ratenum command, parses
// it from command-line flags, and layers environment variables and an
// optional .env file underneath.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/netip"
	"slices"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/ratenum/internal/errors"
	"github.com/agbru/ratenum/internal/logging"
	"github.com/agbru/ratenum/internal/ui"
)

// EnvPrefix is the prefix of every environment variable read by ratenum.
const EnvPrefix = "RATENUM_"

// Default configuration values.
const (
	// DefaultCount is the number of values printed in list mode.
	DefaultCount = 20
	// DefaultKind is the integer kind backing the enumeration.
	DefaultKind = "uint32"
	// DefaultTimeout bounds a whole run.
	DefaultTimeout = time.Minute
	// DefaultPort is the server port.
	DefaultPort = "8080"
	// DefaultFormat is the list output format.
	DefaultFormat = "text"
	// DefaultLogLevel is the zerolog level.
	DefaultLogLevel = "info"
	// DefaultTheme is the color theme used on terminals.
	DefaultTheme = "dark"

	// AllKinds selects every registered kind for comparison mode.
	AllKinds = "all"
)

// Formats lists the accepted values of -format.
var Formats = []string{"text", "json", "yaml"}

// AppConfig is the parsed configuration of one run.
type AppConfig struct {
	// Count is how many values list mode prints.
	Count int
	// Offset is the index of the first value printed in list mode.
	Offset uint64
	// At is the single index to compute; only meaningful when HasAt is true.
	At uint64
	// HasAt is true when -at was given on the command line or in the
	// environment.
	HasAt bool
	// Kind is an integer kind name, or AllKinds.
	Kind string
	// Timeout bounds the run.
	Timeout time.Duration
	// Format is "text", "json" or "yaml".
	Format string
	// ShowIndex prefixes text output lines with their index.
	ShowIndex bool
	// Details adds kind, duration and decimal value to single index output.
	Details bool
	// Quiet prints bare results without banners or progress.
	Quiet bool
	// OutputFile, when set, also writes the values to this path.
	OutputFile string
	// ServerMode starts the HTTP server instead of printing.
	ServerMode bool
	// Port is the server listen port.
	Port string
	// TrustedProxies is a comma-separated list of IPs or CIDRs whose
	// forwarding headers the server honours.
	TrustedProxies string
	// NoColor disables colors. NO_COLOR and non-terminal output do too.
	NoColor bool
	// Theme names the color theme: "dark", "light" or "none".
	Theme string
	// EnvFile is an optional .env file read for RATENUM_ variables.
	EnvFile string
	// LogLevel is the zerolog level name.
	LogLevel string
	// ShowVersion prints version information and exits.
	ShowVersion bool
	// Completion, when set, prints a completion script for this shell.
	Completion string
}

// Validate checks the semantic consistency of the configuration.
//
// Parameters:
//   - kinds: The registered integer kind names.
//
// Returns:
//   - error: A ConfigError describing the first problem found, or nil.
func (c AppConfig) Validate(kinds []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.Count < 0 {
		return apperrors.NewConfigError("count cannot be negative: %d", c.Count)
	}
	if c.Kind != AllKinds && !slices.Contains(kinds, c.Kind) {
		return apperrors.NewConfigError("unrecognized kind: '%s'. Valid kinds are: 'all' or [%s]", c.Kind, strings.Join(kinds, ", "))
	}
	if c.Kind == AllKinds && !c.HasAt && !c.ServerMode {
		return apperrors.NewConfigError("-kind all compares kinds at one index and requires -at")
	}
	if !slices.Contains(Formats, c.Format) {
		return apperrors.NewConfigError("unrecognized format: '%s'. Valid formats are: [%s]", c.Format, strings.Join(Formats, ", "))
	}
	if _, ok := ui.ThemeByName(c.Theme); !ok {
		return apperrors.NewConfigError("unrecognized theme: '%s'", c.Theme)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if _, err := ParseTrustedProxies(c.TrustedProxies); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	return nil
}

// ParseTrustedProxies parses a comma-separated list of IP addresses and CIDR
// prefixes. A bare address is a single-host prefix. Empty input yields nil.
func ParseTrustedProxies(list string) ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			p, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// ParseConfig parses args into an AppConfig, applies environment overrides
// and validates the result. Priority is flags, then the process environment,
// then the -env-file, then defaults.
//
// Parameters:
//   - programName: The name used in the usage message.
//   - args: The command-line arguments, without the program name.
//   - errorWriter: Receives parse errors and usage.
//   - kinds: The registered integer kind names.
//
// Returns:
//   - AppConfig: The populated configuration.
//   - error: flag.ErrHelp for -h, or an error if parsing or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, kinds []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	kindHelp := fmt.Sprintf("Integer kind: one of [%s], or 'all' to compare kinds at -at.", strings.Join(kinds, ", "))

	config := AppConfig{}
	fs.IntVar(&config.Count, "n", DefaultCount, "Number of values to print.")
	fs.Uint64Var(&config.Offset, "offset", 0, "Index of the first value to print.")
	fs.Func("at", "Compute the single value at this zero-based index.", func(s string) error {
		return config.setAt(s)
	})
	fs.StringVar(&config.Kind, "kind", DefaultKind, kindHelp)
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.StringVar(&config.Format, "format", DefaultFormat, "Output format: text, json or yaml.")
	fs.BoolVar(&config.ShowIndex, "index", false, "Prefix each text line with its index.")
	fs.BoolVar(&config.Details, "d", false, "Display details with single index results.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode: bare results for scripts.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Alias for -q.")
	fs.StringVar(&config.OutputFile, "o", "", "Also write the values to this file.")
	fs.StringVar(&config.OutputFile, "output", "", "Alias for -o.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.StringVar(&config.TrustedProxies, "trusted-proxies", "", "Comma-separated IPs or CIDRs of reverse proxies whose forwarding headers are trusted.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR).")
	fs.StringVar(&config.Theme, "theme", DefaultTheme, "Color theme: dark, light or none.")
	fs.StringVar(&config.EnvFile, "env-file", "", "Read RATENUM_ variables from this .env file.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn or error.")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print version information and exit.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for bash, zsh or fish.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(errorWriter, "Configuration error: unexpected argument %q\n", fs.Arg(0))
		fs.Usage()
		return AppConfig{}, apperrors.NewConfigError("unexpected argument %q", fs.Arg(0))
	}

	env, err := newEnvSource(&config, fs)
	if err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	env.applyOverrides(&config, fs)

	config.Kind = strings.ToLower(config.Kind)
	config.Format = strings.ToLower(config.Format)
	if err := config.Validate(kinds); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, err
	}
	return config, nil
}

func (c *AppConfig) setAt(s string) error {
	at, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return errors.New("must be a non-negative integer")
	}
	c.At = at
	c.HasAt = true
	return nil
}
