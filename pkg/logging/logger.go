package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	EnvLogLevel = "MOODNFT_LOG_LEVEL"
	EnvJSONLog  = "MOODNFT_JSON_LOG"

	linePrefix = "🎭 "
)

// Settings is a resolved logger configuration.
type Settings struct {
	Level  string
	JSON   bool
	Source string
}

// Resolve picks the log level from the CLI flag, then MOODNFT_LOG_LEVEL,
// then the "warn" default. A level of the form "json:debug" also turns on
// JSON output, as does MOODNFT_JSON_LOG=1.
func Resolve(cliLevel string) Settings {
	s := Settings{Level: "warn", Source: "default"}
	switch {
	case cliLevel != "":
		s.Level, s.Source = cliLevel, "--log-level"
	case os.Getenv(EnvLogLevel) != "":
		s.Level, s.Source = os.Getenv(EnvLogLevel), EnvLogLevel
	}

	if rest, ok := strings.CutPrefix(s.Level, "json"); ok {
		s.JSON = true
		s.Level = strings.TrimPrefix(rest, ":")
		if s.Level == "" {
			s.Level = "info"
		}
	}
	if os.Getenv(EnvJSONLog) == "1" {
		s.JSON = true
	}
	return s
}

// NewLogger creates an hclog logger. Non-JSON output gets a line prefix.
func NewLogger(name string, s Settings, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}
	if !s.JSON {
		output = NewPrefixWriter(linePrefix, output)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(s.Level),
		JSONFormat: s.JSON,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}
