package cli

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/aws-encryption-sdk-cli/log"
)

type logConfig struct {
	Level      string `default:""        enum:",${logLevelEnum}"  help:"Set log level, overriding -v."`
	Format     string `default:"json"    enum:"${logFormatEnum}" help:"Set log format."`
	TimeLayout string `default:"RFC3339"                         help:"Set timestamp format."        name:"time"`
	Caller     bool   `default:"false"                           help:"Include caller information." negatable:""`
}

func (logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

// options returns the logger options selected by the parsed flags together
// with the verbosity and quiet settings of cfg. An explicit --log-level
// takes precedence over -v.
func (f logConfig) options(cfg *Config, w io.Writer) []log.Option {
	var count int
	if cfg.Verbosity != nil {
		count = *cfg.Verbosity
	}

	level := log.VerbosityLevel(count)
	if f.Level != "" {
		level = log.ParseLevel(f.Level)
	}

	if cfg.Quiet {
		w = io.Discard
	}

	return []log.Option{
		log.WithDefaults(w),
		log.WithLevel(level),
		log.WithFormat(log.ParseFormat(f.Format)),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
	}
}

// start configures the default logger for the parsed configuration.
func (f logConfig) start(ctx context.Context, cfg *Config, w io.Writer) {
	log.Config(f.options(cfg, w)...)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", log.Default().Level().String()),
		slog.String("format", f.Format),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
	)
}
