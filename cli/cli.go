package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/aws-encryption-sdk-cli/log"
	"github.com/ardnew/aws-encryption-sdk-cli/pkg"
)

// ConfigFile is the name of the YAML defaults file in [pkg.ConfigDir].
const ConfigFile = "config.yaml"

// Dispatcher performs the operation described by a parsed [Config].
type Dispatcher func(ctx context.Context, cfg *Config) error

// Run parses args and hands the resulting configuration to dispatch.
//
// Parse errors are reported on stderr and passed to exit with a non-zero
// status. A --version request prints the version report on stdout and
// returns without dispatching.
func Run(
	ctx context.Context,
	dispatch Dispatcher,
	exit func(code int),
	args ...string,
) error {
	return run(ctx, dispatch, os.Stdout, os.Stderr, []Option{
		WithExit(exit),
		WithConfigFiles(pkg.ConfigPath(ConfigFile)),
	}, args)
}

func run(
	ctx context.Context,
	dispatch Dispatcher,
	stdout, stderr io.Writer,
	opts []Option,
	args []string,
) error {
	cfg, err := ParseArgs(args, append(opts, WithWriters(stdout, stderr))...)
	if err != nil {
		return err
	}

	if cfg.Version != "" {
		_, err = fmt.Fprintln(stdout, cfg.Version)

		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg.log.start(ctx, cfg, stderr)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cfg.pprof.start(ctx)()

	logger := log.With(slog.String("action", string(cfg.Action)))

	logger.DebugContext(ctx, "parsed arguments", slog.Any("config", cfg))

	for i, mk := range cfg.MasterKeys {
		if regions := mk.Regions(); len(regions) > 0 {
			logger.TraceContext(ctx, "master key regions",
				slog.Int("master_key", i),
				slog.Any("regions", regions),
			)
		}
	}

	if cfg.Action == ActionDecrypt && len(cfg.MasterKeys) == 1 &&
		len(cfg.MasterKeys[0].Keys) == 0 {
		logger.InfoContext(ctx, "decrypting with discovered master keys",
			slog.String("provider", cfg.MasterKeys[0].Provider),
		)
	}

	return dispatch(ctx, cfg)
}

// Describe returns a [Dispatcher] that writes the configuration to w as
// YAML instead of performing it.
func Describe(w io.Writer) Dispatcher {
	return func(_ context.Context, cfg *Config) error {
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}

		_, err = w.Write(b)

		return err
	}
}
