// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The CLI writes diagnostics to standard error so that standard output
// remains available for encrypted or decrypted payloads.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("parsed arguments", slog.String("action", "encrypt"))
//
// # Configuration
//
// Configure a logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The package-level default logger is reconfigured with [Config]. Verbosity
// counts from the command line map onto levels with [VerbosityLevel].
//
// # Supported Levels
//
// [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn], and [LevelError].
// Messages below the configured level are discarded.
//
// # Output Formats
//
// [FormatJSON] (default) and [FormatText].
package log
