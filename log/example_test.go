package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/aws-encryption-sdk-cli/log"
)

func Example_basic() {
	logger := log.Make(os.Stdout, log.WithTimeLayout("none"))
	logger.Warn("no master key provider configured", slog.String("action", "decrypt"))
	// Output: {"level":"WARN","msg":"no master key provider configured","action":"decrypt"}
}

func Example_verbosity() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.VerbosityLevel(2)),
		log.WithFormat(log.FormatText),
		log.WithTimeLayout("none"))

	logger.Debug("parsed arguments", slog.Int("master_keys", 1))
	logger.Trace("not shown at -vv")
	// Output: level=DEBUG msg="parsed arguments" master_keys=1
}
