package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/aws-encryption-sdk-cli/cli"
	"github.com/ardnew/aws-encryption-sdk-cli/log"
)

func main() {
	err := cli.Run(
		context.Background(),
		cli.Describe(os.Stdout),
		os.Exit,
		os.Args[1:]...,
	)
	if err != nil {
		log.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
