// Package main is the entry point for the streamtasks CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"streamtasks/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	code := cli.Run(ctx, os.Args[1:], cli.Env{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr})
	cancel()
	os.Exit(code)
}
