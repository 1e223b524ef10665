package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/sheetkeeper/internal/client/cli"
	"github.com/iudanet/sheetkeeper/internal/client/iocli"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	cli.Version = fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit)

	// Ctrl+C останавливает watch и прерывает запросы к шлюзу
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(ctx, os.Args[1:], iocli.NewStdio())
	stop()

	os.Exit(code)
}
