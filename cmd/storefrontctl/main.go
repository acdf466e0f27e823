// Package main is the entrypoint for storefrontctl.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/cli"
	"storefront/internal/util"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	code := cli.New().Execute(ctx)

	stop()
	util.SyncLogger()
	os.Exit(code)
}
