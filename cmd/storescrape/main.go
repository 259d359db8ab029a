// Package main provides the storescrape command-line tool for scraping store listings.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"storescrape/cmd/storescrape/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := commands.NewRootCmd().ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
