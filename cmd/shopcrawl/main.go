// cmd/shopcrawl/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/law-makers/shopcrawl/internal/cli"
	"github.com/rs/zerolog/log"
)

func main() {
	// Cancelling the context stops the run and kills any running browser
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		log.Error().Err(err).Msg("shopcrawl failed")
		stop()
		os.Exit(1)
	}
}
