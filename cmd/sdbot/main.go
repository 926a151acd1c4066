package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/dmorgan81/sdbot/cmd/sdbot/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.NewSDBotCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
