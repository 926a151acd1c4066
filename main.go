package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/dmorgan81/sdbot/internal/handle"
	"github.com/dmorgan81/sdbot/internal/handler"
	"github.com/dmorgan81/sdbot/internal/inject"
	"github.com/dmorgan81/sdbot/internal/log"
	"github.com/samber/do"
)

func main() {
	logger := log.New(os.Stderr, log.ParseLevel(os.Getenv("SDBOT_LOG_LEVEL")))
	ctx := log.NewContext(context.Background(), logger)
	injector := inject.Setup(ctx, os.Getenv)

	var h any
	switch name := os.Getenv("SDBOT_HANDLER"); name {
	case "", "daily":
		h = do.MustInvoke[*handler.Handler](injector).Handle
	case "image":
		h = do.MustInvoke[*handle.ImageHandler](injector).Handle
	case "html":
		h = do.MustInvoke[*handle.HtmlHandler](injector).Handle
	default:
		logger.Error("unknown handler", "handler", name)
		os.Exit(1)
	}

	lambda.StartWithOptions(h, lambda.WithContext(ctx), lambda.WithEnableSIGTERM(func() {
		_ = injector.Shutdown()
	}))
}
