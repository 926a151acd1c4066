package post

import (
	"context"

	"github.com/dmorgan81/sdbot/internal/log"
)

type Params struct {
	Date   string
	Model  string
	Prompt string
	Seed   string
}

type Poster interface {
	Post(context.Context, Params) error
}

// NopPoster is used when no subreddit is configured.
type NopPoster struct{}

func (NopPoster) Post(ctx context.Context, params Params) error {
	log.FromContextOrDiscard(ctx).WithGroup("poster").Debug("posting disabled", "date", params.Date)
	return nil
}
