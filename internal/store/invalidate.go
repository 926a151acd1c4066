package store

import (
	"context"

	"github.com/dmorgan81/sdbot/internal/log"
)

type Invalidator interface {
	Invalidate(context.Context, []string) error
}

// NopInvalidator is used when no CDN sits in front of the bucket.
type NopInvalidator struct{}

func (NopInvalidator) Invalidate(ctx context.Context, paths []string) error {
	log.FromContextOrDiscard(ctx).WithGroup("invalidator").Debug("skipping invalidation", "paths", paths)
	return nil
}
