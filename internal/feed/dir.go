package feed

import (
	"context"
	"fmt"
	"os"

	"github.com/dmorgan81/sdbot/internal/store"
)

// DirSource reads entries from a directory written by store.FileUploader.
// Images without a metadata sidecar are skipped.
type DirSource struct {
	Dir string
}

func (s *DirSource) Entries(ctx context.Context) ([]Entry, error) {
	files, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}

	fetcher := &store.FileFetcher{Dir: s.Dir}
	var entries []Entry
	for _, f := range files {
		if f.IsDir() || !published(f.Name()) {
			continue
		}
		meta, err := fetcher.Metadata(ctx, f.Name())
		if err != nil {
			return nil, err
		}
		if meta == nil {
			continue
		}
		info, err := f.Info()
		if err != nil {
			return nil, fmt.Errorf("feed: %w", err)
		}
		entries = append(entries, Entry{Metadata: meta, Updated: info.ModTime()})
	}
	return entries, nil
}
