package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Fetcher loads a previously stored object, such as the source image of an
// img2img run.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, map[string]string, error)
}

// FileFetcher reads what FileUploader wrote, including the metadata sidecar.
type FileFetcher struct {
	Dir string
}

func (f *FileFetcher) Fetch(ctx context.Context, name string) ([]byte, map[string]string, error) {
	data, err := os.ReadFile(filepath.Join(f.Dir, name))
	if err != nil {
		return nil, nil, fmt.Errorf("store: %w", err)
	}
	meta, err := f.Metadata(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	return data, meta, nil
}

// Metadata returns the sidecar metadata of name, or nil when it has none.
func (f *FileFetcher) Metadata(_ context.Context, name string) (map[string]string, error) {
	data, err := os.ReadFile(sidecar(filepath.Join(f.Dir, name)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	var meta map[string]string
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("store: decoding metadata for %s: %w", name, err)
	}
	return meta, nil
}
