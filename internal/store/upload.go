package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/dmorgan81/sdbot/internal/log"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

var ErrCreateDirectory = errors.New("store: failed to create directory")

type UploadParams struct {
	Name        string
	Data        []byte
	ContentType string
	Metadata    map[string]string
}

type Uploader interface {
	Upload(context.Context, UploadParams) error
}

// FileUploader writes uploads below Dir, creating any missing directories.
// An empty Name gets a random one. Metadata goes to a "<name>.json" sidecar.
type FileUploader struct {
	Dir string
}

func (u *FileUploader) Upload(ctx context.Context, params UploadParams) error {
	name := lo.Ternary(params.Name != "", params.Name, uuid.NewString()+extension(params.ContentType))
	path := filepath.Join(u.Dir, name)

	log := log.FromContextOrDiscard(ctx).WithGroup("file").With("file", path)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Error("failed to create directory, aborting", "error", err)
		return fmt.Errorf("%w: %v", ErrCreateDirectory, err)
	}

	log.Info("writing", "bytes", len(params.Data))
	if err := os.WriteFile(path, params.Data, 0o644); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	if len(params.Metadata) == 0 {
		return nil
	}
	meta, err := json.Marshal(params.Metadata)
	if err != nil {
		return fmt.Errorf("store: encoding metadata for %s: %w", name, err)
	}
	if err := os.WriteFile(sidecar(path), meta, 0o644); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}

func sidecar(path string) string {
	return path + ".json"
}

func extension(contentType string) string {
	if f, ok := lo.Find([]Format{PNG, JPEG, BMP}, func(f Format) bool {
		return f.ContentType() == contentType
	}); ok {
		return f.Ext()
	}
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		return exts[0]
	}
	return ""
}
