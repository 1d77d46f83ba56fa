package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var ErrAssetMissing = errors.New("asset missing")

// AssetStore keeps uploaded images and resolves stored references to URLs.
type AssetStore interface {
	Put(ctx context.Context, name, contentType string, body io.Reader) (string, error)
	URL(ref string) (string, error)
}

type Config struct {
	Driver    string
	MediaRoot string
	MediaURL  string
	S3Bucket  string
	S3Region  string
}

func New(ctx context.Context, cfg Config) (AssetStore, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStore(cfg.MediaRoot, cfg.MediaURL), nil
	case "s3":
		return NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region, cfg.MediaURL)
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.Driver)
	}
}

// ObjectKey builds a collision-free key under folder for an uploaded file name.
func ObjectKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := slug.Make(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if base == "" {
		base = "image"
	}
	return path.Join(folder, uuid.NewString()+"-"+base+ext)
}

func joinURL(base, ref string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ref, "/")
}
