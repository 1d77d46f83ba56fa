package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// LocalStore keeps assets on disk under root and serves them from baseURL.
type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore(root, baseURL string) *LocalStore {
	return &LocalStore{root: root, baseURL: baseURL}
}

func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Put(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	ref, err := cleanRef(name)
	if err != nil {
		return "", err
	}

	full := filepath.Join(s.root, filepath.FromSlash(ref))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", ref, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", ref, err)
	}
	return ref, nil
}

func (s *LocalStore) URL(ref string) (string, error) {
	ref, err := cleanRef(ref)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(ref))); err != nil {
		return "", fmt.Errorf("%w: %s", ErrAssetMissing, ref)
	}
	return joinURL(s.baseURL, ref), nil
}

func cleanRef(ref string) (string, error) {
	if ref == "" {
		return "", ErrAssetMissing
	}
	// Rooting the path first keeps ".." from escaping the media root.
	cleaned := path.Clean("/" + ref)[1:]
	if cleaned == "" {
		return "", fmt.Errorf("%w: invalid reference %q", ErrAssetMissing, ref)
	}
	return cleaned, nil
}
