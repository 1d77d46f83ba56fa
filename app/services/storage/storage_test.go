package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Rakhulsr/go-catalog/app/services/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePutAndURL(t *testing.T) {
	root := t.TempDir()
	store := storage.NewLocalStore(root, "/media/")

	ref, err := store.Put(context.Background(), "products/mask.jpg", "image/jpeg", strings.NewReader("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "products/mask.jpg", ref)

	content, err := os.ReadFile(filepath.Join(root, "products", "mask.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(content))

	url, err := store.URL(ref)
	require.NoError(t, err)
	assert.Equal(t, "/media/products/mask.jpg", url)
}

func TestLocalStoreMissingAsset(t *testing.T) {
	store := storage.NewLocalStore(t.TempDir(), "/media/")

	_, err := store.URL("products/absent.jpg")
	assert.ErrorIs(t, err, storage.ErrAssetMissing)

	_, err = store.URL("")
	assert.ErrorIs(t, err, storage.ErrAssetMissing)
}

func TestLocalStoreKeepsWritesUnderRoot(t *testing.T) {
	root := t.TempDir()
	store := storage.NewLocalStore(root, "/media/")

	ref, err := store.Put(context.Background(), "../../escape.txt", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "escape.txt", ref)
	assert.FileExists(t, filepath.Join(root, "escape.txt"))
}

func TestObjectKey(t *testing.T) {
	key := storage.ObjectKey("gallery", "Моя Фотка.JPG")
	assert.True(t, strings.HasPrefix(key, "gallery/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	other := storage.ObjectKey("gallery", "Моя Фотка.JPG")
	assert.NotEqual(t, key, other)
}

func TestNewSelectsDriver(t *testing.T) {
	store, err := storage.New(context.Background(), storage.Config{Driver: "local", MediaRoot: t.TempDir(), MediaURL: "/media/"})
	require.NoError(t, err)
	assert.IsType(t, &storage.LocalStore{}, store)

	_, err = storage.New(context.Background(), storage.Config{Driver: "ftp"})
	assert.Error(t, err)

	_, err = storage.New(context.Background(), storage.Config{Driver: "s3"})
	assert.Error(t, err)
}

func TestS3StoreURL(t *testing.T) {
	store, err := storage.NewS3Store(context.Background(), "catalog-media", "eu-central-1", "")
	require.NoError(t, err)

	url, err := store.URL("products/mask.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://catalog-media.s3.eu-central-1.amazonaws.com/products/mask.jpg", url)

	store, err = storage.NewS3Store(context.Background(), "catalog-media", "eu-central-1", "https://cdn.example.com")
	require.NoError(t, err)
	url, err = store.URL("products/mask.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/products/mask.jpg", url)
}
