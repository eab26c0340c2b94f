package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopstream/backend/internal/domain/shared"
	"github.com/shopstream/backend/internal/infrastructure/config"
)

func TestMemoryImageStorage(t *testing.T) {
	t.Run("round-trips image bytes", func(t *testing.T) {
		store := NewMemoryImageStorage()

		name, err := store.Put(context.Background(), "p1/shoes.png", []byte("png-bytes"))
		require.NoError(t, err)
		assert.Equal(t, "p1/shoes.png", name)

		data, err := store.Get(context.Background(), "p1/shoes.png")
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), data)
	})

	t.Run("missing file yields not found", func(t *testing.T) {
		store := NewMemoryImageStorage()

		_, err := store.Get(context.Background(), "missing.png")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("stored bytes are isolated from the caller's slice", func(t *testing.T) {
		store := NewMemoryImageStorage()

		data := []byte("original")
		_, err := store.Put(context.Background(), "file.png", data)
		require.NoError(t, err)
		data[0] = 'X'

		stored, err := store.Get(context.Background(), "file.png")
		require.NoError(t, err)
		assert.Equal(t, []byte("original"), stored)
	})
}

func TestNewS3ImageStorage_Validation(t *testing.T) {
	valid := func() *config.StorageConfig {
		return &config.StorageConfig{
			Endpoint:  "localhost:9000",
			Region:    "us-east-1",
			Bucket:    "product-images",
			AccessKey: "test-access",
			SecretKey: "test-secret",
		}
	}

	t.Run("accepts a complete configuration", func(t *testing.T) {
		store, err := NewS3ImageStorage(valid(), nil)
		require.NoError(t, err)
		assert.NotNil(t, store)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		_, err := NewS3ImageStorage(nil, nil)
		assert.Error(t, err)

		cfg := valid()
		cfg.Bucket = ""
		_, err = NewS3ImageStorage(cfg, nil)
		assert.Error(t, err)

		cfg = valid()
		cfg.AccessKey = ""
		_, err = NewS3ImageStorage(cfg, nil)
		assert.Error(t, err)

		cfg = valid()
		cfg.SecretKey = ""
		_, err = NewS3ImageStorage(cfg, nil)
		assert.Error(t, err)
	})
}
