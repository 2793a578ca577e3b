package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/aptcare/internal/domain/checklist"
	"github.com/xiebiao/aptcare/internal/infrastructure/config"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newTestStorage(t *testing.T, maxMB int64) (*LocalPhotoStorage, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalPhotoStorage(config.UploadConfig{Dir: dir, MaxSizeMB: maxMB, URLPrefix: "/uploads"})
	require.NoError(t, err)
	return s, dir
}

func TestLocalPhotoStorage_Save(t *testing.T) {
	ctx := context.Background()
	s, dir := newTestStorage(t, 1)

	t.Run("png", func(t *testing.T) {
		p, err := s.Save(ctx, bytes.NewReader(pngHeader))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(p, "/uploads/"))
		assert.True(t, strings.HasSuffix(p, ".png"))

		data, err := os.ReadFile(filepath.Join(dir, filepath.Base(p)))
		require.NoError(t, err)
		assert.Equal(t, pngHeader, data)

		require.NoError(t, s.Remove(ctx, p))
		_, err = os.Stat(filepath.Join(dir, filepath.Base(p)))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("jpeg和webp", func(t *testing.T) {
		p, err := s.Save(ctx, bytes.NewReader([]byte("\xFF\xD8\xFF\xE0\x00\x10JFIF")))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(p, ".jpg"))

		p, err = s.Save(ctx, bytes.NewReader([]byte("RIFF\x24\x00\x00\x00WEBPVP8 ")))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(p, ".webp"))
	})

	t.Run("拒绝非图片", func(t *testing.T) {
		_, err := s.Save(ctx, strings.NewReader("%PDF-1.4 not a photo"))
		assert.ErrorIs(t, err, checklist.ErrInvalidPhotoType)

		_, err = s.Save(ctx, strings.NewReader(""))
		assert.ErrorIs(t, err, checklist.ErrEmptyPhoto)
	})

	t.Run("超过大小限制", func(t *testing.T) {
		big := append(append([]byte{}, pngHeader...), make([]byte, 1<<20)...)
		before, err := os.ReadDir(dir)
		require.NoError(t, err)

		_, err = s.Save(ctx, bytes.NewReader(big))
		assert.ErrorIs(t, err, checklist.ErrPhotoTooLarge)

		after, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, after, len(before), "超限文件应被删除")
	})
}

func TestLocalPhotoStorage_RemoveMissing(t *testing.T) {
	s, _ := newTestStorage(t, 1)
	assert.NoError(t, s.Remove(context.Background(), "/uploads/missing.png"))
}
