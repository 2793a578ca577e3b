package storage

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/aptcare/internal/domain/checklist"
	"github.com/xiebiao/aptcare/internal/infrastructure/config"
	apperrors "github.com/xiebiao/aptcare/pkg/errors"
)

// 允许的图片类型 → 扩展名
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// errTooLarge 写入超过上限
var errTooLarge = errors.New("photo exceeds size limit")

// LocalPhotoStorage 本地磁盘照片存储
// 设计说明：
// 1. 文件类型按内容识别（前512字节），不信任客户端传的Content-Type和扩展名
// 2. 文件名使用UUID，避免冲突和路径注入
// 3. 返回的路径是URL路径（url_prefix/文件名），由gin静态路由提供访问
type LocalPhotoStorage struct {
	dir       string
	urlPrefix string
	maxBytes  int64
}

// NewLocalPhotoStorage 创建本地照片存储
func NewLocalPhotoStorage(cfg config.UploadConfig) (*LocalPhotoStorage, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, apperrors.ErrStorageError.WithCause(err)
	}
	return &LocalPhotoStorage{
		dir:       cfg.Dir,
		urlPrefix: cfg.URLPrefix,
		maxBytes:  cfg.MaxBytes(),
	}, nil
}

// MaxBytes 单个文件大小上限
func (s *LocalPhotoStorage) MaxBytes() int64 {
	return s.maxBytes
}

// Save 保存照片，返回访问路径
func (s *LocalPhotoStorage) Save(ctx context.Context, r io.Reader) (string, error) {
	// 1. 识别类型
	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return "", apperrors.ErrStorageError.WithCause(err)
	}
	if len(head) == 0 {
		return "", checklist.ErrEmptyPhoto
	}
	ext, ok := allowedTypes[http.DetectContentType(head)]
	if !ok {
		return "", checklist.ErrInvalidPhotoType
	}

	// 2. 写入临时文件，超过上限时删除
	name := uuid.NewString() + ext
	dst := filepath.Join(s.dir, name)
	if err := s.write(ctx, dst, br); err != nil {
		os.Remove(dst)
		if errors.Is(err, errTooLarge) {
			return "", checklist.ErrPhotoTooLarge
		}
		return "", apperrors.ErrStorageError.WithCause(err)
	}

	zap.L().Debug("照片已保存", zap.String("file", dst))
	return path.Join(s.urlPrefix, name), nil
}

// Remove 删除已保存的照片（数据库写入失败时回收文件）
func (s *LocalPhotoStorage) Remove(_ context.Context, urlPath string) error {
	name := path.Base(urlPath)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return apperrors.ErrStorageError.WithCause(err)
	}
	return nil
}

func (s *LocalPhotoStorage) write(ctx context.Context, dst string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	// 多读1字节用于判断是否超限
	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return err
	}
	if n > s.maxBytes {
		return errTooLarge
	}
	return f.Sync()
}
