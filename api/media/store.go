// Package media stores ticket cover images on local disk or in S3.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"Litreview/api/config"
	"Litreview/api/utils/fileformat"
)

var (
	ErrTooLarge = errors.New("image too large")
	ErrNotImage = errors.New("file is not an image")
)

// Store persists uploaded images under opaque keys.
type Store interface {
	Save(ctx context.Context, img *Image) (string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// Image is a validated upload held in memory until it is stored.
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

func (img *Image) Reader() io.Reader {
	return bytes.NewReader(img.Data)
}

func (img *Image) Size() int64 {
	return int64(len(img.Data))
}

// ReadImage loads an uploaded file, rejecting anything larger than maxBytes
// or whose content does not sniff as an image. The stored name is a fresh
// random key that keeps the original extension.
func ReadImage(fh *multipart.FileHeader, maxBytes int64) (*Image, error) {
	if fh.Size > maxBytes {
		return nil, ErrTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrTooLarge
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotImage
	}

	return &Image{
		Name:        fileformat.UniqueFormat(fh.Filename),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// New builds the store selected by cfg.Backend ("disk" or "s3").
func New(ctx context.Context, cfg *config.MediaConfig) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "s3":
		return NewS3Store(ctx, cfg)
	case "disk", "":
		return NewDiskStore(cfg.Dir, cfg.URLPrefix)
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.Backend)
	}
}
