package media

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"Litreview/api/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A 1x1 transparent PNG.
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func TestReadImage(t *testing.T) {
	img, err := ReadImage(fileHeader(t, "cover.PNG", pngBytes), 1<<20)
	require.NoError(t, err)

	assert.Equal(t, "image/png", img.ContentType)
	assert.True(t, strings.HasSuffix(img.Name, ".png"))
	assert.Equal(t, int64(len(pngBytes)), img.Size())
}

func TestReadImageRejectsNonImages(t *testing.T) {
	_, err := ReadImage(fileHeader(t, "notes.png", []byte("just some text")), 1<<20)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestReadImageRejectsLargeFiles(t *testing.T) {
	_, err := ReadImage(fileHeader(t, "cover.png", pngBytes), 10)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestDiskStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "media")
	store, err := NewDiskStore(dir, "/media/")
	require.NoError(t, err)
	ctx := context.Background()

	key, err := store.Save(ctx, &Image{Name: "abc.png", ContentType: "image/png", Data: pngBytes})
	require.NoError(t, err)
	assert.Equal(t, "abc.png", key)
	assert.Equal(t, "/media/abc.png", store.URL(key))
	assert.Equal(t, "", store.URL(""))

	data, err := os.ReadFile(filepath.Join(dir, key))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)

	require.NoError(t, store.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(dir, key))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, store.Delete(ctx, key))
}

func TestS3StoreURL(t *testing.T) {
	s := &S3Store{bucket: "covers", region: "eu-west-3"}
	assert.Equal(t, "https://covers.s3.eu-west-3.amazonaws.com/tickets/a.png", s.URL("tickets/a.png"))

	s.endpoint = "http://localhost:9000"
	assert.Equal(t, "http://localhost:9000/covers/tickets/a.png", s.URL("tickets/a.png"))
}

func TestNewSelectsBackend(t *testing.T) {
	ctx := context.Background()

	store, err := New(ctx, &config.MediaConfig{Backend: "disk", Dir: t.TempDir(), URLPrefix: "/media"})
	require.NoError(t, err)
	assert.IsType(t, &DiskStore{}, store)

	_, err = New(ctx, &config.MediaConfig{Backend: "s3"})
	assert.ErrorContains(t, err, "bucket")

	_, err = New(ctx, &config.MediaConfig{Backend: "ftp"})
	assert.Error(t, err)
}
