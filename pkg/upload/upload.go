package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
)

// File is a local file handle staged for upload. Open is called once per
// upload attempt, so retries never reuse a spent reader.
type File struct {
	Name      string
	MediaType string
	Open      func() (io.ReadCloser, error)
}

// FromBytes stages an in-memory file.
func FromBytes(name, mediaType string, data []byte) File {
	return File{
		Name:      name,
		MediaType: mediaType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// FromPath stages a file on disk, inferring the media type from its
// extension.
func FromPath(path string) (File, error) {
	if _, err := os.Stat(path); err != nil {
		return File{}, fmt.Errorf("upload: stat %q: %w", path, err)
	}
	mediaType := mime.TypeByExtension(filepath.Ext(path))
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	return File{
		Name:      filepath.Base(path),
		MediaType: mediaType,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// Uploader pushes one file to storage and returns its public URL. Uploads
// must be safe to retry; callers never assume exactly-once delivery.
type Uploader interface {
	Upload(ctx context.Context, file File) (string, error)
}

// Func adapts a plain function to the Uploader interface, handy for tests
// and in-process storage backends.
type Func func(ctx context.Context, file File) (string, error)

// Upload implements Uploader.
func (f Func) Upload(ctx context.Context, file File) (string, error) {
	return f(ctx, file)
}
