package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Varun5711/carmate/internal/apiclient"
	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	ErrNotImage             = errors.New("file content is not a supported image")
)

var AllowedExtensions = []string{"png", "jpg", "jpeg", "webp"}

var allowedTypes = []string{"image/png", "image/jpeg", "image/webp"}

type Photo struct {
	Path        string
	Name        string
	ContentType string
	file        *os.File
}

// Batch holds open handles for one upload; callers defer Close around the call.
type Batch struct {
	photos []Photo
}

func Open(paths []string) (*Batch, error) {
	b := &Batch{}
	for _, p := range paths {
		photo, err := openPhoto(p)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.photos = append(b.photos, photo)
	}
	return b, nil
}

func openPhoto(path string) (Photo, error) {
	path = strings.TrimSpace(path)
	if !HasAllowedExtension(path) {
		return Photo{}, fmt.Errorf("%s: %w", path, ErrUnsupportedExtension)
	}

	f, err := os.Open(path)
	if err != nil {
		return Photo{}, fmt.Errorf("open photo: %w", err)
	}

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return Photo{}, fmt.Errorf("detect type of %s: %w", path, err)
	}
	if !mimetype.EqualsAny(mtype.String(), allowedTypes...) {
		f.Close()
		return Photo{}, fmt.Errorf("%s (%s): %w", path, mtype.String(), ErrNotImage)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return Photo{}, fmt.Errorf("rewind %s: %w", path, err)
	}

	return Photo{
		Path:        path,
		Name:        filepath.Base(path),
		ContentType: mtype.String(),
		file:        f,
	}, nil
}

func HasAllowedExtension(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (b *Batch) Len() int {
	return len(b.photos)
}

func (b *Batch) Photos() []Photo {
	return b.photos
}

// Files exposes the open handles as multipart parts for the API client.
func (b *Batch) Files() []apiclient.File {
	files := make([]apiclient.File, 0, len(b.photos))
	for _, p := range b.photos {
		files = append(files, apiclient.File{
			Name:        p.Name,
			ContentType: p.ContentType,
			Content:     p.file,
		})
	}
	return files
}

func (b *Batch) Close() error {
	if b == nil {
		return nil
	}
	var errs []error
	for _, p := range b.photos {
		if p.file == nil {
			continue
		}
		if err := p.file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			errs = append(errs, err)
		}
	}
	b.photos = nil
	return errors.Join(errs...)
}
