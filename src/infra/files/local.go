package files

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/unidecode"

	"soundvault/src/catalog"
)

// LocalFileStore keeps entity blobs on disk under uploadsPath/<kind>/ and
// hands back the relative path as the reference.
type LocalFileStore struct {
	uploadsPath string
	images      ImageProcessor
}

// ImageProcessor prepares image blobs before they hit disk.
type ImageProcessor interface {
	Process(data []byte) []byte
}

// NewLocalFileStore creates a new local blob store rooted at uploadsPath.
func NewLocalFileStore(uploadsPath string, images ImageProcessor) *LocalFileStore {
	return &LocalFileStore{uploadsPath: uploadsPath, images: images}
}

// Create stores the blob and returns its reference. Image blobs run through
// the image processor first; audio is stored as received.
func (f *LocalFileStore) Create(ctx context.Context, kind catalog.FileKind, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if kind == catalog.FileImage && f.images != nil {
		data = f.images.Process(data)
	}

	ref := filepath.Join(string(kind), blobName(filename))
	path := filepath.Join(f.uploadsPath, ref)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	slog.Debug("Blob stored", "kind", kind, "ref", ref, "bytes", len(data))
	return ref, nil
}

// Remove releases the referenced blob. A missing reference is a no-op.
func (f *LocalFileStore) Remove(ctx context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	path := filepath.Join(f.uploadsPath, filepath.Clean(ref))
	if !strings.HasPrefix(path, filepath.Clean(f.uploadsPath)+string(os.PathSeparator)) {
		return fmt.Errorf("blob reference escapes uploads path: %s", ref)
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to remove blob %s: %w", ref, err)
	}
	slog.Debug("Blob removed", "ref", ref)
	return nil
}

// blobName builds a unique on-disk name, keeping an ASCII-folded trace of the
// original file name for operators browsing the uploads directory.
func blobName(filename string) string {
	base := unidecode.Unidecode(filepath.Base(filename))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, base)
	if len(base) > 80 {
		base = base[len(base)-80:]
	}
	return uuid.New().String() + "-" + base
}
