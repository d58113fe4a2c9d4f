package catalog

import (
	"context"
	"io"
)

// FileKind distinguishes the two blob categories the catalog stores.
type FileKind string

const (
	FileImage FileKind = "image"
	FileAudio FileKind = "audio"
)

// Upload is a received file, already read off the wire.
type Upload struct {
	Filename string
	Data     []byte
}

// FileStore stores entity blobs and hands back opaque references. Remove is
// idempotent: a missing reference is a no-op, never an error. Replacing a
// blob always releases the old reference first.
type FileStore interface {
	Create(ctx context.Context, kind FileKind, filename string, r io.Reader) (string, error)
	Remove(ctx context.Context, ref string) error
}
