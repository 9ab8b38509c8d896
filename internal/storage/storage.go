// Package storage stores binary objects (expert avatars) in an S3-compatible
// bucket. Implementations stream; nothing touches local disk.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// AvatarPrefix is the key prefix for expert avatars.
const AvatarPrefix = "experts/"

// MaxAvatarSize bounds uploaded avatars.
const MaxAvatarSize = 5 << 20

// ErrUnsupportedType is returned for non-image uploads.
var ErrUnsupportedType = errors.New("unsupported content type")

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// PutObjectOptions describe an upload. Size is -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
}

// Storage is an S3-compatible object store.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get streams an object; the caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// sniffLimit is how much of an upload is buffered to detect its type.
const sniffLimit = 3072

// SniffImage detects the type of r from its leading bytes. The returned reader
// still yields the whole stream. Anything but jpeg, png, webp or gif fails
// with ErrUnsupportedType.
func SniffImage(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLimit)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	mt := mimetype.Detect(head)
	if _, ok := imageTypes[mt.String()]; !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
	}
	return mt.String(), io.MultiReader(bytes.NewReader(head), r), nil
}

// AvatarKey builds a fresh object key for an avatar of the given image type.
func AvatarKey(contentType string) (string, error) {
	ext, ok := imageTypes[contentType]
	if !ok {
		return "", ErrUnsupportedType
	}
	return AvatarPrefix + uuid.NewString() + ext, nil
}
