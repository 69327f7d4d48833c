package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrMissingSigner means the backend cannot mint signed URLs with its
// current credentials.
var ErrMissingSigner = errors.New("storage: signed url signer not configured")

// Storage is the object-store contract shared by the S3, GCS, and
// MinIO backends.
type Storage interface {
	io.Closer

	// PutObject uploads data and returns the stored object's metadata.
	PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error)
	// GetObject opens the object for reading along with its metadata.
	GetObject(ctx context.Context, bucket, key string, opts GetOptions) (io.ReadCloser, ObjectInfo, error)
	// StatObject fetches metadata without reading the body.
	StatObject(ctx context.Context, bucket, key string) (ObjectInfo, error)
	// DeleteObject removes the object.
	DeleteObject(ctx context.Context, bucket, key string) error
	// ListObjects lists objects under a prefix.
	ListObjects(ctx context.Context, bucket, prefix string, opts ListOptions) ([]ObjectInfo, error)
	// PresignGet mints a signed download URL.
	PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
	// PresignPut mints a signed upload URL.
	PresignPut(ctx context.Context, bucket, key string, opts PutOptions, expiry time.Duration) (string, error)
}

// PutOptions tunes an upload.
type PutOptions struct {
	// Size is the expected content length.
	Size int64
	// ContentType is the object MIME type.
	ContentType string
	// Metadata is custom key/value metadata.
	Metadata map[string]string
}

// GetOptions tunes a download.
type GetOptions struct {
	// Range restricts the read to a byte range when set.
	Range *ByteRange
}

// ListOptions tunes a listing.
type ListOptions struct {
	// Limit caps how many results come back.
	Limit int32
	// Token continues a previous listing.
	Token string
}

// ByteRange is an inclusive byte range.
type ByteRange struct {
	// Start is the first byte offset.
	Start int64
	// End is the last byte offset.
	End int64
}

// ObjectInfo is the metadata a backend reports for an object.
type ObjectInfo struct {
	// Bucket is the bucket name.
	Bucket string
	// Key is the object key.
	Key string
	// Size is the object size in bytes.
	Size int64
	// ETag is the object ETag when the backend provides one.
	ETag string
	// ContentType is the object MIME type.
	ContentType string
	// Metadata is user-defined metadata.
	Metadata map[string]string
	// UpdatedAt is the last-modified time.
	UpdatedAt time.Time
}
