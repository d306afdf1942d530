package storage

import (
	"context"
	"io"
	"time"
)

// Package storage contains the object storage abstraction receipts are kept
// in. Implementations target S3-compatible backends and rely on streaming
// I/O only; receipt content never touches local disk.

// PutObjectOptions define optional parameters for uploading a receipt object.
// Size should be the exact number of bytes if known; -1 lets the backend
// buffer/chunk as it supports. ContentType is passed through as received from
// the transport — an empty value leaves content-type negotiation to the
// backend. Metadata is optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored receipt object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is an S3-compatible object storage client for receipt files.
type Storage interface {
	// Put uploads an object under the given key from the provided reader.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL for downloading the object
	// without credentials. Bill records carry such a URL as their fileUrl.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
