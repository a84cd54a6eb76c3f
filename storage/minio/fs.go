// Package minio implements the S3 storage engine with minio-go. Paths are
// "bucket/key"; objects are uploaded in one PUT when the writer is closed.
package minio

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/gear6io/fixturegen/pkg/errors"
	"github.com/gear6io/fixturegen/storage"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Package-specific error codes
var (
	S3ClientSetupFailed = errors.MustNewCode("s3.client_setup_failed")
	S3BucketMissing     = errors.MustNewCode("s3.bucket_missing")
	S3PutFailed         = errors.MustNewCode("s3.put_failed")
	S3RequestFailed     = errors.MustNewCode("s3.request_failed")
)

// Config holds the S3 connection settings
type Config struct {
	Endpoint     string
	Region       string
	AccessKey    string
	SecretKey    string
	UseSSL       bool
	CreateBucket bool
}

// FileSystem implements storage.FileSystem on an S3-compatible service
type FileSystem struct {
	client       *minio.Client
	createBucket bool
}

// NewS3FileSystem creates a new S3/MinIO filesystem
func NewS3FileSystem(cfg Config) (*FileSystem, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New(S3ClientSetupFailed, "s3 endpoint is required", nil)
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       cfg.UseSSL,
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, errors.New(S3ClientSetupFailed, "failed to create s3 client", err).AddContext("endpoint", cfg.Endpoint)
	}

	return &FileSystem{client: client, createBucket: cfg.CreateBucket}, nil
}

// GetStorageType returns the storage type identifier
func (fs *FileSystem) GetStorageType() storage.EngineType {
	return storage.S3
}

func splitPath(p string) (bucket, key string, err error) {
	p = strings.TrimPrefix(p, "/")
	bucket, key, ok := strings.Cut(p, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", errors.New(storage.StorageInvalidPath, "s3 path must be bucket/key", nil).AddContext("path", p)
	}
	return bucket, key, nil
}

// OpenForRead opens an object for streaming read
func (fs *FileSystem) OpenForRead(ctx context.Context, p string) (io.ReadCloser, error) {
	bucket, key, err := splitPath(p)
	if err != nil {
		return nil, err
	}

	// GetObject is lazy; stat first so a missing key fails here.
	if _, err := fs.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{}); err != nil {
		return nil, fs.requestError(err, "failed to stat object", p)
	}

	obj, err := fs.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fs.requestError(err, "failed to get object", p)
	}
	return obj, nil
}

// OpenForWrite returns a writer that uploads on Close. The bucket must exist
// unless CreateBucket is set.
func (fs *FileSystem) OpenForWrite(ctx context.Context, p string) (io.WriteCloser, error) {
	bucket, key, err := splitPath(p)
	if err != nil {
		return nil, err
	}
	if err := fs.ensureBucket(ctx, bucket); err != nil {
		return nil, err
	}
	return &objectWriter{ctx: ctx, fs: fs, bucket: bucket, key: key}, nil
}

// MkdirAll ensures the bucket named by the first path segment exists.
// Object stores have no directories below that.
func (fs *FileSystem) MkdirAll(ctx context.Context, dir string) error {
	bucket, _, _ := strings.Cut(strings.TrimPrefix(dir, "/"), "/")
	if bucket == "" || bucket == "." {
		return nil
	}
	return fs.ensureBucket(ctx, bucket)
}

func (fs *FileSystem) ensureBucket(ctx context.Context, bucket string) error {
	exists, err := fs.client.BucketExists(ctx, bucket)
	if err != nil {
		return errors.New(S3RequestFailed, "failed to check bucket", err).AddContext("bucket", bucket)
	}
	if exists {
		return nil
	}
	if !fs.createBucket {
		return errors.New(S3BucketMissing, "bucket does not exist", nil).AddContext("bucket", bucket)
	}
	if err := fs.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return errors.New(S3RequestFailed, "failed to create bucket", err).AddContext("bucket", bucket)
	}
	return nil
}

// Exists checks if an object exists
func (fs *FileSystem) Exists(ctx context.Context, p string) (bool, error) {
	bucket, key, err := splitPath(p)
	if err != nil {
		return false, err
	}
	if _, err := fs.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{}); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fs.requestError(err, "failed to stat object", p)
	}
	return true, nil
}

// Remove removes an object
func (fs *FileSystem) Remove(ctx context.Context, p string) error {
	bucket, key, err := splitPath(p)
	if err != nil {
		return err
	}
	if err := fs.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fs.requestError(err, "failed to remove object", p)
	}
	return nil
}

func (fs *FileSystem) requestError(err error, msg, p string) error {
	code := S3RequestFailed
	if isNotFound(err) {
		code = storage.StorageNotFound
	}
	return errors.New(code, msg, err).AddContext("path", p)
}

func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return true
	default:
		return false
	}
}

// objectWriter buffers an object and uploads it on Close.
type objectWriter struct {
	ctx    context.Context
	fs     *FileSystem
	bucket string
	key    string
	buf    bytes.Buffer
	closed bool
}

func (w *objectWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errors.New(storage.StorageWriteFailed, "write to closed object writer", nil).AddContext("key", w.key)
	}
	return w.buf.Write(p)
}

func (w *objectWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	_, err := w.fs.client.PutObject(w.ctx, w.bucket, w.key, bytes.NewReader(w.buf.Bytes()), int64(w.buf.Len()),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return errors.New(S3PutFailed, "failed to upload object", err).
			AddContext("bucket", w.bucket).
			AddContext("key", w.key)
	}
	return nil
}
