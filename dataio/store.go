// SPDX-License-Identifier: MIT

package dataio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3Scheme prefixes object-store locations.
const s3Scheme = "s3"

var (
	// ErrBadLocation indicates an empty or malformed location.
	ErrBadLocation = errors.New("dataio: invalid location")

	// ErrNoObjectStore indicates an s3:// location on a Store without S3 access.
	ErrNoObjectStore = errors.New("dataio: object store not configured")
)

// ObjectAPI is the subset of the S3 client the Store uses.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config configures the object-store client.
type S3Config struct {
	Region   string
	Endpoint string // S3-compatible services (MinIO, etc.)
	// Static credentials; leave empty to use the default AWS chain
	// (environment, shared config, instance role).
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// Store opens and creates data locations on the local filesystem or S3.
type Store struct {
	objects ObjectAPI
}

// NewLocalStore returns a Store that only resolves filesystem paths.
func NewLocalStore() *Store {
	return &Store{}
}

// NewStore returns a Store backed by the given object client for s3://
// locations. A nil client behaves like NewLocalStore.
func NewStore(objects ObjectAPI) *Store {
	return &Store{objects: objects}
}

// NewS3Store builds an aws-sdk-go-v2 S3 client from cfg and wraps it.
func NewS3Store(ctx context.Context, cfg S3Config) (*Store, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("dataio: load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.UsePathStyle
		})
	}

	return NewStore(s3.NewFromConfig(awsCfg, s3Opts...)), nil
}

// objectRef is a parsed s3://bucket/key location.
type objectRef struct {
	bucket string
	key    string
}

// parseLocation returns (ref, true) for s3:// locations and (_, false) for
// filesystem paths.
func parseLocation(loc string) (objectRef, bool, error) {
	if loc == "" {
		return objectRef{}, false, fmt.Errorf("%w: empty", ErrBadLocation)
	}
	if !strings.HasPrefix(loc, s3Scheme+"://") {
		return objectRef{}, false, nil
	}
	u, err := url.Parse(loc)
	if err != nil {
		return objectRef{}, false, fmt.Errorf("%w: %q: %w", ErrBadLocation, loc, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return objectRef{}, false, fmt.Errorf("%w: %q needs bucket and key", ErrBadLocation, loc)
	}

	return objectRef{bucket: u.Host, key: key}, true, nil
}

// Open returns a reader for loc. The caller closes it.
func (s *Store) Open(ctx context.Context, loc string) (io.ReadCloser, error) {
	ref, remote, err := parseLocation(loc)
	if err != nil {
		return nil, err
	}
	if !remote {
		f, err := os.Open(loc)
		if err != nil {
			return nil, fmt.Errorf("dataio: open %s: %w", loc, err)
		}

		return f, nil
	}
	if s.objects == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoObjectStore, loc)
	}
	out, err := s.objects.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(ref.bucket),
		Key:    aws.String(ref.key),
	})
	if err != nil {
		return nil, fmt.Errorf("dataio: S3 get object %s: %w", loc, err)
	}

	return out.Body, nil
}

// Create returns a writer for loc. For s3:// locations the content is
// buffered and uploaded on Close; Close reports the upload error.
func (s *Store) Create(ctx context.Context, loc string) (io.WriteCloser, error) {
	ref, remote, err := parseLocation(loc)
	if err != nil {
		return nil, err
	}
	if !remote {
		if dir := filepath.Dir(loc); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("dataio: create %s: %w", loc, err)
			}
		}
		f, err := os.Create(loc)
		if err != nil {
			return nil, fmt.Errorf("dataio: create %s: %w", loc, err)
		}

		return f, nil
	}
	if s.objects == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoObjectStore, loc)
	}

	return &objectWriter{ctx: ctx, api: s.objects, ref: ref}, nil
}

// IsRemote reports whether loc names an object-store location.
func IsRemote(loc string) bool {
	return strings.HasPrefix(loc, s3Scheme+"://")
}

// objectWriter buffers an upload until Close.
type objectWriter struct {
	ctx    context.Context
	api    ObjectAPI
	ref    objectRef
	buf    bytes.Buffer
	closed bool
}

func (w *objectWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, os.ErrClosed
	}

	return w.buf.Write(p)
}

func (w *objectWriter) Close() error {
	if w.closed {
		return os.ErrClosed
	}
	w.closed = true
	_, err := w.api.PutObject(w.ctx, &s3.PutObjectInput{
		Bucket: aws.String(w.ref.bucket),
		Key:    aws.String(w.ref.key),
		Body:   bytes.NewReader(w.buf.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("dataio: S3 put object s3://%s/%s: %w", w.ref.bucket, w.ref.key, err)
	}

	return nil
}
