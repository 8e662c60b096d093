package media

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const stagingPrefix = "staging/"

type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
}

// s3Storage implements the staged upload on an S3-compatible store. Staging
// objects live under a key prefix; promotion is a server-side copy followed
// by removal of the staged key.
type s3Storage struct {
	client *minio.Client
	bucket string
}

func NewS3Storage(ctx context.Context, cfg S3Config) (Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	return &s3Storage{client: client, bucket: cfg.Bucket}, nil
}

func (s *s3Storage) SaveStaging(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, stagingPrefix+name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (s *s3Storage) Promote(ctx context.Context, name string) (string, error) {
	src := minio.CopySrcOptions{Bucket: s.bucket, Object: stagingPrefix + name}
	dst := minio.CopyDestOptions{Bucket: s.bucket, Object: name}

	if _, err := s.client.CopyObject(ctx, dst, src); err != nil {
		return "", err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, stagingPrefix+name, minio.RemoveObjectOptions{}); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", s.bucket, name), nil
}

func (s *s3Storage) DiscardStaging(ctx context.Context, name string) error {
	return s.client.RemoveObject(ctx, s.bucket, stagingPrefix+name, minio.RemoveObjectOptions{})
}
