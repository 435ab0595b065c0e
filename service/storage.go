package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/spf13/viper"
)

// Storage persists uploaded images (product photos, avatars) and hands
// back an opaque reference stored on the owning record
type Storage interface {
	Save(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, keys ...string) error
}

// NewStorage picks the backend named by storage.type
func NewStorage() (Storage, error) {
	switch t := viper.GetString("storage.type"); t {
	case "local":
		return NewLocalStorage(viper.GetString("storage.local_path"))
	case "s3":
		return NewS3Storage()
	default:
		return nil, errors.New("invalid storage type " + t)
	}
}

type LocalStorage struct {
	Dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory, %w", err)
	}

	return &LocalStorage{Dir: dir}, nil
}

func (s *LocalStorage) Save(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	// Keys are generated server side, but don't trust them with path
	// separators anyway
	key = filepath.Base(key)

	f, err := os.Create(filepath.Join(s.Dir, key))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", err
	}

	return key, nil
}

func (s *LocalStorage) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		err := os.Remove(filepath.Join(s.Dir, filepath.Base(key)))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	return nil
}

type S3Storage struct {
	C        *s3.Client
	Uploader *manager.Uploader
	Bucket   *string
}

func NewS3Storage() (*S3Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			viper.GetString("storage.s3.access_key_id"),
			viper.GetString("storage.s3.secret_access_key"),
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	bucket := aws.String(viper.GetString("storage.s3.bucket"))

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.Region = viper.GetString("storage.s3.region")
	})

	_, err = client.HeadBucket(context.TODO(), &s3.HeadBucketInput{
		Bucket: bucket,
	})
	if err != nil {
		var apiErr smithy.APIError

		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
			return nil, fmt.Errorf("bucket '%s' does not exist", *bucket)
		}

		return nil, fmt.Errorf("failed to check if bucket exists, %w", err)
	}

	return &S3Storage{
		C:        client,
		Uploader: manager.NewUploader(client),
		Bucket:   bucket,
	}, nil
}

func (s *S3Storage) Save(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	_, err := s.Uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      s.Bucket,
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return key, nil
}

func (s *S3Storage) Delete(ctx context.Context, keys ...string) error {
	objects := make([]types.ObjectIdentifier, len(keys))
	for i, key := range keys {
		objects[i] = types.ObjectIdentifier{Key: aws.String(key)}
	}

	_, err := s.C.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: s.Bucket,
		Delete: &types.Delete{
			Objects: objects,
		},
	})

	return err
}
