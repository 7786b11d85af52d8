package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/cliniccare/clinic-scheduler/internal/config"
)

// DefaultProfileImage is served for accounts that never uploaded a picture.
const DefaultProfileImage = "https://clinic-profile-images.s3.amazonaws.com/defaults/avatar.webp"

// ImageStorage stores profile pictures. Upload returns the public URL and the
// object key kept on the user row so a later replace/delete can find it.
type ImageStorage interface {
	Upload(ctx context.Context, data []byte) (url string, key string, err error)
	Delete(ctx context.Context, key string) error
}

type S3Storage struct {
	client *s3.Client
	bucket string
	region string
}

func NewS3Storage(cfg *config.Config) *S3Storage {
	awsCfg := aws.Config{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	return &S3Storage{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.S3Bucket,
		region: cfg.S3Region,
	}
}

func (s *S3Storage) Upload(ctx context.Context, data []byte) (string, string, error) {
	normalized, err := normalizeProfileImage(data)
	if err != nil {
		return "", "", err
	}

	key := fmt.Sprintf("profile-images/%s.webp", uuid.NewString())

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(normalized),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", "", err
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)

	return url, key, nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

var _ ImageStorage = (*S3Storage)(nil)
