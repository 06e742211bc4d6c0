package repository

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/motionmix/montage-backend/internal/artifacts"
	"github.com/motionmix/montage-backend/internal/models"
)

const resolveURLExpiry = 60 * time.Minute

type s3Repository struct {
	client        *s3.Client
	preSignClient *s3.PresignClient
}

func NewS3Repository(client *s3.Client, preSignClient *s3.PresignClient) artifacts.Repository {
	return &s3Repository{
		client:        client,
		preSignClient: preSignClient,
	}
}

func (r *s3Repository) PutObject(ctx context.Context, input models.UploadInput) (*s3.PutObjectOutput, error) {
	res, err := r.client.PutObject(
		ctx,
		&s3.PutObjectInput{
			Bucket:        &input.Bucket,
			Key:           &input.Key,
			ContentType:   &input.MimeType,
			ContentLength: &input.Size,
			Body:          input.File,
		},
	)
	if err != nil {
		return nil, errors.Wrapf(err, "s3Repository.PutObject %s/%s", input.Bucket, input.Key)
	}
	return res, nil
}

func (r *s3Repository) GetObject(ctx context.Context, bucket, key string) (*s3.GetObjectOutput, error) {
	res, err := r.client.GetObject(
		ctx,
		&s3.GetObjectInput{
			Bucket: &bucket,
			Key:    &key,
		},
	)
	if err != nil {
		return nil, errors.Wrapf(err, "s3Repository.GetObject %s/%s", bucket, key)
	}
	return res, nil
}

func (r *s3Repository) RemoveObject(ctx context.Context, bucket, key string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return errors.Wrapf(err, "s3Repository.RemoveObject %s/%s", bucket, key)
	}
	return nil
}

// ResolveURL returns a presigned GET URL so that external collaborators (the
// motion generation service in particular) can fetch the blob without store
// credentials.
func (r *s3Repository) ResolveURL(ctx context.Context, bucket, key string) (string, error) {
	req, err := r.preSignClient.PresignGetObject(
		ctx,
		&s3.GetObjectInput{
			Bucket: &bucket,
			Key:    &key,
		},
		s3.WithPresignExpires(resolveURLExpiry),
	)
	if err != nil {
		return "", errors.Wrapf(err, "s3Repository.ResolveURL %s/%s", bucket, key)
	}
	return req.URL, nil
}
