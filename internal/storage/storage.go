package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const uploadURLExpiry = 5 * time.Minute

// Uploader issues pre-signed write URLs so clients upload training archives
// directly to the bucket without routing the bytes through the API.
type Uploader struct {
	client *minio.Client
	bucket string
}

// UploadTarget is a time-bounded pre-signed PUT URL and the object key the
// archive will live under.
type UploadTarget struct {
	URL string
	Key string
}

func NewUploader(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*Uploader, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage client: %w", err)
	}

	return &Uploader{
		client: client,
		bucket: bucket,
	}, nil
}

func (u *Uploader) PresignedUploadURL(ctx context.Context) (*UploadTarget, error) {
	key := fmt.Sprintf("models/%s.zip", uuid.NewString())

	presigned, err := u.client.PresignedPutObject(ctx, u.bucket, key, uploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload url: %w", err)
	}

	return &UploadTarget{
		URL: presigned.String(),
		Key: key,
	}, nil
}
