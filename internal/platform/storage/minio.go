package storage

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/raminsh/filmlog/internal/platform/config"
)

// InitMinIO connects to the object store and makes sure the poster bucket
// exists with public-read access. Safe to run repeatedly.
func InitMinIO(cfg config.MinIOConfig) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("error initializing minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.BucketPosters)
	if err != nil {
		return nil, fmt.Errorf("error checking bucket '%s': %w", cfg.BucketPosters, err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketPosters, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("error creating bucket '%s': %w", cfg.BucketPosters, err)
		}
	}

	// Posters are served directly by the object store.
	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			}
		]
	}`, cfg.BucketPosters)

	if err := client.SetBucketPolicy(ctx, cfg.BucketPosters, policy); err != nil {
		return nil, fmt.Errorf("error setting public-read policy for bucket '%s': %w", cfg.BucketPosters, err)
	}

	return client, nil
}
