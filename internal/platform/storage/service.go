package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/minio/minio-go/v7"
)

// PosterStore uploads and removes movie poster images.
type PosterStore struct {
	client *minio.Client
	bucket string
	secure bool
}

func NewPosterStore(client *minio.Client, bucket string, secure bool) *PosterStore {
	return &PosterStore{
		client: client,
		bucket: bucket,
		secure: secure,
	}
}

// UploadPoster stores the image under posters/<movie_uuid><ext> and returns
// the public URL. Re-uploading for the same movie overwrites the object.
func (s *PosterStore) UploadPoster(ctx context.Context, file multipart.File, fileHeader *multipart.FileHeader, movieUUID string) (string, error) {
	ext := filepath.Ext(fileHeader.Filename)
	objectName := fmt.Sprintf("posters/%s%s", movieUUID, ext)

	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		objectName,
		file,
		fileHeader.Size,
		minio.PutObjectOptions{
			ContentType: fileHeader.Header.Get("Content-Type"),
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload poster: %w", err)
	}

	scheme := "http"
	if s.secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, s.bucket, objectName), nil
}

// DeletePoster removes the stored object for a previously uploaded poster.
func (s *PosterStore) DeletePoster(ctx context.Context, objectName string) error {
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}
