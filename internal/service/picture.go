package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pageza/pantrychef/backend/config"
)

// MaxPictureBytes is the largest accepted profile picture.
const MaxPictureBytes = 2 << 20

var allowedPictureTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// ValidatePicture sniffs the content type of data and checks size and type.
func ValidatePicture(data []byte) (string, error) {
	if len(data) == 0 {
		return "", validationError("picture is empty")
	}
	if len(data) > MaxPictureBytes {
		return "", validationError("picture exceeds %d bytes", MaxPictureBytes)
	}
	contentType := http.DetectContentType(data)
	if _, ok := allowedPictureTypes[contentType]; !ok {
		return "", validationError("unsupported picture type %s", contentType)
	}
	return contentType, nil
}

// PictureStore persists profile pictures and returns the URL to record.
type PictureStore interface {
	Save(ctx context.Context, userID uuid.UUID, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, url string) error
}

// InlinePictureStore keeps the picture in the profile row as a base64 data URI.
type InlinePictureStore struct{}

func (InlinePictureStore) Save(_ context.Context, _ uuid.UUID, contentType string, data []byte) (string, error) {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func (InlinePictureStore) Delete(context.Context, string) error {
	return nil
}

// S3PictureStore uploads pictures to a bucket and records the object URL.
type S3PictureStore struct {
	s3 *config.S3Config
}

func NewS3PictureStore(s3cfg *config.S3Config) *S3PictureStore {
	return &S3PictureStore{s3: s3cfg}
}

func (s *S3PictureStore) Save(ctx context.Context, userID uuid.UUID, contentType string, data []byte) (string, error) {
	key := fmt.Sprintf("profile-pictures/%s/%s.%s", userID, uuid.NewString(), allowedPictureTypes[contentType])
	_, err := s.s3.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload picture: %w", err)
	}
	return s.s3.ObjectURL(key), nil
}

// Delete removes the object behind url. URLs outside the bucket are ignored.
func (s *S3PictureStore) Delete(ctx context.Context, url string) error {
	prefix := s.s3.ObjectURL("")
	if !strings.HasPrefix(url, prefix) {
		return nil
	}
	_, err := s.s3.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.s3.BucketName),
		Key:    aws.String(strings.TrimPrefix(url, prefix)),
	})
	if err != nil {
		return fmt.Errorf("delete picture: %w", err)
	}
	return nil
}
