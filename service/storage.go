package service

import (
	"context"
	"fmt"
	"time"

	appconfig "github.com/edusparsh/erp_backend/config"
	"github.com/edusparsh/erp_backend/models"
	"github.com/edusparsh/erp_backend/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// RecordingStorage issues presigned URLs for call recordings. Presigned
// URLs expire, so stored URLs are treated as a cache and refreshed on read.
type RecordingStorage struct {
	presigner *s3.PresignClient
	bucket    string
	ttl       time.Duration
}

var recordingStorage *RecordingStorage

// InitRecordingStorage builds the shared storage client from configuration.
func InitRecordingStorage(cfg *appconfig.Config) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	recordingStorage = &RecordingStorage{
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.RecordingsBucket,
		ttl:       cfg.PresignTTL,
	}

	return nil
}

// Recordings returns the shared storage client, or nil when storage was
// never configured (URLs then pass through unrefreshed).
func Recordings() *RecordingStorage {
	return recordingStorage
}

// PresignGet issues a fresh presigned GET URL for an object key.
func (s *RecordingStorage) PresignGet(ctx context.Context, objectKey string) (string, time.Time, error) {
	request, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to presign %s: %w", objectKey, err)
	}

	return request.URL, time.Now().Add(s.ttl), nil
}

// RefreshRecordingURLs re-presigns every recording whose URL is missing or
// expiring. A presign failure leaves that recording's stale URL in place
// rather than failing the read.
func RefreshRecordingURLs(ctx context.Context, recordings []models.Recording) []models.Recording {
	storage := Recordings()
	if storage == nil {
		return recordings
	}

	now := time.Now()
	for i := range recordings {
		if recordings[i].ObjectKey == "" {
			continue
		}
		if recordings[i].URL != "" && recordings[i].URLExpiresAt.After(now.Add(time.Hour)) {
			continue
		}

		url, expiresAt, err := storage.PresignGet(ctx, recordings[i].ObjectKey)
		if err != nil {
			utils.LogError(err, map[string]interface{}{
				"objectKey": recordings[i].ObjectKey,
			}, "failed to refresh recording url")
			continue
		}

		recordings[i].URL = url
		recordings[i].URLExpiresAt = expiresAt
	}

	return recordings
}
