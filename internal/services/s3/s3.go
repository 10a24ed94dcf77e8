// Package s3service provides S3 operations for the credit report analyzer.
package s3service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/utils"
)

// Service handles S3 operations: archiving raw report files after a
// successful ingest and presigning upload URLs for large files.
type Service struct {
	client     *s3.Client
	presigner  *s3.PresignClient
	bucketName string
}

// PresignedURLResult contains the presigned URL details.
type PresignedURLResult struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewService creates a new S3 service for the given bucket.
func NewService(ctx context.Context, region, bucket string) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	return &Service{
		client:     client,
		presigner:  s3.NewPresignClient(client),
		bucketName: bucket,
	}, nil
}

// ArchiveReport stores the raw XML of a processed report under
// archive/<key>. The caller decides whether an archive failure matters;
// ingestion itself never depends on it.
func (s *Service) ArchiveReport(ctx context.Context, key string, xmlData []byte) error {
	fullKey := "archive/" + key

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(fullKey),
		Body:        bytes.NewReader(xmlData),
		ContentType: aws.String("application/xml"),
	})
	if err != nil {
		return fmt.Errorf("failed to archive report: %w", err)
	}

	utils.GetLogger().Info("Archived raw report",
		zap.String("bucket", s.bucketName),
		zap.String("key", fullKey),
		zap.Int("bytes", len(xmlData)))

	return nil
}

// GeneratePresignedUploadURL creates a presigned URL for uploading report files.
func (s *Service) GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiryMinutes int) (*PresignedURLResult, error) {
	if expiryMinutes <= 0 {
		expiryMinutes = 15 // Default 15 minutes
	}

	expiry := time.Duration(expiryMinutes) * time.Minute

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presignedReq, err := s.presigner.PresignPutObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = expiry
	})
	if err != nil {
		utils.GetLogger().Error("Failed to generate presigned URL",
			zap.String("bucket", s.bucketName),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return &PresignedURLResult{
		URL:       presignedReq.URL,
		Key:       key,
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}

// GeneratePresignedDownloadURL creates a presigned URL for downloading an
// archived report file.
func (s *Service) GeneratePresignedDownloadURL(ctx context.Context, key string, expiryMinutes int) (*PresignedURLResult, error) {
	if expiryMinutes <= 0 {
		expiryMinutes = 15
	}

	expiry := time.Duration(expiryMinutes) * time.Minute

	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	}

	presignedReq, err := s.presigner.PresignGetObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = expiry
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned download URL: %w", err)
	}

	return &PresignedURLResult{
		URL:       presignedReq.URL,
		Key:       key,
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}
