// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

// Package media uploads files to S3-compatible object storage.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ErrNotConfigured is returned when object storage credentials are absent.
// Configuration is checked at call time, not construction time, so the
// application can boot without storage and reject uploads gracefully.
var ErrNotConfigured = errors.New("media: object storage is not configured")

// Config holds object storage settings.
type Config struct {
	Region    string
	Bucket    string
	Endpoint  string // optional, for S3-compatible backends like MinIO
	AccessKey string
	SecretKey string

	// PublicBaseURL is the base URL where uploaded objects are served.
	// When empty, the virtual-hosted S3 URL is used.
	PublicBaseURL string
}

func (c Config) enabled() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

// Uploader stores media files in an S3 bucket.
type Uploader struct {
	cfg Config
}

// NewUploader creates an uploader with the given settings.
func NewUploader(cfg Config) *Uploader {
	return &Uploader{cfg: cfg}
}

// UploadOptions carries per-file metadata.
type UploadOptions struct {
	FileName    string // original file name, used for the key extension
	ContentType string
}

// Indirections for testing.
var (
	loadAWSConfig = awsconfig.LoadDefaultConfig
	newS3Client   = s3.NewFromConfig
	putObject     = func(client *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return client.PutObject(ctx, in)
	}
)

// storageKey builds a collision-free object key under the given folder.
func storageKey(folder, fileName string) string {
	d := time.Now().UTC()
	key := fmt.Sprintf("%s/%d/%02d/%v", folder, d.Year(), d.Month(), uuid.New())
	if ext := strings.ToLower(path.Ext(fileName)); ext != "" {
		key += ext
	}
	return key
}

func (u *Uploader) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadAWSConfig(ctx,
		awsconfig.WithRegion(u.cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			u.cfg.AccessKey,
			u.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3Client(cfg, func(o *s3.Options) {
		if u.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(u.cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// UploadBuffer stores data under a generated key in the configured folder.
// It performs a single PutObject with no retries and returns the public URL
// and the object key.
func (u *Uploader) UploadBuffer(ctx context.Context, data []byte, folder string, opts UploadOptions) (string, string, error) {
	if !u.cfg.enabled() {
		return "", "", ErrNotConfigured
	}

	client, err := u.client(ctx)
	if err != nil {
		return "", "", err
	}

	key := storageKey(folder, opts.FileName)

	input := &s3.PutObjectInput{
		Bucket: aws.String(u.cfg.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}

	if _, err := putObject(client, ctx, input); err != nil {
		return "", "", fmt.Errorf("media: put object: %w", err)
	}

	return u.publicURL(key), key, nil
}

func (u *Uploader) publicURL(key string) string {
	if u.cfg.PublicBaseURL != "" {
		return strings.TrimSuffix(u.cfg.PublicBaseURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, key)
}
