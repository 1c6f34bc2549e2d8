// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Region:        "us-east-1",
		Bucket:        "halcyon-media",
		AccessKey:     "key",
		SecretKey:     "secret",
		PublicBaseURL: "https://media.halcyonsec.example",
	}
}

func stubPut(t *testing.T, fn func(in *s3.PutObjectInput) (*s3.PutObjectOutput, error)) {
	t.Helper()
	orig := putObject
	putObject = func(_ *s3.Client, _ context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return fn(in)
	}
	t.Cleanup(func() { putObject = orig })
}

func TestUploadBuffer_NotConfigured(t *testing.T) {
	u := NewUploader(Config{Region: "us-east-1"})

	_, _, err := u.UploadBuffer(context.Background(), []byte("data"), "uploads", UploadOptions{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestUploadBuffer(t *testing.T) {
	u := NewUploader(testConfig())

	var gotInput *s3.PutObjectInput
	stubPut(t, func(in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		gotInput = in
		return &s3.PutObjectOutput{}, nil
	})

	url, key, err := u.UploadBuffer(context.Background(), []byte("pdf-bytes"), "cv", UploadOptions{
		FileName:    "resume.PDF",
		ContentType: "application/pdf",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "cv/"), "key %q must live under the folder", key)
	assert.True(t, strings.HasSuffix(key, ".pdf"), "key %q must keep the lowercased extension", key)
	assert.Equal(t, "https://media.halcyonsec.example/"+key, url)

	require.NotNil(t, gotInput)
	assert.Equal(t, "halcyon-media", aws.ToString(gotInput.Bucket))
	assert.Equal(t, key, aws.ToString(gotInput.Key))
	assert.Equal(t, "application/pdf", aws.ToString(gotInput.ContentType))

	body, err := io.ReadAll(gotInput.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf-bytes"), body)
}

func TestUploadBuffer_UniqueKeys(t *testing.T) {
	u := NewUploader(testConfig())

	stubPut(t, func(_ *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return &s3.PutObjectOutput{}, nil
	})

	_, key1, err := u.UploadBuffer(context.Background(), []byte("a"), "uploads", UploadOptions{FileName: "a.png"})
	require.NoError(t, err)
	_, key2, err := u.UploadBuffer(context.Background(), []byte("b"), "uploads", UploadOptions{FileName: "a.png"})
	require.NoError(t, err)

	assert.NotEqual(t, key1, key2)
}

func TestUploadBuffer_PutError(t *testing.T) {
	u := NewUploader(testConfig())

	stubPut(t, func(_ *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return nil, errors.New("bucket unreachable")
	})

	_, _, err := u.UploadBuffer(context.Background(), []byte("data"), "uploads", UploadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket unreachable")
}

func TestPublicURL_DefaultS3(t *testing.T) {
	cfg := testConfig()
	cfg.PublicBaseURL = ""
	u := NewUploader(cfg)

	assert.Equal(t,
		"https://halcyon-media.s3.us-east-1.amazonaws.com/uploads/x.png",
		u.publicURL("uploads/x.png"))
}
