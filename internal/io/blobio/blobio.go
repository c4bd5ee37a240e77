// Package blobio implements the image object store on top of S3.
package blobio

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/springsdata/springsync/internal/ent/recon"
	"github.com/springsdata/springsync/pkg/config"
)

type blobio struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// New returns an S3-backed image store. Credentials come from the default
// AWS chain (environment, shared config, instance role).
func New(ctx context.Context, cfg config.Config) (recon.ImageStore, error) {
	awsCfg, err := awscfg.LoadDefaultConfig(ctx,
		awscfg.WithRegion(cfg.S3Region),
	)
	if err != nil {
		return nil, err
	}
	res := &blobio{
		client:    s3.NewFromConfig(awsCfg),
		bucket:    cfg.S3Bucket,
		publicURL: strings.TrimSuffix(cfg.S3PublicURL, "/"),
	}
	return res, nil
}

// Put uploads an object and returns its public URL.
func (b *blobio) Put(
	ctx context.Context, key, contentType string, body io.Reader,
) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := b.client.PutObject(ctx, input); err != nil {
		return "", &recon.PersistenceError{Op: "put " + key, Err: err}
	}
	return b.publicURL + "/" + key, nil
}

// Delete removes an object.
func (b *blobio) Delete(ctx context.Context, key string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return &recon.PersistenceError{Op: "delete " + key, Err: err}
	}
	return nil
}
