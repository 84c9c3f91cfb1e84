package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader stores images in a bucket and returns their public URL.
type S3Uploader struct {
	Client        ObjectPutter
	Bucket        string
	PublicBaseURL string
}

func NewS3Uploader(client ObjectPutter, bucket, publicBaseURL string) *S3Uploader {
	return &S3Uploader{Client: client, Bucket: bucket, PublicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

func (u *S3Uploader) Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	_, err := u.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.Bucket),
		Key:         aws.String(name),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", name, err)
	}
	return u.PublicBaseURL + "/" + name, nil
}

// LocalUploader writes images under Dir; they are served back from /uploads/.
type LocalUploader struct {
	Dir string
}

func NewLocalUploader(dir string) *LocalUploader {
	return &LocalUploader{Dir: dir}
}

func (u *LocalUploader) Upload(_ context.Context, name, _ string, body io.Reader) (string, error) {
	if err := os.MkdirAll(u.Dir, 0755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	dst, err := os.Create(filepath.Join(u.Dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, body); err != nil {
		return "", fmt.Errorf("save file: %w", err)
	}
	return "/uploads/" + name, nil
}
