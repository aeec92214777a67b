package links

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Presigner issues presigned GET URLs against a single bucket.
type S3Presigner struct {
	presign *s3.PresignClient
	bucket  string
}

func NewS3Presigner(client *s3.Client, bucket string) *S3Presigner {
	return &S3Presigner{
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
	}
}

func (p *S3Presigner) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, err := p.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
