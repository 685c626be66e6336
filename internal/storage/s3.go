package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Uploader publica objetos no bucket de mídia (fotos de perfil)
type Uploader struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string
}

// NewUploader retorna nil quando o bucket não está configurado
func NewUploader(bucket, region, accessKey, secretKey, endpoint string) *Uploader {
	if bucket == "" || accessKey == "" {
		return nil
	}

	opts := s3.Options{
		Region: region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	}

	// endpoint customizado (MinIO / localstack em dev)
	if endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	}

	return &Uploader{
		client:   s3.New(opts),
		bucket:   bucket,
		region:   region,
		endpoint: endpoint,
	}
}

func (u *Uploader) Enabled() bool {
	return u != nil
}

func (u *Uploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", err
	}

	if u.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", u.endpoint, u.bucket, key), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key), nil
}
