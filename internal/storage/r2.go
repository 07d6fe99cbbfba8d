package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"fuelsmart/internal/core"
)

// EvidenceUploader stores photo evidence for pending location reports
// in an S3-compatible (R2) bucket.
type EvidenceUploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewEvidenceUploader(ctx context.Context) (*EvidenceUploader, error) {
	endpoint := os.Getenv("R2_ENDPOINT")
	accessKey := os.Getenv("R2_ACCESS_KEY")
	secretKey := os.Getenv("R2_SECRET_KEY")
	bucket := os.Getenv("R2_BUCKET_NAME")
	baseURL := os.Getenv("R2_PUBLIC_BASE_URL")

	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				accessKey,
				secretKey,
				"",
			),
		),
		config.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(
				func(service, region string, options ...interface{}) (aws.Endpoint, error) {
					if service == s3.ServiceID {
						return aws.Endpoint{
							URL:           endpoint,
							SigningRegion: "auto",
						}, nil
					}
					return aws.Endpoint{}, &aws.EndpointNotFoundError{}
				},
			),
		),
	)
	if err != nil {
		return nil, err
	}

	return &EvidenceUploader{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// UploadEvidence uploads one image and returns its public URL.
func (u *EvidenceUploader) UploadEvidence(
	ctx context.Context,
	reportID string,
	file *multipart.FileHeader,
) (string, error) {

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", core.Invalid("evidence must be an image")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	key := fmt.Sprintf(
		"evidence/%s/%s%s",
		reportID,
		uuid.New().String(),
		strings.ToLower(path.Ext(file.Filename)),
	)

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &u.bucket,
		Key:         &key,
		Body:        f,
		ContentType: &contentType,
	})
	if err != nil {
		return "", core.Remote("upload evidence", err)
	}

	return fmt.Sprintf("%s/%s", strings.TrimRight(u.baseURL, "/"), key), nil
}
