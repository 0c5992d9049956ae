// Package artifact uploads run reports to object storage.
package artifact

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ReportName is the object name of the uploaded report below its run prefix.
const ReportName = "report.json"

// S3Config selects where reports are uploaded.
type S3Config struct {
	Bucket string
	Prefix string
	Region string
}

// PutObjectAPI is the subset of the S3 client used by the uploader.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader stores reports in an S3 bucket.
type S3Uploader struct {
	client PutObjectAPI
	bucket string
	prefix string
	now    func() time.Time
}

// NewS3Uploader creates an uploader using the default AWS credential chain.
func NewS3Uploader(ctx context.Context, cfg S3Config) (*S3Uploader, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewS3UploaderWithClient(s3.NewFromConfig(awsCfg), cfg), nil
}

// NewS3UploaderWithClient creates an uploader around an existing client.
func NewS3UploaderWithClient(client PutObjectAPI, cfg S3Config) *S3Uploader {
	return &S3Uploader{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		now:    time.Now,
	}
}

// Key returns the object key for runID: <prefix>/<runID>/report.json.
func (u *S3Uploader) Key(runID string) string {
	return path.Join(u.prefix, runID, ReportName)
}

// Upload stores data as the report of runID and returns its s3:// URI.
func (u *S3Uploader) Upload(ctx context.Context, runID string, data []byte, failed bool) (string, error) {
	key := u.Key(runID)
	status := "passed"
	if failed {
		status = "failed"
	}

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"run-id":      runID,
			"status":      status,
			"upload-time": u.now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", u.bucket, key), nil
}
