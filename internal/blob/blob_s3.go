package blob

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store reads remote log objects from an S3-compatible bucket.
type S3Store struct {
	s3Client *s3.Client
	config   *S3Config
}

func NewS3Store(s3Client *s3.Client, config *S3Config) *S3Store {
	return &S3Store{
		s3Client: s3Client,
		config:   config,
	}
}

func NewS3StoreWithConfig(cfg *S3Config) (*S3Store, error) {
	httpClient := &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   50,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			ForceAttemptHTTP2:     true,
		},
		Timeout: 30 * time.Second,
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
		config.WithRegion(cfg.Region),
		config.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	awsClient := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
		if cfg.UseAccelerate {
			o.UseAccelerate = true
		}
	})

	return NewS3Store(awsClient, cfg), nil
}

// Size returns the object's current content length via HeadObject.
func (s *S3Store) Size(ctx context.Context, key string) (int64, error) {
	resp, err := s.s3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &s.config.BucketName,
		Key:    &key,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: head %q: %v", ErrRemoteUnavailable, key, err)
	}

	size := aws.ToInt64(resp.ContentLength)
	if size < 0 {
		return 0, fmt.Errorf("%w: head %q: malformed content length %d", ErrRemoteUnavailable, key, size)
	}
	return size, nil
}

// ReadRange fetches the inclusive byte range [start, end] of the object.
func (s *S3Store) ReadRange(ctx context.Context, key string, start, end int64) ([]byte, error) {
	if start > end {
		return nil, fmt.Errorf("invalid range [%d, %d]", start, end)
	}

	resp, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.config.BucketName,
		Key:    &key,
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", start, end)),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get %q [%d, %d]: %v", ErrRemoteUnavailable, key, start, end, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %q [%d, %d]: %v", ErrRemoteUnavailable, key, start, end, err)
	}

	return data, nil
}

// ResolveLatest lists the bucket under prefix and returns the key with the
// newest LastModified timestamp.
func (s *S3Store) ResolveLatest(ctx context.Context, prefix string) (string, error) {
	var latestKey string
	var latestTime time.Time

	paginator := s3.NewListObjectsV2Paginator(s.s3Client, &s3.ListObjectsV2Input{
		Bucket: &s.config.BucketName,
		Prefix: &prefix,
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return "", fmt.Errorf("%w: list %q: %v", ErrRemoteUnavailable, prefix, err)
		}

		for _, obj := range page.Contents {
			mod := aws.ToTime(obj.LastModified)
			if latestKey == "" || mod.After(latestTime) {
				latestKey = aws.ToString(obj.Key)
				latestTime = mod
			}
		}
	}

	if latestKey == "" {
		return "", fmt.Errorf("%w: %q", ErrNoObjects, prefix)
	}
	return latestKey, nil
}

var _ Store = (*S3Store)(nil)
