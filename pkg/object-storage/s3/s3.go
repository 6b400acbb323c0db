package s3

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3 struct {
	Endpoint  string
	Region    string
	Bucket    string
	ak        string
	sk        string
	pathStyle bool
	cli       *s3.Client
}

type Option func(s *S3)

// WithPathStyle 强制使用路径样式 URL（endpoint/bucket 而不是 bucket.endpoint），MinIO 需要
func WithPathStyle(enable bool) Option {
	return func(s *S3) {
		s.pathStyle = enable
	}
}

func NewS3Client(endpoint, region, bucket, ak, sk string, opts ...Option) (*S3, error) {
	cli := &S3{
		Endpoint: endpoint,
		Region:   region,
		Bucket:   bucket,
		ak:       ak,
		sk:       sk,
	}
	for _, opt := range opts {
		opt(cli)
	}

	if _, err := cli.DefaultConfig(context.Background()); err != nil {
		return nil, err
	}
	return cli, nil
}

func (s *S3) DefaultConfig(ctx context.Context) (aws.Config, error) {
	loaders := []func(*config.LoadOptions) error{
		config.WithRegion(s.Region),
	}
	if s.ak != "" {
		loaders = append(loaders, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s.ak, s.sk, "")))
	}
	if s.Endpoint != "" {
		loaders = append(loaders, config.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:           s.Endpoint,
				SigningRegion: s.Region,
			}, nil
		})))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return aws.Config{}, err
	}

	s.cli = s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = s.pathStyle
	})
	return cfg, nil
}

func normalizeKey(key string) string {
	return strings.TrimPrefix(key, "/")
}

func (s *S3) GenGetObjectPreSignURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := s3.NewPresignClient(s.cli).PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(normalizeKey(key)),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

type GetObjectResult struct {
	File     []byte
	FileType string
}

func (s *S3) GetObject(ctx context.Context, key string) (*GetObjectResult, error) {
	resp, err := s.cli.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(normalizeKey(key)),
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	fileContent, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}

	fileType := aws.ToString(resp.ContentType)
	if fileType == "" {
		fileType = http.DetectContentType(fileContent)
	}
	return &GetObjectResult{
		File:     fileContent,
		FileType: fileType,
	}, nil
}

// Upload streams body to key through the multipart upload manager.
func (s *S3) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(normalizeKey(key)),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	_, err := manager.NewUploader(s.cli).Upload(ctx, input)
	return err
}

func (s *S3) Delete(ctx context.Context, key string) error {
	_, err := s.cli.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(normalizeKey(key)),
	})
	return err
}
