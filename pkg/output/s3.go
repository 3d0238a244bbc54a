package output

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/joho/godotenv"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// S3Config holds the connection settings for an S3 compatible bucket
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
	Prefix    string // Key prefix, e.g. "renders/"
	ACL       string // Optional canned ACL such as "public-read"
}

// LoadS3Config reads S3 settings from the environment. If envFile is set it is
// loaded first; variables already present in the environment take precedence.
func LoadS3Config(envFile string) (S3Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return S3Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := S3Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    os.Getenv("S3_REGION"),
		Bucket:    os.Getenv("S3_BUCKET"),
		Prefix:    os.Getenv("S3_PREFIX"),
		ACL:       os.Getenv("S3_ACL"),
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	return cfg, cfg.Validate()
}

// Validate checks that the settings needed for an upload are present
func (c S3Config) Validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("S3_BUCKET is not set")
	}
	if c.AccessKey == "" || c.SecretKey == "" {
		return fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY must both be set")
	}
	return nil
}

// S3Sink uploads PNG images to an S3 compatible bucket
type S3Sink struct {
	config S3Config
	client *s3.S3
}

// NewS3Sink creates a sink using static credentials and path style addressing
func NewS3Sink(cfg S3Config) (*S3Sink, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	awsConfig := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return &S3Sink{config: cfg, client: s3.New(sess)}, nil
}

// Key returns the object key used for name
func (s *S3Sink) Key(name string) string {
	return path.Join(s.config.Prefix, name+".png")
}

// Write encodes img and uploads it under Prefix/name.png
func (s *S3Sink) Write(ctx context.Context, name string, img image.Image) error {
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := s.Key(name)
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("image/png"),
	}
	if s.config.ACL != "" {
		input.ACL = aws.String(s.config.ACL)
	}

	if _, err := s.client.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}
