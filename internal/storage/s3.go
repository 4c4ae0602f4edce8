package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Config — настройки S3-совместимого бакета.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // например http://127.0.0.1:9000 для MinIO
	AccessKey string
	SecretKey string
}

// s3API — подмножество *s3.Client, используемое хранилищем.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

// S3Storage хранит картинки в бакете S3.
type S3Storage struct {
	client s3API
	bucket string
}

var _ Storage = (*S3Storage)(nil)

// NewS3Storage собирает клиент S3 со статическими ключами и path-style адресацией.
func NewS3Storage(ctx context.Context, c S3Config) (*S3Storage, error) {
	if c.Bucket == "" {
		return nil, errors.New("s3: empty bucket")
	}
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("s3: load config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
		o.UsePathStyle = true
	})
	return &S3Storage{client: client, bucket: c.Bucket}, nil
}

func (s *S3Storage) Put(ctx context.Context, owner string, obj Object) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(obj.Key),
		Body:         bytes.NewReader(obj.Data),
		ContentType:  aws.String(obj.ContentType),
		CacheControl: aws.String("max-age=3600"),
		IfNoneMatch:  aws.String("*"),
		Metadata:     map[string]string{"owner": owner},
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed" {
			return ErrObjectExists
		}
		return fmt.Errorf("s3: put %q: %w", obj.Key, err)
	}
	return nil
}

func (s *S3Storage) Get(ctx context.Context, key string) (*Object, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("s3: get %q: %w", key, err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3: read %q: %w", key, err)
	}
	return &Object{Key: key, ContentType: aws.ToString(out.ContentType), Data: data}, nil
}
