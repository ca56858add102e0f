package service

import (
	"context"

	"gatherly-api/core/config"
	"gatherly-api/core/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// AvatarResolver turns stored avatar object keys into fetchable URLs.
type AvatarResolver interface {
	ResolveURL(ctx context.Context, key string) string
}

// S3AvatarResolver presigns GET URLs for avatar objects.
type S3AvatarResolver struct {
	presigner *s3.PresignClient
	bucket    string
}

// NewS3AvatarResolver builds a resolver from config. When credentials are not
// configured the resolver is disabled and avatars resolve to empty URLs.
func NewS3AvatarResolver() *S3AvatarResolver {
	accessKey, err := config.GetSafe("S3_ACCESS_KEY")
	if err != nil {
		logger.Warn("S3AvatarResolver:Init", "message", "avatar presigning disabled", "error", err)
		return &S3AvatarResolver{}
	}
	secretKey, err := config.GetSafe("S3_SECRET_KEY")
	if err != nil {
		logger.Warn("S3AvatarResolver:Init", "message", "avatar presigning disabled", "error", err)
		return &S3AvatarResolver{}
	}

	cfg := aws.Config{
		Region:      config.Get("S3_REGION"),
		Credentials: credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
	}

	client := s3.NewFromConfig(cfg)
	return &S3AvatarResolver{
		presigner: s3.NewPresignClient(client),
		bucket:    config.Get("S3_BUCKET"),
	}
}

func (r *S3AvatarResolver) ResolveURL(ctx context.Context, key string) string {
	if r.presigner == nil || key == "" {
		return ""
	}

	req, err := r.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(config.GetDuration("S3_PRESIGN_TTL")))
	if err != nil {
		logger.Error("S3AvatarResolver:ResolveURL", "error", err, "key", key)
		return ""
	}

	return req.URL
}
