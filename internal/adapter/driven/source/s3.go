package source

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/diillson/sales-insight-go/internal/domain/entity"
	"github.com/diillson/sales-insight-go/internal/shared/types"
)

// parseS3URI splits s3://bucket/key into its parts.
func parseS3URI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("%s: %w", uri, types.ErrInvalidS3Reference)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("%s: %w", uri, types.ErrInvalidS3Reference)
	}
	return u.Host, key, nil
}

func (r *SourceRepositoryImpl) getAWSConfig(ctx context.Context, profile, region string) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cacheKey := profile + "|" + region
	if cfg, ok := r.cfgCache[cacheKey]; ok {
		return cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %s: %w", profile, err)
	}

	r.cfgCache[cacheKey] = cfg
	return cfg, nil
}

// loadS3 baixa o objeto e decodifica pela extensão da chave.
func (r *SourceRepositoryImpl) loadS3(ctx context.Context, ref entity.SourceRef) (entity.RawTable, error) {
	bucket, key, err := parseS3URI(ref.Path)
	if err != nil {
		return entity.RawTable{}, err
	}

	cfg, err := r.getAWSConfig(ctx, ref.AWSProfile, ref.AWSRegion)
	if err != nil {
		return entity.RawTable{}, err
	}

	client := s3.NewFromConfig(cfg)
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return entity.RawTable{}, fmt.Errorf("failed to get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	return r.Decode(path.Base(key), out.Body, ref)
}
