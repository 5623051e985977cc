package graphio

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dd0wney/cluso-steiner/pkg/graph"
)

// S3Scheme prefixes edge sources stored in S3
const S3Scheme = "s3://"

// S3API is the part of the S3 client the loader needs
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config overrides parts of the default AWS configuration. Zero values
// keep the defaults from the environment and shared config files.
type S3Config struct {
	Region          string `yaml:"region" toml:"region"`
	Endpoint        string `yaml:"endpoint" toml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id" toml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key" toml:"secret_access_key"`
	UsePathStyle    bool   `yaml:"use_path_style" toml:"use_path_style"`
}

// NewS3Client builds an S3 client from the default credential chain with
// the overrides in cfg applied
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("graphio: load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

// Loader fetches and parses edge lists from any supported source
type Loader struct {
	Options Options

	// S3 is used for s3:// sources; when nil a client is built from
	// S3Config on first use.
	S3       S3API
	S3Config S3Config
}

// Load reads the edge list named by source with the given options
func Load(ctx context.Context, source string, opts Options) (graph.EdgeList, error) {
	l := &Loader{Options: opts}
	return l.Load(ctx, source)
}

// Load reads the edge list named by source
func (l *Loader) Load(ctx context.Context, source string) (graph.EdgeList, error) {
	if !strings.HasPrefix(source, S3Scheme) {
		return LoadFile(source, l.Options)
	}

	bucket, key, err := ParseS3URL(source)
	if err != nil {
		return nil, err
	}

	if l.S3 == nil {
		client, err := NewS3Client(ctx, l.S3Config)
		if err != nil {
			return nil, err
		}
		l.S3 = client
	}

	out, err := l.S3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("graphio: get %s: %w", source, err)
	}
	defer out.Body.Close()

	edges, err := ParseWithOptions(wrapReader(key, out.Body), l.Options)
	if err != nil {
		return nil, fmt.Errorf("graphio: %s: %w", source, err)
	}
	return edges, nil
}

// ParseS3URL splits s3://bucket/key into its bucket and key
func ParseS3URL(source string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(source, S3Scheme)
	if !ok {
		return "", "", fmt.Errorf("%w: %q has no %s prefix", ErrInvalidS3URL, source, S3Scheme)
	}

	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q needs bucket and key", ErrInvalidS3URL, source)
	}
	return bucket, key, nil
}
