package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Config describes the bucket backups are pushed to.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string // optional; S3-compatible endpoint such as MinIO
	Prefix          string
	PathStyle       bool
	AccessKeyID     string // optional; falls back to the default credential chain
	SecretAccessKey string
}

// Object is one archive stored in the bucket.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// S3 pushes and pulls archives.
type S3 struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3 builds a client from cfg. optFns are applied after cfg, which
// tests use to install a fake transport.
func NewS3(ctx context.Context, cfg S3Config, optFns ...func(*s3.Options)) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		for _, fn := range optFns {
			fn(o)
		}
	})
	return &S3{client: client, bucket: cfg.Bucket, prefix: strings.Trim(cfg.Prefix, "/")}, nil
}

// KeyFor names the object for an archive: <prefix>/<timestamp>-<id>.json.
func (s *S3) KeyFor(a Archive) string {
	name := a.ExportedAt.UTC().Format("20060102T150405Z") + "-" + uuid.NewString()[:8] + ".json"
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Push uploads a and returns its key.
func (s *S3) Push(ctx context.Context, a Archive) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, a); err != nil {
		return "", err
	}
	key := s.KeyFor(a)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}
	return key, nil
}

// List returns the archives under the prefix, newest first.
func (s *S3) List(ctx context.Context) ([]Object, error) {
	prefix := s.prefix
	if prefix != "" {
		prefix += "/"
	}
	var objs []Object
	var token *string
	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("listing backups: %w", err)
		}
		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			if !strings.HasSuffix(key, ".json") {
				continue
			}
			objs = append(objs, Object{Key: key, Size: aws.ToInt64(obj.Size), LastModified: aws.ToTime(obj.LastModified)})
		}
		if aws.ToBool(out.IsTruncated) && out.NextContinuationToken != nil {
			token = out.NextContinuationToken
			continue
		}
		break
	}
	// Keys start with a UTC timestamp, so key order is export order.
	sort.Slice(objs, func(i, j int) bool { return objs[i].Key > objs[j].Key })
	return objs, nil
}

// Pull downloads the archive at key. An empty key means the newest.
func (s *S3) Pull(ctx context.Context, key string) (Archive, error) {
	if key == "" {
		objs, err := s.List(ctx)
		if err != nil {
			return Archive{}, err
		}
		if len(objs) == 0 {
			return Archive{}, errors.New("no backups in bucket")
		}
		key = objs[0].Key
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	if err != nil {
		return Archive{}, fmt.Errorf("downloading %s: %w", key, err)
	}
	defer func() { _ = out.Body.Close() }()
	return Decode(out.Body)
}
