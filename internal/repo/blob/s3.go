// Package blob stores image attachments in a key-addressed object store.
// Uploads stream progress events to the caller and resolve to a durable,
// publicly fetchable URL only after the store confirms the write.
package blob

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/carousell/ct-go/pkg/logger"

	"github.com/trannm-ct/channel-chat/internal/config"
	"github.com/trannm-ct/channel-chat/internal/models"
)

type uploadAPI interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type objectAPI interface {
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Store struct {
	uploader uploadAPI
	objects  objectAPI
	conf     config.StorageConfig
	log      *logger.Logger
}

// NewClient builds the S3 client from storage config. A custom endpoint
// switches on path-style addressing for S3-compatible stores.
func NewClient(ctx context.Context, conf config.StorageConfig) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(conf.Region),
	}
	if conf.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.Endpoint)
			o.UsePathStyle = true
		}
	})
	return client, nil
}

func NewStore(client *s3.Client, conf config.StorageConfig) *Store {
	return &Store{
		uploader: manager.NewUploader(client),
		objects:  client,
		conf:     conf,
		log:      logger.MustNamed("blob"),
	}
}

// ObjectKey is the namespaced storage path for a message's attachment,
// derived from the message's document key.
func (s *Store) ObjectKey(docID string) string {
	return s.conf.KeyPrefix + "/" + docID
}

// Upload streams body to the object store under key. The returned channel
// carries progress events while bytes move and is closed after exactly one
// terminal event. The durable URL appears only on the terminal success
// event; nothing before that point may be treated as committed.
func (s *Store) Upload(ctx context.Context, key string, body io.Reader, size int64) <-chan UploadEvent {
	events := make(chan UploadEvent, 8)

	go func() {
		defer close(events)

		reader := newProgressReader(body, func(transferred int64) {
			ev := UploadEvent{Transferred: transferred, Total: size, State: UploadRunning}
			select {
			case events <- ev:
			default:
				// Slow consumers lose progress events, never the terminal one.
			}
		})

		_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket: aws.String(s.conf.Bucket),
			Key:    aws.String(key),
			Body:   reader,
		})
		if err != nil {
			events <- UploadEvent{
				Transferred: reader.transferred.Load(),
				Total:       size,
				State:       UploadFailed,
				Terminal:    true,
				Err:         fmt.Errorf("upload %s: %w", key, err),
			}
			return
		}

		url := s.objectURL(key)
		s.log.Debugw("upload complete", "key", key, "bytes", size, "url", url)
		events <- UploadEvent{
			Transferred: size,
			Total:       size,
			State:       UploadDone,
			Terminal:    true,
			URL:         url,
		}
	}()

	return events
}

// Delete removes a previously uploaded object. Best effort: callers are
// expected to log failures and move on.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.objects.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.conf.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) objectURL(key string) models.RemoteImageURL {
	if s.conf.PublicBaseURL != "" {
		return models.RemoteImageURL(strings.TrimSuffix(s.conf.PublicBaseURL, "/") + "/" + key)
	}
	if s.conf.Endpoint != "" {
		return models.RemoteImageURL(strings.TrimSuffix(s.conf.Endpoint, "/") + "/" + s.conf.Bucket + "/" + key)
	}
	return models.RemoteImageURL(fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.conf.Bucket, s.conf.Region, key))
}
