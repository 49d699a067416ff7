package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/youruser/canvasapp/internal/core"
)

const (
	metaWidth   = "width"
	metaHeight  = "height"
	metaCreated = "created-at"
)

// objectAPI is the subset of *s3.Client the store uses.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type photoStore struct {
	client objectAPI
	bucket string
	prefix string
}

// NewPhotoStore uses the default AWS credential chain.
func NewPhotoStore(ctx context.Context, bucket, prefix string) (core.PhotoStore, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return newPhotoStore(s3.NewFromConfig(cfg), bucket, prefix), nil
}

func newPhotoStore(client objectAPI, bucket, prefix string) *photoStore {
	return &photoStore{client: client, bucket: bucket, prefix: prefix}
}

func (s *photoStore) key(id string) string {
	return path.Join(s.prefix, id)
}

func (s *photoStore) Save(ctx context.Context, photo *core.Photo) (string, error) {
	id := ulid.Make().String()
	created := photo.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	log := logrus.WithFields(logrus.Fields{
		"photo_id": id,
		"bucket":   s.bucket,
		"key":      s.key(id),
	})

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(id)),
		Body:        bytes.NewReader(photo.Data),
		ContentType: aws.String(photo.ContentType),
		Metadata: map[string]string{
			metaWidth:   strconv.Itoa(photo.Width),
			metaHeight:  strconv.Itoa(photo.Height),
			metaCreated: created.Format(time.RFC3339Nano),
		},
	})
	if err != nil {
		log.WithError(err).Error("Failed to upload photo")
		return "", fmt.Errorf("upload photo: %w", err)
	}

	log.Info("Photo saved successfully")
	return id, nil
}

func (s *photoStore) Get(ctx context.Context, id string) (*core.Photo, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("photo %s: %w", id, core.ErrPhotoNotFound)
		}
		return nil, fmt.Errorf("get photo %s: %w", id, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read photo %s: %w", id, err)
	}

	photo := &core.Photo{ID: id, Data: data}
	if resp.ContentType != nil {
		photo.ContentType = *resp.ContentType
	}
	photo.Width, _ = strconv.Atoi(resp.Metadata[metaWidth])
	photo.Height, _ = strconv.Atoi(resp.Metadata[metaHeight])
	photo.CreatedAt, _ = time.Parse(time.RFC3339Nano, resp.Metadata[metaCreated])
	return photo, nil
}
