package storage

import (
	"context"
	"path"
	"strings"

	"notekeeper-be/pkg/s3client"

	"github.com/google/uuid"
)

// S3Backend uploads images to an S3-compatible media host under a fixed key
// prefix. References are the public URLs the host serves objects from; Delete
// derives the object key back out of the stored URL.
type S3Backend struct {
	client    *s3client.Client
	keyPrefix string
}

func NewS3Backend(client *s3client.Client, keyPrefix string) *S3Backend {
	return &S3Backend{
		client:    client,
		keyPrefix: strings.Trim(keyPrefix, "/"),
	}
}

func (b *S3Backend) Store(ctx context.Context, obj *Object) (string, error) {
	key := b.keyPrefix + "/" + uuid.New().String() + strings.ToLower(path.Ext(obj.Filename))
	if err := b.client.PutObject(ctx, key, obj.Content, obj.ContentType); err != nil {
		return "", err
	}
	return b.client.PublicURL(key), nil
}

func (b *S3Backend) Delete(ctx context.Context, ref string) error {
	key, ok := b.client.KeyFromURL(ref)
	if !ok {
		return ErrForeignReference
	}
	return b.client.DeleteObject(ctx, key)
}
