package services

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/viper"
)

var mediaStore *minio.Client

// SetupMediaStore connects the object storage used for post images. The rest of
// the service keeps working without it; upload endpoints just refuse.
func SetupMediaStore() error {
	client, err := minio.New(viper.GetString("media.endpoint"), &minio.Options{
		Creds: credentials.NewStaticV4(
			viper.GetString("media.access_key"),
			viper.GetString("media.secret_key"),
			"",
		),
		Secure: viper.GetBool("media.use_ssl"),
	})
	if err != nil {
		return fmt.Errorf("unable to configure media storage: %v", err)
	}

	ctx := context.Background()
	bucket := viper.GetString("media.bucket")
	if exists, err := client.BucketExists(ctx, bucket); err != nil {
		return fmt.Errorf("unable to check media bucket: %v", err)
	} else if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("unable to create media bucket: %v", err)
		}
	}

	mediaStore = client
	return nil
}

func MediaStoreEnabled() bool {
	return mediaStore != nil
}

func UploadMedia(ctx context.Context, key string, in io.Reader, size int64, contentType string) error {
	if mediaStore == nil {
		return fmt.Errorf("media storage is not configured")
	}

	_, err := mediaStore.PutObject(ctx, viper.GetString("media.bucket"), key, in, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func OpenMedia(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if mediaStore == nil {
		return nil, "", fmt.Errorf("media storage is not configured")
	}

	object, err := mediaStore.GetObject(ctx, viper.GetString("media.bucket"), key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", err
	}

	info, err := object.Stat()
	if err != nil {
		object.Close()
		return nil, "", err
	}

	return object, info.ContentType, nil
}

func RemoveMedia(ctx context.Context, key string) error {
	if mediaStore == nil {
		return fmt.Errorf("media storage is not configured")
	}

	return mediaStore.RemoveObject(ctx, viper.GetString("media.bucket"), key, minio.RemoveObjectOptions{})
}
