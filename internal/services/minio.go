package services

import (
	"context"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

// SignedImageURL firma la URL de una imagen de producto con expiración.
// Con MinIO apagado devuelve la URL original: las imágenes públicas siguen
// funcionando igual.
func SignedImageURL(ctx context.Context, client *minio.Client, objectPath string, duration time.Duration) string {
	if client == nil {
		return objectPath
	}

	bucket := os.Getenv("MINIO_BUCKET")
	key := objectPath
	if i := strings.Index(objectPath, bucket+"/"); i >= 0 {
		key = objectPath[i+len(bucket)+1:]
	}

	presigned, err := client.PresignedGetObject(ctx, bucket, key, duration, make(url.Values))
	if err != nil {
		return objectPath
	}
	return presigned.String()
}
