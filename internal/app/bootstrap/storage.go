// internal/app/bootstrap/storage.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/pantry/storage"
)

// buildStorage constructs the file storage backend for version uploads based
// on app config. Local storage serves files from disk under the configured
// URL prefix; S3 storage issues presigned URLs instead.
func buildStorage(ctx context.Context, appCfg AppConfig) (storage.Store, error) {
	switch appCfg.StorageType {
	case "local":
		return storage.NewLocal(storage.LocalConfig{
			BasePath: appCfg.StorageLocalPath,
			BaseURL:  appCfg.StorageLocalURL,
		})
	case "s3":
		return storage.NewS3(ctx, storage.S3Config{
			Region: appCfg.StorageS3Region,
			Bucket: appCfg.StorageS3Bucket,
			Prefix: appCfg.StorageS3Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown storage_type %q", appCfg.StorageType)
	}
}
