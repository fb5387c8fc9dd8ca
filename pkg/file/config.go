package file

import (
	"context"
	"fmt"
	"time"
)

// Storage drivers.
const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Config selects and configures the profile image storage.
type Config struct {
	Driver        string        `env:"STORAGE_DRIVER" envDefault:"local"`
	LocalDir      string        `env:"UPLOADS_DIR" envDefault:"uploads"`
	LocalURL      string        `env:"UPLOADS_URL" envDefault:"/uploads/"`
	UploadTimeout time.Duration `env:"UPLOAD_TIMEOUT" envDefault:"30s"`
	MaxImageSize  int64         `env:"PROFILE_IMAGE_MAX_SIZE" envDefault:"5242880"`

	S3Bucket         string `env:"S3_BUCKET"`
	S3Region         string `env:"S3_REGION"`
	S3AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	S3SecretKey      string `env:"S3_SECRET_KEY"`
	S3Endpoint       string `env:"S3_ENDPOINT"`
	S3BaseURL        string `env:"S3_BASE_URL"`
	S3ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`
}

func (c Config) Validate() error {
	switch c.Driver {
	case DriverLocal:
		if c.LocalDir == "" {
			return fmt.Errorf("%w: UPLOADS_DIR is empty", ErrInvalidConfig)
		}
	case DriverS3:
		if c.S3Bucket == "" || c.S3Region == "" {
			return fmt.Errorf("%w: S3_BUCKET and S3_REGION are required", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Driver)
	}
	if c.MaxImageSize <= 0 {
		return fmt.Errorf("%w: PROFILE_IMAGE_MAX_SIZE must be positive", ErrInvalidConfig)
	}
	return nil
}

// NewFromConfig builds the configured Storage.
func NewFromConfig(ctx context.Context, cfg Config) (Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Driver == DriverS3 {
		return NewS3Storage(ctx, S3Config{
			Bucket:         cfg.S3Bucket,
			Region:         cfg.S3Region,
			AccessKeyID:    cfg.S3AccessKeyID,
			SecretKey:      cfg.S3SecretKey,
			Endpoint:       cfg.S3Endpoint,
			BaseURL:        cfg.S3BaseURL,
			ForcePathStyle: cfg.S3ForcePathStyle,
		}, WithS3UploadTimeout(cfg.UploadTimeout))
	}
	return NewLocalStorage(cfg.LocalDir, cfg.LocalURL, WithLocalUploadTimeout(cfg.UploadTimeout))
}
