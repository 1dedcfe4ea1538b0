package media

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"go.uber.org/zap"
)

var ErrNotConfigured = errors.New("image upload is not configured (set CLOUDINARY_URL)")

// Uploader stores a product image on the asset host and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, path string) (string, error)
}

type cloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
	logger logger.ZapLogger
}

// NewCloudinaryUploader returns an uploader that always fails with ErrNotConfigured
// when cloudURL is empty, so admin commands that don't upload keep working.
func NewCloudinaryUploader(cloudURL, folder string, log logger.ZapLogger) (Uploader, error) {
	if cloudURL == "" {
		return disabledUploader{}, nil
	}
	cld, err := cloudinary.NewFromURL(cloudURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &cloudinaryUploader{cld: cld, folder: folder, logger: log}, nil
}

func (u *cloudinaryUploader) Upload(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	res, err := u.cld.Upload.Upload(ctx, f, uploader.UploadParams{Folder: u.folder})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("upload image: %s", res.Error.Message)
	}

	u.logger.Info("uploaded product image", zap.String("public_id", res.PublicID), zap.String("url", res.SecureURL))
	return res.SecureURL, nil
}

type disabledUploader struct{}

func (disabledUploader) Upload(ctx context.Context, path string) (string, error) {
	return "", ErrNotConfigured
}
