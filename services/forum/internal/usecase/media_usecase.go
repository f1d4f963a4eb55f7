package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"nomadnest/pkg/logger"
	"nomadnest/services/forum/internal/entity"

	"github.com/google/uuid"
)

// ObjectStorage is satisfied by *s3.Client.
type ObjectStorage interface {
	UploadFile(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error)
}

type MediaUseCase interface {
	UploadImage(ctx context.Context, caller, filename, contentType string, body io.ReadSeeker) (string, error)
}

type mediaUseCase struct {
	storage ObjectStorage
	logger  *logger.Logger
}

func NewMediaUseCase(storage ObjectStorage, logger *logger.Logger) MediaUseCase {
	return &mediaUseCase{storage: storage, logger: logger}
}

// UploadImage stores an image under a fresh key and returns its public URL.
func (uc *mediaUseCase) UploadImage(ctx context.Context, caller, filename, contentType string, body io.ReadSeeker) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: only images can be uploaded", entity.ErrInvalidInput)
	}
	if uc.storage == nil {
		return "", upstream(uc.logger, "upload image", errors.New("object storage not configured"))
	}

	key := fmt.Sprintf("images/%s%s", uuid.NewString(), strings.ToLower(path.Ext(filename)))
	url, err := uc.storage.UploadFile(ctx, key, body, contentType)
	if err != nil {
		return "", upstream(uc.logger, "upload image", err)
	}

	uc.logger.Info("Stored image %s for %s", key, caller)
	return url, nil
}
