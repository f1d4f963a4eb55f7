package usecase

import (
	"context"
	"io"
	"strings"
	"testing"

	"nomadnest/services/forum/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadFile(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error) {
	args := m.Called(ctx, key, body, contentType)
	return args.String(0), args.Error(1)
}

func TestMediaUseCase_UploadImage(t *testing.T) {
	ctx := context.Background()

	storage := new(MockStorage)
	storage.On("UploadFile", mock.Anything,
		mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "images/") && strings.HasSuffix(key, ".png")
		}),
		mock.Anything, "image/png",
	).Return("http://cdn/images/x.png", nil).Once()

	uc := NewMediaUseCase(storage, testLogger())

	url, err := uc.UploadImage(ctx, "ana@x.io", "Beach.PNG", "image/png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "http://cdn/images/x.png", url)

	_, err = uc.UploadImage(ctx, "ana@x.io", "notes.txt", "text/plain", strings.NewReader("txt"))
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	storage.AssertExpectations(t)
}

func TestMediaUseCase_NoStorage(t *testing.T) {
	uc := NewMediaUseCase(nil, testLogger())
	_, err := uc.UploadImage(context.Background(), "ana@x.io", "a.jpg", "image/jpeg", strings.NewReader("jpg"))
	assert.ErrorIs(t, err, entity.ErrUpstream)
}
