package usecase

import (
	"testing"
	"time"

	"nomadnest/pkg/jwt"
	"nomadnest/services/forum/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthUseCase_IssueToken(t *testing.T) {
	service := jwt.NewService("test-secret", 180*24*time.Hour)
	uc := NewAuthUseCase(service, testLogger())

	token, err := uc.IssueToken(" ana@x.io ")
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@x.io", claims.Email)
	assert.Equal(t, 180*24*time.Hour, uc.TokenTTL())

	_, err = uc.IssueToken("")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}
