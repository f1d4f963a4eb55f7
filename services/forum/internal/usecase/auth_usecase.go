package usecase

import (
	"fmt"
	"strings"
	"time"

	"nomadnest/pkg/logger"
	"nomadnest/services/forum/internal/entity"
)

type TokenIssuer interface {
	GenerateToken(email string) (string, error)
	TTL() time.Duration
}

type AuthUseCase interface {
	IssueToken(email string) (string, error)
	TokenTTL() time.Duration
}

type authUseCase struct {
	issuer TokenIssuer
	logger *logger.Logger
}

func NewAuthUseCase(issuer TokenIssuer, logger *logger.Logger) AuthUseCase {
	return &authUseCase{issuer: issuer, logger: logger}
}

// IssueToken signs whatever email the front end's sign-in produced.
func (uc *authUseCase) IssueToken(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", entity.ErrInvalidInput)
	}

	token, err := uc.issuer.GenerateToken(email)
	if err != nil {
		return "", upstream(uc.logger, "generate token", err)
	}
	return token, nil
}

func (uc *authUseCase) TokenTTL() time.Duration {
	return uc.issuer.TTL()
}
