package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nomadnest/pkg/logger"
	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/listing"
	"nomadnest/services/forum/internal/repo"
)

type UserUseCase interface {
	// IsAdmin is the role resolver used by the access gate.
	IsAdmin(ctx context.Context, email string) (bool, error)
	Register(ctx context.Context, user *entity.User) (bool, error)
	GetUser(ctx context.Context, caller, email string) (*entity.User, error)
	CheckAdmin(ctx context.Context, caller, email string) (bool, error)
	ListUsers(ctx context.Context, filter listing.UserFilter, page listing.Page) ([]*entity.User, error)
	CountUsers(ctx context.Context, filter listing.UserFilter) (int64, error)
	Promote(ctx context.Context, id string) (entity.UpdateResult, error)
	IssueWarning(ctx context.Context, email, warning string) (entity.UpdateResult, error)
	ClearWarning(ctx context.Context, caller, email string) (entity.UpdateResult, error)
	UpgradeToGold(ctx context.Context, caller string) (entity.UpdateResult, error)
}

type userUseCase struct {
	users    repo.UserRepository
	payments repo.PaymentRepository
	events   EventPublisher
	logger   *logger.Logger
}

func NewUserUseCase(users repo.UserRepository, payments repo.PaymentRepository, events EventPublisher, logger *logger.Logger) UserUseCase {
	return &userUseCase{
		users:    users,
		payments: payments,
		events:   events,
		logger:   logger,
	}
}

func (uc *userUseCase) IsAdmin(ctx context.Context, email string) (bool, error) {
	admin, err := isAdmin(ctx, uc.users, email)
	if err != nil {
		return false, upstream(uc.logger, "resolve role", err)
	}
	return admin, nil
}

// Register stores a first-time user. Role and status always start at the
// lowest tier whatever the payload claims.
func (uc *userUseCase) Register(ctx context.Context, user *entity.User) (bool, error) {
	user.Email = strings.TrimSpace(user.Email)
	if user.Email == "" {
		return false, fmt.Errorf("%w: email is required", entity.ErrInvalidInput)
	}

	user.ID = ""
	user.Role = entity.RoleUser
	user.Status = entity.StatusRegular
	user.Warning = ""
	user.CreatedAt = time.Now().UTC()

	inserted, err := uc.users.InsertIfAbsent(ctx, user)
	if err != nil {
		return false, upstream(uc.logger, "insert user", err)
	}
	if inserted {
		uc.logger.Info("Registered user %s", user.Email)
	}
	return inserted, nil
}

func (uc *userUseCase) GetUser(ctx context.Context, caller, email string) (*entity.User, error) {
	if err := selfOrAdmin(ctx, uc.users, caller, email); err != nil {
		return nil, passthrough(uc.logger, "authorize user read", err)
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, passthrough(uc.logger, "get user", err)
	}
	return user, nil
}

// CheckAdmin answers only for the caller's own email.
func (uc *userUseCase) CheckAdmin(ctx context.Context, caller, email string) (bool, error) {
	if caller != email {
		return false, entity.ErrForbidden
	}
	return uc.IsAdmin(ctx, email)
}

func (uc *userUseCase) ListUsers(ctx context.Context, filter listing.UserFilter, page listing.Page) ([]*entity.User, error) {
	users, err := uc.users.List(ctx, filter, page)
	if err != nil {
		return nil, upstream(uc.logger, "list users", err)
	}
	return users, nil
}

func (uc *userUseCase) CountUsers(ctx context.Context, filter listing.UserFilter) (int64, error) {
	count, err := uc.users.Count(ctx, filter)
	if err != nil {
		return 0, upstream(uc.logger, "count users", err)
	}
	return count, nil
}

func (uc *userUseCase) Promote(ctx context.Context, id string) (entity.UpdateResult, error) {
	role := entity.RoleAdmin
	res, err := uc.users.UpdateByID(ctx, id, entity.UserPatch{Role: &role})
	if err != nil {
		return entity.UpdateResult{}, upstream(uc.logger, "promote user", err)
	}
	if res.Modified > 0 {
		uc.logger.Info("Promoted user %s to admin", id)
	}
	return res, nil
}

func (uc *userUseCase) IssueWarning(ctx context.Context, email, warning string) (entity.UpdateResult, error) {
	warning = strings.TrimSpace(warning)
	if warning == "" {
		return entity.UpdateResult{}, fmt.Errorf("%w: warning text is required", entity.ErrInvalidInput)
	}

	res, err := uc.users.UpdateByEmail(ctx, email, entity.UserPatch{Warning: &warning})
	if err != nil {
		return entity.UpdateResult{}, upstream(uc.logger, "issue warning", err)
	}
	if res.Matched > 0 {
		publish(ctx, uc.events, uc.logger, EventUserWarned, email, map[string]string{"warning": warning})
	}
	return res, nil
}

func (uc *userUseCase) ClearWarning(ctx context.Context, caller, email string) (entity.UpdateResult, error) {
	if err := selfOrAdmin(ctx, uc.users, caller, email); err != nil {
		return entity.UpdateResult{}, passthrough(uc.logger, "authorize warning clear", err)
	}

	cleared := ""
	res, err := uc.users.UpdateByEmail(ctx, email, entity.UserPatch{Warning: &cleared})
	if err != nil {
		return entity.UpdateResult{}, upstream(uc.logger, "clear warning", err)
	}
	return res, nil
}

// UpgradeToGold requires at least one payment recorded for the caller.
func (uc *userUseCase) UpgradeToGold(ctx context.Context, caller string) (entity.UpdateResult, error) {
	paid, err := uc.payments.ListByEmail(ctx, caller)
	if err != nil {
		return entity.UpdateResult{}, upstream(uc.logger, "load payments", err)
	}
	if len(paid) == 0 {
		uc.logger.Warn("Gold upgrade refused for %s: no recorded payment", caller)
		return entity.UpdateResult{}, entity.ErrForbidden
	}

	gold := entity.StatusGold
	res, err := uc.users.UpdateByEmail(ctx, caller, entity.UserPatch{Status: &gold})
	if err != nil {
		return entity.UpdateResult{}, upstream(uc.logger, "upgrade user", err)
	}
	if res.Modified > 0 {
		publish(ctx, uc.events, uc.logger, EventUserUpgraded, caller, map[string]string{"status": string(gold)})
	}
	return res, nil
}
