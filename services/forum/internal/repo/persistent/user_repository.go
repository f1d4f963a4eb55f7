package persistent

import (
	"context"
	"fmt"
	"strings"

	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/listing"
	"nomadnest/services/forum/internal/model"
	"nomadnest/services/forum/internal/repo"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&userModel).Error; err != nil {
		return nil, notFound(err)
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, entity.ErrNotFound
	}

	var userModel model.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, notFound(err)
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) InsertIfAbsent(ctx context.Context, user *entity.User) (bool, error) {
	userModel := ToUserModel(user)

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(userModel)
	if result.Error != nil {
		return false, fmt.Errorf("failed to insert user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	*user = *ToUserEntity(userModel)
	return true, nil
}

func (r *userRepository) UpdateByEmail(ctx context.Context, email string, patch entity.UserPatch) (entity.UpdateResult, error) {
	return r.update(r.db.WithContext(ctx).Where("email = ?", email), patch)
}

func (r *userRepository) UpdateByID(ctx context.Context, id string, patch entity.UserPatch) (entity.UpdateResult, error) {
	if !validID(id) {
		return entity.UpdateResult{}, nil
	}
	return r.update(r.db.WithContext(ctx).Where("id = ?", id), patch)
}

// Postgres reports matched rows for an UPDATE, so both counters carry the same value.
func (r *userRepository) update(scope *gorm.DB, patch entity.UserPatch) (entity.UpdateResult, error) {
	columns := patchColumns(patch)
	if len(columns) == 0 {
		return entity.UpdateResult{}, nil
	}

	result := scope.Model(&model.UserModel{}).Updates(columns)
	if result.Error != nil {
		return entity.UpdateResult{}, fmt.Errorf("failed to update user: %w", result.Error)
	}
	return entity.UpdateResult{Matched: result.RowsAffected, Modified: result.RowsAffected}, nil
}

func patchColumns(patch entity.UserPatch) map[string]interface{} {
	columns := make(map[string]interface{})
	if patch.Role != nil {
		columns["role"] = string(*patch.Role)
	}
	if patch.Status != nil {
		columns["status"] = string(*patch.Status)
	}
	if patch.Warning != nil {
		columns["warning"] = *patch.Warning
	}
	return columns
}

func (r *userRepository) filtered(ctx context.Context, filter listing.UserFilter) *gorm.DB {
	scope := r.db.WithContext(ctx).Model(&model.UserModel{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		scope = scope.Where("name ILIKE ?", containsPattern(search))
	}
	return scope
}

func (r *userRepository) List(ctx context.Context, filter listing.UserFilter, page listing.Page) ([]*entity.User, error) {
	var userModels []model.UserModel
	err := r.filtered(ctx, filter).
		Order("created_at DESC, id ASC").
		Offset(page.Skip()).
		Limit(page.Limit()).
		Find(&userModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*entity.User, len(userModels))
	for i := range userModels {
		users[i] = ToUserEntity(&userModels[i])
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context, filter listing.UserFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
