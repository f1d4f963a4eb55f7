package persistent

import (
	"context"
	"fmt"

	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/listing"
	"nomadnest/services/forum/internal/model"
	"nomadnest/services/forum/internal/repo"

	"gorm.io/gorm"
)

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) repo.CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	commentModel := ToCommentModel(comment)
	if err := r.db.WithContext(ctx).Create(commentModel).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	*comment = *ToCommentEntity(commentModel)
	return nil
}

func (r *commentRepository) filtered(ctx context.Context, filter listing.CommentFilter) *gorm.DB {
	scope := r.db.WithContext(ctx).Model(&model.CommentModel{})
	if filter.PostID != "" {
		if !validID(filter.PostID) {
			return scope.Where("1 = 0")
		}
		scope = scope.Where("post_id = ?", filter.PostID)
	}
	if filter.ReportedOnly {
		scope = scope.Where("feedback IS NOT NULL AND feedback <> ''")
	}
	return scope
}

func (r *commentRepository) Query(ctx context.Context, filter listing.CommentFilter, page listing.Page) ([]*entity.Comment, error) {
	var commentModels []model.CommentModel
	err := r.filtered(ctx, filter).
		Order("post_time DESC, id ASC").
		Offset(page.Skip()).
		Limit(page.Limit()).
		Find(&commentModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}

	comments := make([]*entity.Comment, len(commentModels))
	for i := range commentModels {
		comments[i] = ToCommentEntity(&commentModels[i])
	}
	return comments, nil
}

func (r *commentRepository) Count(ctx context.Context, filter listing.CommentFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}

func (r *commentRepository) SetFeedback(ctx context.Context, id, feedback string) (entity.UpdateResult, error) {
	if !validID(id) {
		return entity.UpdateResult{}, nil
	}

	result := r.db.WithContext(ctx).Model(&model.CommentModel{}).Where("id = ?", id).Update("feedback", feedback)
	if result.Error != nil {
		return entity.UpdateResult{}, fmt.Errorf("failed to set feedback: %w", result.Error)
	}
	return entity.UpdateResult{Matched: result.RowsAffected, Modified: result.RowsAffected}, nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) (int64, error) {
	if !validID(id) {
		return 0, nil
	}

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.CommentModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete comment: %w", result.Error)
	}
	return result.RowsAffected, nil
}
