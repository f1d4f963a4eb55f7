package persistent

import (
	"context"
	"fmt"

	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/listing"
	"nomadnest/services/forum/internal/model"
	"nomadnest/services/forum/internal/repo"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) repo.PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postModel := ToPostModel(post)
	if err := r.db.WithContext(ctx).Create(postModel).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	if !validID(id) {
		return nil, entity.ErrNotFound
	}

	var postModel model.PostModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&postModel).Error; err != nil {
		return nil, notFound(err)
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) Delete(ctx context.Context, id string) (int64, error) {
	if !validID(id) {
		return 0, nil
	}

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PostModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete post: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// filtered is the single filter predicate shared by Query and Count.
func (r *postRepository) filtered(ctx context.Context, filter listing.PostFilter) *gorm.DB {
	filter = filter.Normalize()

	scope := r.db.WithContext(ctx).Model(&model.PostModel{})
	if filter.AuthorEmail != "" {
		scope = scope.Where("author_email = ?", filter.AuthorEmail)
	}
	if filter.Search != "" {
		scope = scope.Where("tag ILIKE ?", containsPattern(filter.Search))
	}
	return scope
}

func postOrder(mode listing.Sort) string {
	if mode == listing.SortScore {
		return "(upvote - downvote) DESC, post_time DESC, id ASC"
	}
	return "post_time DESC, id ASC"
}

func (r *postRepository) Query(ctx context.Context, q listing.PostQuery) ([]*entity.Post, error) {
	var postModels []model.PostModel
	err := r.filtered(ctx, q.Filter).
		Order(postOrder(q.Sort)).
		Offset(q.Page.Skip()).
		Limit(q.Page.Limit()).
		Find(&postModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context, filter listing.PostFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

func (r *postRepository) IncrementVote(ctx context.Context, id string, direction entity.VoteDirection) (entity.UpdateResult, error) {
	if !direction.Valid() {
		return entity.UpdateResult{}, entity.ErrInvalidInput
	}
	if !validID(id) {
		return entity.UpdateResult{}, nil
	}

	column := string(direction)
	result := r.db.WithContext(ctx).
		Model(&model.PostModel{}).
		Where("id = ?", id).
		UpdateColumn(column, clause.Expr{SQL: column + " + ?", Vars: []interface{}{1}})
	if result.Error != nil {
		return entity.UpdateResult{}, fmt.Errorf("failed to increment %s: %w", column, result.Error)
	}
	return entity.UpdateResult{Matched: result.RowsAffected, Modified: result.RowsAffected}, nil
}
