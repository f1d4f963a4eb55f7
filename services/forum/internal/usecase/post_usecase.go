package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nomadnest/pkg/logger"
	"nomadnest/pkg/metrics"
	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/listing"
	"nomadnest/services/forum/internal/repo"
)

type PostUseCase interface {
	CreatePost(ctx context.Context, caller string, post *entity.Post) error
	GetPost(ctx context.Context, id string) (*entity.Post, error)
	ListPosts(ctx context.Context, q listing.PostQuery) ([]*entity.Post, error)
	CountPosts(ctx context.Context, filter listing.PostFilter) (int64, error)
	ListByAuthor(ctx context.Context, caller, email string, page listing.Page) ([]*entity.Post, error)
	CountByAuthor(ctx context.Context, email string) (int64, error)
	DeletePost(ctx context.Context, caller, id string) (int64, error)
	Vote(ctx context.Context, id string, direction entity.VoteDirection) (entity.UpdateResult, error)
}

type postUseCase struct {
	posts     repo.PostRepository
	users     repo.UserRepository
	freeLimit int64
	logger    *logger.Logger
}

// NewPostUseCase caps Regular members at freeLimit posts; zero disables the cap.
func NewPostUseCase(posts repo.PostRepository, users repo.UserRepository, freeLimit int64, logger *logger.Logger) PostUseCase {
	return &postUseCase{
		posts:     posts,
		users:     users,
		freeLimit: freeLimit,
		logger:    logger,
	}
}

func (uc *postUseCase) CreatePost(ctx context.Context, caller string, post *entity.Post) error {
	post.Title = strings.TrimSpace(post.Title)
	post.Tag = strings.TrimSpace(post.Tag)
	if post.Title == "" || post.Tag == "" {
		return fmt.Errorf("%w: title and tag are required", entity.ErrInvalidInput)
	}

	author, err := uc.users.GetByEmail(ctx, caller)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		return upstream(uc.logger, "load author", err)
	}

	if uc.freeLimit > 0 && (author == nil || author.Status != entity.StatusGold) {
		count, err := uc.posts.Count(ctx, listing.PostFilter{AuthorEmail: caller})
		if err != nil {
			return upstream(uc.logger, "count author posts", err)
		}
		if count >= uc.freeLimit {
			return entity.ErrPostLimitReached
		}
	}

	post.ID = ""
	post.AuthorEmail = caller
	if author != nil {
		if post.AuthorName == "" {
			post.AuthorName = author.Name
		}
		if post.AuthorImage == "" {
			post.AuthorImage = author.Image
		}
	}
	post.PostTime = time.Now().UTC()
	post.Upvote, post.Downvote = 0, 0

	if err := uc.posts.Create(ctx, post); err != nil {
		return upstream(uc.logger, "create post", err)
	}
	return nil
}

func (uc *postUseCase) GetPost(ctx context.Context, id string) (*entity.Post, error) {
	post, err := uc.posts.GetByID(ctx, id)
	if err != nil {
		return nil, passthrough(uc.logger, "get post", err)
	}
	return post, nil
}

func (uc *postUseCase) ListPosts(ctx context.Context, q listing.PostQuery) ([]*entity.Post, error) {
	posts, err := uc.posts.Query(ctx, q)
	if err != nil {
		return nil, upstream(uc.logger, "list posts", err)
	}
	return posts, nil
}

func (uc *postUseCase) CountPosts(ctx context.Context, filter listing.PostFilter) (int64, error) {
	count, err := uc.posts.Count(ctx, filter)
	if err != nil {
		return 0, upstream(uc.logger, "count posts", err)
	}
	return count, nil
}

func (uc *postUseCase) ListByAuthor(ctx context.Context, caller, email string, page listing.Page) ([]*entity.Post, error) {
	if err := selfOrAdmin(ctx, uc.users, caller, email); err != nil {
		return nil, passthrough(uc.logger, "authorize post listing", err)
	}

	return uc.ListPosts(ctx, listing.PostQuery{
		Filter: listing.PostFilter{AuthorEmail: email},
		Sort:   listing.SortRecency,
		Page:   page,
	})
}

func (uc *postUseCase) CountByAuthor(ctx context.Context, email string) (int64, error) {
	return uc.CountPosts(ctx, listing.PostFilter{AuthorEmail: email})
}

// DeletePost lets authors remove their own posts and admins remove any.
// A missing post deletes nothing.
func (uc *postUseCase) DeletePost(ctx context.Context, caller, id string) (int64, error) {
	post, err := uc.posts.GetByID(ctx, id)
	if errors.Is(err, entity.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, upstream(uc.logger, "load post", err)
	}

	if err := selfOrAdmin(ctx, uc.users, caller, post.AuthorEmail); err != nil {
		return 0, passthrough(uc.logger, "authorize post delete", err)
	}

	deleted, err := uc.posts.Delete(ctx, id)
	if err != nil {
		return 0, upstream(uc.logger, "delete post", err)
	}
	return deleted, nil
}

// Vote adds one to the chosen counter. Voters are not deduplicated.
func (uc *postUseCase) Vote(ctx context.Context, id string, direction entity.VoteDirection) (entity.UpdateResult, error) {
	if !direction.Valid() {
		return entity.UpdateResult{}, fmt.Errorf("%w: unknown vote direction %q", entity.ErrInvalidInput, direction)
	}

	res, err := uc.posts.IncrementVote(ctx, id, direction)
	if err != nil {
		return entity.UpdateResult{}, passthrough(uc.logger, "vote", err)
	}
	if res.Matched == 0 {
		return res, entity.ErrNotFound
	}

	metrics.Votes.WithLabelValues(string(direction)).Inc()
	return res, nil
}
