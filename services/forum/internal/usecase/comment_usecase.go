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

type CommentUseCase interface {
	CreateComment(ctx context.Context, caller string, comment *entity.Comment) error
	ListForPost(ctx context.Context, postID string, page listing.Page) ([]*entity.Comment, error)
	CountForPost(ctx context.Context, postID string) (int64, error)
	Report(ctx context.Context, id, feedback string) (entity.UpdateResult, error)
	ListReported(ctx context.Context, page listing.Page) ([]*entity.Comment, error)
	CountReported(ctx context.Context) (int64, error)
	DeleteComment(ctx context.Context, id string) (int64, error)
}

type commentUseCase struct {
	comments repo.CommentRepository
	posts    repo.PostRepository
	users    repo.UserRepository
	logger   *logger.Logger
}

func NewCommentUseCase(
	comments repo.CommentRepository,
	posts repo.PostRepository,
	users repo.UserRepository,
	logger *logger.Logger,
) CommentUseCase {
	return &commentUseCase{
		comments: comments,
		posts:    posts,
		users:    users,
		logger:   logger,
	}
}

func (uc *commentUseCase) CreateComment(ctx context.Context, caller string, comment *entity.Comment) error {
	comment.Comment = strings.TrimSpace(comment.Comment)
	if comment.Comment == "" {
		return fmt.Errorf("%w: comment text is required", entity.ErrInvalidInput)
	}

	post, err := uc.posts.GetByID(ctx, comment.PostID)
	if err != nil {
		return passthrough(uc.logger, "load commented post", err)
	}

	if comment.CommenterName == "" || comment.CommenterImage == "" {
		if user, err := uc.users.GetByEmail(ctx, caller); err == nil {
			if comment.CommenterName == "" {
				comment.CommenterName = user.Name
			}
			if comment.CommenterImage == "" {
				comment.CommenterImage = user.Image
			}
		}
	}

	comment.ID = ""
	comment.PostTitle = post.Title
	comment.CommenterEmail = caller
	comment.Feedback = nil
	comment.PostTime = time.Now().UTC()

	if err := uc.comments.Create(ctx, comment); err != nil {
		return upstream(uc.logger, "create comment", err)
	}
	return nil
}

func (uc *commentUseCase) ListForPost(ctx context.Context, postID string, page listing.Page) ([]*entity.Comment, error) {
	return uc.list(ctx, listing.CommentFilter{PostID: postID}, page)
}

func (uc *commentUseCase) CountForPost(ctx context.Context, postID string) (int64, error) {
	return uc.count(ctx, listing.CommentFilter{PostID: postID})
}

// Report attaches feedback, which is what marks a comment as reported.
func (uc *commentUseCase) Report(ctx context.Context, id, feedback string) (entity.UpdateResult, error) {
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return entity.UpdateResult{}, fmt.Errorf("%w: feedback is required", entity.ErrInvalidInput)
	}

	res, err := uc.comments.SetFeedback(ctx, id, feedback)
	if err != nil {
		return entity.UpdateResult{}, upstream(uc.logger, "report comment", err)
	}
	return res, nil
}

func (uc *commentUseCase) ListReported(ctx context.Context, page listing.Page) ([]*entity.Comment, error) {
	return uc.list(ctx, listing.CommentFilter{ReportedOnly: true}, page)
}

func (uc *commentUseCase) CountReported(ctx context.Context) (int64, error) {
	return uc.count(ctx, listing.CommentFilter{ReportedOnly: true})
}

func (uc *commentUseCase) DeleteComment(ctx context.Context, id string) (int64, error) {
	deleted, err := uc.comments.Delete(ctx, id)
	if err != nil {
		return 0, upstream(uc.logger, "delete comment", err)
	}
	return deleted, nil
}

func (uc *commentUseCase) list(ctx context.Context, filter listing.CommentFilter, page listing.Page) ([]*entity.Comment, error) {
	comments, err := uc.comments.Query(ctx, filter, page)
	if err != nil {
		return nil, upstream(uc.logger, "list comments", err)
	}
	return comments, nil
}

func (uc *commentUseCase) count(ctx context.Context, filter listing.CommentFilter) (int64, error) {
	count, err := uc.comments.Count(ctx, filter)
	if err != nil {
		return 0, upstream(uc.logger, "count comments", err)
	}
	return count, nil
}
