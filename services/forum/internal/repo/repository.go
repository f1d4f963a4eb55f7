package repo

import (
	"context"

	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/listing"
)

// Lookups return entity.ErrNotFound when no record matches. Every method is a
// single store operation; none of them spans records in a transaction.

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// InsertIfAbsent stores the user unless the email is taken and reports whether it inserted.
	InsertIfAbsent(ctx context.Context, user *entity.User) (bool, error)
	UpdateByEmail(ctx context.Context, email string, patch entity.UserPatch) (entity.UpdateResult, error)
	UpdateByID(ctx context.Context, id string, patch entity.UserPatch) (entity.UpdateResult, error)
	List(ctx context.Context, filter listing.UserFilter, page listing.Page) ([]*entity.User, error)
	Count(ctx context.Context, filter listing.UserFilter) (int64, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	Delete(ctx context.Context, id string) (int64, error)
	// Query computes filter, score, order and page in one store round trip.
	Query(ctx context.Context, q listing.PostQuery) ([]*entity.Post, error)
	Count(ctx context.Context, filter listing.PostFilter) (int64, error)
	IncrementVote(ctx context.Context, id string, direction entity.VoteDirection) (entity.UpdateResult, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	Query(ctx context.Context, filter listing.CommentFilter, page listing.Page) ([]*entity.Comment, error)
	Count(ctx context.Context, filter listing.CommentFilter) (int64, error)
	SetFeedback(ctx context.Context, id, feedback string) (entity.UpdateResult, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type TagRepository interface {
	// Create always inserts; names are not deduplicated.
	Create(ctx context.Context, tag *entity.Tag) error
	List(ctx context.Context) ([]*entity.Tag, error)
}

type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *entity.Announcement) error
	List(ctx context.Context, page listing.Page) ([]*entity.Announcement, error)
	Count(ctx context.Context) (int64, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListByEmail(ctx context.Context, email string) ([]*entity.Payment, error)
}

// Store bundles one driver's repositories.
type Store struct {
	Users         UserRepository
	Posts         PostRepository
	Comments      CommentRepository
	Tags          TagRepository
	Announcements AnnouncementRepository
	Payments      PaymentRepository

	Close func(ctx context.Context) error
}
