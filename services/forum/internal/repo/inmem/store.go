// Package inmem keeps every collection in process memory. It backs local runs
// without external services and the behavioural tests of the usecases.
package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/listing"
	"nomadnest/services/forum/internal/repo"

	"github.com/google/uuid"
)

func NewStore() *repo.Store {
	return &repo.Store{
		Users:         NewUserRepository(),
		Posts:         NewPostRepository(),
		Comments:      NewCommentRepository(),
		Tags:          NewTagRepository(),
		Announcements: NewAnnouncementRepository(),
		Payments:      NewPaymentRepository(),
		Close:         func(context.Context) error { return nil },
	}
}

func newID() string {
	return uuid.New().String()
}

type userRepository struct {
	mu      sync.RWMutex
	byID    map[string]*entity.User
	byEmail map[string]string
}

func NewUserRepository() repo.UserRepository {
	return &userRepository{
		byID:    make(map[string]*entity.User),
		byEmail: make(map[string]string),
	}
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, entity.ErrNotFound
	}
	u := *r.byID[id]
	return &u, nil
}

func (r *userRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userRepository) InsertIfAbsent(_ context.Context, user *entity.User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return false, nil
	}

	stored := *user
	if stored.ID == "" {
		stored.ID = newID()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID

	*user = stored
	return true, nil
}

func (r *userRepository) UpdateByEmail(_ context.Context, email string, patch entity.UserPatch) (entity.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return entity.UpdateResult{}, nil
	}
	return applyUserPatch(r.byID[id], patch), nil
}

func (r *userRepository) UpdateByID(_ context.Context, id string, patch entity.UserPatch) (entity.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return entity.UpdateResult{}, nil
	}
	return applyUserPatch(u, patch), nil
}

func applyUserPatch(u *entity.User, patch entity.UserPatch) entity.UpdateResult {
	before := *u
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.Status != nil {
		u.Status = *patch.Status
	}
	if patch.Warning != nil {
		u.Warning = *patch.Warning
	}

	res := entity.UpdateResult{Matched: 1}
	if before != *u {
		res.Modified = 1
	}
	return res
}

func (r *userRepository) matching(filter listing.UserFilter) []*entity.User {
	var users []*entity.User
	for _, u := range r.byID {
		if filter.Matches(u) {
			cp := *u
			users = append(users, &cp)
		}
	}
	return users
}

func (r *userRepository) List(_ context.Context, filter listing.UserFilter, page listing.Page) ([]*entity.User, error) {
	r.mu.RLock()
	users := r.matching(filter)
	r.mu.RUnlock()

	sort.Slice(users, func(i, j int) bool { return listing.LessUser(users[i], users[j]) })
	return listing.Paginate(users, page), nil
}

func (r *userRepository) Count(_ context.Context, filter listing.UserFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.matching(filter))), nil
}

type postRepository struct {
	mu    sync.RWMutex
	posts map[string]*entity.Post
}

func NewPostRepository() repo.PostRepository {
	return &postRepository{posts: make(map[string]*entity.Post)}
}

func (r *postRepository) Create(_ context.Context, post *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *post
	if stored.ID == "" {
		stored.ID = newID()
	}
	stored.VoteDifference = 0
	r.posts[stored.ID] = &stored

	out := stored
	*post = *out.Derive()
	return nil
}

func (r *postRepository) GetByID(_ context.Context, id string) (*entity.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *p
	return cp.Derive(), nil
}

func (r *postRepository) Delete(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return 0, nil
	}
	delete(r.posts, id)
	return 1, nil
}

// all must be called with the lock held; the pipeline copies what it returns.
func (r *postRepository) all() []*entity.Post {
	posts := make([]*entity.Post, 0, len(r.posts))
	for _, p := range r.posts {
		posts = append(posts, p)
	}
	return posts
}

func (r *postRepository) Query(_ context.Context, q listing.PostQuery) ([]*entity.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return listing.RankPosts(r.all(), q), nil
}

func (r *postRepository) Count(_ context.Context, filter listing.PostFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return listing.CountPosts(r.all(), filter), nil
}

func (r *postRepository) IncrementVote(_ context.Context, id string, direction entity.VoteDirection) (entity.UpdateResult, error) {
	if !direction.Valid() {
		return entity.UpdateResult{}, entity.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return entity.UpdateResult{}, nil
	}
	if direction == entity.Upvote {
		p.Upvote++
	} else {
		p.Downvote++
	}
	return entity.UpdateResult{Matched: 1, Modified: 1}, nil
}

type commentRepository struct {
	mu       sync.RWMutex
	comments map[string]*entity.Comment
}

func NewCommentRepository() repo.CommentRepository {
	return &commentRepository{comments: make(map[string]*entity.Comment)}
}

func (r *commentRepository) Create(_ context.Context, comment *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *comment
	if stored.ID == "" {
		stored.ID = newID()
	}
	r.comments[stored.ID] = &stored
	*comment = stored
	return nil
}

func (r *commentRepository) all() []*entity.Comment {
	comments := make([]*entity.Comment, 0, len(r.comments))
	for _, c := range r.comments {
		comments = append(comments, c)
	}
	return comments
}

func (r *commentRepository) Query(_ context.Context, filter listing.CommentFilter, page listing.Page) ([]*entity.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return listing.RankComments(r.all(), filter, page), nil
}

func (r *commentRepository) Count(_ context.Context, filter listing.CommentFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, c := range r.comments {
		if filter.Matches(c) {
			n++
		}
	}
	return n, nil
}

func (r *commentRepository) SetFeedback(_ context.Context, id, feedback string) (entity.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.comments[id]
	if !ok {
		return entity.UpdateResult{}, nil
	}

	res := entity.UpdateResult{Matched: 1}
	if c.Feedback == nil || *c.Feedback != feedback {
		res.Modified = 1
	}
	c.Feedback = &feedback
	return res, nil
}

func (r *commentRepository) Delete(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return 0, nil
	}
	delete(r.comments, id)
	return 1, nil
}

type tagRepository struct {
	mu   sync.RWMutex
	tags []*entity.Tag
}

func NewTagRepository() repo.TagRepository {
	return &tagRepository{}
}

func (r *tagRepository) Create(_ context.Context, tag *entity.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *tag
	if stored.ID == "" {
		stored.ID = newID()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.tags = append(r.tags, &stored)
	*tag = stored
	return nil
}

func (r *tagRepository) List(_ context.Context) ([]*entity.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]*entity.Tag, 0, len(r.tags))
	for _, t := range r.tags {
		cp := *t
		tags = append(tags, &cp)
	}
	sort.SliceStable(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

type announcementRepository struct {
	mu            sync.RWMutex
	announcements []*entity.Announcement
}

func NewAnnouncementRepository() repo.AnnouncementRepository {
	return &announcementRepository{}
}

func (r *announcementRepository) Create(_ context.Context, announcement *entity.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *announcement
	if stored.ID == "" {
		stored.ID = newID()
	}
	r.announcements = append(r.announcements, &stored)
	*announcement = stored
	return nil
}

func (r *announcementRepository) List(_ context.Context, page listing.Page) ([]*entity.Announcement, error) {
	r.mu.RLock()
	all := make([]*entity.Announcement, len(r.announcements))
	for i, a := range r.announcements {
		cp := *a
		all[i] = &cp
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].PostTime.Equal(all[j].PostTime) {
			return all[i].PostTime.After(all[j].PostTime)
		}
		return all[i].ID < all[j].ID
	})
	return listing.Paginate(all, page), nil
}

func (r *announcementRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.announcements)), nil
}

type paymentRepository struct {
	mu       sync.RWMutex
	payments []*entity.Payment
}

func NewPaymentRepository() repo.PaymentRepository {
	return &paymentRepository{}
}

func (r *paymentRepository) Create(_ context.Context, payment *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *payment
	if stored.ID == "" {
		stored.ID = newID()
	}
	r.payments = append(r.payments, &stored)
	*payment = stored
	return nil
}

func (r *paymentRepository) ListByEmail(_ context.Context, email string) ([]*entity.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var payments []*entity.Payment
	for _, p := range r.payments {
		if p.Email == email {
			cp := *p
			payments = append(payments, &cp)
		}
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].Date.After(payments[j].Date) })
	return payments, nil
}
