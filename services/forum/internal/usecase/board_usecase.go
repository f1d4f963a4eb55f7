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

	"github.com/patrickmn/go-cache"
)

const tagsCacheKey = "tags"

type BoardUseCase interface {
	ListTags(ctx context.Context) ([]*entity.Tag, error)
	AddTag(ctx context.Context, name string) (*entity.Tag, error)
	ListAnnouncements(ctx context.Context, page listing.Page) ([]*entity.Announcement, error)
	CountAnnouncements(ctx context.Context) (int64, error)
	CreateAnnouncement(ctx context.Context, caller string, announcement *entity.Announcement) error
}

type boardUseCase struct {
	tags          repo.TagRepository
	announcements repo.AnnouncementRepository
	users         repo.UserRepository
	events        EventPublisher
	cache         *cache.Cache
	logger        *logger.Logger
}

func NewBoardUseCase(
	tags repo.TagRepository,
	announcements repo.AnnouncementRepository,
	users repo.UserRepository,
	events EventPublisher,
	logger *logger.Logger,
) BoardUseCase {
	return &boardUseCase{
		tags:          tags,
		announcements: announcements,
		users:         users,
		events:        events,
		cache:         cache.New(time.Minute, 2*time.Minute),
		logger:        logger,
	}
}

// ListTags serves the tag list from a short-lived cache; AddTag invalidates it.
func (uc *boardUseCase) ListTags(ctx context.Context) ([]*entity.Tag, error) {
	if cached, found := uc.cache.Get(tagsCacheKey); found {
		return cached.([]*entity.Tag), nil
	}

	tags, err := uc.tags.List(ctx)
	if err != nil {
		return nil, upstream(uc.logger, "list tags", err)
	}

	uc.cache.Set(tagsCacheKey, tags, cache.DefaultExpiration)
	return tags, nil
}

func (uc *boardUseCase) AddTag(ctx context.Context, name string) (*entity.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: tag name is required", entity.ErrInvalidInput)
	}

	tag := &entity.Tag{Name: name, CreatedAt: time.Now().UTC()}
	if err := uc.tags.Create(ctx, tag); err != nil {
		return nil, passthrough(uc.logger, "create tag", err)
	}

	uc.cache.Delete(tagsCacheKey)
	return tag, nil
}

func (uc *boardUseCase) ListAnnouncements(ctx context.Context, page listing.Page) ([]*entity.Announcement, error) {
	announcements, err := uc.announcements.List(ctx, page)
	if err != nil {
		return nil, upstream(uc.logger, "list announcements", err)
	}
	return announcements, nil
}

func (uc *boardUseCase) CountAnnouncements(ctx context.Context) (int64, error) {
	count, err := uc.announcements.Count(ctx)
	if err != nil {
		return 0, upstream(uc.logger, "count announcements", err)
	}
	return count, nil
}

func (uc *boardUseCase) CreateAnnouncement(ctx context.Context, caller string, announcement *entity.Announcement) error {
	announcement.Title = strings.TrimSpace(announcement.Title)
	if announcement.Title == "" {
		return fmt.Errorf("%w: title is required", entity.ErrInvalidInput)
	}

	if announcement.AuthorName == "" {
		if user, err := uc.users.GetByEmail(ctx, caller); err == nil {
			announcement.AuthorName = user.Name
			if announcement.AuthorImage == "" {
				announcement.AuthorImage = user.Image
			}
		}
	}

	announcement.ID = ""
	announcement.AuthorEmail = caller
	announcement.PostTime = time.Now().UTC()

	if err := uc.announcements.Create(ctx, announcement); err != nil {
		return upstream(uc.logger, "create announcement", err)
	}

	publish(ctx, uc.events, uc.logger, EventAnnouncementCreated, announcement.ID, map[string]string{
		"title":  announcement.Title,
		"author": caller,
	})
	return nil
}
