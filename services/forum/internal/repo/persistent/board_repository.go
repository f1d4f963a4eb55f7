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

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) repo.TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	tagModel := &model.TagModel{ID: tag.ID, Name: tag.Name}
	if err := r.db.WithContext(ctx).Create(tagModel).Error; err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	*tag = *ToTagEntity(tagModel)
	return nil
}

func (r *tagRepository) List(ctx context.Context) ([]*entity.Tag, error) {
	var tagModels []model.TagModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tagModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	tags := make([]*entity.Tag, len(tagModels))
	for i := range tagModels {
		tags[i] = ToTagEntity(&tagModels[i])
	}
	return tags, nil
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) repo.AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(ctx context.Context, announcement *entity.Announcement) error {
	announcementModel := ToAnnouncementModel(announcement)
	if err := r.db.WithContext(ctx).Create(announcementModel).Error; err != nil {
		return fmt.Errorf("failed to create announcement: %w", err)
	}

	*announcement = *ToAnnouncementEntity(announcementModel)
	return nil
}

func (r *announcementRepository) List(ctx context.Context, page listing.Page) ([]*entity.Announcement, error) {
	var announcementModels []model.AnnouncementModel
	err := r.db.WithContext(ctx).
		Order("post_time DESC, id ASC").
		Offset(page.Skip()).
		Limit(page.Limit()).
		Find(&announcementModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}

	announcements := make([]*entity.Announcement, len(announcementModels))
	for i := range announcementModels {
		announcements[i] = ToAnnouncementEntity(&announcementModels[i])
	}
	return announcements, nil
}

func (r *announcementRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.AnnouncementModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count announcements: %w", err)
	}
	return count, nil
}
