package usecase

import (
	"context"
	"testing"

	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/listing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBoardUseCase_Tags(t *testing.T) {
	store := newStore()
	uc := NewBoardUseCase(store.Tags, store.Announcements, store.Users, nil, testLogger())
	ctx := context.Background()

	tags, err := uc.ListTags(ctx)
	require.NoError(t, err)
	assert.Empty(t, tags)

	_, err = uc.AddTag(ctx, "Hiking")
	require.NoError(t, err)

	tags, err = uc.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1, "insert invalidates the cached list")
	assert.Equal(t, "Hiking", tags[0].Name)

	_, err = uc.AddTag(ctx, "Hiking")
	require.NoError(t, err, "tag names are not deduplicated")

	tags, err = uc.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 2)

	_, err = uc.AddTag(ctx, "")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestBoardUseCase_TagsServedFromCache(t *testing.T) {
	store := newStore()
	uc := NewBoardUseCase(store.Tags, store.Announcements, store.Users, nil, testLogger())
	ctx := context.Background()

	_, err := uc.ListTags(ctx)
	require.NoError(t, err)

	// Written behind the usecase's back, so the cached empty list still wins.
	require.NoError(t, store.Tags.Create(ctx, &entity.Tag{Name: "Surf"}))

	tags, err := uc.ListTags(ctx)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestBoardUseCase_Announcements(t *testing.T) {
	store := newStore()
	seedUser(t, store, "admin@x.io", entity.RoleAdmin, entity.StatusRegular)

	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, eventOfType(EventAnnouncementCreated)).Return(nil).Twice()

	uc := NewBoardUseCase(store.Tags, store.Announcements, store.Users, publisher, testLogger())
	ctx := context.Background()

	err := uc.CreateAnnouncement(ctx, "admin@x.io", &entity.Announcement{})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	for _, title := range []string{"Welcome", "Meetup"} {
		a := &entity.Announcement{Title: title, Description: "..."}
		require.NoError(t, uc.CreateAnnouncement(ctx, "admin@x.io", a))
		assert.Equal(t, "admin@x.io", a.AuthorName)
		assert.NotEmpty(t, a.ID)
	}

	count, err := uc.CountAnnouncements(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	list, err := uc.ListAnnouncements(ctx, listing.NewPage(1, 1))
	require.NoError(t, err)
	assert.Len(t, list, 1)

	publisher.AssertExpectations(t)
}
