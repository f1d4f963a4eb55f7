package inmem

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/listing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_InsertIfAbsentIsIdempotent(t *testing.T) {
	users := NewUserRepository()
	ctx := context.Background()

	first := &entity.User{Email: "ana@nomadnest.app", Name: "Ana", Role: entity.RoleUser}
	inserted, err := users.InsertIfAbsent(ctx, first)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NotEmpty(t, first.ID)

	again := &entity.User{Email: "ana@nomadnest.app", Name: "Someone else"}
	inserted, err = users.InsertIfAbsent(ctx, again)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Empty(t, again.ID)

	count, err := users.Count(ctx, listing.UserFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	stored, err := users.GetByEmail(ctx, "ana@nomadnest.app")
	require.NoError(t, err)
	assert.Equal(t, "Ana", stored.Name)
}

func TestUserRepository_ConcurrentInsertIfAbsent(t *testing.T) {
	users := NewUserRepository()
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		inserted int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := users.InsertIfAbsent(ctx, &entity.User{Email: "race@nomadnest.app"})
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				inserted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, inserted)
}

func TestUserRepository_UpdateReportsMatchedAndModified(t *testing.T) {
	users := NewUserRepository()
	ctx := context.Background()

	u := &entity.User{Email: "ana@nomadnest.app", Role: entity.RoleUser}
	_, err := users.InsertIfAbsent(ctx, u)
	require.NoError(t, err)

	admin := entity.RoleAdmin
	res, err := users.UpdateByID(ctx, u.ID, entity.UserPatch{Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, entity.UpdateResult{Matched: 1, Modified: 1}, res)

	res, err = users.UpdateByID(ctx, u.ID, entity.UserPatch{Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, entity.UpdateResult{Matched: 1, Modified: 0}, res)

	res, err = users.UpdateByEmail(ctx, "missing@nomadnest.app", entity.UserPatch{Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, entity.UpdateResult{}, res)
}

func TestPostRepository_VotesAreMonotonic(t *testing.T) {
	posts := NewPostRepository()
	ctx := context.Background()

	post := &entity.Post{Title: "Lisbon coworking", Tag: "Remote Work", PostTime: time.Now()}
	require.NoError(t, posts.Create(ctx, post))

	for i := 1; i <= 3; i++ {
		res, err := posts.IncrementVote(ctx, post.ID, entity.Upvote)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Matched)

		stored, err := posts.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(i), stored.Upvote)
	}
}

func TestPostRepository_ConcurrentVotes(t *testing.T) {
	posts := NewPostRepository()
	ctx := context.Background()

	post := &entity.Post{Title: "Bali visas", Tag: "Visa", PostTime: time.Now()}
	require.NoError(t, posts.Create(ctx, post))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = posts.IncrementVote(ctx, post.ID, entity.Upvote)
		}()
		go func() {
			defer wg.Done()
			_, _ = posts.IncrementVote(ctx, post.ID, entity.Downvote)
		}()
	}
	wg.Wait()

	stored, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), stored.Upvote)
	assert.Equal(t, int64(50), stored.Downvote)
}

func TestPostRepository_VoteOnMissingPost(t *testing.T) {
	posts := NewPostRepository()

	res, err := posts.IncrementVote(context.Background(), "missing", entity.Upvote)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Matched)

	_, err = posts.IncrementVote(context.Background(), "missing", entity.VoteDirection("sideways"))
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestPostRepository_QueryAndCountAgree(t *testing.T) {
	posts := NewPostRepository()
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tags := []string{"Hiking", "Biking", "Food"}
	for i := 0; i < 10; i++ {
		require.NoError(t, posts.Create(ctx, &entity.Post{
			Title:    fmt.Sprintf("post %d", i),
			Tag:      tags[i%3],
			PostTime: base.Add(time.Duration(i) * time.Hour),
			Upvote:   int64(i),
		}))
	}

	for _, filter := range []listing.PostFilter{{}, {Search: "hik"}, {Search: "ING"}} {
		count, err := posts.Count(ctx, filter)
		require.NoError(t, err)

		total := 0
		for page := 1; ; page++ {
			got, err := posts.Query(ctx, listing.PostQuery{Filter: filter, Sort: listing.SortRecency, Page: listing.NewPage(page, 4)})
			require.NoError(t, err)
			if len(got) == 0 {
				break
			}
			total += len(got)
		}
		assert.Equal(t, count, int64(total))
	}

	first, err := posts.Query(ctx, listing.PostQuery{Sort: listing.SortScore, Page: listing.NewPage(1, 1)})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "post 9", first[0].Title)
	assert.Equal(t, int64(9), first[0].VoteDifference)
}

func TestPostRepository_QueryFarPastTheEnd(t *testing.T) {
	posts := NewPostRepository()
	comments := NewCommentRepository()
	ctx := context.Background()

	post := &entity.Post{Title: "only", Tag: "Hiking", PostTime: time.Now()}
	require.NoError(t, posts.Create(ctx, post))
	require.NoError(t, comments.Create(ctx, &entity.Comment{PostID: post.ID, Comment: "hi", PostTime: time.Now()}))

	page := listing.ParsePage("2305843009213693953", "4")
	assert.NotPanics(t, func() {
		got, err := posts.Query(ctx, listing.PostQuery{Sort: listing.SortScore, Page: page})
		require.NoError(t, err)
		assert.Empty(t, got)

		byPost, err := comments.Query(ctx, listing.CommentFilter{PostID: post.ID}, page)
		require.NoError(t, err)
		assert.Empty(t, byPost)
	})
}

func TestPostRepository_Delete(t *testing.T) {
	posts := NewPostRepository()
	ctx := context.Background()

	post := &entity.Post{Title: "to delete", PostTime: time.Now()}
	require.NoError(t, posts.Create(ctx, post))

	deleted, err := posts.Delete(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = posts.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	deleted, err = posts.Delete(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestCommentRepository_ReportedListing(t *testing.T) {
	comments := NewCommentRepository()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		c := &entity.Comment{PostID: "post-1", Comment: fmt.Sprintf("c%d", i), PostTime: time.Now().Add(time.Duration(i) * time.Minute)}
		require.NoError(t, comments.Create(ctx, c))
		ids = append(ids, c.ID)
	}

	_, err := comments.SetFeedback(ctx, ids[1], "spam")
	require.NoError(t, err)
	_, err = comments.SetFeedback(ctx, ids[3], "")
	require.NoError(t, err)

	reported, err := comments.Query(ctx, listing.CommentFilter{ReportedOnly: true}, listing.NewPage(1, 4))
	require.NoError(t, err)
	require.Len(t, reported, 1)
	assert.Equal(t, ids[1], reported[0].ID)

	count, err := comments.Count(ctx, listing.CommentFilter{ReportedOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	byPost, err := comments.Count(ctx, listing.CommentFilter{PostID: "post-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), byPost)
}

func TestTagRepository_DuplicateNameIsInserted(t *testing.T) {
	tags := NewTagRepository()
	ctx := context.Background()

	require.NoError(t, tags.Create(ctx, &entity.Tag{Name: "Surf"}))
	require.NoError(t, tags.Create(ctx, &entity.Tag{Name: "Hiking"}))
	require.NoError(t, tags.Create(ctx, &entity.Tag{Name: "Hiking"}))

	list, err := tags.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Hiking", "Hiking", "Surf"}, []string{list[0].Name, list[1].Name, list[2].Name})
	assert.NotEqual(t, list[0].ID, list[1].ID)
}
