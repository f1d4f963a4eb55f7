//go:build integration

package persistent

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"nomadnest/migrations"
	"nomadnest/pkg/database"
	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/listing"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("nomadnest"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	sqlDB, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(sqlDB, "."))

	db, err := database.OpenPostgres(connStr)
	require.NoError(t, err)
	return db
}

func TestUserRepository_InsertIfAbsent(t *testing.T) {
	db := setupPostgres(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	first := &entity.User{Name: "Ana", Email: "ana@nomadnest.app", Role: entity.RoleUser, Status: entity.StatusRegular}
	inserted, err := users.InsertIfAbsent(ctx, first)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NotEmpty(t, first.ID)

	second := &entity.User{Name: "Ana again", Email: "ana@nomadnest.app", Role: entity.RoleUser, Status: entity.StatusRegular}
	inserted, err = users.InsertIfAbsent(ctx, second)
	require.NoError(t, err)
	assert.False(t, inserted)

	count, err := users.Count(ctx, listing.UserFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	admin := entity.RoleAdmin
	res, err := users.UpdateByID(ctx, first.ID, entity.UserPatch{Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Matched)

	stored, err := users.GetByEmail(ctx, "ana@nomadnest.app")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, stored.Role)

	_, err = users.GetByEmail(ctx, "nobody@nomadnest.app")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestPostRepository_QueryMatchesCount(t *testing.T) {
	db := setupPostgres(t)
	posts := NewPostRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tags := []string{"Hiking", "Biking", "100% remote", "hik_ers"}
	for i := 0; i < 10; i++ {
		require.NoError(t, posts.Create(ctx, &entity.Post{
			AuthorEmail: "ana@nomadnest.app",
			Title:       fmt.Sprintf("post %d", i),
			Tag:         tags[i%len(tags)],
			PostTime:    base.Add(time.Duration(i%3) * time.Hour),
			Upvote:      int64(i % 4),
		}))
	}

	for _, f := range []listing.PostFilter{{}, {Search: "HIK"}, {Search: "%"}, {Search: "_"}} {
		count, err := posts.Count(ctx, f)
		require.NoError(t, err)

		seen := make(map[string]bool)
		for page := 1; ; page++ {
			got, err := posts.Query(ctx, listing.PostQuery{Filter: f, Sort: listing.SortScore, Page: listing.NewPage(page, 4)})
			require.NoError(t, err)
			if len(got) == 0 {
				break
			}
			for _, p := range got {
				assert.False(t, seen[p.ID])
				seen[p.ID] = true
			}
		}
		assert.Equal(t, count, int64(len(seen)), "filter %+v", f)
	}

	percent, err := posts.Count(ctx, listing.PostFilter{Search: "%"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), percent)
}

func TestPostRepository_ConcurrentVotes(t *testing.T) {
	db := setupPostgres(t)
	posts := NewPostRepository(db)
	ctx := context.Background()

	post := &entity.Post{AuthorEmail: "ana@nomadnest.app", Title: "votes", Tag: "Food", PostTime: time.Now()}
	require.NoError(t, posts.Create(ctx, post))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := posts.IncrementVote(ctx, post.ID, entity.Upvote)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := posts.IncrementVote(ctx, post.ID, entity.Downvote)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), stored.Upvote)
	assert.Equal(t, int64(20), stored.Downvote)
	assert.Equal(t, int64(0), stored.VoteDifference)
}

func TestCommentRepository_Reported(t *testing.T) {
	db := setupPostgres(t)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	postID := "7f1d6c3e-2a0b-4c55-9d7e-1f2a3b4c5d6e"
	for i := 0; i < 3; i++ {
		require.NoError(t, comments.Create(ctx, &entity.Comment{
			PostID:         postID,
			CommenterEmail: "bo@nomadnest.app",
			Comment:        fmt.Sprintf("comment %d", i),
			PostTime:       time.Now().Add(time.Duration(i) * time.Minute),
		}))
	}

	listed, err := comments.Query(ctx, listing.CommentFilter{PostID: postID}, listing.NewPage(1, 4))
	require.NoError(t, err)
	require.Len(t, listed, 3)

	res, err := comments.SetFeedback(ctx, listed[0].ID, "offensive")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Matched)

	reported, err := comments.Count(ctx, listing.CommentFilter{ReportedOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), reported)
}
