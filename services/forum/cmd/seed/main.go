package main

import (
	"context"
	"fmt"
	"time"

	"nomadnest/pkg/config"
	"nomadnest/pkg/logger"
	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/listing"
	"nomadnest/services/forum/internal/repo"

	app "nomadnest/services/forum/internal/app"
)

type seedUser struct {
	name   string
	email  string
	role   entity.Role
	status entity.Status
}

var (
	seedUsers = []seedUser{
		{"Ada Admin", "admin@nomadnest.test", entity.RoleAdmin, entity.StatusGold},
		{"Bea Hiker", "bea@nomadnest.test", entity.RoleUser, entity.StatusGold},
		{"Cal Rover", "cal@nomadnest.test", entity.RoleUser, entity.StatusRegular},
		{"Dee Drifter", "dee@nomadnest.test", entity.RoleUser, entity.StatusRegular},
	}

	seedTags = []string{"hiking", "budget", "visa", "coworking", "food"}
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	if cfg.StoreDriver == app.DriverMemory {
		log.Warn("Store driver %q keeps nothing after exit, seeding anyway", cfg.StoreDriver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		log.Error("Failed to open store: %v", err)
		panic(err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error("Failed to close store: %v", err)
		}
	}()

	if err := seed(ctx, store, log); err != nil {
		log.Error("Failed to seed store: %v", err)
		panic(err)
	}

	log.Info("Store seeded successfully!")
}

func seed(ctx context.Context, store *repo.Store, log *logger.Logger) error {
	now := time.Now().UTC()

	for i, u := range seedUsers {
		inserted, err := store.Users.InsertIfAbsent(ctx, &entity.User{
			Name:      u.name,
			Email:     u.email,
			Role:      u.role,
			Status:    u.status,
			CreatedAt: now.Add(-time.Duration(len(seedUsers)-i) * time.Hour),
		})
		if err != nil {
			return fmt.Errorf("failed to insert user %s: %w", u.email, err)
		}
		if !inserted {
			log.Info("User %s already exists, skipping", u.email)
			continue
		}
		log.Info("Created user: %s (%s)", u.name, u.role)
	}

	existingTags, err := store.Tags.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tags: %w", err)
	}
	known := make(map[string]bool, len(existingTags))
	for _, tag := range existingTags {
		known[tag.Name] = true
	}
	for _, name := range seedTags {
		if known[name] {
			continue
		}
		if err := store.Tags.Create(ctx, &entity.Tag{Name: name, CreatedAt: now}); err != nil {
			return fmt.Errorf("failed to insert tag %s: %w", name, err)
		}
	}

	existing, err := store.Posts.Count(ctx, listing.PostFilter{})
	if err != nil {
		return fmt.Errorf("failed to count posts: %w", err)
	}
	if existing > 0 {
		log.Info("Store already holds %d posts, skipping content", existing)
		return nil
	}

	admin := seedUsers[0]
	if err := store.Announcements.Create(ctx, &entity.Announcement{
		AuthorName:  admin.name,
		AuthorEmail: admin.email,
		Title:       "Welcome to NomadNest",
		Description: "Be kind, tag your posts, and report anything that breaks the rules.",
		PostTime:    now,
	}); err != nil {
		return fmt.Errorf("failed to create announcement: %w", err)
	}

	var firstPost *entity.Post
	for i := 0; i < 12; i++ {
		author := seedUsers[i%len(seedUsers)]
		post := &entity.Post{
			AuthorName:  author.name,
			AuthorEmail: author.email,
			Title:       fmt.Sprintf("Notes from the road #%d", i+1),
			Description: fmt.Sprintf("Tips on %s collected along the way.", seedTags[i%len(seedTags)]),
			Tag:         seedTags[i%len(seedTags)],
			PostTime:    now.Add(-time.Duration(i) * 6 * time.Hour),
			Upvote:      int64((i * 7) % 11),
			Downvote:    int64((i * 3) % 5),
		}
		if err := store.Posts.Create(ctx, post); err != nil {
			return fmt.Errorf("failed to create post %d: %w", i+1, err)
		}
		if firstPost == nil {
			firstPost = post
		}
	}
	log.Info("Created 12 posts")

	for i, commenter := range seedUsers[1:] {
		comment := &entity.Comment{
			PostID:         firstPost.ID,
			PostTitle:      firstPost.Title,
			CommenterName:  commenter.name,
			CommenterEmail: commenter.email,
			Comment:        fmt.Sprintf("Comment %d on the first post", i+1),
			PostTime:       now.Add(time.Duration(i) * time.Minute),
		}
		if err := store.Comments.Create(ctx, comment); err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
		if i == len(seedUsers)-2 {
			if _, err := store.Comments.SetFeedback(ctx, comment.ID, "Spam"); err != nil {
				return fmt.Errorf("failed to report comment: %w", err)
			}
		}
	}
	log.Info("Created comments on %s", firstPost.ID)

	return nil
}
