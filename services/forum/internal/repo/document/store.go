// Package document stores the forum in MongoDB collections named after the
// records they hold.
package document

import (
	"context"
	"fmt"
	"regexp"

	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/repo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection         = "users"
	postsCollection         = "posts"
	commentsCollection      = "comments"
	tagsCollection          = "tags"
	announcementsCollection = "announcements"
	paymentsCollection      = "payments"
)

func NewStore(ctx context.Context, client *mongo.Client, database string) (*repo.Store, error) {
	db := client.Database(database)
	if err := EnsureIndexes(ctx, db); err != nil {
		return nil, err
	}

	return &repo.Store{
		Users:         NewUserRepository(db),
		Posts:         NewPostRepository(db),
		Comments:      NewCommentRepository(db),
		Tags:          NewTagRepository(db),
		Announcements: NewAnnouncementRepository(db),
		Payments:      NewPaymentRepository(db),
		Close:         client.Disconnect,
	}, nil
}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		postsCollection: {
			{Keys: bson.D{{Key: "post_time", Value: -1}, {Key: "_id", Value: 1}}},
			{Keys: bson.D{{Key: "author_email", Value: 1}}},
		},
		commentsCollection: {
			{Keys: bson.D{{Key: "post_id", Value: 1}, {Key: "post_time", Value: -1}}},
		},
		tagsCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
		paymentsCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", collection, err)
		}
	}
	return nil
}

// objectID parses a hex id; malformed ids match nothing.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

// containsRegex matches term anywhere in a field, ignoring case.
func containsRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

func notFound(err error) error {
	if err == mongo.ErrNoDocuments {
		return entity.ErrNotFound
	}
	return err
}

func pageOptions(skip, limit int) *options.FindOptions {
	return options.Find().SetSkip(int64(skip)).SetLimit(int64(limit))
}
