package document

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/listing"
	"nomadnest/services/forum/internal/repo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) repo.UserRepository {
	return &userRepository{coll: db.Collection(usersCollection)}
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return doc.toEntity(), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, entity.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// InsertIfAbsent is one upsert keyed by email, so two concurrent sign-ins
// cannot both insert.
func (r *userRepository) InsertIfAbsent(ctx context.Context, user *entity.User) (bool, error) {
	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	doc := userDocument{
		Name:      user.Name,
		Email:     user.Email,
		Image:     user.Image,
		Role:      string(user.Role),
		Status:    string(user.Status),
		Warning:   user.Warning,
		CreatedAt: createdAt,
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"email": user.Email},
		bson.M{"$setOnInsert": doc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to upsert user: %w", err)
	}
	if res.UpsertedCount == 0 {
		return false, nil
	}

	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	*user = *doc.toEntity()
	return true, nil
}

func (r *userRepository) UpdateByEmail(ctx context.Context, email string, patch entity.UserPatch) (entity.UpdateResult, error) {
	return r.update(ctx, bson.M{"email": email}, patch)
}

func (r *userRepository) UpdateByID(ctx context.Context, id string, patch entity.UserPatch) (entity.UpdateResult, error) {
	oid, ok := objectID(id)
	if !ok {
		return entity.UpdateResult{}, nil
	}
	return r.update(ctx, bson.M{"_id": oid}, patch)
}

func (r *userRepository) update(ctx context.Context, filter bson.M, patch entity.UserPatch) (entity.UpdateResult, error) {
	set := bson.M{}
	if patch.Role != nil {
		set["role"] = string(*patch.Role)
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.Warning != nil {
		set["warning"] = *patch.Warning
	}
	if len(set) == 0 {
		return entity.UpdateResult{}, nil
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return entity.UpdateResult{}, fmt.Errorf("failed to update user: %w", err)
	}
	return entity.UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

func userMatch(filter listing.UserFilter) bson.M {
	if search := strings.TrimSpace(filter.Search); search != "" {
		return bson.M{"name": containsRegex(search)}
	}
	return bson.M{}
}

func (r *userRepository) List(ctx context.Context, filter listing.UserFilter, page listing.Page) ([]*entity.User, error) {
	opts := pageOptions(page.Skip(), page.Limit()).
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})

	cursor, err := r.coll.Find(ctx, userMatch(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	users := make([]*entity.User, len(docs))
	for i := range docs {
		users[i] = docs[i].toEntity()
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context, filter listing.UserFilter) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, userMatch(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
