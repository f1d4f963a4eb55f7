package document

import (
	"context"
	"fmt"

	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/listing"
	"nomadnest/services/forum/internal/repo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type postRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) repo.PostRepository {
	return &postRepository{coll: db.Collection(postsCollection)}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	doc := newPostDocument(post)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	*post = *doc.toEntity()
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, entity.ErrNotFound
	}

	var doc postDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return doc.toEntity(), nil
}

func (r *postRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, ok := objectID(id)
	if !ok {
		return 0, nil
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("failed to delete post: %w", err)
	}
	return res.DeletedCount, nil
}

// postMatch is the single filter stage shared by Query and Count.
func postMatch(filter listing.PostFilter) bson.D {
	filter = filter.Normalize()

	match := bson.D{}
	if filter.AuthorEmail != "" {
		match = append(match, bson.E{Key: "author_email", Value: filter.AuthorEmail})
	}
	if filter.Search != "" {
		match = append(match, bson.E{Key: "tag", Value: containsRegex(filter.Search)})
	}
	return match
}

func postSort(mode listing.Sort) bson.D {
	if mode == listing.SortScore {
		return bson.D{{Key: "voteDifference", Value: -1}, {Key: "post_time", Value: -1}, {Key: "_id", Value: 1}}
	}
	return bson.D{{Key: "post_time", Value: -1}, {Key: "_id", Value: 1}}
}

func postPipeline(q listing.PostQuery) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: postMatch(q.Filter)}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "voteDifference", Value: bson.D{{Key: "$subtract", Value: bson.A{"$upvote", "$downvote"}}}},
		}}},
		{{Key: "$sort", Value: postSort(q.Sort)}},
		{{Key: "$skip", Value: int64(q.Page.Skip())}},
		{{Key: "$limit", Value: int64(q.Page.Limit())}},
	}
}

func (r *postRepository) Query(ctx context.Context, q listing.PostQuery) ([]*entity.Post, error) {
	cursor, err := r.coll.Aggregate(ctx, postPipeline(q))
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}

	posts := make([]*entity.Post, len(docs))
	for i := range docs {
		posts[i] = docs[i].toEntity()
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context, filter listing.PostFilter) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, postMatch(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

func (r *postRepository) IncrementVote(ctx context.Context, id string, direction entity.VoteDirection) (entity.UpdateResult, error) {
	if !direction.Valid() {
		return entity.UpdateResult{}, entity.ErrInvalidInput
	}
	oid, ok := objectID(id)
	if !ok {
		return entity.UpdateResult{}, nil
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{string(direction): 1}},
	)
	if err != nil {
		return entity.UpdateResult{}, fmt.Errorf("failed to increment %s: %w", direction, err)
	}
	return entity.UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}
