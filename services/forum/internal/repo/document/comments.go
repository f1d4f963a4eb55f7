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

type commentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) repo.CommentRepository {
	return &commentRepository{coll: db.Collection(commentsCollection)}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	doc := newCommentDocument(comment)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	*comment = *doc.toEntity()
	return nil
}

func commentMatch(filter listing.CommentFilter) bson.D {
	match := bson.D{}
	if filter.PostID != "" {
		match = append(match, bson.E{Key: "post_id", Value: filter.PostID})
	}
	if filter.ReportedOnly {
		match = append(match, bson.E{Key: "feedback", Value: bson.D{
			{Key: "$exists", Value: true},
			{Key: "$nin", Value: bson.A{nil, ""}},
		}})
	}
	return match
}

func (r *commentRepository) Query(ctx context.Context, filter listing.CommentFilter, page listing.Page) ([]*entity.Comment, error) {
	opts := pageOptions(page.Skip(), page.Limit()).
		SetSort(bson.D{{Key: "post_time", Value: -1}, {Key: "_id", Value: 1}})

	cursor, err := r.coll.Find(ctx, commentMatch(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}

	var docs []commentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}

	comments := make([]*entity.Comment, len(docs))
	for i := range docs {
		comments[i] = docs[i].toEntity()
	}
	return comments, nil
}

func (r *commentRepository) Count(ctx context.Context, filter listing.CommentFilter) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, commentMatch(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}

func (r *commentRepository) SetFeedback(ctx context.Context, id, feedback string) (entity.UpdateResult, error) {
	oid, ok := objectID(id)
	if !ok {
		return entity.UpdateResult{}, nil
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"feedback": feedback}})
	if err != nil {
		return entity.UpdateResult{}, fmt.Errorf("failed to set feedback: %w", err)
	}
	return entity.UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, ok := objectID(id)
	if !ok {
		return 0, nil
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("failed to delete comment: %w", err)
	}
	return res.DeletedCount, nil
}
