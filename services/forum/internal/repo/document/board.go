package document

import (
	"context"
	"fmt"
	"time"

	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/listing"
	"nomadnest/services/forum/internal/repo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type tagRepository struct {
	coll *mongo.Collection
}

func NewTagRepository(db *mongo.Database) repo.TagRepository {
	return &tagRepository{coll: db.Collection(tagsCollection)}
}

func (r *tagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	doc := tagDocument{Name: tag.Name, CreatedAt: time.Now().UTC()}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	*tag = entity.Tag{ID: doc.ID.Hex(), Name: doc.Name, CreatedAt: doc.CreatedAt}
	return nil
}

func (r *tagRepository) List(ctx context.Context) ([]*entity.Tag, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	var docs []tagDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}

	tags := make([]*entity.Tag, len(docs))
	for i, doc := range docs {
		tags[i] = &entity.Tag{ID: doc.ID.Hex(), Name: doc.Name, CreatedAt: doc.CreatedAt}
	}
	return tags, nil
}

type announcementRepository struct {
	coll *mongo.Collection
}

func NewAnnouncementRepository(db *mongo.Database) repo.AnnouncementRepository {
	return &announcementRepository{coll: db.Collection(announcementsCollection)}
}

func (r *announcementRepository) Create(ctx context.Context, announcement *entity.Announcement) error {
	doc := announcementDocument{
		AuthorName:  announcement.AuthorName,
		AuthorEmail: announcement.AuthorEmail,
		AuthorImage: announcement.AuthorImage,
		Title:       announcement.Title,
		Description: announcement.Description,
		PostTime:    announcement.PostTime,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create announcement: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	*announcement = *doc.toEntity()
	return nil
}

func (r *announcementRepository) List(ctx context.Context, page listing.Page) ([]*entity.Announcement, error) {
	opts := pageOptions(page.Skip(), page.Limit()).
		SetSort(bson.D{{Key: "post_time", Value: -1}, {Key: "_id", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}

	var docs []announcementDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode announcements: %w", err)
	}

	announcements := make([]*entity.Announcement, len(docs))
	for i := range docs {
		announcements[i] = docs[i].toEntity()
	}
	return announcements, nil
}

func (r *announcementRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count announcements: %w", err)
	}
	return count, nil
}

type paymentRepository struct {
	coll *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) repo.PaymentRepository {
	return &paymentRepository{coll: db.Collection(paymentsCollection)}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	doc := paymentDocument{
		Email:         payment.Email,
		Name:          payment.Name,
		Price:         payment.Price,
		AmountMinor:   payment.AmountMinor,
		Currency:      payment.Currency,
		TransactionID: payment.TransactionID,
		Date:          payment.Date,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	*payment = *doc.toEntity()
	return nil
}

func (r *paymentRepository) ListByEmail(ctx context.Context, email string) ([]*entity.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	var docs []paymentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}

	payments := make([]*entity.Payment, len(docs))
	for i := range docs {
		payments[i] = docs[i].toEntity()
	}
	return payments, nil
}
