package document

import (
	"time"

	"nomadnest/services/forum/internal/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Image     string             `bson:"image,omitempty"`
	Role      string             `bson:"role"`
	Status    string             `bson:"status"`
	Warning   string             `bson:"warning"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d *userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Image:     d.Image,
		Role:      entity.Role(d.Role),
		Status:    entity.Status(d.Status),
		Warning:   d.Warning,
		CreatedAt: d.CreatedAt,
	}
}

type postDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	AuthorName  string             `bson:"author_name"`
	AuthorEmail string             `bson:"author_email"`
	AuthorImage string             `bson:"author_image,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Tag         string             `bson:"tag"`
	PostTime    time.Time          `bson:"post_time"`
	Upvote      int64              `bson:"upvote"`
	Downvote    int64              `bson:"downvote"`

	// Only present on aggregation output.
	VoteDifference int64 `bson:"voteDifference,omitempty"`
}

func newPostDocument(p *entity.Post) *postDocument {
	return &postDocument{
		AuthorName:  p.AuthorName,
		AuthorEmail: p.AuthorEmail,
		AuthorImage: p.AuthorImage,
		Title:       p.Title,
		Description: p.Description,
		Tag:         p.Tag,
		PostTime:    p.PostTime,
		Upvote:      p.Upvote,
		Downvote:    p.Downvote,
	}
}

func (d *postDocument) toEntity() *entity.Post {
	post := &entity.Post{
		ID:          d.ID.Hex(),
		AuthorName:  d.AuthorName,
		AuthorEmail: d.AuthorEmail,
		AuthorImage: d.AuthorImage,
		Title:       d.Title,
		Description: d.Description,
		Tag:         d.Tag,
		PostTime:    d.PostTime,
		Upvote:      d.Upvote,
		Downvote:    d.Downvote,
	}
	return post.Derive()
}

type commentDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	PostID         string             `bson:"post_id"`
	PostTitle      string             `bson:"post_title,omitempty"`
	CommenterName  string             `bson:"commenter_name"`
	CommenterEmail string             `bson:"commenter_email"`
	CommenterImage string             `bson:"commenter_image,omitempty"`
	Comment        string             `bson:"comment"`
	Feedback       *string            `bson:"feedback,omitempty"`
	PostTime       time.Time          `bson:"post_time"`
}

func newCommentDocument(c *entity.Comment) *commentDocument {
	return &commentDocument{
		PostID:         c.PostID,
		PostTitle:      c.PostTitle,
		CommenterName:  c.CommenterName,
		CommenterEmail: c.CommenterEmail,
		CommenterImage: c.CommenterImage,
		Comment:        c.Comment,
		Feedback:       c.Feedback,
		PostTime:       c.PostTime,
	}
}

func (d *commentDocument) toEntity() *entity.Comment {
	return &entity.Comment{
		ID:             d.ID.Hex(),
		PostID:         d.PostID,
		PostTitle:      d.PostTitle,
		CommenterName:  d.CommenterName,
		CommenterEmail: d.CommenterEmail,
		CommenterImage: d.CommenterImage,
		Comment:        d.Comment,
		Feedback:       d.Feedback,
		PostTime:       d.PostTime,
	}
}

type tagDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	CreatedAt time.Time          `bson:"created_at"`
}

type announcementDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	AuthorName  string             `bson:"author_name"`
	AuthorEmail string             `bson:"author_email"`
	AuthorImage string             `bson:"author_image,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	PostTime    time.Time          `bson:"post_time"`
}

func (d *announcementDocument) toEntity() *entity.Announcement {
	return &entity.Announcement{
		ID:          d.ID.Hex(),
		AuthorName:  d.AuthorName,
		AuthorEmail: d.AuthorEmail,
		AuthorImage: d.AuthorImage,
		Title:       d.Title,
		Description: d.Description,
		PostTime:    d.PostTime,
	}
}

type paymentDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Email         string             `bson:"email"`
	Name          string             `bson:"name,omitempty"`
	Price         float64            `bson:"price"`
	AmountMinor   int64              `bson:"amount_minor"`
	Currency      string             `bson:"currency"`
	TransactionID string             `bson:"transactionId"`
	Date          time.Time          `bson:"date"`
}

func (d *paymentDocument) toEntity() *entity.Payment {
	return &entity.Payment{
		ID:            d.ID.Hex(),
		Email:         d.Email,
		Name:          d.Name,
		Price:         d.Price,
		AmountMinor:   d.AmountMinor,
		Currency:      d.Currency,
		TransactionID: d.TransactionID,
		Date:          d.Date,
	}
}
