package persistent

import (
	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Image:     m.Image,
		Role:      entity.Role(m.Role),
		Status:    entity.Status(m.Status),
		Warning:   m.Warning,
		CreatedAt: m.CreatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Image:     e.Image,
		Role:      string(e.Role),
		Status:    string(e.Status),
		Warning:   e.Warning,
		CreatedAt: e.CreatedAt,
	}
}

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	post := &entity.Post{
		ID:          m.ID,
		AuthorName:  m.AuthorName,
		AuthorEmail: m.AuthorEmail,
		AuthorImage: m.AuthorImage,
		Title:       m.Title,
		Description: m.Description,
		Tag:         m.Tag,
		PostTime:    m.PostTime,
		Upvote:      m.Upvote,
		Downvote:    m.Downvote,
	}
	return post.Derive()
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		ID:          e.ID,
		AuthorName:  e.AuthorName,
		AuthorEmail: e.AuthorEmail,
		AuthorImage: e.AuthorImage,
		Title:       e.Title,
		Description: e.Description,
		Tag:         e.Tag,
		PostTime:    e.PostTime,
		Upvote:      e.Upvote,
		Downvote:    e.Downvote,
	}
}

func ToCommentEntity(m *model.CommentModel) *entity.Comment {
	if m == nil {
		return nil
	}

	return &entity.Comment{
		ID:             m.ID,
		PostID:         m.PostID,
		PostTitle:      m.PostTitle,
		CommenterName:  m.CommenterName,
		CommenterEmail: m.CommenterEmail,
		CommenterImage: m.CommenterImage,
		Comment:        m.Comment,
		Feedback:       m.Feedback,
		PostTime:       m.PostTime,
	}
}

func ToCommentModel(e *entity.Comment) *model.CommentModel {
	if e == nil {
		return nil
	}

	return &model.CommentModel{
		ID:             e.ID,
		PostID:         e.PostID,
		PostTitle:      e.PostTitle,
		CommenterName:  e.CommenterName,
		CommenterEmail: e.CommenterEmail,
		CommenterImage: e.CommenterImage,
		Comment:        e.Comment,
		Feedback:       e.Feedback,
		PostTime:       e.PostTime,
	}
}

func ToTagEntity(m *model.TagModel) *entity.Tag {
	return &entity.Tag{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt}
}

func ToAnnouncementEntity(m *model.AnnouncementModel) *entity.Announcement {
	return &entity.Announcement{
		ID:          m.ID,
		AuthorName:  m.AuthorName,
		AuthorEmail: m.AuthorEmail,
		AuthorImage: m.AuthorImage,
		Title:       m.Title,
		Description: m.Description,
		PostTime:    m.PostTime,
	}
}

func ToAnnouncementModel(e *entity.Announcement) *model.AnnouncementModel {
	return &model.AnnouncementModel{
		ID:          e.ID,
		AuthorName:  e.AuthorName,
		AuthorEmail: e.AuthorEmail,
		AuthorImage: e.AuthorImage,
		Title:       e.Title,
		Description: e.Description,
		PostTime:    e.PostTime,
	}
}

func ToPaymentEntity(m *model.PaymentModel) *entity.Payment {
	return &entity.Payment{
		ID:            m.ID,
		Email:         m.Email,
		Name:          m.Name,
		Price:         m.Price,
		AmountMinor:   m.AmountMinor,
		Currency:      m.Currency,
		TransactionID: m.TransactionID,
		Date:          m.Date,
	}
}

func ToPaymentModel(e *entity.Payment) *model.PaymentModel {
	return &model.PaymentModel{
		ID:            e.ID,
		Email:         e.Email,
		Name:          e.Name,
		Price:         e.Price,
		AmountMinor:   e.AmountMinor,
		Currency:      e.Currency,
		TransactionID: e.TransactionID,
		Date:          e.Date,
	}
}
