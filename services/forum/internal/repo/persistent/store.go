package persistent

import (
	"context"
	"errors"
	"strings"

	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/repo"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func NewStore(db *gorm.DB) *repo.Store {
	return &repo.Store{
		Users:         NewUserRepository(db),
		Posts:         NewPostRepository(db),
		Comments:      NewCommentRepository(db),
		Tags:          NewTagRepository(db),
		Announcements: NewAnnouncementRepository(db),
		Payments:      NewPaymentRepository(db),
		Close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

// validID guards uuid columns; postgres rejects malformed literals with an error
// instead of simply matching nothing.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term anywhere in the column.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.ErrNotFound
	}
	return err
}
