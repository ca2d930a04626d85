package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedBy scopes every query to the requesting user. Combined with ByID it
// makes notes of other users indistinguishable from missing ones.
type OwnedBy struct {
	UserID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type IsFavorite struct{}

func (s IsFavorite) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_favorite = ?", true)
}
