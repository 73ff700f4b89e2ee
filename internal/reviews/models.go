package reviews

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ClubID uuid.UUID `json:"club_id" gorm:"type:uuid;not null;index"`
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`

	Rating  int    `json:"rating" gorm:"not null"` // 1..5
	Comment string `json:"comment" gorm:"type:text"`

	// Denormalized display name; player identity lives in the external
	// identity provider, not in this database.
	AuthorName string `json:"author_name" gorm:"size:255"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

func (r *Review) ToResponse() ReviewResponse {
	return ReviewResponse{
		ID:         r.ID.String(),
		ClubID:     r.ClubID.String(),
		UserID:     r.UserID.String(),
		Rating:     r.Rating,
		Comment:    r.Comment,
		AuthorName: r.AuthorName,
		CreatedAt:  r.CreatedAt,
	}
}
