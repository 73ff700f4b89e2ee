package clubs

import (
	"time"

	"github.com/google/uuid"
)

type Club struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text"`
	Address     string    `json:"address" gorm:"size:500"`
	City        string    `json:"city" gorm:"size:100;index"`
	// Latitude/Longitude key client-side weather lookups only; nothing in this
	// service consumes them.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	LogoURL   string  `json:"logo_url" gorm:"size:500"`
	CoverURL  string  `json:"cover_url" gorm:"size:500"`

	// Free-form facility tags ("parking", "showers", "bar"), stored as JSON.
	Amenities []string `json:"amenities" gorm:"serializer:json"`

	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Club) TableName() string {
	return "clubs"
}

// ToResponse converts a Club to its API shape.
// Rating fields are populated separately by the service layer.
func (c *Club) ToResponse() ClubResponse {
	return ClubResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Address:     c.Address,
		City:        c.City,
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
		LogoURL:     c.LogoURL,
		CoverURL:    c.CoverURL,
		Amenities:   c.Amenities,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
