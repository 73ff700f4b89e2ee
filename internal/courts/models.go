package courts

import (
	"time"

	"github.com/google/uuid"
)

type CourtType string

const (
	CourtTypeIndoor  CourtType = "INDOOR"
	CourtTypeOutdoor CourtType = "OUTDOOR"
)

func (t CourtType) IsValid() bool {
	switch t {
	case CourtTypeIndoor, CourtTypeOutdoor:
		return true
	}
	return false
}

type Court struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ClubID     uuid.UUID `json:"club_id" gorm:"type:uuid;not null;index"`
	Name       string    `json:"name" gorm:"not null;size:255"`
	Type       CourtType `json:"type" gorm:"type:varchar(20);default:'OUTDOOR'"`
	Surface    string    `json:"surface" gorm:"size:100"`
	MaxPlayers int       `json:"max_players" gorm:"default:4"`
	// Position drives display order within a club; it carries no other meaning.
	Position int    `json:"position" gorm:"default:0"`
	ImageURL string `json:"image_url" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Court) TableName() string {
	return "courts"
}

func (ct *Court) ToResponse() CourtResponse {
	return CourtResponse{
		ID:         ct.ID.String(),
		ClubID:     ct.ClubID.String(),
		Name:       ct.Name,
		Type:       ct.Type,
		Surface:    ct.Surface,
		MaxPlayers: ct.MaxPlayers,
		Position:   ct.Position,
		ImageURL:   ct.ImageURL,
		CreatedAt:  ct.CreatedAt,
		UpdatedAt:  ct.UpdatedAt,
	}
}
