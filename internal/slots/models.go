package slots

import (
	"time"

	"github.com/google/uuid"
)

// Slot is one recurring sellable interval on a court. The catalog repeats
// every day; a slot has no date of its own until a reservation pins it to one.
type Slot struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	CourtID uuid.UUID `json:"court_id" gorm:"type:uuid;not null;index"`

	// FromTime/ToTime are wall-clock "HH:MM" strings in the club's local zone.
	FromTime string  `json:"from" gorm:"column:from_time;size:5;not null"`
	ToTime   string  `json:"to" gorm:"column:to_time;size:5;not null"`
	Price    float64 `json:"price" gorm:"not null"`

	// Active=false retires a slot from sale without breaking historical
	// reservations that reference it.
	Active bool `json:"active" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Slot) TableName() string {
	return "slots"
}

func (s *Slot) ToResponse() SlotResponse {
	return SlotResponse{
		ID:      s.ID.String(),
		CourtID: s.CourtID.String(),
		From:    s.FromTime,
		To:      s.ToTime,
		Label:   s.FromTime + " – " + s.ToTime,
		Price:   s.Price,
		Active:  s.Active,
	}
}
