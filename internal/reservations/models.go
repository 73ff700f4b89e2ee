package reservations

import (
	"time"

	"github.com/google/uuid"
)

// Reservation pins one slot occurrence (court, date, slot) to a player. Only
// CONFIRMED rows occupy the occurrence; the partial unique index in
// shared/database/constraints.go enforces that at the database level.
type Reservation struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingRef string    `json:"booking_ref" gorm:"size:16;not null;uniqueIndex"`

	UserID  uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	ClubID  uuid.UUID `json:"club_id" gorm:"type:uuid;not null"`
	CourtID uuid.UUID `json:"court_id" gorm:"type:uuid;not null"`
	SlotID  uuid.UUID `json:"slot_id" gorm:"type:uuid;not null"`

	// Date is the local calendar day "YYYY-MM-DD"; the wizard and the booked-
	// occurrence queries are date-granular, so no timestamp is stored.
	Date   string            `json:"date" gorm:"size:10;not null"`
	Status ReservationStatus `json:"status" gorm:"size:20;not null;default:'CONFIRMED'"`

	// Display fields denormalized at booking time so history pages survive
	// later renames and slot catalog edits.
	ClubName  string  `json:"club_name" gorm:"size:255"`
	CourtName string  `json:"court_name" gorm:"size:255"`
	SlotLabel string  `json:"slot_label" gorm:"size:20"`
	Price     float64 `json:"price"`

	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// TableName specifies the table name for GORM
func (Reservation) TableName() string {
	return "reservations"
}

func (r *Reservation) ToResponse() ReservationResponse {
	return ReservationResponse{
		ID:          r.ID.String(),
		BookingRef:  r.BookingRef,
		UserID:      r.UserID.String(),
		ClubID:      r.ClubID.String(),
		CourtID:     r.CourtID.String(),
		SlotID:      r.SlotID.String(),
		Date:        r.Date,
		Status:      string(r.Status),
		ClubName:    r.ClubName,
		CourtName:   r.CourtName,
		SlotLabel:   r.SlotLabel,
		Price:       r.Price,
		CreatedAt:   r.CreatedAt,
		CancelledAt: r.CancelledAt,
	}
}
