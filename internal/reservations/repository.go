package reservations

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	GetByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]Reservation, int64, error)
	ListBookedSlotIDs(ctx context.Context, courtID uuid.UUID, date string) ([]uuid.UUID, error)
	Create(ctx context.Context, reservation *Reservation) error
	Cancel(ctx context.Context, id uuid.UUID, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	var reservation Reservation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *repository) GetByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]Reservation, int64, error) {
	var reservationsList []Reservation
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&Reservation{}).Where("user_id = ?", userID)

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("date DESC, created_at DESC").Offset(offset).Limit(limit).Find(&reservationsList).Error
	if err != nil {
		return nil, 0, err
	}

	return reservationsList, totalCount, nil
}

// ListBookedSlotIDs returns the slot ids of CONFIRMED reservations for one
// court+date. Cancelled rows free their occurrence and are excluded.
func (r *repository) ListBookedSlotIDs(ctx context.Context, courtID uuid.UUID, date string) ([]uuid.UUID, error) {
	var slotIDs []uuid.UUID
	err := r.db.WithContext(ctx).Model(&Reservation{}).
		Where("court_id = ? AND date = ? AND status = ?", courtID, date, StatusConfirmed).
		Pluck("slot_id", &slotIDs).Error
	if err != nil {
		return nil, err
	}
	return slotIDs, nil
}

func (r *repository) Create(ctx context.Context, reservation *Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *repository) Cancel(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&Reservation{}).
		Where("id = ? AND status = ?", id, StatusConfirmed).
		Updates(map[string]interface{}{
			"status":       StatusCancelled,
			"cancelled_at": at,
			"updated_at":   at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
