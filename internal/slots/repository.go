package slots

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Slot, error)
	GetByCourtID(ctx context.Context, courtID uuid.UUID, activeOnly bool) ([]Slot, error)
	Create(ctx context.Context, slot *Slot) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Slot, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Slot, error) {
	var slot Slot
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *repository) GetByCourtID(ctx context.Context, courtID uuid.UUID, activeOnly bool) ([]Slot, error) {
	var slotsList []Slot
	query := r.db.WithContext(ctx).Where("court_id = ?", courtID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Order("from_time ASC").Find(&slotsList).Error
	if err != nil {
		return nil, err
	}
	return slotsList, nil
}

func (r *repository) Create(ctx context.Context, slot *Slot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Slot, error) {
	err := r.db.WithContext(ctx).Model(&Slot{}).Where("id = ?", id).Updates(updates).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).Model(&Slot{}).Where("id = ?", id).Update("active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
