package courts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, court *Court) error
	GetByID(ctx context.Context, id uuid.UUID) (*Court, error)
	GetByClubID(ctx context.Context, clubID uuid.UUID) ([]Court, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Court, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, court *Court) error {
	return r.db.WithContext(ctx).Create(court).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Court, error) {
	var court Court
	err := r.db.WithContext(ctx).First(&court, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &court, nil
}

func (r *repository) GetByClubID(ctx context.Context, clubID uuid.UUID) ([]Court, error) {
	var courtsList []Court
	err := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Order("position ASC, name ASC").
		Find(&courtsList).Error
	return courtsList, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Court, error) {
	if err := r.db.WithContext(ctx).Model(&Court{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Court{}, "id = ?", id).Error
}
