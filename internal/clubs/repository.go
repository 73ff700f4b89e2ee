package clubs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface for club operations
type Repository interface {
	Create(ctx context.Context, club *Club) error
	GetByID(ctx context.Context, id uuid.UUID) (*Club, error)
	GetAll(ctx context.Context, query ClubListQuery) ([]Club, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Club, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new club repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, club *Club) error {
	return r.db.WithContext(ctx).Create(club).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Club, error) {
	var club Club
	err := r.db.WithContext(ctx).First(&club, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &club, nil
}

func (r *repository) GetAll(ctx context.Context, query ClubListQuery) ([]Club, int64, error) {
	var clubsList []Club
	var total int64

	q := r.db.WithContext(ctx).Model(&Club{})

	if query.Search != "" {
		searchPattern := fmt.Sprintf("%%%s%%", query.Search)
		q = q.Where("name ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}

	if query.City != "" {
		q = q.Where("city ILIKE ?", query.City)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	sortOrder := query.SortOrder
	if sortOrder == "" {
		sortOrder = "desc"
	}
	q = q.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	offset := (query.Page - 1) * query.Limit
	if err := q.Offset(offset).Limit(query.Limit).Find(&clubsList).Error; err != nil {
		return nil, 0, err
	}

	return clubsList, total, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Club, error) {
	if err := r.db.WithContext(ctx).Model(&Club{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Club{}, "id = ?", id).Error
}
