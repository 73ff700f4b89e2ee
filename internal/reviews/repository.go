package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Review, error)
	GetByClubID(ctx context.Context, clubID uuid.UUID, page, limit int) ([]Review, int64, error)
	GetByUserAndClub(ctx context.Context, userID, clubID uuid.UUID) (*Review, error)
	GetClubAggregate(ctx context.Context, clubID uuid.UUID) (average float64, count int64, err error)
	Create(ctx context.Context, review *Review) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	var review Review
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *repository) GetByClubID(ctx context.Context, clubID uuid.UUID, page, limit int) ([]Review, int64, error) {
	var reviewsList []Review
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&Review{}).Where("club_id = ?", clubID)

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&reviewsList).Error
	if err != nil {
		return nil, 0, err
	}

	return reviewsList, totalCount, nil
}

func (r *repository) GetByUserAndClub(ctx context.Context, userID, clubID uuid.UUID) (*Review, error) {
	var review Review
	err := r.db.WithContext(ctx).Where("user_id = ? AND club_id = ?", userID, clubID).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *repository) GetClubAggregate(ctx context.Context, clubID uuid.UUID) (float64, int64, error) {
	var result struct {
		Average float64
		Count   int64
	}
	err := r.db.WithContext(ctx).Model(&Review{}).
		Select("COALESCE(AVG(rating), 0) as average, COUNT(*) as count").
		Where("club_id = ?", clubID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.Average, result.Count, nil
}

func (r *repository) Create(ctx context.Context, review *Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Review, error) {
	err := r.db.WithContext(ctx).Model(&Review{}).Where("id = ?", id).Updates(updates).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
