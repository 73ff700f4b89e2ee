package reviews

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"padelhub/internal/shared/constants"
	"padelhub/pkg/cache"
	"padelhub/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrReviewNotFound is returned when no review exists for the requested id.
	ErrReviewNotFound = errors.New("review not found")
	// ErrAlreadyReviewed is returned when a player reviews the same club twice.
	ErrAlreadyReviewed = errors.New("you have already reviewed this club")
	// ErrNotReviewAuthor is returned when a player edits someone else's review.
	ErrNotReviewAuthor = errors.New("review belongs to another user")
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	GetReviewsByClub(ctx context.Context, clubID uuid.UUID, page, limit int) (*PaginatedReviews, error)
	GetClubRating(ctx context.Context, clubID uuid.UUID) (average float64, count int64, err error)
	CreateReview(ctx context.Context, userID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error)
	UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, req UpdateReviewRequest) (*ReviewResponse, error)
	DeleteReview(ctx context.Context, userID, reviewID uuid.UUID, isAdmin bool) error
}

type service struct {
	repo         Repository
	cacheService cache.Service
	log          *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) getCache(ctx context.Context, key string, dest interface{}) error {
	if s.cacheService == nil {
		return cache.ErrCacheMiss
	}
	return s.cacheService.Get(ctx, key, dest)
}

func (s *service) setCache(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Set(ctx, key, value, ttl); err != nil {
		s.log.WarnContext(ctx, "failed to cache review data", "key", key, "error", err)
	}
}

func (s *service) invalidateReviewCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_REVIEWS_ALL); err != nil {
		s.log.WarnContext(ctx, "failed to invalidate review cache", "error", err)
	}
	// Club list/detail pages embed the aggregate rating
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_CLUBS_ALL); err != nil {
		s.log.WarnContext(ctx, "failed to invalidate club cache", "error", err)
	}
}

func (s *service) GetReviewsByClub(ctx context.Context, clubID uuid.UUID, page, limit int) (*PaginatedReviews, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	cacheKey := constants.BuildReviewsByClubKey(clubID.String(), page)

	var cached PaginatedReviews
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	reviewsList, totalCount, err := s.repo.GetByClubID(ctx, clubID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	responses := make([]ReviewResponse, len(reviewsList))
	for i, review := range reviewsList {
		responses[i] = review.ToResponse()
	}

	result := &PaginatedReviews{
		Reviews:    responses,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(limit))),
	}

	s.setCache(ctx, cacheKey, result, constants.TTL_REVIEWS_BY_CLUB)

	return result, nil
}

// GetClubRating returns the club's average rating and review count. Used by
// the clubs service to decorate club responses.
func (s *service) GetClubRating(ctx context.Context, clubID uuid.UUID) (float64, int64, error) {
	cacheKey := constants.BuildClubRatingKey(clubID.String())

	var cached ClubRatingResponse
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return cached.AverageRating, cached.ReviewCount, nil
	}

	average, count, err := s.repo.GetClubAggregate(ctx, clubID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get club rating: %w", err)
	}

	// One decimal place is all the UI shows
	average = math.Round(average*10) / 10

	s.setCache(ctx, cacheKey, ClubRatingResponse{
		ClubID:        clubID.String(),
		AverageRating: average,
		ReviewCount:   count,
	}, constants.TTL_CLUB_RATING)

	return average, count, nil
}

func (s *service) CreateReview(ctx context.Context, userID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	clubID, err := uuid.Parse(req.ClubID)
	if err != nil {
		return nil, fmt.Errorf("invalid club id: %w", err)
	}

	if existing, err := s.repo.GetByUserAndClub(ctx, userID, clubID); err == nil && existing != nil {
		return nil, ErrAlreadyReviewed
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}

	review := &Review{
		ClubID:     clubID,
		UserID:     userID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		AuthorName: req.AuthorName,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.invalidateReviewCache(ctx)

	response := review.ToResponse()
	return &response, nil
}

func (s *service) UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, req UpdateReviewRequest) (*ReviewResponse, error) {
	existing, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	if existing.UserID != userID {
		return nil, ErrNotReviewAuthor
	}

	updates := make(map[string]interface{})

	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.Comment != nil {
		updates["comment"] = *req.Comment
	}
	updates["updated_at"] = time.Now()

	review, err := s.repo.Update(ctx, reviewID, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	s.invalidateReviewCache(ctx)

	response := review.ToResponse()
	return &response, nil
}

func (s *service) DeleteReview(ctx context.Context, userID, reviewID uuid.UUID, isAdmin bool) error {
	existing, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to get review: %w", err)
	}

	if !isAdmin && existing.UserID != userID {
		return ErrNotReviewAuthor
	}

	if err := s.repo.Delete(ctx, reviewID); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.invalidateReviewCache(ctx)
	return nil
}
