package clubs

import (
	"context"
	"encoding/json"
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

// ErrClubNotFound is returned when no club exists for the requested id.
var ErrClubNotFound = errors.New("club not found")

type Service interface {
	SetReviewService(reviewService ReviewService)
	SetCacheService(cacheService cache.Service)

	GetClubByID(ctx context.Context, id uuid.UUID) (*ClubResponse, error)
	GetAllClubs(ctx context.Context, query ClubListQuery) (*PaginatedClubs, error)
	CreateClub(ctx context.Context, userID uuid.UUID, req CreateClubRequest) (*ClubResponse, error)
	UpdateClub(ctx context.Context, id uuid.UUID, req UpdateClubRequest) (*ClubResponse, error)
	DeleteClub(ctx context.Context, id uuid.UUID) error
}

// ReviewService interface to avoid circular dependencies
type ReviewService interface {
	GetClubRating(ctx context.Context, clubID uuid.UUID) (average float64, count int64, err error)
}

type service struct {
	repo          Repository
	reviewService ReviewService
	cacheService  cache.Service
	log           *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

func (s *service) SetReviewService(reviewService ReviewService) {
	s.reviewService = reviewService
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
		s.log.WarnContext(ctx, "failed to cache club data", "key", key, "error", err)
	}
}

func (s *service) invalidateClubCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_CLUBS_ALL); err != nil {
		s.log.WarnContext(ctx, "failed to invalidate club cache", "error", err)
	}
}

// populateClubRating fills in the aggregate review fields
func (s *service) populateClubRating(ctx context.Context, response *ClubResponse) {
	if s.reviewService == nil {
		return
	}

	clubID, err := uuid.Parse(response.ID)
	if err != nil {
		return
	}

	average, count, err := s.reviewService.GetClubRating(ctx, clubID)
	if err != nil {
		// A missing rating never fails a club page
		return
	}

	response.AverageRating = average
	response.ReviewCount = count
}

func (s *service) GetClubByID(ctx context.Context, id uuid.UUID) (*ClubResponse, error) {
	cacheKey := constants.BuildClubDetailKey(id.String())

	var cached ClubResponse
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	club, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to get club: %w", err)
	}

	response := club.ToResponse()
	s.populateClubRating(ctx, &response)

	s.setCache(ctx, cacheKey, response, constants.TTL_CLUB_DETAIL)

	return &response, nil
}

func (s *service) GetAllClubs(ctx context.Context, query ClubListQuery) (*PaginatedClubs, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	cacheKey := constants.BuildClubListKey(query.Page, query.Limit, query.City)

	// Search results bypass the cache; key space would be unbounded
	if query.Search == "" {
		var cached PaginatedClubs
		if err := s.getCache(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	clubsList, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get clubs: %w", err)
	}

	responses := make([]ClubResponse, len(clubsList))
	for i, club := range clubsList {
		response := club.ToResponse()
		s.populateClubRating(ctx, &response)
		responses[i] = response
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	result := &PaginatedClubs{
		Clubs:      responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}

	if query.Search == "" {
		s.setCache(ctx, cacheKey, result, constants.TTL_CLUBS_LIST)
	}

	return result, nil
}

func (s *service) CreateClub(ctx context.Context, userID uuid.UUID, req CreateClubRequest) (*ClubResponse, error) {
	club := &Club{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		LogoURL:     req.LogoURL,
		CoverURL:    req.CoverURL,
		Amenities:   req.Amenities,
		CreatedBy:   userID,
	}

	if err := s.repo.Create(ctx, club); err != nil {
		return nil, fmt.Errorf("failed to create club: %w", err)
	}

	s.invalidateClubCache(ctx)

	response := club.ToResponse()
	return &response, nil
}

func (s *service) UpdateClub(ctx context.Context, id uuid.UUID, req UpdateClubRequest) (*ClubResponse, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to get club: %w", err)
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.LogoURL != nil {
		updates["logo_url"] = *req.LogoURL
	}
	if req.CoverURL != nil {
		updates["cover_url"] = *req.CoverURL
	}
	if req.Amenities != nil {
		// Map updates skip gorm serializers, so marshal by hand.
		raw, err := json.Marshal(*req.Amenities)
		if err != nil {
			return nil, fmt.Errorf("failed to encode amenities: %w", err)
		}
		updates["amenities"] = string(raw)
	}
	updates["updated_at"] = time.Now()

	club, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update club: %w", err)
	}

	s.invalidateClubCache(ctx)

	response := club.ToResponse()
	s.populateClubRating(ctx, &response)
	return &response, nil
}

func (s *service) DeleteClub(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClubNotFound
		}
		return fmt.Errorf("failed to get club: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete club: %w", err)
	}

	s.invalidateClubCache(ctx)
	return nil
}
