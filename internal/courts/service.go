package courts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"padelhub/internal/shared/constants"
	"padelhub/pkg/cache"
	"padelhub/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrCourtNotFound is returned when no court exists for the requested id.
var ErrCourtNotFound = errors.New("court not found")

type Service interface {
	SetCacheService(cacheService cache.Service)

	GetCourtByID(ctx context.Context, id uuid.UUID) (*CourtResponse, error)
	GetCourtsByClub(ctx context.Context, clubID uuid.UUID) ([]CourtResponse, error)
	CreateCourt(ctx context.Context, req CreateCourtRequest) (*CourtResponse, error)
	UpdateCourt(ctx context.Context, id uuid.UUID, req UpdateCourtRequest) (*CourtResponse, error)
	DeleteCourt(ctx context.Context, id uuid.UUID) error
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
		s.log.WarnContext(ctx, "failed to cache court data", "key", key, "error", err)
	}
}

func (s *service) invalidateCourtCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_COURTS_ALL); err != nil {
		s.log.WarnContext(ctx, "failed to invalidate court cache", "error", err)
	}
}

func (s *service) GetCourtByID(ctx context.Context, id uuid.UUID) (*CourtResponse, error) {
	cacheKey := constants.BuildCourtDetailKey(id.String())

	var cached CourtResponse
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	court, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, fmt.Errorf("failed to get court: %w", err)
	}

	response := court.ToResponse()
	s.setCache(ctx, cacheKey, response, constants.TTL_COURT_DETAIL)
	return &response, nil
}

// GetCourtsByClub lists a club's courts in display order. A club without
// courts yields an empty list, never an error.
func (s *service) GetCourtsByClub(ctx context.Context, clubID uuid.UUID) ([]CourtResponse, error) {
	cacheKey := constants.BuildCourtsByClubKey(clubID.String())

	var cached []CourtResponse
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	courtsList, err := s.repo.GetByClubID(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to get courts: %w", err)
	}

	responses := make([]CourtResponse, len(courtsList))
	for i, court := range courtsList {
		responses[i] = court.ToResponse()
	}

	s.setCache(ctx, cacheKey, responses, constants.TTL_COURTS_BY_CLUB)
	return responses, nil
}

func (s *service) CreateCourt(ctx context.Context, req CreateCourtRequest) (*CourtResponse, error) {
	clubID, err := uuid.Parse(req.ClubID)
	if err != nil {
		return nil, fmt.Errorf("invalid club ID: %w", err)
	}

	courtType := CourtType(req.Type)
	if req.Type == "" {
		courtType = CourtTypeOutdoor
	}
	if !courtType.IsValid() {
		return nil, errors.New("invalid court type")
	}

	maxPlayers := req.MaxPlayers
	if maxPlayers == 0 {
		maxPlayers = 4
	}

	court := &Court{
		ClubID:     clubID,
		Name:       req.Name,
		Type:       courtType,
		Surface:    req.Surface,
		MaxPlayers: maxPlayers,
		Position:   req.Position,
		ImageURL:   req.ImageURL,
	}

	if err := s.repo.Create(ctx, court); err != nil {
		return nil, fmt.Errorf("failed to create court: %w", err)
	}

	s.invalidateCourtCache(ctx)

	response := court.ToResponse()
	return &response, nil
}

func (s *service) UpdateCourt(ctx context.Context, id uuid.UUID, req UpdateCourtRequest) (*CourtResponse, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, fmt.Errorf("failed to get court: %w", err)
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Type != nil {
		courtType := CourtType(*req.Type)
		if !courtType.IsValid() {
			return nil, errors.New("invalid court type")
		}
		updates["type"] = courtType
	}
	if req.Surface != nil {
		updates["surface"] = *req.Surface
	}
	if req.MaxPlayers != nil {
		updates["max_players"] = *req.MaxPlayers
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	updates["updated_at"] = time.Now()

	court, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update court: %w", err)
	}

	s.invalidateCourtCache(ctx)

	response := court.ToResponse()
	return &response, nil
}

func (s *service) DeleteCourt(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourtNotFound
		}
		return fmt.Errorf("failed to get court: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete court: %w", err)
	}

	s.invalidateCourtCache(ctx)
	return nil
}
