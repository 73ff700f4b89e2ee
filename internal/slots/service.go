package slots

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

var (
	// ErrSlotNotFound is returned when no slot exists for the requested id.
	ErrSlotNotFound = errors.New("slot not found")
	// ErrInvalidInterval is returned when a slot's end does not follow its start.
	ErrInvalidInterval = errors.New("slot end time must be after start time")
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	GetSlotByID(ctx context.Context, id uuid.UUID) (*SlotResponse, error)
	GetSlotsByCourt(ctx context.Context, courtID uuid.UUID) (*SlotListResponse, error)
	GetSlotCatalog(ctx context.Context, courtID uuid.UUID) (*SlotListResponse, error)
	CreateSlot(ctx context.Context, req CreateSlotRequest) (*SlotResponse, error)
	UpdateSlot(ctx context.Context, id uuid.UUID, req UpdateSlotRequest) (*SlotResponse, error)
	DeactivateSlot(ctx context.Context, id uuid.UUID) error
	ActivateSlot(ctx context.Context, id uuid.UUID) error
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
		s.log.WarnContext(ctx, "failed to cache slot data", "key", key, "error", err)
	}
}

func (s *service) invalidateSlotCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_SLOTS_ALL); err != nil {
		s.log.WarnContext(ctx, "failed to invalidate slot cache", "error", err)
	}
}

// validateInterval checks the "HH:MM" pair orders correctly. Format itself is
// enforced at the binding layer.
func validateInterval(from, to string) error {
	start, err := time.Parse("15:04", from)
	if err != nil {
		return fmt.Errorf("invalid start time: %w", err)
	}
	end, err := time.Parse("15:04", to)
	if err != nil {
		return fmt.Errorf("invalid end time: %w", err)
	}
	if !end.After(start) {
		return ErrInvalidInterval
	}
	return nil
}

func (s *service) GetSlotByID(ctx context.Context, id uuid.UUID) (*SlotResponse, error) {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}

	response := slot.ToResponse()
	return &response, nil
}

// GetSlotsByCourt returns the active slot catalog for a court, ordered by
// start time. A court without slots yields an empty list, never an error.
func (s *service) GetSlotsByCourt(ctx context.Context, courtID uuid.UUID) (*SlotListResponse, error) {
	return s.listByCourt(ctx, courtID, constants.BuildSlotsByCourtKey(courtID.String()), true)
}

// GetSlotCatalog returns every slot on a court including deactivated ones.
// The booking page needs the full set so a retired slot still renders,
// just as unselectable.
func (s *service) GetSlotCatalog(ctx context.Context, courtID uuid.UUID) (*SlotListResponse, error) {
	return s.listByCourt(ctx, courtID, constants.BuildSlotCatalogKey(courtID.String()), false)
}

func (s *service) listByCourt(ctx context.Context, courtID uuid.UUID, cacheKey string, activeOnly bool) (*SlotListResponse, error) {
	var cached SlotListResponse
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	slotsList, err := s.repo.GetByCourtID(ctx, courtID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get slots: %w", err)
	}

	responses := make([]SlotResponse, len(slotsList))
	for i, slot := range slotsList {
		responses[i] = slot.ToResponse()
	}

	result := &SlotListResponse{
		CourtID: courtID.String(),
		Slots:   responses,
		Total:   len(responses),
	}

	s.setCache(ctx, cacheKey, result, constants.TTL_SLOTS_BY_COURT)

	return result, nil
}

func (s *service) CreateSlot(ctx context.Context, req CreateSlotRequest) (*SlotResponse, error) {
	if err := validateInterval(req.From, req.To); err != nil {
		return nil, err
	}

	courtID, err := uuid.Parse(req.CourtID)
	if err != nil {
		return nil, fmt.Errorf("invalid court id: %w", err)
	}

	slot := &Slot{
		CourtID:  courtID,
		FromTime: req.From,
		ToTime:   req.To,
		Price:    req.Price,
		Active:   true,
	}

	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("failed to create slot: %w", err)
	}

	s.invalidateSlotCache(ctx)

	response := slot.ToResponse()
	return &response, nil
}

func (s *service) UpdateSlot(ctx context.Context, id uuid.UUID, req UpdateSlotRequest) (*SlotResponse, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}

	from := existing.FromTime
	to := existing.ToTime
	if req.From != nil {
		from = *req.From
	}
	if req.To != nil {
		to = *req.To
	}
	if err := validateInterval(from, to); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.From != nil {
		updates["from_time"] = *req.From
	}
	if req.To != nil {
		updates["to_time"] = *req.To
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	updates["updated_at"] = time.Now()

	slot, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update slot: %w", err)
	}

	s.invalidateSlotCache(ctx)

	response := slot.ToResponse()
	return &response, nil
}

// DeactivateSlot retires a slot from sale. Reservations that already
// reference it stay intact, which is why slots are never hard-deleted.
func (s *service) DeactivateSlot(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSlotNotFound
		}
		return fmt.Errorf("failed to deactivate slot: %w", err)
	}

	s.invalidateSlotCache(ctx)
	return nil
}

func (s *service) ActivateSlot(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SetActive(ctx, id, true); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSlotNotFound
		}
		return fmt.Errorf("failed to activate slot: %w", err)
	}

	s.invalidateSlotCache(ctx)
	return nil
}
