package reservations

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"padelhub/internal/shared/constants"
	"padelhub/internal/slots"
	"padelhub/pkg/cache"
	"padelhub/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrReservationNotFound is returned when no reservation exists for the id.
	ErrReservationNotFound = errors.New("reservation not found")
	// ErrOccurrenceBooked is returned when the (court, date, slot) occurrence
	// is already held by a confirmed reservation.
	ErrOccurrenceBooked = errors.New("slot is already booked for this date")
	// ErrSlotInactive is returned when the requested slot is retired from sale.
	ErrSlotInactive = errors.New("slot is not open for booking")
	// ErrDateOutsideWindow is returned when the date falls outside the rolling
	// booking window.
	ErrDateOutsideWindow = errors.New("date is outside the booking window")
	// ErrNotReservationOwner is returned when a player cancels someone else's
	// reservation.
	ErrNotReservationOwner = errors.New("reservation belongs to another user")
	// ErrAlreadyCancelled is returned on a second cancel of the same reservation.
	ErrAlreadyCancelled = errors.New("reservation is already cancelled")
)

// bookingWindowDays is the last bookable offset from today, inclusive. Must
// match the wizard's calendar window.
const bookingWindowDays = 15

// SlotService is the slice of the slot catalog this package needs.
type SlotService interface {
	GetSlotByID(ctx context.Context, id uuid.UUID) (*slots.SlotResponse, error)
}

// DraftStore clears the wizard draft once its reservation lands.
type DraftStore interface {
	Delete(ctx context.Context, clubID, courtID string) error
}

// ReservationNotification is the event handed to the notification pipeline.
type ReservationNotification struct {
	BookingRef string  `json:"booking_ref"`
	UserID     string  `json:"user_id"`
	UserEmail  string  `json:"user_email"`
	ClubName   string  `json:"club_name"`
	CourtName  string  `json:"court_name"`
	Date       string  `json:"date"`
	SlotLabel  string  `json:"slot_label"`
	Price      float64 `json:"price"`
}

// NotificationService publishes reservation lifecycle events.
type NotificationService interface {
	PublishReservationConfirmed(ctx context.Context, notif ReservationNotification) error
	PublishReservationCancelled(ctx context.Context, notif ReservationNotification) error
}

type Service interface {
	SetCacheService(cacheService cache.Service)
	SetSlotService(slotService SlotService)
	SetDraftStore(draftStore DraftStore)
	SetNotificationService(notificationService NotificationService)

	CreateReservation(ctx context.Context, userID uuid.UUID, userEmail string, req CreateReservationRequest) (*ReservationResponse, error)
	CancelReservation(ctx context.Context, userID, reservationID uuid.UUID, isAdmin bool) error
	GetReservationByID(ctx context.Context, userID, reservationID uuid.UUID, isAdmin bool) (*ReservationResponse, error)
	GetUserReservations(ctx context.Context, userID uuid.UUID, page, limit int) (*PaginatedReservations, error)
	ListBookedSlotIDs(ctx context.Context, courtID uuid.UUID, date string) ([]string, error)
}

type service struct {
	repo                Repository
	cacheService        cache.Service
	slotService         SlotService
	draftStore          DraftStore
	notificationService NotificationService
	log                 *logger.Logger

	// now is swappable for window tests.
	now func() time.Time
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
		now:  time.Now,
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) SetSlotService(slotService SlotService) {
	s.slotService = slotService
}

func (s *service) SetDraftStore(draftStore DraftStore) {
	s.draftStore = draftStore
}

func (s *service) SetNotificationService(notificationService NotificationService) {
	s.notificationService = notificationService
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
		s.log.WarnContext(ctx, "failed to cache reservation data", "key", key, "error", err)
	}
}

func (s *service) dropCache(ctx context.Context, keys ...string) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, keys...); err != nil {
		s.log.WarnContext(ctx, "failed to drop reservation cache", "keys", keys, "error", err)
	}
}

func (s *service) dropCachePattern(ctx context.Context, pattern string) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, pattern); err != nil {
		s.log.WarnContext(ctx, "failed to drop reservation cache", "pattern", pattern, "error", err)
	}
}

// validateWindow enforces the rolling [today, today+15] booking window on the
// server side, matching the wizard's calendar.
func (s *service) validateWindow(date string) error {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	last := today.AddDate(0, 0, bookingWindowDays)
	if day.Before(today) || day.After(last) {
		return ErrDateOutsideWindow
	}
	return nil
}

func newBookingRef() string {
	return "PB-" + strings.ToUpper(uuid.NewString()[:8])
}

func (s *service) CreateReservation(ctx context.Context, userID uuid.UUID, userEmail string, req CreateReservationRequest) (*ReservationResponse, error) {
	if err := s.validateWindow(req.Date); err != nil {
		return nil, err
	}

	clubID, err := uuid.Parse(req.ClubID)
	if err != nil {
		return nil, fmt.Errorf("invalid club id: %w", err)
	}
	courtID, err := uuid.Parse(req.CourtID)
	if err != nil {
		return nil, fmt.Errorf("invalid court id: %w", err)
	}
	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		return nil, fmt.Errorf("invalid slot id: %w", err)
	}

	// Price and label come from the catalog, never from the client.
	slot, err := s.slotService.GetSlotByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slots.ErrSlotNotFound) {
			return nil, slots.ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to load slot: %w", err)
	}
	if !slot.Active {
		return nil, ErrSlotInactive
	}
	if slot.CourtID != req.CourtID {
		return nil, fmt.Errorf("slot does not belong to court %s", req.CourtID)
	}

	reservation := &Reservation{
		BookingRef: newBookingRef(),
		UserID:     userID,
		ClubID:     clubID,
		CourtID:    courtID,
		SlotID:     slotID,
		Date:       req.Date,
		Status:     StatusConfirmed,
		ClubName:   req.ClubName,
		CourtName:  req.CourtName,
		SlotLabel:  slot.Label,
		Price:      slot.Price,
	}

	// The partial unique index on (court_id, date, slot_id) WHERE
	// status='CONFIRMED' is the authoritative double-booking guard; the
	// wizard's availability view is advisory only.
	if err := s.repo.Create(ctx, reservation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrOccurrenceBooked
		}
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	s.dropCache(ctx, constants.BuildBookedOccurrencesKey(req.CourtID, req.Date))
	s.dropCachePattern(ctx, constants.BuildUserReservationsPattern(userID.String()))

	// A successful reservation retires the wizard draft for its scope.
	if s.draftStore != nil {
		if err := s.draftStore.Delete(ctx, req.ClubID, req.CourtID); err != nil {
			s.log.WarnContext(ctx, "failed to clear wizard draft", "club_id", req.ClubID, "court_id", req.CourtID, "error", err)
		}
	}

	s.publish(ctx, reservation, userEmail, true)

	s.log.LogReservationCreated(ctx, reservation.BookingRef, req.CourtID, req.Date, req.SlotID)

	response := reservation.ToResponse()
	return &response, nil
}

func (s *service) publish(ctx context.Context, r *Reservation, userEmail string, confirmed bool) {
	if s.notificationService == nil {
		return
	}
	notif := ReservationNotification{
		BookingRef: r.BookingRef,
		UserID:     r.UserID.String(),
		UserEmail:  userEmail,
		ClubName:   r.ClubName,
		CourtName:  r.CourtName,
		Date:       r.Date,
		SlotLabel:  r.SlotLabel,
		Price:      r.Price,
	}
	var err error
	if confirmed {
		err = s.notificationService.PublishReservationConfirmed(ctx, notif)
	} else {
		err = s.notificationService.PublishReservationCancelled(ctx, notif)
	}
	if err != nil {
		// Notifications are best-effort; the reservation stands either way
		s.log.WarnContext(ctx, "failed to publish reservation notification", "booking_ref", r.BookingRef, "error", err)
	}
}

func (s *service) CancelReservation(ctx context.Context, userID, reservationID uuid.UUID, isAdmin bool) error {
	reservation, err := s.repo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReservationNotFound
		}
		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if !isAdmin && reservation.UserID != userID {
		return ErrNotReservationOwner
	}
	if reservation.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}

	now := s.now()
	if err := s.repo.Cancel(ctx, reservationID, now); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Raced with another cancel
			return ErrAlreadyCancelled
		}
		return fmt.Errorf("failed to cancel reservation: %w", err)
	}

	s.dropCache(ctx, constants.BuildBookedOccurrencesKey(reservation.CourtID.String(), reservation.Date))
	s.dropCachePattern(ctx, constants.BuildUserReservationsPattern(reservation.UserID.String()))

	s.publish(ctx, reservation, "", false)

	s.log.LogReservationCancelled(ctx, reservation.BookingRef, reservation.CourtID.String())

	return nil
}

func (s *service) GetReservationByID(ctx context.Context, userID, reservationID uuid.UUID, isAdmin bool) (*ReservationResponse, error) {
	reservation, err := s.repo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}

	if !isAdmin && reservation.UserID != userID {
		return nil, ErrNotReservationOwner
	}

	response := reservation.ToResponse()
	return &response, nil
}

func (s *service) GetUserReservations(ctx context.Context, userID uuid.UUID, page, limit int) (*PaginatedReservations, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	cacheKey := constants.BuildUserReservationsKey(userID.String(), page)

	var cached PaginatedReservations
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	reservationsList, totalCount, err := s.repo.GetByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservations: %w", err)
	}

	responses := make([]ReservationResponse, len(reservationsList))
	for i, reservation := range reservationsList {
		responses[i] = reservation.ToResponse()
	}

	result := &PaginatedReservations{
		Reservations: responses,
		TotalCount:   totalCount,
		Page:         page,
		Limit:        limit,
		TotalPages:   int(math.Ceil(float64(totalCount) / float64(limit))),
	}

	s.setCache(ctx, cacheKey, result, constants.TTL_USER_RESERVATIONS)

	return result, nil
}

// ListBookedSlotIDs feeds the wizard's availability view. Short TTL: bookings
// land at any moment and the wizard re-checks on every date change anyway.
func (s *service) ListBookedSlotIDs(ctx context.Context, courtID uuid.UUID, date string) ([]string, error) {
	cacheKey := constants.BuildBookedOccurrencesKey(courtID.String(), date)

	var cached BookedOccurrences
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return cached.SlotIDs, nil
	}

	slotIDs, err := s.repo.ListBookedSlotIDs(ctx, courtID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list booked slots: %w", err)
	}

	ids := make([]string, len(slotIDs))
	for i, id := range slotIDs {
		ids[i] = id.String()
	}

	s.setCache(ctx, cacheKey, BookedOccurrences{
		CourtID: courtID.String(),
		Date:    date,
		SlotIDs: ids,
	}, constants.TTL_BOOKED_OCCURRENCES)

	return ids, nil
}
