package reservations

import (
	"context"
	"testing"
	"time"

	"padelhub/internal/slots"
	"padelhub/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	created   []*Reservation
	createErr error
	booked    map[string][]uuid.UUID
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Reservation, error) {
	for _, r := range f.created {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetByUser(_ context.Context, _ uuid.UUID, _, _ int) ([]Reservation, int64, error) {
	return nil, 0, nil
}

func (f *fakeRepo) ListBookedSlotIDs(_ context.Context, courtID uuid.UUID, date string) ([]uuid.UUID, error) {
	return f.booked[courtID.String()+"|"+date], nil
}

func (f *fakeRepo) Create(_ context.Context, r *Reservation) error {
	if f.createErr != nil {
		return f.createErr
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	f.created = append(f.created, r)
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id uuid.UUID, at time.Time) error {
	for _, r := range f.created {
		if r.ID == id && r.Status == StatusConfirmed {
			r.Status = StatusCancelled
			r.CancelledAt = &at
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeSlotService struct {
	slot *slots.SlotResponse
	err  error
}

func (f *fakeSlotService) GetSlotByID(_ context.Context, _ uuid.UUID) (*slots.SlotResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slot, nil
}

type fakeDraftStore struct {
	deleted [][2]string
}

func (f *fakeDraftStore) Delete(_ context.Context, clubID, courtID string) error {
	f.deleted = append(f.deleted, [2]string{clubID, courtID})
	return nil
}

func newTestService(repo *fakeRepo, slotSvc SlotService) (*service, *fakeDraftStore) {
	drafts := &fakeDraftStore{}
	svc := &service{
		repo:        repo,
		slotService: slotSvc,
		draftStore:  drafts,
		log:         logger.GetDefault(),
		now: func() time.Time {
			return time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
		},
	}
	return svc, drafts
}

func validRequest(courtID, slotID string) CreateReservationRequest {
	return CreateReservationRequest{
		ClubID:    uuid.NewString(),
		CourtID:   courtID,
		SlotID:    slotID,
		Date:      "2025-06-10",
		ClubName:  "Center Padel",
		CourtName: "Court 1",
	}
}

func TestCreateReservation(t *testing.T) {
	courtID := uuid.NewString()
	slotID := uuid.NewString()
	repo := &fakeRepo{}
	svc, drafts := newTestService(repo, &fakeSlotService{
		slot: &slots.SlotResponse{
			ID: slotID, CourtID: courtID, From: "18:00", To: "19:00",
			Label: "18:00 – 19:00", Price: 35, Active: true,
		},
	})

	userID := uuid.New()
	req := validRequest(courtID, slotID)
	resp, err := svc.CreateReservation(context.Background(), userID, "player@example.com", req)
	require.NoError(t, err)

	assert.Equal(t, string(StatusConfirmed), resp.Status)
	assert.NotEmpty(t, resp.BookingRef)
	assert.Equal(t, "2025-06-10", resp.Date)
	// Price and label come from the catalog
	assert.Equal(t, 35.0, resp.Price)
	assert.Equal(t, "18:00 – 19:00", resp.SlotLabel)

	// The wizard draft for this scope is retired
	require.Len(t, drafts.deleted, 1)
	assert.Equal(t, [2]string{req.ClubID, req.CourtID}, drafts.deleted[0])
}

func TestCreateReservationWindow(t *testing.T) {
	courtID := uuid.NewString()
	slotID := uuid.NewString()
	svc, _ := newTestService(&fakeRepo{}, &fakeSlotService{
		slot: &slots.SlotResponse{ID: slotID, CourtID: courtID, Price: 30, Active: true},
	})

	cases := []struct {
		date    string
		wantErr error
	}{
		{"2025-06-01", nil},
		{"2025-06-16", nil},
		{"2025-05-31", ErrDateOutsideWindow},
		{"2025-06-17", ErrDateOutsideWindow},
	}

	for _, tc := range cases {
		req := validRequest(courtID, slotID)
		req.Date = tc.date
		_, err := svc.CreateReservation(context.Background(), uuid.New(), "", req)
		if tc.wantErr != nil {
			assert.ErrorIs(t, err, tc.wantErr, tc.date)
		} else {
			assert.NoError(t, err, tc.date)
		}
	}
}

func TestCreateReservationConflict(t *testing.T) {
	courtID := uuid.NewString()
	slotID := uuid.NewString()
	repo := &fakeRepo{createErr: gorm.ErrDuplicatedKey}
	svc, drafts := newTestService(repo, &fakeSlotService{
		slot: &slots.SlotResponse{ID: slotID, CourtID: courtID, Price: 30, Active: true},
	})

	_, err := svc.CreateReservation(context.Background(), uuid.New(), "", validRequest(courtID, slotID))
	assert.ErrorIs(t, err, ErrOccurrenceBooked)
	assert.Empty(t, drafts.deleted)
}

func TestCreateReservationInactiveSlot(t *testing.T) {
	courtID := uuid.NewString()
	slotID := uuid.NewString()
	svc, _ := newTestService(&fakeRepo{}, &fakeSlotService{
		slot: &slots.SlotResponse{ID: slotID, CourtID: courtID, Price: 30, Active: false},
	})

	_, err := svc.CreateReservation(context.Background(), uuid.New(), "", validRequest(courtID, slotID))
	assert.ErrorIs(t, err, ErrSlotInactive)
}

func TestCreateReservationSlotCourtMismatch(t *testing.T) {
	slotID := uuid.NewString()
	svc, _ := newTestService(&fakeRepo{}, &fakeSlotService{
		slot: &slots.SlotResponse{ID: slotID, CourtID: uuid.NewString(), Price: 30, Active: true},
	})

	_, err := svc.CreateReservation(context.Background(), uuid.New(), "", validRequest(uuid.NewString(), slotID))
	assert.Error(t, err)
}

func TestCancelReservation(t *testing.T) {
	courtID := uuid.NewString()
	slotID := uuid.NewString()
	repo := &fakeRepo{}
	svc, _ := newTestService(repo, &fakeSlotService{
		slot: &slots.SlotResponse{ID: slotID, CourtID: courtID, Price: 30, Active: true},
	})

	userID := uuid.New()
	resp, err := svc.CreateReservation(context.Background(), userID, "", validRequest(courtID, slotID))
	require.NoError(t, err)
	reservationID := uuid.MustParse(resp.ID)

	// Another player cannot cancel it
	err = svc.CancelReservation(context.Background(), uuid.New(), reservationID, false)
	assert.ErrorIs(t, err, ErrNotReservationOwner)

	require.NoError(t, svc.CancelReservation(context.Background(), userID, reservationID, false))

	// Cancelling twice is refused
	err = svc.CancelReservation(context.Background(), userID, reservationID, false)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancelReservationAdminOverride(t *testing.T) {
	courtID := uuid.NewString()
	slotID := uuid.NewString()
	repo := &fakeRepo{}
	svc, _ := newTestService(repo, &fakeSlotService{
		slot: &slots.SlotResponse{ID: slotID, CourtID: courtID, Price: 30, Active: true},
	})

	resp, err := svc.CreateReservation(context.Background(), uuid.New(), "", validRequest(courtID, slotID))
	require.NoError(t, err)

	err = svc.CancelReservation(context.Background(), uuid.New(), uuid.MustParse(resp.ID), true)
	assert.NoError(t, err)
}
