package wizard

import (
	"context"
	"errors"

	"padelhub/internal/clubs"
	"padelhub/internal/courts"
	"padelhub/internal/reservations"
	"padelhub/internal/slots"

	"github.com/google/uuid"
)

// Adapters over the domain services. The machine only sees the narrow
// ClubService/CourtService/SlotService/AvailabilityService views.

type clubAdapter struct {
	svc clubs.Service
}

func NewClubAdapter(svc clubs.Service) ClubService {
	return &clubAdapter{svc: svc}
}

func (a *clubAdapter) GetClub(ctx context.Context, clubID string) (*ClubInfo, error) {
	id, err := uuid.Parse(clubID)
	if err != nil {
		return nil, ErrClubNotFound
	}
	club, err := a.svc.GetClubByID(ctx, id)
	if err != nil {
		if errors.Is(err, clubs.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return &ClubInfo{
		ID:      club.ID,
		Name:    club.Name,
		LogoURL: club.LogoURL,
	}, nil
}

type courtAdapter struct {
	svc courts.Service
}

func NewCourtAdapter(svc courts.Service) CourtService {
	return &courtAdapter{svc: svc}
}

func (a *courtAdapter) ListCourts(ctx context.Context, clubID string) ([]CourtInfo, error) {
	id, err := uuid.Parse(clubID)
	if err != nil {
		return nil, ErrClubNotFound
	}
	list, err := a.svc.GetCourtsByClub(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]CourtInfo, len(list))
	for i, court := range list {
		out[i] = CourtInfo{
			ID:       court.ID,
			Name:     court.Name,
			ImageURL: court.ImageURL,
		}
	}
	return out, nil
}

type slotAdapter struct {
	svc slots.Service
}

func NewSlotAdapter(svc slots.Service) SlotService {
	return &slotAdapter{svc: svc}
}

func (a *slotAdapter) ListSlots(ctx context.Context, courtID string) ([]SlotInfo, error) {
	id, err := uuid.Parse(courtID)
	if err != nil {
		return nil, ErrCourtNotFound
	}
	// Full catalog: deactivated slots still render on the booking page,
	// just never as selectable.
	catalog, err := a.svc.GetSlotCatalog(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]SlotInfo, len(catalog.Slots))
	for i, slot := range catalog.Slots {
		out[i] = SlotInfo{
			ID:     slot.ID,
			From:   slot.From,
			To:     slot.To,
			Price:  slot.Price,
			Active: slot.Active,
		}
	}
	return out, nil
}

type availabilityAdapter struct {
	svc reservations.Service
}

func NewAvailabilityAdapter(svc reservations.Service) AvailabilityService {
	return &availabilityAdapter{svc: svc}
}

func (a *availabilityAdapter) ListBookedOccurrences(ctx context.Context, courtID, dateISO string) ([]string, error) {
	id, err := uuid.Parse(courtID)
	if err != nil {
		return nil, ErrCourtNotFound
	}
	return a.svc.ListBookedSlotIDs(ctx, id, dateISO)
}
