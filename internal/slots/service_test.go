package slots

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	slots      map[uuid.UUID][]Slot
	lastActive *bool // activeOnly arg of the last GetByCourtID call
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Slot, error) {
	for _, list := range f.slots {
		for i := range list {
			if list[i].ID == id {
				return &list[i], nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetByCourtID(_ context.Context, courtID uuid.UUID, activeOnly bool) ([]Slot, error) {
	f.lastActive = &activeOnly
	var out []Slot
	for _, slot := range f.slots[courtID] {
		if activeOnly && !slot.Active {
			continue
		}
		out = append(out, slot)
	}
	return out, nil
}

func (f *fakeRepo) Create(_ context.Context, slot *Slot) error {
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	f.slots[slot.CourtID] = append(f.slots[slot.CourtID], *slot)
	return nil
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, _ map[string]interface{}) (*Slot, error) {
	return f.GetByID(context.Background(), id)
}

func (f *fakeRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	for courtID, list := range f.slots {
		for i := range list {
			if list[i].ID == id {
				f.slots[courtID][i].Active = active
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func newCourtWithSlots() (uuid.UUID, *fakeRepo) {
	courtID := uuid.New()
	repo := &fakeRepo{slots: map[uuid.UUID][]Slot{
		courtID: {
			{ID: uuid.New(), CourtID: courtID, FromTime: "08:00", ToTime: "09:30", Price: 24, Active: true},
			{ID: uuid.New(), CourtID: courtID, FromTime: "18:30", ToTime: "20:00", Price: 40, Active: false},
		},
	}}
	return courtID, repo
}

func TestGetSlotsByCourtFiltersInactive(t *testing.T) {
	courtID, repo := newCourtWithSlots()
	svc := NewService(repo)

	result, err := svc.GetSlotsByCourt(context.Background(), courtID)
	require.NoError(t, err)
	require.NotNil(t, repo.lastActive)
	assert.True(t, *repo.lastActive)
	require.Len(t, result.Slots, 1)
	assert.Equal(t, "08:00", result.Slots[0].From)
}

func TestGetSlotCatalogIncludesInactive(t *testing.T) {
	courtID, repo := newCourtWithSlots()
	svc := NewService(repo)

	// The booking page renders retired slots as unselectable, so the
	// catalog read must not hide them.
	result, err := svc.GetSlotCatalog(context.Background(), courtID)
	require.NoError(t, err)
	require.NotNil(t, repo.lastActive)
	assert.False(t, *repo.lastActive)
	require.Len(t, result.Slots, 2)

	byFrom := map[string]SlotResponse{}
	for _, slot := range result.Slots {
		byFrom[slot.From] = slot
	}
	assert.True(t, byFrom["08:00"].Active)
	assert.False(t, byFrom["18:30"].Active)
}
