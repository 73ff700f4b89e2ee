package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFinalizable(t *testing.T) {
	date := "2025-06-10"
	slotID := "s3"
	snapshot := &SlotSnapshot{ID: "s3", From: "18:00", To: "19:00", Price: 35}

	complete := Draft{
		ClubID:       "club-1",
		CourtID:      "court-1",
		PickedDate:   &date,
		PickedSlotID: &slotID,
		PickedSlot:   snapshot,
	}
	assert.True(t, complete.IsFinalizable())

	missingClub := complete
	missingClub.ClubID = ""
	assert.False(t, missingClub.IsFinalizable())

	missingDate := complete
	missingDate.PickedDate = nil
	assert.False(t, missingDate.IsFinalizable())

	missingSlot := complete
	missingSlot.PickedSlotID = nil
	assert.False(t, missingSlot.IsFinalizable())

	missingSnapshot := complete
	missingSnapshot.PickedSlot = nil
	assert.False(t, missingSnapshot.IsFinalizable())

	// Snapshot inconsistent with the picked id
	otherID := "s1"
	inconsistent := complete
	inconsistent.PickedSlotID = &otherID
	assert.False(t, inconsistent.IsFinalizable())

	var nilDraft *Draft
	assert.False(t, nilDraft.IsFinalizable())
}

func TestDraftCloneIsDeep(t *testing.T) {
	date := "2025-06-10"
	slotID := "s3"
	original := &Draft{
		ClubID:       "club-1",
		CourtID:      "court-1",
		PickedDate:   &date,
		PickedSlotID: &slotID,
		PickedSlot:   &SlotSnapshot{ID: "s3", From: "18:00", To: "19:00", Price: 35},
	}

	clone := original.Clone()
	assert.Equal(t, original, clone)

	*clone.PickedDate = "2025-06-11"
	clone.PickedSlot.Price = 99
	assert.Equal(t, "2025-06-10", *original.PickedDate)
	assert.Equal(t, 35.0, original.PickedSlot.Price)
}
