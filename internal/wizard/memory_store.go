package wizard

import (
	"context"
	"sync"

	"padelhub/internal/shared/constants"
)

// MemoryDraftStore is an in-process DraftStore. Tests use it in place of
// Redis; it also backs single-node deployments that run without one.
type MemoryDraftStore struct {
	mu     sync.RWMutex
	drafts map[string]*Draft
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[string]*Draft)}
}

func (s *MemoryDraftStore) Load(_ context.Context, clubID, courtID string) (*Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[constants.BuildWizardDraftKey(clubID, courtID)]
	if !ok {
		return nil, nil
	}
	return draft.Clone(), nil
}

func (s *MemoryDraftStore) Save(_ context.Context, clubID, courtID string, draft *Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[constants.BuildWizardDraftKey(clubID, courtID)] = draft.Clone()
	return nil
}

func (s *MemoryDraftStore) Delete(_ context.Context, clubID, courtID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, constants.BuildWizardDraftKey(clubID, courtID))
	return nil
}

// MemorySignalStore is the in-process SignalStore counterpart.
type MemorySignalStore struct {
	mu      sync.Mutex
	signals map[string]struct{}
}

func NewMemorySignalStore() *MemorySignalStore {
	return &MemorySignalStore{signals: make(map[string]struct{})}
}

func (s *MemorySignalStore) SetResume(_ context.Context, clubID, courtID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signals[constants.BuildWizardResumeKey(clubID, courtID)] = struct{}{}
	return nil
}

func (s *MemorySignalStore) TakeResume(_ context.Context, clubID, courtID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := constants.BuildWizardResumeKey(clubID, courtID)
	_, ok := s.signals[key]
	if ok {
		delete(s.signals, key)
	}
	return ok, nil
}
