package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"padelhub/internal/shared/constants"

	"github.com/redis/go-redis/v9"
)

// DraftStore persists booking drafts keyed by (clubID, courtID) scope.
// Load returns (nil, nil) when no draft exists for the scope.
type DraftStore interface {
	Load(ctx context.Context, clubID, courtID string) (*Draft, error)
	Save(ctx context.Context, clubID, courtID string, draft *Draft) error
	Delete(ctx context.Context, clubID, courtID string) error
}

// SignalStore holds one-shot "resume at slots" signals written by the confirm
// page's back action. TakeResume consumes the signal: a second call for the
// same scope returns false.
type SignalStore interface {
	SetResume(ctx context.Context, clubID, courtID string) error
	TakeResume(ctx context.Context, clubID, courtID string) (bool, error)
}

// ================== REDIS IMPLEMENTATIONS ==================

type redisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDraftStore(client *redis.Client, ttl time.Duration) DraftStore {
	return &redisDraftStore{client: client, ttl: ttl}
}

func (s *redisDraftStore) Load(ctx context.Context, clubID, courtID string) (*Draft, error) {
	key := constants.BuildWizardDraftKey(clubID, courtID)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	var draft Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &draft, nil
}

func (s *redisDraftStore) Save(ctx context.Context, clubID, courtID string, draft *Draft) error {
	key := constants.BuildWizardDraftKey(clubID, courtID)
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (s *redisDraftStore) Delete(ctx context.Context, clubID, courtID string) error {
	key := constants.BuildWizardDraftKey(clubID, courtID)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

type redisSignalStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSignalStore(client *redis.Client, ttl time.Duration) SignalStore {
	return &redisSignalStore{client: client, ttl: ttl}
}

func (s *redisSignalStore) SetResume(ctx context.Context, clubID, courtID string) error {
	key := constants.BuildWizardResumeKey(clubID, courtID)
	if err := s.client.Set(ctx, key, "1", s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set resume signal: %w", err)
	}
	return nil
}

// TakeResume reads and clears the signal atomically (GETDEL), so a page
// refresh cannot replay it.
func (s *redisSignalStore) TakeResume(ctx context.Context, clubID, courtID string) (bool, error) {
	key := constants.BuildWizardResumeKey(clubID, courtID)
	_, err := s.client.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to take resume signal: %w", err)
	}
	return true, nil
}
