package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"padelhub/pkg/logger"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("wizard session not found")

type session struct {
	machine  *Machine
	lastSeen time.Time
}

// Registry holds the live wizard machines, one per session, and sweeps idle
// ones in the background.
type Registry struct {
	deps Deps

	mu       sync.RWMutex
	sessions map[string]*session

	idleTTL       time.Duration
	sweepInterval time.Duration

	stopChan chan struct{}
	stopOnce sync.Once
	log      *logger.Logger
}

func NewRegistry(deps Deps, idleTTL, sweepInterval time.Duration) *Registry {
	deps.fill()
	return &Registry{
		deps:          deps,
		sessions:      make(map[string]*session),
		idleTTL:       idleTTL,
		sweepInterval: sweepInterval,
		stopChan:      make(chan struct{}),
		log:           deps.Logger,
	}
}

// Create starts a new wizard session for a (club, court) page.
func (r *Registry) Create(ctx context.Context, clubID, courtID string) (string, *Machine, error) {
	machine := NewMachine(r.deps)
	if err := machine.Start(ctx, clubID, courtID); err != nil {
		return "", nil, err
	}

	sessionID := uuid.NewString()
	r.mu.Lock()
	r.sessions[sessionID] = &session{machine: machine, lastSeen: r.deps.Clock()}
	r.mu.Unlock()

	return sessionID, machine, nil
}

// Get resolves a session id and refreshes its idle timer.
func (r *Registry) Get(sessionID string) (*Machine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.lastSeen = r.deps.Clock()
	return s.machine, nil
}

// Delete drops a session eagerly, e.g. after a reservation lands.
func (r *Registry) Delete(sessionID string) {
	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()
}

// StartSweeper runs the idle-session sweep until Stop is called.
func (r *Registry) StartSweeper() {
	go func() {
		ticker := time.NewTicker(r.sweepInterval)
		defer ticker.Stop()

		r.log.Info("wizard session sweeper started", "idle_ttl", r.idleTTL, "interval", r.sweepInterval)

		for {
			select {
			case <-ticker.C:
				r.sweep()
			case <-r.stopChan:
				r.log.Info("wizard session sweeper stopped")
				return
			}
		}
	}()
}

func (r *Registry) Stop() {
	r.stopOnce.Do(func() { close(r.stopChan) })
}

func (r *Registry) sweep() {
	cutoff := r.deps.Clock().Add(-r.idleTTL)

	r.mu.Lock()
	var expired []string
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		delete(r.sessions, id)
	}
	remaining := len(r.sessions)
	r.mu.Unlock()

	if len(expired) > 0 {
		r.log.Info("swept idle wizard sessions", "expired", len(expired), "remaining", remaining)
	}
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
