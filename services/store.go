package services

import (
	"context"
	"fmt"
	"sync"

	"ecometer/models"
)

// StateStore persists whole per-user snapshots.
// Load reports found=false for a user with no stored state.
type StateStore interface {
	Load(ctx context.Context, userID string) (state models.UserState, found bool, err error)
	Commit(ctx context.Context, userID string, state models.UserState) error
}

// ProfileStore is the profile service's view of users.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (models.User, error)
	CompleteSetup(ctx context.Context, userID, location string, householdSize int, baseline float64) (models.User, error)
}

// LeaderboardSource supplies the externally ranked roster.
type LeaderboardSource interface {
	Fetch(ctx context.Context) ([]models.LeaderboardEntry, error)
}

// MemoryStore keeps snapshots in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]models.UserState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: map[string]models.UserState{}}
}

func (m *MemoryStore) Load(_ context.Context, userID string) (models.UserState, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.states[userID]
	if !ok {
		return models.UserState{}, false, nil
	}
	return s.Clone(), true, nil
}

func (m *MemoryStore) Commit(_ context.Context, userID string, state models.UserState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[userID] = state.Clone()
	return nil
}

// MemoryProfiles keeps user profiles in process memory.
type MemoryProfiles struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryProfiles(users ...models.User) *MemoryProfiles {
	p := &MemoryProfiles{users: map[string]models.User{}}
	for _, u := range users {
		p.users[u.ID] = u
	}
	return p
}

func (p *MemoryProfiles) GetProfile(_ context.Context, userID string) (models.User, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	u, ok := p.users[userID]
	if !ok {
		return models.User{ID: userID}, nil
	}
	return u, nil
}

func (p *MemoryProfiles) CompleteSetup(_ context.Context, userID, location string, householdSize int, baseline float64) (models.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	u := p.users[userID]
	if u.SetupComplete {
		return u, nil
	}
	u.ID = userID
	u.Location = location
	u.HouseholdSize = householdSize
	u.BaselineFootprint = baseline
	u.SetupComplete = true
	p.users[userID] = u
	return u, nil
}

// StaticLeaderboard serves a fixed roster.
type StaticLeaderboard []models.LeaderboardEntry

func (s StaticLeaderboard) Fetch(context.Context) ([]models.LeaderboardEntry, error) {
	return append([]models.LeaderboardEntry(nil), s...), nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrCollaboratorUnavailable, op, err)
}
