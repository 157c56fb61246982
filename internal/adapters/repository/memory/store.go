// Package memory keeps every repository in process memory behind one lock.
// It backs STORAGE=memory and the service tests.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/electoral/internal/core/domain"
)

type Store struct {
	mu  sync.Mutex
	now func() time.Time

	voters      map[string]*domain.Voter
	stations    map[uuid.UUID]*domain.PollingStation
	stationKeys map[string]uuid.UUID
	votes       map[uuid.UUID]*domain.Vote
	// validVotes indexes the single valid vote of each voter.
	validVotes map[string]uuid.UUID
	config     map[string]domain.ConfigEntry
	users      map[string]*domain.SystemUser
}

func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	s := &Store{now: now}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.voters = make(map[string]*domain.Voter)
	s.stations = make(map[uuid.UUID]*domain.PollingStation)
	s.stationKeys = make(map[string]uuid.UUID)
	s.votes = make(map[uuid.UUID]*domain.Vote)
	s.validVotes = make(map[string]uuid.UUID)
	s.config = make(map[string]domain.ConfigEntry)
	s.users = make(map[string]*domain.SystemUser)
}

func copyStation(st *domain.PollingStation) *domain.PollingStation {
	c := *st
	if st.OpenedAt != nil {
		t := *st.OpenedAt
		c.OpenedAt = &t
	}
	if st.ClosedAt != nil {
		t := *st.ClosedAt
		c.ClosedAt = &t
	}
	return &c
}
