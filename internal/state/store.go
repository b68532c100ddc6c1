package state

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/five82/ankibridge/internal/bridge"
)

// Snapshot is the host session state accumulated across renders.
type Snapshot struct {
	Permission          any // last non-false reqPerm value
	HasPermission       bool
	Decks               []string
	HasDecks            bool
	MobileInfo          string // last clipboard payload from the mobile handoff
	NoteIDs             []int64
	LastAction          bridge.Action
	LastValue           any
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed actions
}

// IsOffline returns true when AnkiConnect has failed several actions in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Record folds one handled action into the session. Failures keep previously
// stored data; a false or undefined host value never replaces it.
func (s *Store) Record(result bridge.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value := result.HostValue()
	s.snapshot.LastAction = result.Action
	s.snapshot.LastValue = value
	s.snapshot.LastUpdated = time.Now()

	if result.Err != nil {
		s.snapshot.LastError = result.Err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0

	switch result.Action {
	case bridge.ActionRequestPermission:
		if value != nil && value != false {
			s.snapshot.Permission = value
			s.snapshot.HasPermission = true
		}
	case bridge.ActionGetDecks:
		if decks, ok := value.([]string); ok {
			s.snapshot.Decks = slices.Clone(decks)
			s.snapshot.HasDecks = true
		}
	case bridge.ActionGetDecksMobile:
		if text, ok := value.(string); ok && text != "" {
			s.snapshot.MobileInfo = text
		}
	case bridge.ActionAddCard, bridge.ActionAddCardWithImage:
		if id, ok := value.(int64); ok {
			s.snapshot.NoteIDs = append(s.snapshot.NoteIDs, id)
		}
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Decks = slices.Clone(s.snapshot.Decks)
	snap.NoteIDs = slices.Clone(s.snapshot.NoteIDs)
	if decks, ok := s.snapshot.LastValue.([]string); ok {
		snap.LastValue = slices.Clone(decks)
	}
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
