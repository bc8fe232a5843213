package state

import (
	"sync"
	"time"
)

// Profile is the signed-in user as shown in the UI.
type Profile struct {
	Username  string
	Name      string
	LoginName string
	Bio       string
}

// Snapshot represents the latest session data available to the UI.
type Snapshot struct {
	Profile             Profile
	HasProfile          bool
	AvatarURL           string
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed profile requests
}

// Degraded reports whether profile requests keep failing.
func (s Snapshot) Degraded() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetProfile records the result of a profile fetch. When err is non-nil the
// previous profile is kept and the error is recorded.
func (s *Store) SetProfile(p Profile, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.recordFailure(err)
		return
	}
	s.snapshot.Profile = p
	s.snapshot.HasProfile = true
	s.clearFailure()
}

// SetAvatar records the result of an avatar lookup. It reports whether the
// stored URL changed.
func (s *Store) SetAvatar(url string, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.recordFailure(err)
		return false
	}
	s.clearFailure()
	if s.snapshot.AvatarURL == url {
		return false
	}
	s.snapshot.AvatarURL = url
	return true
}

// Reset forgets the profile, the avatar and any recorded error.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = Snapshot{LastUpdated: time.Now()}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *Store) recordFailure(err error) {
	s.snapshot.LastError = err
	s.snapshot.ConsecutiveFailures++
}

func (s *Store) clearFailure() {
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}
