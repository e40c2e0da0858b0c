package identitysvc

import (
	"fmt"
	"sync"
)

// Role markers as they appear at position 3 of an actor id.
const (
	RoleUser    = 'U'
	RoleManager = 'M'
)

type Service interface {
	// Next mints the next actor id for this branch, e.g. CONU0001 for a
	// user or CONM0002 for a manager. Ids are unique for the life of the
	// process; the counter starts over after a restart.
	Next(marker rune) (string, error)
}

type service struct {
	mu      sync.Mutex
	prefix  string
	counter int
}

func New(prefix string) Service {
	return &service{prefix: prefix}
}

func (s *service) Next(marker rune) (string, error) {
	if marker != RoleUser && marker != RoleManager {
		return "", fmt.Errorf("unknown role marker %q", marker)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	return fmt.Sprintf("%s%c%04d", s.prefix, marker, s.counter), nil
}
