// README: In-memory user directory (single-session, no persistence).
package user

import (
	"strings"
	"sync"

	"carona/internal/types"
)

type Store struct {
	mu     sync.RWMutex
	users  map[types.ID]*User
	byName map[string]types.ID
}

func NewStore() *Store {
	return &Store{
		users:  make(map[types.ID]*User),
		byName: make(map[string]types.ID),
	}
}

func (s *Store) Create(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	s.byName[strings.ToLower(u.Name)] = u.ID
}

func (s *Store) Get(id types.ID) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

// FindByName matches case-insensitively; the login screen accepts free
// text and any password is ignored.
func (s *Store) FindByName(name string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return s.users[id], true
}
