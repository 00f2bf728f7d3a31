package authstate

import "sync"

// Store holds the process-wide authentication state behind an explicit
// subscribe/notify interface. Dependent caches register a callback and react
// to login and logout.
type Store struct {
	mu          sync.RWMutex
	token       string
	subscribers []func(token string)
}

func New() *Store {
	return &Store{}
}

// SetToken records the credential and notifies subscribers. Setting the
// same token again is a no-op.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	if s.token == token {
		s.mu.Unlock()
		return
	}
	s.token = token
	subs := make([]func(string), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(token)
	}
}

// Clear drops the credential, as on logout.
func (s *Store) Clear() {
	s.SetToken("")
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// Subscribe registers a callback invoked on every token change. The
// callback runs outside the store's lock and may call back into the store.
func (s *Store) Subscribe(fn func(token string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}
