package favorites

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/sumafit/medstore/internal/ident"
	"github.com/sumafit/medstore/pkg/authstate"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// API is the server surface the store reconciles against.
type API interface {
	Favorites(ctx context.Context) ([]ident.ID, error)
	AddFavorite(ctx context.Context, productID ident.ID) error
	RemoveFavorite(ctx context.Context, productID ident.ID) error
}

// Store mirrors the server's favorite marks. Toggles flip the local set
// optimistically so the UI responds instantly, then refetch authoritative
// state unconditionally; the server always wins. There is no locking
// against concurrent toggles, a rapid double toggle may flicker and is
// corrected by the refetch.
type Store struct {
	api  API
	auth *authstate.Store

	mu         sync.Mutex
	set        map[ident.ID]struct{}
	fetchSeq   uint64
	appliedSeq uint64
}

// New wires the store to the auth state: login triggers a fetch, logout
// clears the mirror without a network call. A focus-regain hook should call
// Refresh.
func New(api API, auth *authstate.Store) *Store {
	s := &Store{
		api:  api,
		auth: auth,
		set:  make(map[ident.ID]struct{}),
	}
	auth.Subscribe(func(token string) {
		if token == "" {
			s.clearLocal()
			return
		}
		_ = s.Refresh(context.Background())
	})
	return s
}

// clearLocal empties the mirror and advances the fetch sequence past every
// fetch already in flight, so a response arriving after logout is discarded.
func (s *Store) clearLocal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = make(map[ident.ID]struct{})
	s.fetchSeq++
	s.appliedSeq = s.fetchSeq
}

// Refresh replaces the local set wholesale with server state. Each fetch
// carries a sequence number; a response from a fetch that has since been
// superseded is discarded instead of clobbering newer state.
func (s *Store) Refresh(ctx context.Context) error {
	if !s.auth.IsAuthenticated() {
		s.clearLocal()
		return nil
	}

	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	s.mu.Unlock()

	ids, err := s.api.Favorites(ctx)
	if err != nil {
		slog.Warn("favorites refresh failed", "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.appliedSeq {
		return nil
	}
	s.appliedSeq = seq

	next := make(map[ident.ID]struct{}, len(ids))
	for _, id := range ids {
		next[id] = struct{}{}
	}
	s.set = next
	return nil
}

// Toggle flips membership for the product. The server call matches the
// state observed before the optimistic flip; success or failure, the
// follow-up Refresh pulls authoritative state so local membership converges.
func (s *Store) Toggle(ctx context.Context, productID any) error {
	if !s.auth.IsAuthenticated() {
		slog.Warn("favorites toggle ignored: not authenticated")
		return ErrNotAuthenticated
	}

	id := ident.Normalize(productID)

	s.mu.Lock()
	_, wasFavorite := s.set[id]
	if wasFavorite {
		delete(s.set, id)
	} else {
		s.set[id] = struct{}{}
	}
	s.mu.Unlock()

	var err error
	if wasFavorite {
		err = s.api.RemoveFavorite(ctx, id)
	} else {
		err = s.api.AddFavorite(ctx, id)
	}
	if err != nil {
		slog.Warn("favorites toggle failed", "productID", id, "error", err)
	}

	if refreshErr := s.Refresh(ctx); refreshErr != nil && err == nil {
		err = refreshErr
	}
	return err
}

func (s *Store) IsFavorite(productID any) bool {
	id := ident.Normalize(productID)

	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.set[id]
	return ok
}

// IDs returns the current mirror, for display.
func (s *Store) IDs() []ident.ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ident.ID, 0, len(s.set))
	for id := range s.set {
		out = append(out, id)
	}
	return out
}

// SortByFavorites stably partitions items so favorited ones come first;
// relative order is otherwise preserved.
func SortByFavorites[T any](s *Store, items []T, id func(T) any) []T {
	out := make([]T, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		return s.IsFavorite(id(out[i])) && !s.IsFavorite(id(out[j]))
	})
	return out
}
