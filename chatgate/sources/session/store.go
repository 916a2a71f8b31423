package session

import (
	"errors"
	"time"

	"chatgate/chatgate/types"
	"chatgate/chatgate/widget"

	"github.com/patrickmn/go-cache"
)

var ErrSessionNotFound = errors.New("session not found")

// Entry is a signed-in browser: its session and its widget state.
type Entry struct {
	Session *types.Session
	State   *widget.State
}

// Store keeps sessions in memory; they expire after ttl without a touch.
type Store struct {
	cache *cache.Cache
}

func NewStore(ttl time.Duration) *Store {
	return &Store{cache: cache.New(ttl, 10*time.Minute)}
}

// Save registers sess and gives it a fresh widget state.
func (s *Store) Save(sess *types.Session) *Entry {
	entry := &Entry{Session: sess, State: widget.NewState(sess)}
	s.cache.Set(sess.ID, entry, cache.DefaultExpiration)
	return entry
}

// Get returns the entry and slides its expiry forward.
func (s *Store) Get(id string) (*Entry, error) {
	x, found := s.cache.Get(id)
	if !found {
		return nil, ErrSessionNotFound
	}
	entry := x.(*Entry)
	s.cache.Set(id, entry, cache.DefaultExpiration)
	return entry, nil
}

func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

func (s *Store) Count() int {
	return s.cache.ItemCount()
}
