package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrNoStore = errors.New("session has no backing store")

// Store persists session values keyed by session id
type Store interface {
	// Load returns the stored values, or an empty map when the session does not exist.
	Load(ctx context.Context, id string) (map[string]json.RawMessage, error)
	Save(ctx context.Context, id string, values map[string]json.RawMessage, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// Session is a per-visitor key-value map. Values are stored as JSON.
// A Session is owned by a single request and is not safe for concurrent use.
type Session struct {
	id       string
	values   map[string]json.RawMessage
	modified bool
	isNew    bool

	store Store
	ttl   time.Duration
}

// New creates an empty session with a fresh random id
func New(store Store, ttl time.Duration) *Session {
	return &Session{
		id:     uuid.New().String(),
		values: make(map[string]json.RawMessage),
		isNew:  true,
		store:  store,
		ttl:    ttl,
	}
}

// Load fetches an existing session from the store
func Load(ctx context.Context, store Store, id string, ttl time.Duration) (*Session, error) {
	values, err := store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if values == nil {
		values = make(map[string]json.RawMessage)
	}

	return &Session{
		id:     id,
		values: values,
		store:  store,
		ttl:    ttl,
	}, nil
}

func (s *Session) ID() string  { return s.id }
func (s *Session) IsNew() bool { return s.isNew }

// Get decodes the value stored under key into dest
func (s *Session) Get(key string, dest interface{}) (bool, error) {
	raw, ok := s.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return true, fmt.Errorf("decode session key %q: %w", key, err)
	}
	return true, nil
}

func (s *Session) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Set encodes value under key and marks the session modified
func (s *Session) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode session key %q: %w", key, err)
	}
	s.values[key] = raw
	s.modified = true
	return nil
}

func (s *Session) Delete(key string) {
	if _, ok := s.values[key]; ok {
		delete(s.values, key)
		s.modified = true
	}
}

func (s *Session) MarkModified()  { s.modified = true }
func (s *Session) Modified() bool { return s.modified }

// Save writes the session to the store and clears the modified flag
func (s *Session) Save(ctx context.Context) error {
	if s.store == nil {
		return ErrNoStore
	}
	if err := s.store.Save(ctx, s.id, s.values, s.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.modified = false
	s.isNew = false
	return nil
}

// Destroy removes the session from the store and empties it
func (s *Session) Destroy(ctx context.Context) error {
	if s.store == nil {
		return ErrNoStore
	}
	if err := s.store.Delete(ctx, s.id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.values = make(map[string]json.RawMessage)
	s.modified = false
	return nil
}
