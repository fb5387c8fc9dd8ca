// Package authtest provides an in-memory auth.Storage for tests of code
// built on top of pkg/auth.
package authtest

import (
	"context"
	"sync"

	"github.com/JhonRainbow6/WebProject/pkg/auth"
)

// Storage keeps users in a map and enforces the same unique fields as the
// Mongo indexes. It is safe for concurrent use.
type Storage struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

// NewStorage returns a store seeded with copies of users.
func NewStorage(users ...*auth.User) *Storage {
	s := &Storage{users: make(map[string]*auth.User)}
	for _, u := range users {
		c := *u
		s.users[u.ID] = &c
	}
	return s
}

// User returns a copy of the stored user, or nil.
func (s *Storage) User(id string) *auth.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	c := *u
	return &c
}

// Len returns the number of stored users.
func (s *Storage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *Storage) find(match func(*auth.User) bool) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			c := *u
			return &c, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (s *Storage) FindByID(_ context.Context, id string) (*auth.User, error) {
	return s.find(func(u *auth.User) bool { return u.ID == id })
}

func (s *Storage) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	return s.find(func(u *auth.User) bool { return u.Email == email })
}

func (s *Storage) FindByGoogleID(_ context.Context, id string) (*auth.User, error) {
	return s.find(func(u *auth.User) bool { return u.GoogleID != "" && u.GoogleID == id })
}

func (s *Storage) FindBySteamID(_ context.Context, id string) (*auth.User, error) {
	return s.find(func(u *auth.User) bool { return u.SteamID != "" && u.SteamID == id })
}

func (s *Storage) conflict(candidate *auth.User) error {
	for _, u := range s.users {
		if u.ID == candidate.ID {
			continue
		}
		switch {
		case u.Email == candidate.Email:
			return &auth.DuplicateKeyError{Field: auth.FieldEmail}
		case candidate.GoogleID != "" && u.GoogleID == candidate.GoogleID:
			return &auth.DuplicateKeyError{Field: auth.FieldGoogleID}
		case candidate.SteamID != "" && u.SteamID == candidate.SteamID:
			return &auth.DuplicateKeyError{Field: auth.FieldSteamID}
		}
	}
	return nil
}

func (s *Storage) Create(_ context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; ok {
		return &auth.DuplicateKeyError{Field: "_id"}
	}
	if err := s.conflict(user); err != nil {
		return err
	}
	c := *user
	s.users[user.ID] = &c
	return nil
}

func (s *Storage) Update(_ context.Context, id string, upd auth.UserUpdate) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	next := *u
	next.Apply(upd)
	if err := s.conflict(&next); err != nil {
		return nil, err
	}
	s.users[id] = &next
	c := next
	return &c, nil
}

var _ auth.Storage = (*Storage)(nil)
