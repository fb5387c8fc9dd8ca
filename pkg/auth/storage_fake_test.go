package auth

import (
	"context"
	"sync"
	"sync/atomic"
)

// memStorage mimics the unique indexes of the real store.
type memStorage struct {
	mu      sync.Mutex
	users   map[string]*User
	writes  atomic.Int64
	findErr error
}

func newMemStorage(users ...*User) *memStorage {
	s := &memStorage{users: make(map[string]*User)}
	for _, u := range users {
		c := *u
		s.users[u.ID] = &c
	}
	return s
}

func (s *memStorage) find(match func(*User) bool) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	for _, u := range s.users {
		if match(u) {
			c := *u
			return &c, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *memStorage) FindByID(_ context.Context, id string) (*User, error) {
	return s.find(func(u *User) bool { return u.ID == id })
}

func (s *memStorage) FindByEmail(_ context.Context, email string) (*User, error) {
	return s.find(func(u *User) bool { return u.Email == email })
}

func (s *memStorage) FindByGoogleID(_ context.Context, id string) (*User, error) {
	return s.find(func(u *User) bool { return u.GoogleID != "" && u.GoogleID == id })
}

func (s *memStorage) FindBySteamID(_ context.Context, id string) (*User, error) {
	return s.find(func(u *User) bool { return u.SteamID != "" && u.SteamID == id })
}

func (s *memStorage) conflict(candidate *User) error {
	for _, u := range s.users {
		if u.ID == candidate.ID {
			continue
		}
		switch {
		case u.Email == candidate.Email:
			return &DuplicateKeyError{Field: FieldEmail}
		case candidate.GoogleID != "" && u.GoogleID == candidate.GoogleID:
			return &DuplicateKeyError{Field: FieldGoogleID}
		case candidate.SteamID != "" && u.SteamID == candidate.SteamID:
			return &DuplicateKeyError{Field: FieldSteamID}
		}
	}
	return nil
}

func (s *memStorage) Create(_ context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; ok {
		return &DuplicateKeyError{Field: "_id"}
	}
	if err := s.conflict(user); err != nil {
		return err
	}
	c := *user
	s.users[user.ID] = &c
	s.writes.Add(1)
	return nil
}

func (s *memStorage) Update(_ context.Context, id string, upd UserUpdate) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	next := *u
	next.Apply(upd)
	if err := s.conflict(&next); err != nil {
		return nil, err
	}
	s.users[id] = &next
	s.writes.Add(1)
	c := next
	return &c, nil
}

func (s *memStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

var _ Storage = (*memStorage)(nil)
