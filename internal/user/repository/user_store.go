// Package repository holds the process-local user registry.
package repository

import (
	"sort"
	"sync"

	"minoj/internal/judge/model"
	appErr "minoj/pkg/errors"
)

// UserStore is the registry of participants. Names are globally unique and
// ids are assigned sequentially. The root user (id 0) is seeded at startup.
type UserStore struct {
	mu    sync.Mutex
	users []model.User
}

// NewUserStore creates the registry with the root user present.
func NewUserStore() *UserStore {
	return &UserStore{users: []model.User{{ID: 0, Name: "root"}}}
}

// Create registers a new user under the next sequential id.
func (s *UserStore) Create(name string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Name == name {
			return model.User{}, appErr.Newf(appErr.InvalidArgument, "User name '%s' already exists.", name)
		}
	}
	user := model.User{ID: int64(len(s.users)), Name: name}
	s.users = append(s.users, user)
	return user, nil
}

// Rename changes an existing user's name. The duplicate check covers the
// user's current name too, so renaming to the name already held fails.
func (s *UserStore) Rename(id int64, name string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index := -1
	for i := range s.users {
		if s.users[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return model.User{}, appErr.Newf(appErr.NotFound, "User %d not found.", id)
	}
	for i := range s.users {
		if s.users[i].Name == name {
			return model.User{}, appErr.Newf(appErr.InvalidArgument, "User name '%s' already exists.", name)
		}
	}
	s.users[index].Name = name
	return s.users[index], nil
}

// Get returns the user with the given id.
func (s *UserStore) Get(id int64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			return s.users[i], nil
		}
	}
	return model.User{}, appErr.Newf(appErr.NotFound, "User %d not found.", id)
}

// Exists reports whether a user id is registered.
func (s *UserStore) Exists(id int64) bool {
	_, err := s.Get(id)
	return err == nil
}

// List returns all users sorted by id ascending.
func (s *UserStore) List() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.User, len(s.users))
	copy(out, s.users)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
