// Package repository holds the process-local contest registry.
package repository

import (
	"sort"
	"sync"

	"minoj/internal/judge/model"
	appErr "minoj/pkg/errors"
)

// ContestStore is the registry of contests. Contest id 0 is the implicit
// global contest and is never stored here.
type ContestStore struct {
	mu       sync.Mutex
	contests []model.Contest
}

// NewContestStore creates an empty registry.
func NewContestStore() *ContestStore {
	return &ContestStore{}
}

// Create stores a new contest under the next free id (len+1) and returns it.
func (s *ContestStore) Create(contest model.Contest) model.Contest {
	s.mu.Lock()
	defer s.mu.Unlock()
	contest.ID = int64(len(s.contests)) + 1
	s.contests = append(s.contests, cloneContest(contest))
	return contest
}

// Update replaces the stored contest with the given id.
func (s *ContestStore) Update(contest model.Contest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.contests {
		if s.contests[i].ID == contest.ID {
			s.contests[i] = cloneContest(contest)
			return nil
		}
	}
	return appErr.Newf(appErr.NotFound, "Contest %d not found.", contest.ID)
}

// Get returns the contest with the given id.
func (s *ContestStore) Get(id int64) (model.Contest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.contests {
		if s.contests[i].ID == id {
			return cloneContest(s.contests[i]), nil
		}
	}
	return model.Contest{}, appErr.Newf(appErr.NotFound, "Contest %d not found.", id)
}

// List returns all contests sorted by id ascending.
func (s *ContestStore) List() []model.Contest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Contest, 0, len(s.contests))
	for i := range s.contests {
		out = append(out, cloneContest(s.contests[i]))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func cloneContest(c model.Contest) model.Contest {
	out := c
	out.ProblemIDs = make([]int64, len(c.ProblemIDs))
	copy(out.ProblemIDs, c.ProblemIDs)
	out.UserIDs = make([]int64, len(c.UserIDs))
	copy(out.UserIDs, c.UserIDs)
	return out
}
