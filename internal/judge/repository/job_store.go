// Package repository holds the process-local job collection.
package repository

import (
	"sync"
	"sync/atomic"

	"minoj/internal/judge/model"
	appErr "minoj/pkg/errors"
)

// Filter selects jobs for listing. Nil fields match everything.
type Filter struct {
	Language  *string
	ProblemID *int64
	Result    *model.Verdict
	State     *model.State
}

func (f Filter) matches(job model.Job) bool {
	if f.Language != nil && job.Submission.Language != *f.Language {
		return false
	}
	if f.ProblemID != nil && job.Submission.ProblemID != *f.ProblemID {
		return false
	}
	if f.Result != nil && job.Result != *f.Result {
		return false
	}
	if f.State != nil && job.State != *f.State {
		return false
	}
	return true
}

// JobStore is the append-only collection of job records. Access to the
// collection is exclusive per operation; callers receive copies and never
// iterate under the lock. Ids are allocated from an atomic counter and are
// strictly increasing for the lifetime of the process.
type JobStore struct {
	mu     sync.Mutex
	jobs   []model.Job
	nextID atomic.Int64
}

// NewJobStore creates an empty store. The first allocated id is 0.
func NewJobStore() *JobStore {
	return &JobStore{}
}

// NextID reserves the next job id.
func (s *JobStore) NextID() int64 {
	return s.nextID.Add(1) - 1
}

// Append stores a finished job record.
func (s *JobStore) Append(job model.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, cloneJob(job))
}

// Get returns the job with the given id.
func (s *JobStore) Get(id int64) (model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			return cloneJob(s.jobs[i]), nil
		}
	}
	return model.Job{}, appErr.Newf(appErr.NotFound, "Job %d not found.", id)
}

// List returns a snapshot of all jobs matching the filter in creation order.
func (s *JobStore) List(filter Filter) []model.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Job, 0, len(s.jobs))
	for i := range s.jobs {
		if filter.matches(s.jobs[i]) {
			out = append(out, cloneJob(s.jobs[i]))
		}
	}
	return out
}

// CountFor counts jobs submitted by a user for one problem in one contest.
// Used for the admission quota check.
func (s *JobStore) CountFor(userID, problemID, contestID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for i := range s.jobs {
		sub := s.jobs[i].Submission
		if sub.UserID == userID && sub.ProblemID == problemID && sub.ContestID == contestID {
			count++
		}
	}
	return count
}

// Update replaces the stored record with the same id in place. The record's
// id and submission never change across an update.
func (s *JobStore) Update(job model.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.jobs {
		if s.jobs[i].ID == job.ID {
			s.jobs[i] = cloneJob(job)
			return nil
		}
	}
	return appErr.Newf(appErr.NotFound, "Job %d not found.", job.ID)
}

func cloneJob(job model.Job) model.Job {
	out := job
	out.Cases = make([]model.Case, len(job.Cases))
	copy(out.Cases, job.Cases)
	return out
}
