package repository

import (
	"testing"

	"minoj/internal/judge/model"
	appErr "minoj/pkg/errors"
)

func job(id int64, lang string, problemID int64, result model.Verdict) model.Job {
	return model.Job{
		ID: id,
		Submission: model.Submission{
			Language:  lang,
			ProblemID: problemID,
		},
		State:  model.StateFinished,
		Result: result,
		Cases:  []model.Case{{ID: 0, Result: model.VerdictCompilationSuccess}},
	}
}

func TestNextIDStartsAtZero(t *testing.T) {
	s := NewJobStore()
	for want := int64(0); want < 3; want++ {
		if got := s.NextID(); got != want {
			t.Fatalf("NextID = %d, want %d", got, want)
		}
	}
}

func TestGetUnknownJob(t *testing.T) {
	s := NewJobStore()
	if _, err := s.Get(0); !appErr.Is(err, appErr.NotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestListFilters(t *testing.T) {
	s := NewJobStore()
	s.Append(job(0, "Rust", 0, model.VerdictAccepted))
	s.Append(job(1, "C", 0, model.VerdictWrongAnswer))
	s.Append(job(2, "Rust", 1, model.VerdictAccepted))

	all := s.List(Filter{})
	if len(all) != 3 {
		t.Fatalf("unfiltered len = %d, want 3", len(all))
	}
	if all[0].ID != 0 || all[1].ID != 1 || all[2].ID != 2 {
		t.Fatalf("list not in creation order: %v %v %v", all[0].ID, all[1].ID, all[2].ID)
	}

	lang := "Rust"
	if got := s.List(Filter{Language: &lang}); len(got) != 2 {
		t.Fatalf("language filter len = %d, want 2", len(got))
	}

	pid := int64(0)
	result := model.VerdictAccepted
	got := s.List(Filter{ProblemID: &pid, Result: &result})
	if len(got) != 1 || got[0].ID != 0 {
		t.Fatalf("combined filter = %v, want job 0 only", got)
	}

	state := model.StateQueueing
	if got := s.List(Filter{State: &state}); len(got) != 0 {
		t.Fatalf("state filter len = %d, want 0", len(got))
	}
}

func TestUpdateReplacesInPlace(t *testing.T) {
	s := NewJobStore()
	s.Append(job(0, "Rust", 0, model.VerdictWrongAnswer))
	s.Append(job(1, "Rust", 0, model.VerdictAccepted))

	updated := job(0, "Rust", 0, model.VerdictAccepted)
	updated.Score = 100
	if err := s.Update(updated); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := s.Get(0)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Result != model.VerdictAccepted || got.Score != 100 {
		t.Fatalf("got result=%s score=%v after update", got.Result, got.Score)
	}

	all := s.List(Filter{})
	if all[0].ID != 0 {
		t.Fatalf("update moved the record, first id = %d", all[0].ID)
	}

	missing := job(9, "Rust", 0, model.VerdictAccepted)
	if err := s.Update(missing); !appErr.Is(err, appErr.NotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestStoredJobsAreIsolatedCopies(t *testing.T) {
	s := NewJobStore()
	original := job(0, "Rust", 0, model.VerdictAccepted)
	s.Append(original)
	original.Cases[0].Result = model.VerdictSystemError

	got, err := s.Get(0)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Cases[0].Result != model.VerdictCompilationSuccess {
		t.Fatalf("stored case mutated through caller slice")
	}

	got.Cases[0].Result = model.VerdictSystemError
	again, _ := s.Get(0)
	if again.Cases[0].Result != model.VerdictCompilationSuccess {
		t.Fatalf("stored case mutated through returned slice")
	}
}

func TestCountFor(t *testing.T) {
	s := NewJobStore()
	sub := model.Submission{UserID: 1, ProblemID: 2, ContestID: 3}
	s.Append(model.Job{ID: 0, Submission: sub})
	s.Append(model.Job{ID: 1, Submission: sub})
	other := sub
	other.ProblemID = 9
	s.Append(model.Job{ID: 2, Submission: other})

	if got := s.CountFor(1, 2, 3); got != 2 {
		t.Fatalf("CountFor = %d, want 2", got)
	}
	if got := s.CountFor(1, 9, 3); got != 1 {
		t.Fatalf("CountFor other problem = %d, want 1", got)
	}
	if got := s.CountFor(2, 2, 3); got != 0 {
		t.Fatalf("CountFor other user = %d, want 0", got)
	}
}
