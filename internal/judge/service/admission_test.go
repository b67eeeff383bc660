package service_test

import (
	"testing"

	contestrepo "minoj/internal/contest/repository"
	"minoj/internal/judge/catalog"
	"minoj/internal/judge/model"
	jobrepo "minoj/internal/judge/repository"
	"minoj/internal/judge/service"
	userrepo "minoj/internal/user/repository"
	appErr "minoj/pkg/errors"
)

func newAdmissionFixture(t *testing.T) (*service.Admission, *userrepo.UserStore, *contestrepo.ContestStore, *jobrepo.JobStore) {
	t.Helper()
	cat := catalog.New(
		[]catalog.Language{shLang},
		[]catalog.Problem{
			{ID: 0, Type: catalog.CompareStandard, Cases: []catalog.TestCase{{Score: 100}}},
			{ID: 1, Type: catalog.CompareStandard, Cases: []catalog.TestCase{{Score: 100}}},
		},
	)
	users := userrepo.NewUserStore()
	contests := contestrepo.NewContestStore()
	jobs := jobrepo.NewJobStore()
	return service.NewAdmission(cat, users, contests, jobs), users, contests, jobs
}

func TestAdmissionUnknownLanguage(t *testing.T) {
	adm, _, _, _ := newAdmissionFixture(t)
	sub := model.Submission{Language: "cobol", UserID: 0, ProblemID: 0}
	_, _, err := adm.Check(sub)
	if !appErr.Is(err, appErr.NotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestAdmissionUnknownProblem(t *testing.T) {
	adm, _, _, _ := newAdmissionFixture(t)
	sub := model.Submission{Language: "sh", UserID: 0, ProblemID: 42}
	_, _, err := adm.Check(sub)
	if !appErr.Is(err, appErr.NotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestAdmissionUnknownUser(t *testing.T) {
	adm, _, _, _ := newAdmissionFixture(t)
	sub := model.Submission{Language: "sh", UserID: 99, ProblemID: 0}
	_, _, err := adm.Check(sub)
	if !appErr.Is(err, appErr.NotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestAdmissionGlobalContestSkipsMembershipAndQuota(t *testing.T) {
	adm, _, _, _ := newAdmissionFixture(t)
	sub := model.Submission{Language: "sh", UserID: 0, ContestID: 0, ProblemID: 0}
	lang, problem, err := adm.Check(sub)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if lang.Name != "sh" || problem.ID != 0 {
		t.Fatalf("resolved lang=%s problem=%d", lang.Name, problem.ID)
	}
}

func TestAdmissionContestMembership(t *testing.T) {
	adm, users, contests, _ := newAdmissionFixture(t)
	alice, err := users.Create("alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	contest := contests.Create(model.Contest{
		Name:            "weekly",
		ProblemIDs:      []int64{0},
		UserIDs:         []int64{alice.ID},
		SubmissionLimit: 10,
	})

	sub := model.Submission{Language: "sh", UserID: 0, ContestID: contest.ID, ProblemID: 0}
	if _, _, err := adm.Check(sub); !appErr.Is(err, appErr.InvalidArgument) {
		t.Fatalf("non-member err = %v, want invalid argument", err)
	}

	sub = model.Submission{Language: "sh", UserID: alice.ID, ContestID: contest.ID, ProblemID: 1}
	if _, _, err := adm.Check(sub); !appErr.Is(err, appErr.InvalidArgument) {
		t.Fatalf("foreign problem err = %v, want invalid argument", err)
	}

	sub = model.Submission{Language: "sh", UserID: alice.ID, ContestID: 99, ProblemID: 0}
	if _, _, err := adm.Check(sub); !appErr.Is(err, appErr.NotFound) {
		t.Fatalf("unknown contest err = %v, want not found", err)
	}
}

func TestAdmissionSubmissionQuota(t *testing.T) {
	adm, users, contests, jobs := newAdmissionFixture(t)
	alice, err := users.Create("alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	contest := contests.Create(model.Contest{
		ProblemIDs:      []int64{0, 1},
		UserIDs:         []int64{alice.ID},
		SubmissionLimit: 2,
	})

	sub := model.Submission{Language: "sh", UserID: alice.ID, ContestID: contest.ID, ProblemID: 0}
	for i := 0; i < 2; i++ {
		if _, _, err := adm.Check(sub); err != nil {
			t.Fatalf("check %d: %v", i, err)
		}
		jobs.Append(model.Job{ID: jobs.NextID(), Submission: sub})
	}

	if _, _, err := adm.Check(sub); !appErr.Is(err, appErr.RateLimit) {
		t.Fatalf("err = %v, want rate limit", err)
	}

	// the quota is per problem within the contest
	other := model.Submission{Language: "sh", UserID: alice.ID, ContestID: contest.ID, ProblemID: 1}
	if _, _, err := adm.Check(other); err != nil {
		t.Fatalf("other problem check: %v", err)
	}
}
