package service

import (
	"minoj/internal/contest/repository"
	"minoj/internal/judge/catalog"
	"minoj/internal/judge/model"
	jobrepo "minoj/internal/judge/repository"
	userrepo "minoj/internal/user/repository"
	appErr "minoj/pkg/errors"
)

// Admission validates a submission before any job or scratch resource exists.
// All checks are read-only and all-or-nothing; each collaborator's lock is
// taken and released independently.
type Admission struct {
	catalog  *catalog.Catalog
	users    *userrepo.UserStore
	contests *repository.ContestStore
	jobs     *jobrepo.JobStore
}

// NewAdmission creates the admission checker.
func NewAdmission(cat *catalog.Catalog, users *userrepo.UserStore, contests *repository.ContestStore, jobs *jobrepo.JobStore) *Admission {
	return &Admission{catalog: cat, users: users, contests: contests, jobs: jobs}
}

// Check resolves the submission's language and problem and verifies user
// existence, contest membership and the per-(user, problem, contest)
// submission quota. The global contest (id 0) spans every user and problem
// and carries no quota.
func (a *Admission) Check(sub model.Submission) (catalog.Language, catalog.Problem, error) {
	lang, err := a.catalog.Language(sub.Language)
	if err != nil {
		return catalog.Language{}, catalog.Problem{}, err
	}
	problem, err := a.catalog.Problem(sub.ProblemID)
	if err != nil {
		return catalog.Language{}, catalog.Problem{}, err
	}
	if !a.users.Exists(sub.UserID) {
		return catalog.Language{}, catalog.Problem{}, appErr.Newf(appErr.NotFound, "User %d not found.", sub.UserID)
	}

	if sub.ContestID == model.GlobalContestID {
		return lang, problem, nil
	}

	contest, err := a.contests.Get(sub.ContestID)
	if err != nil {
		return catalog.Language{}, catalog.Problem{}, err
	}
	if !contest.HasUser(sub.UserID) {
		return catalog.Language{}, catalog.Problem{}, appErr.Newf(appErr.InvalidArgument, "User %d is not in contest %d.", sub.UserID, sub.ContestID)
	}
	if !contest.HasProblem(sub.ProblemID) {
		return catalog.Language{}, catalog.Problem{}, appErr.Newf(appErr.InvalidArgument, "Problem %d is not in contest %d.", sub.ProblemID, sub.ContestID)
	}
	// The count and the later job registration are separate store operations,
	// so two concurrent submissions can both pass a quota with one slot left.
	if a.jobs.CountFor(sub.UserID, sub.ProblemID, sub.ContestID) >= contest.SubmissionLimit {
		return catalog.Language{}, catalog.Problem{}, appErr.Newf(appErr.RateLimit, "Submission limit of contest %d exceeded.", sub.ContestID)
	}
	return lang, problem, nil
}
