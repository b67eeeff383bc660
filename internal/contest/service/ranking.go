// Package service computes contest leaderboards from submission history.
package service

import (
	"sort"

	contestrepo "minoj/internal/contest/repository"
	"minoj/internal/judge/catalog"
	"minoj/internal/judge/model"
	jobrepo "minoj/internal/judge/repository"
	userrepo "minoj/internal/user/repository"
	appErr "minoj/pkg/errors"
)

// ScoringRule selects how multiple submissions fold into one leaderboard cell.
type ScoringRule string

const (
	// ScoringLatest takes the most recent submission's score (default).
	ScoringLatest ScoringRule = ""
	// ScoringHighest keeps the best score ever achieved.
	ScoringHighest ScoringRule = "highest"
)

// ParseScoringRule validates a query value.
func ParseScoringRule(raw string) (ScoringRule, error) {
	switch ScoringRule(raw) {
	case ScoringLatest, ScoringHighest:
		return ScoringRule(raw), nil
	}
	return "", appErr.Newf(appErr.InvalidArgument, "invalid scoring rule '%s'", raw)
}

// TieBreaker selects how equal totals are ranked.
type TieBreaker string

const (
	// TieNone groups equal totals under the same rank (competition ranking).
	TieNone TieBreaker = ""
	// TieUserID flattens ties into sequential ranks following the score
	// sort order. Despite the name it does not re-sort by user id.
	TieUserID TieBreaker = "user_id"
	// TieSubmissionCount re-sorts by total submission count ascending,
	// grouping equal counts.
	TieSubmissionCount TieBreaker = "submission_count"
	// TieSubmissionTime re-sorts by last scored-submission time ascending.
	TieSubmissionTime TieBreaker = "submission_time"
)

// ParseTieBreaker validates a query value.
func ParseTieBreaker(raw string) (TieBreaker, error) {
	switch TieBreaker(raw) {
	case TieNone, TieUserID, TieSubmissionCount, TieSubmissionTime:
		return TieBreaker(raw), nil
	}
	return "", appErr.Newf(appErr.InvalidArgument, "invalid tie breaker '%s'", raw)
}

// timeSentinel orders users without a scored submission after every real
// timestamp under lexicographic comparison.
const timeSentinel = "zzz"

// RankingEngine recomputes a full leaderboard on every request. It holds no
// state between calls; each store is snapshotted independently, never
// holding two collection locks at once.
type RankingEngine struct {
	catalog  *catalog.Catalog
	users    *userrepo.UserStore
	contests *contestrepo.ContestStore
	jobs     *jobrepo.JobStore
}

// NewRankingEngine creates the engine.
func NewRankingEngine(cat *catalog.Catalog, users *userrepo.UserStore, contests *contestrepo.ContestStore, jobs *jobrepo.JobStore) *RankingEngine {
	return &RankingEngine{catalog: cat, users: users, contests: contests, jobs: jobs}
}

// Ranklist produces the ordered leaderboard for one contest. Contest id 0
// spans all registered users and all catalog problems in ascending
// problem-id order; other ids use the contest's own member and problem
// lists, with score columns indexed by position in the contest problem list.
func (e *RankingEngine) Ranklist(contestID int64, rule ScoringRule, tie TieBreaker) ([]model.Rank, error) {
	var population []model.User
	var problemIDs []int64

	if contestID == model.GlobalContestID {
		population = e.users.List()
		problemIDs = e.catalog.ProblemIDs()
	} else {
		contest, err := e.contests.Get(contestID)
		if err != nil {
			return nil, err
		}
		for _, uid := range contest.UserIDs {
			user, err := e.users.Get(uid)
			if err != nil {
				continue
			}
			population = append(population, user)
		}
		problemIDs = contest.ProblemIDs
	}

	column := make(map[int64]int, len(problemIDs))
	for i, pid := range problemIDs {
		column[pid] = i
	}

	ranks := make([]model.Rank, 0, len(population))
	row := make(map[int64]int, len(population))
	for i, user := range population {
		ranks = append(ranks, model.Rank{User: user, Rank: 1, Scores: make([]float64, len(problemIDs))})
		row[user.ID] = i
	}

	var jobs []model.Job
	if contestID == model.GlobalContestID {
		jobs = e.jobs.List(jobrepo.Filter{})
	} else {
		id := contestID
		all := e.jobs.List(jobrepo.Filter{})
		for _, job := range all {
			if job.Submission.ContestID == id {
				jobs = append(jobs, job)
			}
		}
	}
	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].Submission.ProblemID < jobs[j].Submission.ProblemID
	})

	submissionCount := make(map[int64]int, len(population))
	lastScoredTime := make(map[int64]string, len(population))
	for _, user := range population {
		lastScoredTime[user.ID] = timeSentinel
	}

	for _, job := range jobs {
		userID := job.Submission.UserID
		i, ok := row[userID]
		if !ok {
			continue
		}
		col, ok := column[job.Submission.ProblemID]
		if !ok {
			continue
		}
		submissionCount[userID]++
		if rule == ScoringHighest {
			if job.Score > ranks[i].Scores[col] {
				ranks[i].Scores[col] = job.Score
				lastScoredTime[userID] = job.CreatedTime
			}
		} else {
			ranks[i].Scores[col] = job.Score
			lastScoredTime[userID] = job.CreatedTime
		}
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		return total(ranks[i]) > total(ranks[j])
	})

	switch tie {
	case TieUserID:
		for i := range ranks {
			ranks[i].Rank = i + 1
		}
	case TieSubmissionCount:
		sort.SliceStable(ranks, func(i, j int) bool {
			return submissionCount[ranks[i].User.ID] < submissionCount[ranks[j].User.ID]
		})
		assignGrouped(ranks, func(r model.Rank) interface{} {
			return submissionCount[r.User.ID]
		})
	case TieSubmissionTime:
		sort.SliceStable(ranks, func(i, j int) bool {
			return lastScoredTime[ranks[i].User.ID] < lastScoredTime[ranks[j].User.ID]
		})
		for i := range ranks {
			ranks[i].Rank = i + 1
		}
	default:
		assignGrouped(ranks, func(r model.Rank) interface{} {
			return total(r)
		})
	}
	return ranks, nil
}

func total(r model.Rank) float64 {
	sum := 0.0
	for _, s := range r.Scores {
		sum += s
	}
	return sum
}

// assignGrouped implements standard competition ranking: equal keys share
// their predecessor's rank, the next distinct key jumps to its 1-based
// position.
func assignGrouped(ranks []model.Rank, key func(model.Rank) interface{}) {
	current := 1
	for i := range ranks {
		if i == 0 {
			ranks[i].Rank = 1
			current = 1
			continue
		}
		if key(ranks[i]) == key(ranks[i-1]) {
			ranks[i].Rank = current
		} else {
			ranks[i].Rank = i + 1
			current = ranks[i].Rank
		}
	}
}
