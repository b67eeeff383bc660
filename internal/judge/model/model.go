// Package model defines the shared judge data model and its wire names.
package model

import "time"

// State is the lifecycle state of a job. Transitions are strictly forward:
// Queueing -> Running -> Finished.
type State string

const (
	StateQueueing State = "Queueing"
	StateRunning  State = "Running"
	StateFinished State = "Finished"
)

// Valid reports whether s is a known state name.
func (s State) Valid() bool {
	switch s {
	case StateQueueing, StateRunning, StateFinished:
		return true
	}
	return false
}

// Verdict classifies a case or a whole job. The wire names are fixed and
// several contain spaces.
type Verdict string

const (
	VerdictWaiting            Verdict = "Waiting"
	VerdictRunning            Verdict = "Running"
	VerdictAccepted           Verdict = "Accepted"
	VerdictCompilationError   Verdict = "Compilation Error"
	VerdictCompilationSuccess Verdict = "Compilation Success"
	VerdictWrongAnswer        Verdict = "Wrong Answer"
	VerdictRuntimeError       Verdict = "Runtime Error"
	VerdictTimeLimitExceeded  Verdict = "Time Limit Exceeded"
	VerdictSystemError        Verdict = "System Error"
)

// Valid reports whether v is a known verdict name.
func (v Verdict) Valid() bool {
	switch v {
	case VerdictWaiting, VerdictRunning, VerdictAccepted,
		VerdictCompilationError, VerdictCompilationSuccess,
		VerdictWrongAnswer, VerdictRuntimeError,
		VerdictTimeLimitExceeded, VerdictSystemError:
		return true
	}
	return false
}

// Submission is the user-supplied payload a job is created from. Immutable
// once the job exists.
type Submission struct {
	SourceCode string `json:"source_code"`
	Language   string `json:"language"`
	UserID     int64  `json:"user_id"`
	ContestID  int64  `json:"contest_id"`
	ProblemID  int64  `json:"problem_id"`
}

// Case is one evaluation unit inside a job. Case 0 is always compilation;
// cases 1..N map one-to-one onto the problem's test cases. Time is elapsed
// wall-clock microseconds; memory is unused and always 0.
type Case struct {
	ID     int     `json:"id"`
	Result Verdict `json:"result"`
	Time   int64   `json:"time"`
	Memory int64   `json:"memory"`
	Info   string  `json:"info"`
}

// Job is the persisted record of one judged submission.
type Job struct {
	ID          int64      `json:"id"`
	CreatedTime string     `json:"created_time"`
	UpdatedTime string     `json:"updated_time"`
	Submission  Submission `json:"submission"`
	State       State      `json:"state"`
	Result      Verdict    `json:"result"`
	Score       float64    `json:"score"`
	Cases       []Case     `json:"cases"`
}

// User is a registered participant. IDs are assigned sequentially; names are
// globally unique.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GlobalContestID names the implicit contest spanning every registered user
// and every catalog problem.
const GlobalContestID int64 = 0

// Contest groups problems and users under a submission quota. Contest id 0 is
// reserved for the implicit global contest and is never stored.
type Contest struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	From            string  `json:"from"`
	To              string  `json:"to"`
	ProblemIDs      []int64 `json:"problem_ids"`
	UserIDs         []int64 `json:"user_ids"`
	SubmissionLimit int     `json:"submission_limit"`
}

// HasUser reports contest membership for a user id.
func (c Contest) HasUser(userID int64) bool {
	for _, id := range c.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// HasProblem reports contest membership for a problem id.
func (c Contest) HasProblem(problemID int64) bool {
	for _, id := range c.ProblemIDs {
		if id == problemID {
			return true
		}
	}
	return false
}

// Rank is one leaderboard row; scores hold one column per contest problem.
// Derived on demand, never persisted.
type Rank struct {
	User   User      `json:"user"`
	Rank   int       `json:"rank"`
	Scores []float64 `json:"scores"`
}

// timestampLayout is fixed-width with millisecond precision so that
// lexicographic comparison of rendered timestamps matches time order.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp renders t in the wire timestamp format (UTC).
func Timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// Now returns the current wire timestamp.
func Now() string {
	return Timestamp(time.Now())
}
