package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"minoj/internal/contest/controller"
	contestrepo "minoj/internal/contest/repository"
	"minoj/internal/contest/service"
	"minoj/internal/judge/catalog"
	"minoj/internal/judge/model"
	jobrepo "minoj/internal/judge/repository"
	userrepo "minoj/internal/user/repository"
)

func newContestRouter() (*gin.Engine, *jobrepo.JobStore, *userrepo.UserStore) {
	gin.SetMode(gin.TestMode)
	cat := catalog.New(nil, []catalog.Problem{
		{ID: 0, Type: catalog.CompareStandard, Cases: []catalog.TestCase{{Score: 100}}},
	})
	users := userrepo.NewUserStore()
	contests := contestrepo.NewContestStore()
	jobs := jobrepo.NewJobStore()
	ranking := service.NewRankingEngine(cat, users, contests, jobs)

	h := controller.NewContestController(contests, ranking)
	router := gin.New()
	router.POST("/contests", h.PostContests)
	router.GET("/contests", h.GetContests)
	router.GET("/contests/:id", h.GetContestByID)
	router.GET("/contests/:id/ranklist", h.GetRanklist)
	return router, jobs, users
}

func postContest(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

const contestBody = `{
	"name": "weekly",
	"from": "2024-01-01T00:00:00.000Z",
	"to": "2024-01-02T00:00:00.000Z",
	"problem_ids": [0],
	"user_ids": [0],
	"submission_limit": 3
}`

func TestPostContestsCreates(t *testing.T) {
	router, _, _ := newContestRouter()
	w := postContest(router, contestBody)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var contest model.Contest
	if err := json.Unmarshal(w.Body.Bytes(), &contest); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if contest.ID != 1 || contest.Name != "weekly" {
		t.Fatalf("contest = %+v", contest)
	}
}

func TestPostContestsUpdatesExplicitID(t *testing.T) {
	router, _, _ := newContestRouter()
	postContest(router, contestBody)

	w := postContest(router, `{"id": 1, "name": "weekly-2", "problem_ids": [0], "user_ids": [0], "submission_limit": 5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
	}
	var contest model.Contest
	if err := json.Unmarshal(w.Body.Bytes(), &contest); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if contest.Name != "weekly-2" || contest.SubmissionLimit != 5 {
		t.Fatalf("contest = %+v", contest)
	}

	w = postContest(router, `{"id": 9, "name": "ghost"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown id status = %d, want 404", w.Code)
	}
}

func TestGetContestByID(t *testing.T) {
	router, _, _ := newContestRouter()
	postContest(router, contestBody)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contests/1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contests/9", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	for _, target := range []string{"/contests/abc", "/contests/abc/ranklist"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s status = %d, want 400", target, w.Code)
		}
		var body struct {
			Code   int    `json:"code"`
			Reason string `json:"reason"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body.Code != 3 || body.Reason != "ERR_NOT_FOUND" {
			t.Fatalf("%s body = %+v", target, body)
		}
	}
}

func TestGetRanklist(t *testing.T) {
	router, jobs, users := newContestRouter()
	alice, err := users.Create("alice")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	jobs.Append(model.Job{
		ID:          jobs.NextID(),
		CreatedTime: "2024-01-01T00:00:01.000Z",
		Submission:  model.Submission{UserID: alice.ID, ContestID: 0, ProblemID: 0},
		State:       model.StateFinished,
		Result:      model.VerdictAccepted,
		Score:       100,
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contests/0/ranklist?scoring_rule=highest&tie_breaker=user_id", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var ranks []model.Rank
	if err := json.Unmarshal(w.Body.Bytes(), &ranks); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(ranks) != 2 {
		t.Fatalf("rows = %d, want 2", len(ranks))
	}
	if ranks[0].User.ID != alice.ID || ranks[0].Rank != 1 {
		t.Fatalf("first row = %+v", ranks[0])
	}
}

func TestGetRanklistMalformedQuery(t *testing.T) {
	router, _, _ := newContestRouter()
	for _, target := range []string{
		"/contests/0/ranklist?scoring_rule=latest",
		"/contests/0/ranklist?tie_breaker=score",
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s status = %d, want 400", target, w.Code)
		}
		var body struct {
			Code int `json:"code"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body.Code != 1 {
			t.Fatalf("%s code = %d, want 1", target, body.Code)
		}
	}
}

func TestGetRanklistUnknownContest(t *testing.T) {
	router, _, _ := newContestRouter()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contests/9/ranklist", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
