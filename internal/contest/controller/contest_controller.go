// Package controller exposes contests and leaderboards over HTTP.
package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"minoj/internal/contest/repository"
	"minoj/internal/contest/service"
	"minoj/internal/judge/model"
	"minoj/pkg/utils/response"
)

// ContestController handles contest management and ranklist requests.
type ContestController struct {
	contests *repository.ContestStore
	ranking  *service.RankingEngine
}

// NewContestController creates a new controller.
func NewContestController(contests *repository.ContestStore, ranking *service.RankingEngine) *ContestController {
	return &ContestController{contests: contests, ranking: ranking}
}

type contestRequest struct {
	ID              *int64  `json:"id"`
	Name            string  `json:"name"`
	From            string  `json:"from"`
	To              string  `json:"to"`
	ProblemIDs      []int64 `json:"problem_ids"`
	UserIDs         []int64 `json:"user_ids"`
	SubmissionLimit int     `json:"submission_limit"`
}

// PostContests creates a contest when no id is given, otherwise replaces the
// contest with that id.
func (h *ContestController) PostContests(c *gin.Context) {
	var req contestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid argument "+err.Error())
		return
	}

	contest := model.Contest{
		Name:            req.Name,
		From:            req.From,
		To:              req.To,
		ProblemIDs:      req.ProblemIDs,
		UserIDs:         req.UserIDs,
		SubmissionLimit: req.SubmissionLimit,
	}

	if req.ID == nil {
		response.OK(c, h.contests.Create(contest))
		return
	}

	contest.ID = *req.ID
	if err := h.contests.Update(contest); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, contest)
}

// GetContests lists all contests sorted by id.
func (h *ContestController) GetContests(c *gin.Context) {
	response.OK(c, h.contests.List())
}

// GetContestByID fetches one contest.
func (h *ContestController) GetContestByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.MalformedID(c, "Contest "+c.Param("id")+" not found.")
		return
	}
	contest, err := h.contests.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, contest)
}

// GetRanklist computes the contest leaderboard on demand.
func (h *ContestController) GetRanklist(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.MalformedID(c, "Contest "+c.Param("id")+" not found.")
		return
	}
	rule, err := service.ParseScoringRule(c.Query("scoring_rule"))
	if err != nil {
		response.Error(c, err)
		return
	}
	tie, err := service.ParseTieBreaker(c.Query("tie_breaker"))
	if err != nil {
		response.Error(c, err)
		return
	}
	ranks, err := h.ranking.Ranklist(id, rule, tie)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, ranks)
}
