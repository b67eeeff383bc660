// Package controller exposes the judging pipeline over HTTP.
package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"minoj/internal/judge/model"
	"minoj/internal/judge/repository"
	"minoj/internal/judge/service"
	"minoj/pkg/utils/response"
)

// JobController handles job submission, listing and re-judging.
type JobController struct {
	svc *service.Service
}

// NewJobController creates a new controller.
func NewJobController(svc *service.Service) *JobController {
	return &JobController{svc: svc}
}

// PostJobs admits and judges one submission synchronously.
func (h *JobController) PostJobs(c *gin.Context) {
	var sub model.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		response.BadRequest(c, "Invalid argument "+err.Error())
		return
	}
	job, err := h.svc.Submit(c.Request.Context(), sub)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, job)
}

// GetJobs lists jobs filtered by language, problem_id, result and state.
func (h *JobController) GetJobs(c *gin.Context) {
	var filter repository.Filter

	if raw, ok := c.GetQuery("language"); ok {
		filter.Language = &raw
	}
	if raw, ok := c.GetQuery("problem_id"); ok {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(c, "Invalid argument problem_id")
			return
		}
		filter.ProblemID = &id
	}
	if raw, ok := c.GetQuery("result"); ok {
		result := model.Verdict(raw)
		if !result.Valid() {
			response.BadRequest(c, "Invalid argument result")
			return
		}
		filter.Result = &result
	}
	if raw, ok := c.GetQuery("state"); ok {
		state := model.State(raw)
		if !state.Valid() {
			response.BadRequest(c, "Invalid argument state")
			return
		}
		filter.State = &state
	}

	response.OK(c, h.svc.List(filter))
}

// GetJobByID fetches one job.
func (h *JobController) GetJobByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.MalformedID(c, "Job "+c.Param("id")+" not found.")
		return
	}
	job, err := h.svc.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, job)
}

// PutJobByID re-runs the pipeline for an existing job.
func (h *JobController) PutJobByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.MalformedID(c, "Job "+c.Param("id")+" not found.")
		return
	}
	job, err := h.svc.Rejudge(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, job)
}
