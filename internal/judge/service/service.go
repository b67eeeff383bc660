// Package service orchestrates admission, compilation and case execution
// into job records.
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"minoj/internal/judge/catalog"
	"minoj/internal/judge/model"
	"minoj/internal/judge/repository"
	"minoj/pkg/utils/logger"
)

// Service is the judging entrypoint used by the HTTP layer.
type Service struct {
	admission *Admission
	pipeline  *Pipeline
	catalog   *catalog.Catalog
	jobs      *repository.JobStore
}

// Config holds service dependencies.
type Config struct {
	Admission *Admission
	Pipeline  *Pipeline
	Catalog   *catalog.Catalog
	Jobs      *repository.JobStore
}

// NewService creates a judge service.
func NewService(cfg Config) (*Service, error) {
	if cfg.Admission == nil {
		return nil, fmt.Errorf("admission checker is required")
	}
	if cfg.Pipeline == nil {
		return nil, fmt.Errorf("pipeline is required")
	}
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if cfg.Jobs == nil {
		return nil, fmt.Errorf("job store is required")
	}
	return &Service{
		admission: cfg.Admission,
		pipeline:  cfg.Pipeline,
		catalog:   cfg.Catalog,
		jobs:      cfg.Jobs,
	}, nil
}

// Submit admits, judges and stores one submission synchronously, returning
// the finished job.
func (s *Service) Submit(ctx context.Context, sub model.Submission) (model.Job, error) {
	lang, problem, err := s.admission.Check(sub)
	if err != nil {
		return model.Job{}, err
	}

	id := s.jobs.NextID()
	created := model.Now()
	cases, result, score := s.pipeline.Judge(ctx, id, sub, lang, problem)

	job := model.Job{
		ID:          id,
		CreatedTime: created,
		UpdatedTime: created,
		Submission:  sub,
		State:       model.StateFinished,
		Result:      result,
		Score:       score,
		Cases:       cases,
	}
	s.jobs.Append(job)

	logger.Info(ctx, "job judged",
		zap.Int64("job_id", id),
		zap.Int64("user_id", sub.UserID),
		zap.Int64("problem_id", sub.ProblemID),
		zap.String("result", string(result)),
		zap.Float64("score", score),
	)
	return job, nil
}

// Rejudge re-runs the pipeline for an existing job, replacing its cases,
// score, result, state and updated time in place. The id and submission are
// unchanged. A job whose language or problem has left the catalog cannot be
// re-judged.
func (s *Service) Rejudge(ctx context.Context, id int64) (model.Job, error) {
	job, err := s.jobs.Get(id)
	if err != nil {
		return model.Job{}, err
	}
	lang, err := s.catalog.Language(job.Submission.Language)
	if err != nil {
		return model.Job{}, err
	}
	problem, err := s.catalog.Problem(job.Submission.ProblemID)
	if err != nil {
		return model.Job{}, err
	}

	cases, result, score := s.pipeline.Judge(ctx, id, job.Submission, lang, problem)
	job.Cases = cases
	job.Result = result
	job.Score = score
	job.State = model.StateFinished
	job.UpdatedTime = model.Now()
	if err := s.jobs.Update(job); err != nil {
		return model.Job{}, err
	}

	logger.Info(ctx, "job rejudged",
		zap.Int64("job_id", id),
		zap.String("result", string(result)),
		zap.Float64("score", score),
	)
	return job, nil
}

// Get fetches one job by id.
func (s *Service) Get(id int64) (model.Job, error) {
	return s.jobs.Get(id)
}

// List returns jobs matching the filter in creation order.
func (s *Service) List(filter repository.Filter) []model.Job {
	return s.jobs.List(filter)
}
