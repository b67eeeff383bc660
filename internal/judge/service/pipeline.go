package service

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"minoj/internal/judge/catalog"
	"minoj/internal/judge/model"
	"minoj/internal/judge/sandbox/runner"
	"minoj/pkg/utils/logger"
)

// Pipeline turns one submission into a full case list, overall verdict and
// score. The same orchestration serves the initial run and re-judging.
type Pipeline struct {
	runner   *runner.Runner
	workRoot string
}

// NewPipeline creates a pipeline writing scratch directories under workRoot.
func NewPipeline(r *runner.Runner, workRoot string) *Pipeline {
	return &Pipeline{runner: r, workRoot: workRoot}
}

// Judge compiles the submission and runs every problem case in catalog order.
// The returned case list always has 1+len(problem.Cases) entries: index 0 is
// the compilation step, the rest map onto the problem's cases in order. Once
// the running verdict leaves Running, remaining cases are recorded as Waiting
// without executing. Environment failures classify the job as System Error
// instead of failing the service. The scratch directory is removed before
// returning on every path. ctx carries request metadata for logging only; a
// job runs to completion even when the request that started it is gone.
func (p *Pipeline) Judge(ctx context.Context, jobID int64, sub model.Submission, lang catalog.Language, problem catalog.Problem) ([]model.Case, model.Verdict, float64) {
	cases := make([]model.Case, 0, 1+len(problem.Cases))

	workDir := filepath.Join(p.workRoot, strconv.FormatInt(jobID, 10))
	if err := os.MkdirAll(workDir, 0755); err != nil {
		logger.Error(ctx, "create scratch dir failed", zap.Int64("job_id", jobID), zap.Error(err))
		cases = append(cases, model.Case{ID: 0, Result: model.VerdictSystemError, Info: err.Error()})
		for i := range problem.Cases {
			cases = append(cases, model.Case{ID: i + 1, Result: model.VerdictWaiting})
		}
		return cases, model.VerdictSystemError, 0
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			logger.Warn(ctx, "remove scratch dir failed", zap.String("dir", workDir), zap.Error(err))
		}
	}()

	running := model.VerdictRunning

	compileCase := model.Case{ID: 0}
	exit, err := p.runner.Compile(workDir, lang, sub.SourceCode)
	switch {
	case err != nil:
		compileCase.Result = model.VerdictSystemError
		compileCase.Info = err.Error()
		running = model.VerdictSystemError
	case exit == 0:
		compileCase.Result = model.VerdictCompilationSuccess
	default:
		compileCase.Result = model.VerdictCompilationError
		running = model.VerdictCompilationError
	}
	cases = append(cases, compileCase)

	score := 0.0
	// caseVerdict is carried across iterations: an exit code the protocol
	// does not classify records the previous case's verdict again.
	caseVerdict := model.VerdictWaiting
	for i, tc := range problem.Cases {
		entry := model.Case{ID: i + 1}
		if running != model.VerdictRunning {
			entry.Result = model.VerdictWaiting
			cases = append(cases, entry)
			continue
		}

		res, err := p.runner.RunCase(workDir, tc, problem.Type)
		if err != nil {
			caseVerdict = model.VerdictSystemError
			running = model.VerdictSystemError
			entry.Info = err.Error()
			logger.Error(ctx, "case execution failed", zap.Int64("job_id", jobID), zap.Int("case", i+1), zap.Error(err))
		} else {
			entry.Time = res.Elapsed.Microseconds()
			switch res.Outcome {
			case runner.OutcomeAccepted:
				caseVerdict = model.VerdictAccepted
				score += tc.Score
			case runner.OutcomeWrongAnswer:
				caseVerdict = model.VerdictWrongAnswer
				running = model.VerdictWrongAnswer
			case runner.OutcomeRuntimeError:
				caseVerdict = model.VerdictRuntimeError
				running = model.VerdictRuntimeError
			case runner.OutcomeTimeLimitExceeded:
				caseVerdict = model.VerdictTimeLimitExceeded
				running = model.VerdictTimeLimitExceeded
			case runner.OutcomeUnclassified:
				// verdict and running result stay as they were
			}
		}
		entry.Result = caseVerdict
		cases = append(cases, entry)
	}

	result := running
	if allAccepted(cases[1:]) {
		result = model.VerdictAccepted
	}
	return cases, result, score
}

func allAccepted(cases []model.Case) bool {
	for i := range cases {
		if cases[i].Result != model.VerdictAccepted {
			return false
		}
	}
	return true
}
