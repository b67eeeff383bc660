// Package runner executes one submission's compile and test-case steps inside
// a per-job scratch directory. Isolation is limited to the scratch directory
// and a wall-clock timeout; there is no namespace or cgroup confinement.
package runner

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/shlex"
	"golang.org/x/sys/unix"

	"minoj/internal/judge/catalog"
	appErr "minoj/pkg/errors"
)

const (
	// ArtifactName is the fixed name of the compiled binary inside the
	// scratch directory.
	ArtifactName = "main"
	// outputName is the scratch file user stdout is redirected to.
	outputName = "test.out"

	inputPlaceholder  = "%INPUT%"
	outputPlaceholder = "%OUTPUT%"

	// runtimeErrorExit is the exit code judged programs use to signal a
	// runtime error.
	runtimeErrorExit = 101
)

// Outcome classifies one executed test case.
type Outcome int

const (
	OutcomeAccepted Outcome = iota
	OutcomeWrongAnswer
	OutcomeRuntimeError
	OutcomeTimeLimitExceeded
	// OutcomeUnclassified marks exit codes the protocol assigns no verdict
	// to; the pipeline decides what to record for them.
	OutcomeUnclassified
)

// CaseResult is the raw result of executing one test case.
type CaseResult struct {
	Outcome  Outcome
	ExitCode int
	Elapsed  time.Duration
}

// Runner owns subprocess execution for compile and run steps.
type Runner struct{}

// New creates a runner.
func New() *Runner {
	return &Runner{}
}

// Compile writes the submitted source into workDir under the language's file
// name and runs the toolchain command to completion. Compilation has no
// timeout and is never interrupted; a job runs to its end once started. The
// returned exit code distinguishes compiler rejection (non-zero) from success
// (zero); a non-nil error means the environment failed before an exit status
// existed.
func (r *Runner) Compile(workDir string, lang catalog.Language, sourceCode string) (int, error) {
	srcPath := filepath.Join(workDir, lang.FileName)
	if err := os.WriteFile(srcPath, []byte(sourceCode), 0644); err != nil {
		return 0, appErr.Wrapf(err, appErr.Internal, "write source file failed")
	}

	argv, err := buildCommand(lang.Command, srcPath, filepath.Join(workDir, ArtifactName))
	if err != nil {
		return 0, err
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, appErr.Wrapf(err, appErr.Internal, "spawn compiler failed")
	}
	return 0, nil
}

// RunCase executes the compiled artifact against one test case: stdin from
// the case input file, stdout into a scratch file, stderr discarded, bounded
// by the case's wall-clock time limit (microseconds). The time limit is the
// only thing that kills the child; nothing else interrupts a running case.
// On exit code 0 the produced output is compared against the answer file
// under the problem's compare mode.
func (r *Runner) RunCase(workDir string, tc catalog.TestCase, mode catalog.CompareMode) (CaseResult, error) {
	inFile, err := os.Open(tc.InputFile)
	if err != nil {
		return CaseResult{}, appErr.Wrapf(err, appErr.Internal, "open input file failed")
	}
	defer inFile.Close()

	outPath := filepath.Join(workDir, outputName)
	outFile, err := os.Create(outPath)
	if err != nil {
		return CaseResult{}, appErr.Wrapf(err, appErr.Internal, "create output file failed")
	}
	defer outFile.Close()

	cmd := exec.Command(filepath.Join(workDir, ArtifactName))
	cmd.Stdin = inFile
	cmd.Stdout = outFile
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return CaseResult{}, appErr.Wrapf(err, appErr.Internal, "spawn artifact failed")
	}

	var timedOut atomic.Bool
	done := make(chan struct{})
	go func() {
		limit := time.Duration(tc.TimeLimit) * time.Microsecond
		select {
		case <-time.After(limit):
			timedOut.Store(true)
			killProcessGroup(cmd.Process.Pid)
		case <-done:
		}
	}()

	waitErr := cmd.Wait()
	close(done)
	elapsed := time.Since(start)

	res := CaseResult{Elapsed: elapsed, ExitCode: exitCode(waitErr, cmd)}
	switch {
	case timedOut.Load():
		res.Outcome = OutcomeTimeLimitExceeded
	case res.ExitCode == runtimeErrorExit:
		res.Outcome = OutcomeRuntimeError
	case res.ExitCode == 0:
		got, err := os.ReadFile(outPath)
		if err != nil {
			return CaseResult{}, appErr.Wrapf(err, appErr.Internal, "read produced output failed")
		}
		want, err := os.ReadFile(tc.AnswerFile)
		if err != nil {
			return CaseResult{}, appErr.Wrapf(err, appErr.Internal, "read answer file failed")
		}
		if outputsMatch(mode, string(got), string(want)) {
			res.Outcome = OutcomeAccepted
		} else {
			res.Outcome = OutcomeWrongAnswer
		}
	default:
		res.Outcome = OutcomeUnclassified
	}
	return res, nil
}

// buildCommand splits the command template and substitutes the source and
// artifact paths for the %INPUT% and %OUTPUT% placeholders.
func buildCommand(template, inputPath, outputPath string) ([]string, error) {
	argv, err := shlex.Split(template)
	if err != nil {
		return nil, appErr.Wrapf(err, appErr.Internal, "parse command template failed")
	}
	if len(argv) == 0 {
		return nil, appErr.New(appErr.Internal).WithMessage("empty command template")
	}
	for i, arg := range argv {
		arg = strings.ReplaceAll(arg, inputPlaceholder, inputPath)
		arg = strings.ReplaceAll(arg, outputPlaceholder, outputPath)
		argv[i] = arg
	}
	return argv, nil
}

// killProcessGroup kills the child and anything it spawned.
func killProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = unix.Kill(-pid, unix.SIGKILL)
}

func exitCode(waitErr error, cmd *exec.Cmd) int {
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	if waitErr == nil {
		return 0
	}
	return -1
}
