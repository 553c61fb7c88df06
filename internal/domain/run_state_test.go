package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRecord_Steps(t *testing.T) {
	t.Run("Should record step lifecycle", func(t *testing.T) {
		run := NewRunRecord("run-1")
		assert.Equal(t, RunStatusPending, run.Status)
		run.BeginStep(StepCheckBranch)
		assert.Equal(t, RunStatusRunning, run.Status)
		require.NotNil(t, run.LastStep())
		assert.Equal(t, StepStatusRunning, run.LastStep().Status)
		run.CompleteStep(StepCheckBranch, map[string]any{"branch": "main"})
		assert.Equal(t, StepStatusCompleted, run.LastStep().Status)
		assert.Equal(t, "main", run.LastStep().Detail["branch"])
		assert.NotNil(t, run.LastStep().CompletedAt)
	})
	t.Run("Should record skipped steps", func(t *testing.T) {
		run := NewRunRecord("run-2")
		run.BeginStep(StepCommitPending)
		run.SkipStep(StepCommitPending)
		assert.Equal(t, StepStatusSkipped, run.LastStep().Status)
	})
	t.Run("Should record failed steps with the error", func(t *testing.T) {
		run := NewRunRecord("run-3")
		run.BeginStep(StepPushBranch)
		run.FailStep(StepPushBranch, errors.New("connection reset"))
		assert.Equal(t, StepStatusFailed, run.LastStep().Status)
		assert.Equal(t, "connection reset", run.LastStep().Error)
	})
}

func TestRunRecord_Terminal(t *testing.T) {
	t.Run("Should mark success", func(t *testing.T) {
		run := NewRunRecord("run-4")
		run.MarkSucceeded()
		assert.Equal(t, RunStatusSucceeded, run.Status)
	})
	t.Run("Should mark user declines as cancelled", func(t *testing.T) {
		run := NewRunRecord("run-5")
		run.MarkTerminated(fmt.Errorf("release not confirmed: %w", ErrUserCancelled))
		assert.Equal(t, RunStatusCancelled, run.Status)
		assert.Equal(t, "UserCancelled", run.FailureKind)
	})
	t.Run("Should mark guard failures as failed with their kind", func(t *testing.T) {
		run := NewRunRecord("run-6")
		run.MarkTerminated(fmt.Errorf("1.0.0 already released: %w", ErrDuplicateVersion))
		assert.Equal(t, RunStatusFailed, run.Status)
		assert.Equal(t, "DuplicateVersion", run.FailureKind)
	})
}

func TestFailureKind(t *testing.T) {
	t.Run("Should classify wrapped sentinel errors", func(t *testing.T) {
		assert.Equal(t, "NotARepository", FailureKind(fmt.Errorf("open: %w", ErrNotARepository)))
		assert.Equal(t, "PushFailed", FailureKind(fmt.Errorf("%w: timeout", ErrPushFailed)))
		assert.Equal(t, "TagPushFailed", FailureKind(ErrTagPushFailed))
	})
	t.Run("Should return Unknown for unrelated errors", func(t *testing.T) {
		assert.Equal(t, "Unknown", FailureKind(errors.New("boom")))
	})
}

func TestIsCancellation(t *testing.T) {
	t.Run("Should detect user cancellation", func(t *testing.T) {
		assert.True(t, IsCancellation(fmt.Errorf("wrapped: %w", ErrUserCancelled)))
		assert.False(t, IsCancellation(ErrDuplicateVersion))
	})
}
