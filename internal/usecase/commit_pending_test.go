package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remoroo/shipit/internal/domain"
)

func TestCommitPendingUseCase_Execute(t *testing.T) {
	t.Run("Should stage and commit with message", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := &CommitPendingUseCase{GitRepo: gitRepo}
		ctx := context.Background()
		gitRepo.On("StageAll", ctx).Return(nil)
		gitRepo.On("Commit", ctx, "fix typo").Return(nil)
		err := uc.Execute(ctx, "fix typo")
		require.NoError(t, err)
		gitRepo.AssertExpectations(t)
	})
	t.Run("Should reject empty commit message before staging", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := &CommitPendingUseCase{GitRepo: gitRepo}
		err := uc.Execute(context.Background(), "   ")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEmptyCommitMessage)
		gitRepo.AssertNotCalled(t, "StageAll")
		gitRepo.AssertNotCalled(t, "Commit")
	})
	t.Run("Should propagate staging failure", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := &CommitPendingUseCase{GitRepo: gitRepo}
		ctx := context.Background()
		gitRepo.On("StageAll", ctx).Return(errors.New("index locked"))
		err := uc.Execute(ctx, "msg")
		require.Error(t, err)
		gitRepo.AssertNotCalled(t, "Commit")
	})
}
