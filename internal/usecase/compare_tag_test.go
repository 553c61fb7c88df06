package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remoroo/shipit/internal/domain"
)

func mustVersion(t *testing.T, s string) *domain.Version {
	t.Helper()
	v, err := domain.NewVersion(s)
	require.NoError(t, err)
	return v
}

func TestCompareTagUseCase_Execute(t *testing.T) {
	t.Run("Should report first release when no tags exist", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := &CompareTagUseCase{GitRepo: gitRepo}
		ctx := context.Background()
		gitRepo.On("TagsByVersionDesc", ctx).Return([]string{}, nil)
		verdict, latest, err := uc.Execute(ctx, mustVersion(t, "1.0.0"))
		require.NoError(t, err)
		assert.Equal(t, ComparisonFirstRelease, verdict)
		assert.Nil(t, latest)
	})
	t.Run("Should report higher version against latest tag", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := &CompareTagUseCase{GitRepo: gitRepo}
		ctx := context.Background()
		gitRepo.On("TagsByVersionDesc", ctx).Return([]string{"v1.2.2", "v1.2.1"}, nil)
		verdict, latest, err := uc.Execute(ctx, mustVersion(t, "1.2.3"))
		require.NoError(t, err)
		assert.Equal(t, ComparisonHigher, verdict)
		assert.Equal(t, "v1.2.2", latest.String())
	})
	t.Run("Should report duplicate when version equals latest tag", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := &CompareTagUseCase{GitRepo: gitRepo}
		ctx := context.Background()
		gitRepo.On("TagsByVersionDesc", ctx).Return([]string{"v1.0.0"}, nil)
		verdict, latest, err := uc.Execute(ctx, mustVersion(t, "1.0.0"))
		require.NoError(t, err)
		assert.Equal(t, ComparisonDuplicate, verdict)
		assert.Equal(t, "v1.0.0", latest.String())
	})
	t.Run("Should report regression when version is below latest tag", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := &CompareTagUseCase{GitRepo: gitRepo}
		ctx := context.Background()
		gitRepo.On("TagsByVersionDesc", ctx).Return([]string{"v2.0.0", "v1.0.0"}, nil)
		verdict, latest, err := uc.Execute(ctx, mustVersion(t, "1.5.0"))
		require.NoError(t, err)
		assert.Equal(t, ComparisonRegression, verdict)
		assert.Equal(t, "v2.0.0", latest.String())
	})
}
