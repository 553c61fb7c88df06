package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/remoroo/shipit/internal/domain"
	"github.com/remoroo/shipit/internal/repository"
)

// CommitPendingUseCase stages and commits every pending change in the
// working tree.

type CommitPendingUseCase struct {
	GitRepo repository.GitRepository
}

// Execute runs the use case.
func (uc *CommitPendingUseCase) Execute(ctx context.Context, message string) error {
	if strings.TrimSpace(message) == "" {
		return domain.ErrEmptyCommitMessage
	}
	if err := uc.GitRepo.StageAll(ctx); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	if err := uc.GitRepo.Commit(ctx, message); err != nil {
		return fmt.Errorf("failed to commit changes: %w", err)
	}
	return nil
}
