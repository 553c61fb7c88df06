package usecase

import (
	"context"
	"fmt"

	"github.com/remoroo/shipit/internal/repository"
)

// SyncBranchUseCase switches to the release branch and pulls the latest
// commits from the remote.

type SyncBranchUseCase struct {
	GitRepo repository.GitRepository
}

// Execute runs the use case.
func (uc *SyncBranchUseCase) Execute(ctx context.Context, remote, branch string) error {
	if err := uc.GitRepo.CheckoutBranch(ctx, branch); err != nil {
		return fmt.Errorf("failed to switch to %s: %w", branch, err)
	}
	if err := uc.GitRepo.Pull(ctx, remote, branch); err != nil {
		return fmt.Errorf("failed to pull %s: %w", branch, err)
	}
	return nil
}
