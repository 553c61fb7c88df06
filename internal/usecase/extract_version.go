package usecase

import (
	"context"
	"fmt"

	"github.com/remoroo/shipit/internal/domain"
	"github.com/remoroo/shipit/internal/service"
)

// ExtractVersionUseCase reads and parses the declared version from the
// project manifest.

type ExtractVersionUseCase struct {
	ManifestSvc service.ManifestService
}

// Execute runs the use case.
func (uc *ExtractVersionUseCase) Execute(ctx context.Context) (*domain.Version, string, error) {
	raw, source, err := uc.ManifestSvc.ReadVersion(ctx)
	if err != nil {
		return nil, "", err
	}
	version, err := domain.NewVersion(raw)
	if err != nil {
		return nil, "", fmt.Errorf("manifest %s declares invalid version %q: %w", source, raw, err)
	}
	return version, source, nil
}
