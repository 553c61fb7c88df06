package usecase

import (
	"context"
	"fmt"

	"github.com/remoroo/shipit/internal/domain"
	"github.com/remoroo/shipit/internal/repository"
)

// TagComparison is the verdict of comparing the manifest version against
// the latest existing tag.
type TagComparison int

const (
	// ComparisonFirstRelease means no version tag exists yet.
	ComparisonFirstRelease TagComparison = iota
	// ComparisonHigher means the manifest version is strictly greater.
	ComparisonHigher
	// ComparisonDuplicate means the manifest version equals the latest tag.
	ComparisonDuplicate
	// ComparisonRegression means the manifest version is lower than the latest tag.
	ComparisonRegression
)

// CompareTagUseCase compares the manifest version against the highest
// existing tag by version ordering.

type CompareTagUseCase struct {
	GitRepo repository.GitRepository
}

// Execute runs the use case, returning the verdict and the latest tagged
// version (nil when no tags exist).
func (uc *CompareTagUseCase) Execute(ctx context.Context, version *domain.Version) (TagComparison, *domain.Version, error) {
	tags, err := uc.GitRepo.TagsByVersionDesc(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list tags: %w", err)
	}
	if len(tags) == 0 {
		return ComparisonFirstRelease, nil, nil
	}
	latest, err := domain.NewVersion(tags[0])
	if err != nil {
		return 0, nil, fmt.Errorf("latest tag %s is not a version: %w", tags[0], err)
	}
	switch version.Compare(latest) {
	case 0:
		return ComparisonDuplicate, latest, nil
	case -1:
		return ComparisonRegression, latest, nil
	default:
		return ComparisonHigher, latest, nil
	}
}
