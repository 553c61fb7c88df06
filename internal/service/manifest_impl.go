package service

import (
	"context"
	"fmt"
	"regexp"

	"github.com/spf13/afero"

	"github.com/remoroo/shipit/internal/domain"
)

// versionKeyRegex matches `version = "X.Y.Z"` and `version="X.Y.Z"` lines,
// the forms used by pyproject.toml and setup.py respectively.
var versionKeyRegex = regexp.MustCompile(`(?m)^\s*version\s*=\s*"(\d+\.\d+\.\d+)"`)

// manifestService is the implementation of the ManifestService interface.
type manifestService struct {
	fs         afero.Fs
	candidates []string
}

// NewManifestService creates a ManifestService that tries the candidate
// manifest files in order and returns the first version found.
func NewManifestService(fs afero.Fs, candidates []string) ManifestService {
	return &manifestService{
		fs:         fs,
		candidates: candidates,
	}
}

// ReadVersion reads the declared version from the first manifest that has
// one. Missing candidate files are skipped; a present manifest without a
// recognizable version key is skipped too.
func (s *manifestService) ReadVersion(_ context.Context) (string, string, error) {
	for _, path := range s.candidates {
		exists, err := afero.Exists(s.fs, path)
		if err != nil {
			return "", "", fmt.Errorf("failed to check manifest %s: %w", path, err)
		}
		if !exists {
			continue
		}
		data, err := afero.ReadFile(s.fs, path)
		if err != nil {
			return "", "", fmt.Errorf("failed to read manifest %s: %w", path, err)
		}
		match := versionKeyRegex.FindSubmatch(data)
		if match == nil {
			continue
		}
		return string(match[1]), path, nil
	}
	return "", "", fmt.Errorf("%w: tried %v", domain.ErrVersionNotFound, s.candidates)
}
