package service

import "context"

// ManifestService defines the interface for reading the declared project
// version from a manifest file.

type ManifestService interface {
	// ReadVersion returns the raw version string and the manifest path it
	// was read from.
	ReadVersion(ctx context.Context) (version string, source string, err error)
}
