package repository

import "context"

// ReleasePublisher defines the interface for publishing a release on the
// remote hosting platform after its tag has been pushed.

type ReleasePublisher interface {
	// PublishRelease creates a release for an already-pushed tag.
	PublishRelease(ctx context.Context, tag, name, notes string) (string, error)
	// Enabled reports whether the publisher is configured to do anything.
	Enabled() bool
}
