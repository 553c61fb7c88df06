package repository

import (
	"context"
)

// noopPublisher is used when no GitHub token is configured; the publish
// step is skipped entirely.
type noopPublisher struct{}

// NewNoopPublisher creates a ReleasePublisher that publishes nothing.
func NewNoopPublisher() ReleasePublisher {
	return &noopPublisher{}
}

func (p *noopPublisher) PublishRelease(_ context.Context, _, _, _ string) (string, error) {
	return "", nil
}

func (p *noopPublisher) Enabled() bool {
	return false
}
