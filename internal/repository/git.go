package repository

import "context"

// GitRepository defines the interface for the version-control collaborator.

type GitRepository interface {
	CurrentBranch(ctx context.Context) (string, error)
	IsClean(ctx context.Context) (bool, error)
	ChangedPaths(ctx context.Context) ([]string, error)
	StageAll(ctx context.Context) error
	Commit(ctx context.Context, message string) error
	CheckoutBranch(ctx context.Context, name string) error
	Pull(ctx context.Context, remote, branch string) error
	AheadCount(ctx context.Context, remote, branch string) (int, error)
	TagsByVersionDesc(ctx context.Context) ([]string, error)
	TagExists(ctx context.Context, tag string) (bool, error)
	CreateTag(ctx context.Context, tag, msg string) error
	DeleteTag(ctx context.Context, tag string) error
	PushBranch(ctx context.Context, remote, branch string) error
	PushTag(ctx context.Context, remote, tag string) error
	RemoteURL(ctx context.Context, remote string) (string, error)
}
