package orchestrator

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/remoroo/shipit/internal/domain"
)

// Mock for GitRepository - implements ALL methods from the interface
type mockGitRepository struct{ mock.Mock }

func (m *mockGitRepository) CurrentBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *mockGitRepository) IsClean(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}
func (m *mockGitRepository) ChangedPaths(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if paths := args.Get(0); paths != nil {
		return paths.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockGitRepository) StageAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *mockGitRepository) Commit(ctx context.Context, message string) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}
func (m *mockGitRepository) CheckoutBranch(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}
func (m *mockGitRepository) Pull(ctx context.Context, remote, branch string) error {
	args := m.Called(ctx, remote, branch)
	return args.Error(0)
}
func (m *mockGitRepository) AheadCount(ctx context.Context, remote, branch string) (int, error) {
	args := m.Called(ctx, remote, branch)
	return args.Int(0), args.Error(1)
}
func (m *mockGitRepository) TagsByVersionDesc(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if tags := args.Get(0); tags != nil {
		return tags.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockGitRepository) TagExists(ctx context.Context, tag string) (bool, error) {
	args := m.Called(ctx, tag)
	return args.Bool(0), args.Error(1)
}
func (m *mockGitRepository) CreateTag(ctx context.Context, tag, msg string) error {
	args := m.Called(ctx, tag, msg)
	return args.Error(0)
}
func (m *mockGitRepository) DeleteTag(ctx context.Context, tag string) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}
func (m *mockGitRepository) PushBranch(ctx context.Context, remote, name string) error {
	args := m.Called(ctx, remote, name)
	return args.Error(0)
}
func (m *mockGitRepository) PushTag(ctx context.Context, remote, tag string) error {
	args := m.Called(ctx, remote, tag)
	return args.Error(0)
}
func (m *mockGitRepository) RemoteURL(ctx context.Context, remote string) (string, error) {
	args := m.Called(ctx, remote)
	return args.String(0), args.Error(1)
}

// Mock for ManifestService
type mockManifestService struct{ mock.Mock }

func (m *mockManifestService) ReadVersion(ctx context.Context) (string, string, error) {
	args := m.Called(ctx)
	return args.String(0), args.String(1), args.Error(2)
}

// Mock for Prompter
type mockPrompter struct{ mock.Mock }

func (m *mockPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	args := m.Called(ctx, question)
	return args.Bool(0), args.Error(1)
}
func (m *mockPrompter) Input(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// Mock for RunJournal
type mockRunJournal struct{ mock.Mock }

func (m *mockRunJournal) Save(ctx context.Context, run *domain.RunRecord) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}
func (m *mockRunJournal) Load(ctx context.Context, runID string) (*domain.RunRecord, error) {
	args := m.Called(ctx, runID)
	if run := args.Get(0); run != nil {
		return run.(*domain.RunRecord), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockRunJournal) List(ctx context.Context) ([]*domain.RunRecord, error) {
	args := m.Called(ctx)
	if runs := args.Get(0); runs != nil {
		return runs.([]*domain.RunRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

// Mock for ReleasePublisher
type mockReleasePublisher struct{ mock.Mock }

func (m *mockReleasePublisher) PublishRelease(ctx context.Context, tag, name, notes string) (string, error) {
	args := m.Called(ctx, tag, name, notes)
	return args.String(0), args.Error(1)
}
func (m *mockReleasePublisher) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}
