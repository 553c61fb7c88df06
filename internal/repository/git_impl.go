package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/remoroo/shipit/internal/domain"
)

// gitRepository is the implementation of the GitRepository interface.

type gitRepository struct {
	repo  *git.Repository
	token string
}

// NewGitRepository opens the repository containing the working directory.
// The token, when non-empty, authenticates pushes and pulls over HTTPS
// remotes.
func NewGitRepository(token string) (GitRepository, error) {
	return OpenGitRepository(".", token)
}

// OpenGitRepository opens the repository at the given path, searching
// parent directories for the .git directory the way the git CLI does.
func OpenGitRepository(path, token string) (GitRepository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotARepository, path)
		}
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return &gitRepository{repo: repo, token: token}, nil
}

// CurrentBranch returns the name of the checked-out branch.
func (r *gitRepository) CurrentBranch(_ context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return head.Name().Short(), nil
}

// IsClean reports whether the working tree has no uncommitted changes.
func (r *gitRepository) IsClean(ctx context.Context) (bool, error) {
	paths, err := r.ChangedPaths(ctx)
	if err != nil {
		return false, err
	}
	return len(paths) == 0, nil
}

// ChangedPaths lists paths with uncommitted changes, staged or not.
func (r *gitRepository) ChangedPaths(_ context.Context) ([]string, error) {
	w, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	status, err := w.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	var paths []string
	for path, st := range status {
		if st.Worktree == git.Unmodified && st.Staging == git.Unmodified {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}

// StageAll stages every change in the working tree.
func (r *gitRepository) StageAll(_ context.Context) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	if err := w.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	return nil
}

// Commit creates a commit with the given message.
func (r *gitRepository) Commit(_ context.Context, message string) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	if _, err := w.Commit(message, &git.CommitOptions{Author: r.signature()}); err != nil {
		return fmt.Errorf("failed to create commit: %w", err)
	}
	return nil
}

// CheckoutBranch switches to the specified branch.
func (r *gitRepository) CheckoutBranch(_ context.Context, name string) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	return w.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
	})
}

// Pull fast-forwards the branch from the remote.
func (r *gitRepository) Pull(ctx context.Context, remote, branch string) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	err = w.PullContext(ctx, &git.PullOptions{
		RemoteName:    remote,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		Auth:          r.authFor(remote),
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return fmt.Errorf("failed to pull %s from %s: %w", branch, remote, err)
	}
	return nil
}

// AheadCount returns the number of local commits not yet on the remote
// tracking branch. A branch that was never pushed counts as zero ahead,
// matching the informational intent of the summary.
func (r *gitRepository) AheadCount(_ context.Context, remote, branch string) (int, error) {
	remoteRef, err := r.repo.Reference(plumbing.NewRemoteReferenceName(remote, branch), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to resolve tracking branch %s/%s: %w", remote, branch, err)
	}
	head, err := r.repo.Head()
	if err != nil {
		return 0, fmt.Errorf("failed to get HEAD: %w", err)
	}
	// The walk stops at the remote tip or, when the branches diverged, at
	// the merge base, so only commits unique to the local side count.
	boundary := map[plumbing.Hash]bool{remoteRef.Hash(): true}
	headCommit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return 0, fmt.Errorf("failed to resolve HEAD commit: %w", err)
	}
	remoteCommit, err := r.repo.CommitObject(remoteRef.Hash())
	if err != nil {
		return 0, fmt.Errorf("failed to resolve %s/%s commit: %w", remote, branch, err)
	}
	bases, err := headCommit.MergeBase(remoteCommit)
	if err != nil {
		return 0, fmt.Errorf("failed to find merge base with %s/%s: %w", remote, branch, err)
	}
	for _, base := range bases {
		boundary[base.Hash] = true
	}
	commits, err := r.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return 0, fmt.Errorf("failed to walk commits: %w", err)
	}
	var count int
	err = commits.ForEach(func(c *object.Commit) error {
		if boundary[c.Hash] {
			return storer.ErrStop
		}
		count++
		return nil
	})
	if err != nil && err != storer.ErrStop {
		return 0, fmt.Errorf("failed to iterate commits: %w", err)
	}
	return count, nil
}

// TagsByVersionDesc lists version-shaped tags sorted highest first,
// the go-git equivalent of `git tag --sort=-v:refname`.
func (r *gitRepository) TagsByVersionDesc(_ context.Context) ([]string, error) {
	tagRefs, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	type versionedTag struct {
		name    string
		version *semver.Version
	}
	var tags []versionedTag
	if err := tagRefs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		v, err := semver.NewVersion(name)
		if err != nil {
			return nil // Skip tags that are not version-shaped
		}
		tags = append(tags, versionedTag{name: name, version: v})
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	sort.Slice(tags, func(i, j int) bool {
		return tags[i].version.GreaterThan(tags[j].version)
	})
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.name
	}
	return names, nil
}

// TagExists checks if a local tag exists.
func (r *gitRepository) TagExists(_ context.Context, tag string) (bool, error) {
	_, err := r.repo.Tag(tag)
	if err == git.ErrTagNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check tag %s: %w", tag, err)
	}
	return true, nil
}

// CreateTag creates an annotated tag at HEAD.
func (r *gitRepository) CreateTag(_ context.Context, tag, msg string) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to get HEAD: %w", err)
	}
	_, err = r.repo.CreateTag(tag, head.Hash(), &git.CreateTagOptions{
		Message: msg,
		Tagger:  r.signature(),
	})
	if err != nil {
		return fmt.Errorf("failed to create tag %s: %w", tag, err)
	}
	return nil
}

// DeleteTag removes a local tag.
func (r *gitRepository) DeleteTag(_ context.Context, tag string) error {
	if err := r.repo.DeleteTag(tag); err != nil {
		return fmt.Errorf("failed to delete tag %s: %w", tag, err)
	}
	return nil
}

// PushBranch pushes a branch to the remote.
func (r *gitRepository) PushBranch(ctx context.Context, remote, name string) error {
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []gitconfig.RefSpec{gitconfig.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", name, name))},
		Auth:       r.authFor(remote),
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return fmt.Errorf("failed to push branch %s: %w", name, err)
	}
	return nil
}

// PushTag pushes a tag to the remote.
func (r *gitRepository) PushTag(ctx context.Context, remote, tag string) error {
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []gitconfig.RefSpec{gitconfig.RefSpec(fmt.Sprintf("refs/tags/%s:refs/tags/%s", tag, tag))},
		Auth:       r.authFor(remote),
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return fmt.Errorf("failed to push tag %s: %w", tag, err)
	}
	return nil
}

// RemoteURL returns the first configured URL of the named remote.
func (r *gitRepository) RemoteURL(_ context.Context, remote string) (string, error) {
	rem, err := r.repo.Remote(remote)
	if err != nil {
		return "", fmt.Errorf("failed to get remote %s: %w", remote, err)
	}
	urls := rem.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no configured URL", remote)
	}
	return urls[0], nil
}

// signature builds the tagger/author identity from the repository config,
// falling back to a fixed identity when none is configured.
func (r *gitRepository) signature() *object.Signature {
	name := "shipit"
	email := "shipit@remoroo.dev"
	if cfg, err := r.repo.ConfigScoped(gitconfig.GlobalScope); err == nil {
		if cfg.User.Name != "" {
			name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			email = cfg.User.Email
		}
	}
	return &object.Signature{
		Name:  name,
		Email: email,
		When:  time.Now(),
	}
}

// authFor returns token authentication for the named remote when a token
// is configured and the remote speaks HTTP(S). SSH remotes authenticate
// through the ambient SSH setup, so they must see an untyped nil here:
// a typed nil or a basic-auth value makes the SSH transport reject the
// session as an invalid auth method.
func (r *gitRepository) authFor(remote string) transport.AuthMethod {
	if r.token == "" {
		return nil
	}
	rem, err := r.repo.Remote(remote)
	if err != nil || len(rem.Config().URLs) == 0 {
		return nil
	}
	url := rem.Config().URLs[0]
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil
	}
	return &http.BasicAuth{
		Username: "x-access-token",
		Password: r.token,
	}
}
