package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/remoroo/shipit/internal/config"
	"github.com/remoroo/shipit/internal/domain"
	"github.com/remoroo/shipit/internal/repository"
	"github.com/remoroo/shipit/internal/service"
	"github.com/remoroo/shipit/internal/usecase"
)

// errSkipStep marks a step as skipped rather than completed or failed.
var errSkipStep = errors.New("step skipped")

// ReleaseOrchestrator runs the interactive release workflow: validate the
// repository state, read the manifest version, create the release tag and
// push branch and tag to the remote. Every step is guarded; a guard failure
// or a user decline terminates the run.
type ReleaseOrchestrator struct {
	gitRepo     repository.GitRepository
	manifestSvc service.ManifestService
	prompter    service.Prompter
	journal     repository.RunJournal
	publisher   repository.ReleasePublisher
	cfg         *config.Config
	log         *zap.Logger
	out         io.Writer
}

// NewReleaseOrchestrator creates a new release orchestrator.
func NewReleaseOrchestrator(
	gitRepo repository.GitRepository,
	manifestSvc service.ManifestService,
	prompter service.Prompter,
	journal repository.RunJournal,
	publisher repository.ReleasePublisher,
	cfg *config.Config,
	log *zap.Logger,
	out io.Writer,
) *ReleaseOrchestrator {
	return &ReleaseOrchestrator{
		gitRepo:     gitRepo,
		manifestSvc: manifestSvc,
		prompter:    prompter,
		journal:     journal,
		publisher:   publisher,
		cfg:         cfg,
		log:         log,
		out:         out,
	}
}

// Execute runs the complete release workflow. The repository itself was
// already opened by the caller, so a directory that is not under version
// control has failed before any step runs.
func (o *ReleaseOrchestrator) Execute(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultWorkflowTimeout)
	defer cancel()
	run := domain.NewRunRecord(uuid.NewString())
	err := o.runWorkflow(ctx, run)
	if err != nil {
		run.MarkTerminated(err)
	} else {
		run.MarkSucceeded()
	}
	o.saveJournal(ctx, run)
	return err
}

func (o *ReleaseOrchestrator) runWorkflow(ctx context.Context, run *domain.RunRecord) error {
	rel := &domain.Release{}
	steps := []struct {
		name domain.StepName
		fn   func(context.Context, *domain.RunRecord, *domain.Release) (map[string]any, error)
	}{
		{domain.StepCheckBranch, o.checkBranch},
		{domain.StepCommitPending, o.commitPending},
		{domain.StepUnpushedSummary, o.unpushedSummary},
		{domain.StepExtractVersion, o.extractVersion},
		{domain.StepCompareTag, o.compareTag},
		{domain.StepCheckCollision, o.checkCollision},
		{domain.StepConfirmRelease, o.confirmRelease},
		{domain.StepCreateTag, o.createTag},
		{domain.StepPushBranch, o.pushBranch},
		{domain.StepPushTag, o.pushTag},
		{domain.StepPublishRelease, o.publishRelease},
	}
	for _, step := range steps {
		run.BeginStep(step.name)
		o.saveJournal(ctx, run)
		detail, err := step.fn(ctx, run, rel)
		switch {
		case errors.Is(err, errSkipStep):
			run.SkipStep(step.name)
		case err != nil:
			run.FailStep(step.name, err)
			o.saveJournal(ctx, run)
			return err
		default:
			run.CompleteStep(step.name, detail)
		}
		o.saveJournal(ctx, run)
	}
	o.reportSuccess(ctx, rel)
	return nil
}

// checkBranch verifies the current branch is the release branch, offering
// to switch and pull when it is not.
func (o *ReleaseOrchestrator) checkBranch(ctx context.Context, run *domain.RunRecord, _ *domain.Release) (map[string]any, error) {
	if err := ValidateBranchName(o.cfg.ReleaseBranch); err != nil {
		return nil, fmt.Errorf("invalid release branch: %w", err)
	}
	current, err := o.gitRepo.CurrentBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read current branch: %w", err)
	}
	run.Branch = o.cfg.ReleaseBranch
	if current == o.cfg.ReleaseBranch {
		return map[string]any{"branch": current}, nil
	}
	o.printf("Current branch is %q, releases are made from %q.\n", current, o.cfg.ReleaseBranch)
	ok, err := o.prompter.Confirm(ctx, fmt.Sprintf("Switch to %s and pull the latest changes?", o.cfg.ReleaseBranch))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("releases must run on %s: %w", o.cfg.ReleaseBranch, domain.ErrUserCancelled)
	}
	uc := &usecase.SyncBranchUseCase{GitRepo: o.gitRepo}
	if err := uc.Execute(ctx, o.cfg.Remote, o.cfg.ReleaseBranch); err != nil {
		return nil, err
	}
	o.printf("Switched to %s and pulled latest.\n", o.cfg.ReleaseBranch)
	return map[string]any{"branch": o.cfg.ReleaseBranch, "switched_from": current}, nil
}

// commitPending lists uncommitted changes and commits them all after the
// user supplies a non-empty message. Declining cancels the run.
func (o *ReleaseOrchestrator) commitPending(ctx context.Context, _ *domain.RunRecord, _ *domain.Release) (map[string]any, error) {
	clean, err := o.gitRepo.IsClean(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check working tree: %w", err)
	}
	if clean {
		return nil, errSkipStep
	}
	paths, err := o.gitRepo.ChangedPaths(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list changed paths: %w", err)
	}
	o.printf("Uncommitted changes:\n")
	for _, path := range paths {
		o.printf("  - %s\n", path)
	}
	ok, err := o.prompter.Confirm(ctx, "Commit all changes before releasing?")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("working tree left dirty: %w", domain.ErrUserCancelled)
	}
	message, err := o.prompter.Input(ctx, "Commit message: ")
	if err != nil {
		return nil, err
	}
	uc := &usecase.CommitPendingUseCase{GitRepo: o.gitRepo}
	if err := uc.Execute(ctx, message); err != nil {
		return nil, err
	}
	o.printf("Committed %d change(s).\n", len(paths))
	return map[string]any{"committed_paths": len(paths)}, nil
}

// unpushedSummary reports how many local commits the remote tracking
// branch is missing. Informational only; zero is fine.
func (o *ReleaseOrchestrator) unpushedSummary(ctx context.Context, _ *domain.RunRecord, _ *domain.Release) (map[string]any, error) {
	ahead, err := o.gitRepo.AheadCount(ctx, o.cfg.Remote, o.cfg.ReleaseBranch)
	if err != nil {
		return nil, fmt.Errorf("failed to count unpushed commits: %w", err)
	}
	o.printf("%d commit(s) not yet on %s/%s.\n", ahead, o.cfg.Remote, o.cfg.ReleaseBranch)
	return map[string]any{"ahead": ahead}, nil
}

// extractVersion reads the manifest version and derives the tag name.
func (o *ReleaseOrchestrator) extractVersion(ctx context.Context, run *domain.RunRecord, rel *domain.Release) (map[string]any, error) {
	uc := &usecase.ExtractVersionUseCase{ManifestSvc: o.manifestSvc}
	version, source, err := uc.Execute(ctx)
	if err != nil {
		return nil, err
	}
	if err := ValidateVersion(version.Plain()); err != nil {
		return nil, fmt.Errorf("invalid version: %w", err)
	}
	*rel = *domain.NewRelease(version, o.cfg.ReleaseBranch, source)
	run.Version = version.Plain()
	run.TagName = rel.TagName
	o.printf("Manifest version %s (from %s), releasing as %s.\n", version.Plain(), source, rel.TagName)
	return map[string]any{"version": version.Plain(), "source": source}, nil
}

// compareTag checks the manifest version against the latest existing tag.
// An equal version is fatal; a lower one needs explicit confirmation.
func (o *ReleaseOrchestrator) compareTag(ctx context.Context, _ *domain.RunRecord, rel *domain.Release) (map[string]any, error) {
	uc := &usecase.CompareTagUseCase{GitRepo: o.gitRepo}
	verdict, latest, err := uc.Execute(ctx, rel.Version)
	if err != nil {
		return nil, err
	}
	switch verdict {
	case usecase.ComparisonFirstRelease:
		o.printf("No existing release tags, %s will be the first.\n", rel.TagName)
		return map[string]any{"latest_tag": ""}, nil
	case usecase.ComparisonDuplicate:
		o.printf("Version %s is already tagged as %s. Bump the manifest to %s first.\n",
			rel.Version.Plain(), latest.String(), rel.Version.BumpPatch().Plain())
		return nil, fmt.Errorf("%s already released: %w", rel.Version.Plain(), domain.ErrDuplicateVersion)
	case usecase.ComparisonRegression:
		o.printf("⚠ Version %s is lower than the latest release %s. Did you mean %s?\n",
			rel.Version.Plain(), latest.String(), latest.BumpPatch().Plain())
		ok, err := o.prompter.Confirm(ctx, "Release the lower version anyway?")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%s is below latest tag %s: %w",
				rel.Version.Plain(), latest.String(), domain.ErrVersionRegression)
		}
		return map[string]any{"latest_tag": latest.String(), "regression": true}, nil
	default:
		return map[string]any{"latest_tag": latest.String()}, nil
	}
}

// checkCollision handles a pre-existing local tag with the derived name.
func (o *ReleaseOrchestrator) checkCollision(ctx context.Context, _ *domain.RunRecord, rel *domain.Release) (map[string]any, error) {
	exists, err := o.gitRepo.TagExists(ctx, rel.TagName)
	if err != nil {
		return nil, fmt.Errorf("failed to check tag %s: %w", rel.TagName, err)
	}
	if !exists {
		return nil, errSkipStep
	}
	o.printf("Tag %s already exists locally.\n", rel.TagName)
	ok, err := o.prompter.Confirm(ctx, "Delete the local tag and recreate it?")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("local tag %s kept: %w", rel.TagName, domain.ErrTagCollision)
	}
	if err := o.gitRepo.DeleteTag(ctx, rel.TagName); err != nil {
		return nil, err
	}
	return map[string]any{"recreated": true}, nil
}

// confirmRelease is the final gate before anything irreversible happens.
func (o *ReleaseOrchestrator) confirmRelease(ctx context.Context, _ *domain.RunRecord, rel *domain.Release) (map[string]any, error) {
	ok, err := o.prompter.Confirm(ctx, fmt.Sprintf("Create tag %s and push %s to %s?",
		rel.TagName, rel.Branch, o.cfg.Remote))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("release not confirmed: %w", domain.ErrUserCancelled)
	}
	return nil, nil
}

// createTag creates the annotated release tag at HEAD.
func (o *ReleaseOrchestrator) createTag(ctx context.Context, _ *domain.RunRecord, rel *domain.Release) (map[string]any, error) {
	if err := o.gitRepo.CreateTag(ctx, rel.TagName, rel.TagMessage()); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTagCreationFailed, err)
	}
	o.printf("Created annotated tag %s.\n", rel.TagName)
	return map[string]any{"tag": rel.TagName}, nil
}

// pushBranch pushes the release branch. If the push fails the tag created
// in the previous step is deleted again so a re-run starts clean.
func (o *ReleaseOrchestrator) pushBranch(ctx context.Context, _ *domain.RunRecord, rel *domain.Release) (map[string]any, error) {
	err := o.withPushRetry(ctx, func(ctx context.Context) error {
		return o.gitRepo.PushBranch(ctx, o.cfg.Remote, rel.Branch)
	})
	if err != nil {
		o.printf("Branch push failed, removing local tag %s.\n", rel.TagName)
		if delErr := o.gitRepo.DeleteTag(ctx, rel.TagName); delErr != nil {
			o.log.Warn("tag rollback failed", zap.String("tag", rel.TagName), zap.Error(delErr))
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrPushFailed, err)
	}
	o.printf("Pushed %s to %s.\n", rel.Branch, o.cfg.Remote)
	return map[string]any{"branch": rel.Branch}, nil
}

// pushTag pushes the release tag. The branch is already on the remote at
// this point, so on failure we only report how to clean up by hand.
func (o *ReleaseOrchestrator) pushTag(ctx context.Context, _ *domain.RunRecord, rel *domain.Release) (map[string]any, error) {
	err := o.withPushRetry(ctx, func(ctx context.Context) error {
		return o.gitRepo.PushTag(ctx, o.cfg.Remote, rel.TagName)
	})
	if err != nil {
		o.printf("Tag push failed. If a partial tag reached the remote, remove it with:\n")
		o.printf("  git push %s --delete %s\n", o.cfg.Remote, rel.TagName)
		return nil, fmt.Errorf("%w: %w", domain.ErrTagPushFailed, err)
	}
	o.printf("Pushed tag %s to %s.\n", rel.TagName, o.cfg.Remote)
	return map[string]any{"tag": rel.TagName}, nil
}

// publishRelease creates a hosted release for the pushed tag when a token
// is configured. The tag is already public, so failure here is reported
// but never rolls anything back.
func (o *ReleaseOrchestrator) publishRelease(ctx context.Context, _ *domain.RunRecord, rel *domain.Release) (map[string]any, error) {
	if !o.publisher.Enabled() {
		return nil, errSkipStep
	}
	url, err := o.publisher.PublishRelease(ctx, rel.TagName, rel.TagMessage(), "")
	if err != nil {
		o.printf("⚠ Could not publish release for %s: %v\n", rel.TagName, err)
		o.log.Warn("release publication failed", zap.String("tag", rel.TagName), zap.Error(err))
		return map[string]any{"published": false}, nil
	}
	o.printf("Published release: %s\n", url)
	return map[string]any{"published": true, "url": url}, nil
}

// reportSuccess prints the terminal success line with the CI status URL.
func (o *ReleaseOrchestrator) reportSuccess(ctx context.Context, rel *domain.Release) {
	o.printf("✅ Release %s complete.\n", rel.TagName)
	remoteURL, err := o.gitRepo.RemoteURL(ctx, o.cfg.Remote)
	if err != nil {
		o.log.Warn("failed to read remote URL", zap.String("remote", o.cfg.Remote), zap.Error(err))
		return
	}
	o.printf("CI status: %s\n", DeriveCIStatusURL(remoteURL))
}

func (o *ReleaseOrchestrator) withPushRetry(ctx context.Context, fn func(context.Context) error) error {
	strategy := retry.WithMaxRetries(PushRetryCount, retry.NewExponential(PushRetryDelay))
	return retry.Do(ctx, strategy, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

// saveJournal persists the run record, best effort.
func (o *ReleaseOrchestrator) saveJournal(ctx context.Context, run *domain.RunRecord) {
	if err := o.journal.Save(ctx, run); err != nil {
		o.log.Warn("failed to save run journal", zap.String("run_id", run.RunID), zap.Error(err))
	}
}

func (o *ReleaseOrchestrator) printf(format string, args ...any) {
	fmt.Fprintf(o.out, format, args...)
}
