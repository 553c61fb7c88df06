package cmd

import (
	"context"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/remoroo/shipit/internal/config"
	"github.com/remoroo/shipit/internal/logger"
	"github.com/remoroo/shipit/internal/orchestrator"
	"github.com/remoroo/shipit/internal/repository"
	"github.com/remoroo/shipit/internal/service"
)

// container holds all the dependencies for the application.

type container struct {
	cfg    *config.Config
	fsRepo repository.FileSystemRepository
	log    *zap.Logger
}

// newContainer creates a new container with all the dependencies that do
// not need a git repository. The repository itself is opened per run so
// subcommands like "version" work outside one.
func newContainer() (*container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return &container{
		cfg:    cfg,
		fsRepo: repository.FileSystemRepository(afero.NewOsFs()),
		log:    log,
	}, nil
}

// InitCommands initializes all commands with their dependencies
func InitCommands() error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return c.runRelease(cmd.Context())
	}
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newRunsCmd(c))
	return nil
}

// runRelease wires the release orchestrator and executes the workflow.
func (c *container) runRelease(ctx context.Context) error {
	defer c.log.Sync() //nolint:errcheck // stderr sync failure is harmless
	gitRepo, err := repository.NewGitRepository(c.cfg.GithubToken)
	if err != nil {
		return err
	}
	orch := orchestrator.NewReleaseOrchestrator(
		gitRepo,
		service.NewManifestService(c.fsRepo, c.cfg.ManifestPaths),
		service.NewTerminalPrompter(os.Stdin, os.Stdout),
		repository.NewJSONRunJournal(c.fsRepo, c.cfg.JournalDir),
		c.newPublisher(ctx, gitRepo),
		c.cfg,
		c.log,
		os.Stdout,
	)
	return orch.Execute(ctx)
}

// newPublisher builds the GitHub release publisher when a token is
// configured, falling back to owner/repo parsed from the remote URL and
// to a no-op publisher when anything is missing.
func (c *container) newPublisher(ctx context.Context, gitRepo repository.GitRepository) repository.ReleasePublisher {
	if c.cfg.GithubToken == "" {
		return repository.NewNoopPublisher()
	}
	owner, repo := c.cfg.GithubOwner, c.cfg.GithubRepo
	if owner == "" || repo == "" {
		remoteURL, err := gitRepo.RemoteURL(ctx, c.cfg.Remote)
		if err != nil {
			c.log.Warn("cannot resolve remote URL for release publication", zap.Error(err))
			return repository.NewNoopPublisher()
		}
		parsedOwner, parsedRepo, ok := orchestrator.ParseGitHubRemote(remoteURL)
		if !ok {
			c.log.Warn("remote is not a GitHub repository, skipping release publication",
				zap.String("remote_url", remoteURL))
			return repository.NewNoopPublisher()
		}
		owner, repo = parsedOwner, parsedRepo
	}
	publisher, err := repository.NewGithubPublisher(c.cfg.GithubToken, owner, repo)
	if err != nil {
		c.log.Warn("failed to initialize release publisher", zap.Error(err))
		return repository.NewNoopPublisher()
	}
	return publisher
}
