package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGitHubRemote(t *testing.T) {
	t.Run("Should parse SSH remotes", func(t *testing.T) {
		owner, repo, ok := ParseGitHubRemote("git@github.com:remoroo/remoroo-core.git")
		assert.True(t, ok)
		assert.Equal(t, "remoroo", owner)
		assert.Equal(t, "remoroo-core", repo)
	})
	t.Run("Should parse HTTPS remotes with and without .git", func(t *testing.T) {
		owner, repo, ok := ParseGitHubRemote("https://github.com/remoroo/remoroo-core.git")
		assert.True(t, ok)
		assert.Equal(t, "remoroo", owner)
		assert.Equal(t, "remoroo-core", repo)
		owner, repo, ok = ParseGitHubRemote("https://github.com/acme/widgets")
		assert.True(t, ok)
		assert.Equal(t, "acme", owner)
		assert.Equal(t, "widgets", repo)
	})
	t.Run("Should reject non-GitHub remotes", func(t *testing.T) {
		_, _, ok := ParseGitHubRemote("git@gitlab.com:acme/widgets.git")
		assert.False(t, ok)
	})
}

func TestDeriveCIStatusURL(t *testing.T) {
	t.Run("Should map GitHub remotes to the Actions page", func(t *testing.T) {
		url := DeriveCIStatusURL("git@github.com:remoroo/remoroo-core.git")
		assert.Equal(t, "https://github.com/remoroo/remoroo-core/actions", url)
	})
	t.Run("Should return unknown remotes verbatim", func(t *testing.T) {
		url := DeriveCIStatusURL("git@gitlab.com:acme/widgets.git")
		assert.Equal(t, "git@gitlab.com:acme/widgets.git", url)
	})
}

func TestValidateVersion(t *testing.T) {
	t.Run("Should accept plain and v-prefixed triples", func(t *testing.T) {
		assert.NoError(t, ValidateVersion("1.2.3"))
		assert.NoError(t, ValidateVersion("v1.2.3"))
	})
	t.Run("Should reject malformed versions", func(t *testing.T) {
		assert.Error(t, ValidateVersion(""))
		assert.Error(t, ValidateVersion("1.2"))
		assert.Error(t, ValidateVersion("release-1"))
	})
}

func TestValidateBranchName(t *testing.T) {
	t.Run("Should accept normal branch names", func(t *testing.T) {
		assert.NoError(t, ValidateBranchName("main"))
		assert.NoError(t, ValidateBranchName("release/1.2.3"))
	})
	t.Run("Should reject invalid branch names", func(t *testing.T) {
		assert.Error(t, ValidateBranchName(""))
		assert.Error(t, ValidateBranchName("/leading"))
		assert.Error(t, ValidateBranchName("a..b"))
		assert.Error(t, ValidateBranchName("name.lock"))
	})
}
