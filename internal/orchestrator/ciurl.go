package orchestrator

import (
	"fmt"
	"regexp"
	"strings"
)

var githubRemoteRegex = regexp.MustCompile(`^(?:git@github\.com:|https://github\.com/|ssh://git@github\.com/)([^/]+)/(.+?)(?:\.git)?$`)

// ParseGitHubRemote extracts owner and repository from the SSH and HTTPS
// GitHub remote URL forms.
func ParseGitHubRemote(remoteURL string) (owner, repo string, ok bool) {
	match := githubRemoteRegex.FindStringSubmatch(strings.TrimSpace(remoteURL))
	if match == nil {
		return "", "", false
	}
	return match[1], match[2], true
}

// DeriveCIStatusURL derives the CI status page for a remote. GitHub remotes
// map to the Actions page; anything else is reported verbatim so the user
// still sees where the push went.
func DeriveCIStatusURL(remoteURL string) string {
	owner, repo, ok := ParseGitHubRemote(remoteURL)
	if !ok {
		return remoteURL
	}
	return fmt.Sprintf("https://github.com/%s/%s/actions", owner, repo)
}
