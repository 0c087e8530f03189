package widget

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/GriffinCanCode/Dashboard/internal/shared/types"
)

const (
	msgNoRepoURL      = "No Repository URL provided."
	msgInvalidRepoURL = "Invalid Repository URL."
)

// Update types a GitHub widget can follow.
const (
	UpdateReleases = "releases"
	UpdateCommits  = "commits"
	UpdateTags     = "tags"
)

// ErrInvalidRepo is returned for repository references without owner and name.
var ErrInvalidRepo = errors.New("invalid repository url")

// GitHubRepo follows a repository's releases, commits or tags.
type GitHubRepo struct {
	Base
}

// NewGitHubRepo creates a GitHub repository widget.
func NewGitHubRepo(deps Deps, id, title string, config map[string]interface{}) *GitHubRepo {
	return &GitHubRepo{Base: NewBase(types.WidgetGithubRepo, deps, id, title, config)}
}

// ParseRepo extracts owner and repository from a github.com URL or an
// owner/repo reference. Extra path segments are ignored.
func ParseRepo(ref string) (owner, repo string, err error) {
	ref = strings.TrimSpace(ref)
	ref = strings.TrimRight(ref, "/")

	path := ref
	if strings.HasPrefix(ref, "http") {
		u, perr := url.Parse(ref)
		if perr != nil {
			return "", "", fmt.Errorf("%w: %v", ErrInvalidRepo, perr)
		}
		path = u.Path
	}

	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return "", "", ErrInvalidRepo
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}

// AtomURL returns the Atom feed for owner/repo. Unknown update types fall back to releases.
func AtomURL(owner, repo, updateType string) string {
	switch updateType {
	case UpdateCommits, UpdateTags:
	default:
		updateType = UpdateReleases
	}
	return fmt.Sprintf("https://github.com/%s/%s/%s.atom", owner, repo, updateType)
}

// Render validates the repository reference, then runs the feed pipeline.
func (w *GitHubRepo) Render(ctx context.Context, c *Container) {
	card := w.Mount(c)

	ref, _ := w.config["repoUrl"].(string)
	if strings.TrimSpace(ref) == "" {
		w.fail(card, msgNoRepoURL)
		return
	}

	owner, repo, err := ParseRepo(ref)
	if err != nil || repo == "" {
		w.fail(card, msgInvalidRepoURL)
		return
	}

	updateType, _ := w.config["updateType"].(string)
	cfg := w.Config()
	cfg["url"] = AtomURL(owner, repo, updateType)
	w.renderFeed(ctx, card, cfg)
}
