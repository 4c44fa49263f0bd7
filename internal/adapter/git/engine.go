// Package git adapts the local git repository for revision resolution and
// raw diff extraction. Ref existence is probed through go-git; everything
// that talks to the network or produces diff text shells out to git itself.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	goGit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// prRefFormat is the synthetic per-PR ref used for fork pull requests whose
// head branch does not exist on the upstream remote.
const prRefFormat = "refs/prctx/pr-%d"

type runnerFunc func(ctx context.Context, repoDir string, args ...string) (string, error)

// Engine implements the collect.GitEngine port for a repository directory.
type Engine struct {
	repoDir     string
	remote      string
	run         runnerFunc
	branchProbe func(branch string) bool
}

// NewEngine constructs a git engine for the provided repository directory
// and upstream remote name. An empty remote defaults to "origin".
func NewEngine(repoDir, remote string) *Engine {
	if remote == "" {
		remote = "origin"
	}
	e := &Engine{repoDir: repoDir, remote: remote, run: runGitCommand}
	e.branchProbe = e.remoteBranchExists
	return e
}

// ResolveRefs guarantees base and head are reachable local references usable
// in a triple-dot comparison. The remote reference set is re-synchronized
// first; a failed sync is fatal, there is no fallback revision. The base is
// always the upstream remote's branch. The head uses the remote branch when
// one exists, otherwise the pull request's head commit is fetched into a
// synthetic per-PR ref (fork PRs).
func (e *Engine) ResolveRefs(ctx context.Context, prNumber int, baseBranch, headBranch string) (string, string, error) {
	if _, err := e.run(ctx, e.repoDir, "fetch", e.remote, "--prune"); err != nil {
		return "", "", fmt.Errorf("sync remote %s: %w", e.remote, err)
	}

	baseRef := e.remote + "/" + baseBranch

	if e.branchProbe(headBranch) {
		return baseRef, e.remote + "/" + headBranch, nil
	}

	headRef := fmt.Sprintf(prRefFormat, prNumber)
	refspec := fmt.Sprintf("pull/%d/head:%s", prNumber, headRef)
	if _, err := e.run(ctx, e.repoDir, "fetch", e.remote, refspec); err != nil {
		return "", "", fmt.Errorf("fetch PR head %s: %w", refspec, err)
	}
	return baseRef, headRef, nil
}

// ChangedFiles lists paths changed between the refs (merge-base comparison).
func (e *Engine) ChangedFiles(ctx context.Context, baseRef, headRef string) ([]string, error) {
	out, err := e.run(ctx, e.repoDir, "diff", "--name-only", baseRef+"..."+headRef)
	if err != nil {
		return nil, fmt.Errorf("git diff --name-only: %w", err)
	}
	trimmed := strings.TrimRight(out, "\r\n")
	if trimmed == "" {
		return nil, nil
	}
	return strings.Split(trimmed, "\n"), nil
}

// Diff returns the unified diff between the refs restricted to the given
// paths.
func (e *Engine) Diff(ctx context.Context, baseRef, headRef string, paths []string) (string, error) {
	args := append([]string{"diff", baseRef + "..." + headRef, "--"}, paths...)
	out, err := e.run(ctx, e.repoDir, args...)
	if err != nil {
		return "", fmt.Errorf("git diff: %w", err)
	}
	return out, nil
}

// remoteBranchExists probes refs/remotes/<remote>/<branch> in the local
// reference store. Any open or lookup failure counts as absence; the caller
// falls back to fetching the PR head directly.
func (e *Engine) remoteBranchExists(branch string) bool {
	if branch == "" {
		return false
	}
	repo, err := goGit.PlainOpenWithOptions(e.repoDir, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return false
	}
	_, err = repo.Reference(plumbing.NewRemoteReferenceName(e.remote, branch), true)
	return err == nil
}

func runGitCommand(ctx context.Context, repoDir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", repoDir}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("git %v: %w", args, ctx.Err())
		}
		if stderr.Len() > 0 {
			err = fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("git %v: %w", args, err)
	}
	return stdout.String(), nil
}
