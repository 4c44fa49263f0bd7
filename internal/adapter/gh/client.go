// Package gh adapts the GitHub CLI as the hosting-API collaborator. The gh
// binary carries authentication and pagination; this package only shapes
// arguments and decodes output.
package gh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	gogh "github.com/cli/go-gh/v2"

	"github.com/bkyoung/pr-context/internal/domain"
)

// metadataFields is the gh pr view field selection for PRMetadata.
const metadataFields = "number,title,url,headRefName,baseRefName,author,body,createdAt,updatedAt,state,labels"

// execFunc invokes the gh binary. Swapped for a fake in tests.
type execFunc func(ctx context.Context, args ...string) (stdout, stderr bytes.Buffer, err error)

// Client fetches pull request data for one owner/name repository.
type Client struct {
	repo string
	exec execFunc
}

// NewClient constructs a client for the given "owner/name" repository.
func NewClient(repo string) *Client {
	return &Client{repo: repo, exec: gogh.ExecContext}
}

// EnsureAvailable verifies the gh binary can be located. Called once at
// startup; absence is fatal for the whole run.
func EnsureAvailable() error {
	if _, err := gogh.Path(); err != nil {
		return fmt.Errorf("gh executable not found (install the GitHub CLI from https://cli.github.com): %w", err)
	}
	return nil
}

// PRMetadata fetches the one-time metadata snapshot for the pull request.
func (c *Client) PRMetadata(ctx context.Context, number int) (domain.PRMetadata, error) {
	stdout, stderr, err := c.exec(ctx, "pr", "view", strconv.Itoa(number), "--repo", c.repo, "--json", metadataFields)
	if err != nil {
		return domain.PRMetadata{}, execError("gh pr view", stderr, err)
	}
	var meta domain.PRMetadata
	if err := json.Unmarshal(stdout.Bytes(), &meta); err != nil {
		return domain.PRMetadata{}, fmt.Errorf("decode PR metadata: %w", err)
	}
	return meta, nil
}

// Reviews returns all formal reviews for the pull request in API order.
func (c *Client) Reviews(ctx context.Context, number int) ([]domain.Review, error) {
	out, err := c.paginate(ctx, fmt.Sprintf("repos/%s/pulls/%d/reviews", c.repo, number))
	if err != nil {
		return nil, err
	}
	return decodeLines[domain.Review](out), nil
}

// ReviewComments returns all inline review comments in API order.
func (c *Client) ReviewComments(ctx context.Context, number int) ([]domain.ReviewComment, error) {
	out, err := c.paginate(ctx, fmt.Sprintf("repos/%s/pulls/%d/comments", c.repo, number))
	if err != nil {
		return nil, err
	}
	return decodeLines[domain.ReviewComment](out), nil
}

// IssueComments returns all discussion comments in API order.
func (c *Client) IssueComments(ctx context.Context, number int) ([]domain.IssueComment, error) {
	out, err := c.paginate(ctx, fmt.Sprintf("repos/%s/issues/%d/comments", c.repo, number))
	if err != nil {
		return nil, err
	}
	return decodeLines[domain.IssueComment](out), nil
}

// paginate fetches every page of a list endpoint, one JSON record per
// output line.
func (c *Client) paginate(ctx context.Context, path string) ([]byte, error) {
	stdout, stderr, err := c.exec(ctx, "api", path, "--paginate", "--jq", ".[]")
	if err != nil {
		return nil, execError("gh api "+path, stderr, err)
	}
	return stdout.Bytes(), nil
}

// decodeLines parses one JSON record per line. A line that fails a direct
// parse gets one more chance as a JSON-encoded string wrapping the record
// (the CLI double-encodes under some jq versions); a line failing both is
// skipped, never fatal and never duplicated.
func decodeLines[T any](data []byte) []T {
	var records []T
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var record T
		if err := json.Unmarshal([]byte(line), &record); err == nil {
			records = append(records, record)
			continue
		}
		var nested string
		if err := json.Unmarshal([]byte(line), &nested); err != nil {
			continue
		}
		if err := json.Unmarshal([]byte(nested), &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	return records
}

func execError(cmd string, stderr bytes.Buffer, err error) error {
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return fmt.Errorf("%s: %w: %s", cmd, err, msg)
	}
	return fmt.Errorf("%s: %w", cmd, err)
}
