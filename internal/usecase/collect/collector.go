// Package collect implements the sequential pipeline that gathers the full
// review context of a single pull request (metadata, diff, formal reviews,
// inline comment threads, and discussion comments) and renders it as one
// deterministic markdown report for a downstream reviewing agent.
package collect

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bkyoung/pr-context/internal/domain"
	"github.com/bkyoung/pr-context/internal/usecase/skip"
)

// ErrSkipped signals that the pull request opted out of automated review
// via a skip trigger. It is not a failure; callers should exit cleanly.
var ErrSkipped = errors.New("review skipped")

// Logger is the console logging capability injected into the pipeline so the
// core stays a pure function of its inputs under test.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// GitEngine resolves revisions and produces raw diff text.
type GitEngine interface {
	ResolveRefs(ctx context.Context, prNumber int, baseBranch, headBranch string) (baseRef, headRef string, err error)
	ChangedFiles(ctx context.Context, baseRef, headRef string) ([]string, error)
	Diff(ctx context.Context, baseRef, headRef string, paths []string) (string, error)
}

// PRService fetches pull request collections from the hosting API.
type PRService interface {
	PRMetadata(ctx context.Context, number int) (domain.PRMetadata, error)
	Reviews(ctx context.Context, number int) ([]domain.Review, error)
	ReviewComments(ctx context.Context, number int) ([]domain.ReviewComment, error)
	IssueComments(ctx context.Context, number int) ([]domain.IssueComment, error)
}

// Limits bounds the size of the generated report.
type Limits struct {
	MaxDiffLines     int
	DiffBatchSize    int
	MaxThreads       int
	MaxIssueComments int
	ReviewBodyChars  int
	CommentBodyChars int
	ReplyBodyChars   int
}

// DefaultLimits returns the standard report size bounds.
func DefaultLimits() Limits {
	return Limits{
		MaxDiffLines:     10000,
		DiffBatchSize:    200,
		MaxThreads:       200,
		MaxIssueComments: 200,
		ReviewBodyChars:  500,
		CommentBodyChars: 1000,
		ReplyBodyChars:   800,
	}
}

// Timeouts separates the two external call classes: short single-object
// calls and long reference-sync / diff / paginated-fetch calls.
type Timeouts struct {
	Short time.Duration
	Long  time.Duration
}

// DefaultTimeouts returns the standard per-call deadlines.
func DefaultTimeouts() Timeouts {
	return Timeouts{Short: 30 * time.Second, Long: 120 * time.Second}
}

// Deps captures the collaborators for the collection pipeline.
type Deps struct {
	Git      GitEngine
	GitHub   PRService
	Logger   Logger
	Limits   Limits
	Timeouts Timeouts
}

// Collector runs the pipeline. All stages execute sequentially; metadata and
// revision resolution failures abort the run, everything downstream degrades
// to an empty result instead of failing.
type Collector struct {
	git      GitEngine
	github   PRService
	log      Logger
	limits   Limits
	timeouts Timeouts
}

// NewCollector constructs a collector, filling zero-valued limits and
// timeouts with defaults.
func NewCollector(deps Deps) *Collector {
	limits := deps.Limits
	if limits == (Limits{}) {
		limits = DefaultLimits()
	}
	timeouts := deps.Timeouts
	if timeouts.Short == 0 {
		timeouts.Short = DefaultTimeouts().Short
	}
	if timeouts.Long == 0 {
		timeouts.Long = DefaultTimeouts().Long
	}
	log := deps.Logger
	if log == nil {
		log = nopLogger{}
	}
	return &Collector{
		git:      deps.Git,
		github:   deps.GitHub,
		log:      log,
		limits:   limits,
		timeouts: timeouts,
	}
}

// Collect gathers the full review context for the pull request and returns
// the rendered markdown report.
func (c *Collector) Collect(ctx context.Context, prNumber int) (string, error) {
	meta, err := c.fetchMetadata(ctx, prNumber)
	if err != nil {
		return "", fmt.Errorf("fetch PR metadata: %w", err)
	}
	c.log.Infof("collecting context for PR #%d (%s)", prNumber, meta.Title)

	if result := skip.Check(skip.CheckRequest{
		Title:  meta.Title,
		Body:   meta.Body,
		Labels: labelNames(meta.Labels),
	}); result.ShouldSkip {
		return "", fmt.Errorf("%w: trigger in %s", ErrSkipped, result.Reason)
	}

	baseRef, headRef, err := c.resolveRefs(ctx, prNumber, meta)
	if err != nil {
		return "", fmt.Errorf("resolve revisions: %w", err)
	}

	diff := c.collectDiff(ctx, baseRef, headRef)
	reviews := c.fetchReviews(ctx, prNumber)
	comments := c.fetchReviewComments(ctx, prNumber)
	issues := c.fetchIssueComments(ctx, prNumber)

	report := BuildReport(ReportInput{
		PRNumber: prNumber,
		Meta:     meta,
		Diff:     diff,
		Reviews:  reviews,
		Comments: comments,
		Issues:   issues,
	}, c.limits)
	return report, nil
}

func (c *Collector) fetchMetadata(ctx context.Context, prNumber int) (domain.PRMetadata, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeouts.Short)
	defer cancel()
	return c.github.PRMetadata(callCtx, prNumber)
}

func (c *Collector) resolveRefs(ctx context.Context, prNumber int, meta domain.PRMetadata) (string, string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeouts.Long)
	defer cancel()
	return c.git.ResolveRefs(callCtx, prNumber, meta.BaseBranch, meta.HeadBranch)
}

func (c *Collector) fetchReviews(ctx context.Context, prNumber int) []domain.Review {
	callCtx, cancel := context.WithTimeout(ctx, c.timeouts.Long)
	defer cancel()
	reviews, err := c.github.Reviews(callCtx, prNumber)
	if err != nil {
		c.log.Warnf("fetch reviews: %v", err)
		return nil
	}
	return reviews
}

func (c *Collector) fetchReviewComments(ctx context.Context, prNumber int) []domain.ReviewComment {
	callCtx, cancel := context.WithTimeout(ctx, c.timeouts.Long)
	defer cancel()
	comments, err := c.github.ReviewComments(callCtx, prNumber)
	if err != nil {
		c.log.Warnf("fetch review comments: %v", err)
		return nil
	}
	return comments
}

func (c *Collector) fetchIssueComments(ctx context.Context, prNumber int) []domain.IssueComment {
	callCtx, cancel := context.WithTimeout(ctx, c.timeouts.Long)
	defer cancel()
	comments, err := c.github.IssueComments(callCtx, prNumber)
	if err != nil {
		c.log.Warnf("fetch issue comments: %v", err)
		return nil
	}
	return comments
}

func labelNames(labels []domain.Label) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Name)
	}
	return names
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...any) {}
func (nopLogger) Warnf(string, ...any) {}
