package collect

import (
	"context"
	"fmt"
	"strings"
)

// lockfileSuffixes enumerates dependency lockfiles excluded from the diff:
// their churn is machine-generated and drowns out the reviewable changes.
var lockfileSuffixes = []string{
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"Gemfile.lock",
	"Cargo.lock",
	"composer.lock",
	"poetry.lock",
	"go.sum",
}

// collectDiff produces the unified diff between the resolved refs. Every
// failure inside this stage degrades to an empty or reduced diff; the run
// never aborts here.
func (c *Collector) collectDiff(ctx context.Context, baseRef, headRef string) string {
	listCtx, cancel := context.WithTimeout(ctx, c.timeouts.Long)
	defer cancel()
	files, err := c.git.ChangedFiles(listCtx, baseRef, headRef)
	if err != nil {
		c.log.Warnf("list changed files %s...%s: %v", baseRef, headRef, err)
		return ""
	}

	files = dropLockfiles(files)
	if len(files) == 0 {
		return ""
	}

	// Batched to stay under OS argument-length limits on very large PRs.
	parts := make([]string, 0, 1+len(files)/c.limits.DiffBatchSize)
	for start := 0; start < len(files); start += c.limits.DiffBatchSize {
		end := min(start+c.limits.DiffBatchSize, len(files))
		batchCtx, cancelBatch := context.WithTimeout(ctx, c.timeouts.Long)
		out, err := c.git.Diff(batchCtx, baseRef, headRef, files[start:end])
		cancelBatch()
		if err != nil {
			c.log.Warnf("diff batch %d-%d: %v", start, end, err)
			out = ""
		}
		parts = append(parts, out)
	}

	return c.truncateDiff(strings.Join(parts, "\n"))
}

func dropLockfiles(paths []string) []string {
	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		if isLockfile(p) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func isLockfile(path string) bool {
	for _, suffix := range lockfileSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// truncateDiff enforces the total line ceiling, replacing the tail with
// nothing and prepending a one-line banner naming both counts.
func (c *Collector) truncateDiff(diff string) string {
	lines := strings.Split(diff, "\n")
	if len(lines) <= c.limits.MaxDiffLines {
		return diff
	}
	c.log.Warnf("diff exceeds %d lines (%d), truncating", c.limits.MaxDiffLines, len(lines))
	banner := fmt.Sprintf("WARNING: diff truncated from %d to %d lines\n", len(lines), c.limits.MaxDiffLines)
	return banner + strings.Join(lines[:c.limits.MaxDiffLines], "\n")
}
