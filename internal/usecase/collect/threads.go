package collect

import (
	"sort"

	"github.com/bkyoung/pr-context/internal/domain"
)

// groupReviewCommentsByThread reconstructs reply threads from a flat,
// unordered collection of inline comments. Comments without a parent id are
// roots; comments referencing a parent file under that id. Replies whose
// parent id matches no root are orphans and are dropped from the output
// entirely: they neither become their own thread nor attach anywhere.
//
// Both thread order and reply order are total orders over comment fields
// (never input position), so any permutation of the same comments yields an
// identical result.
func groupReviewCommentsByThread(comments []domain.ReviewComment) []domain.Thread {
	roots := make([]domain.ReviewComment, 0, len(comments))
	repliesByParent := make(map[int64][]domain.ReviewComment)
	for _, c := range comments {
		if c.IsReply() {
			repliesByParent[c.InReplyToID] = append(repliesByParent[c.InReplyToID], c)
			continue
		}
		roots = append(roots, c)
	}

	sort.Slice(roots, func(i, j int) bool { return rootLess(roots[i], roots[j]) })

	threads := make([]domain.Thread, 0, len(roots))
	for _, root := range roots {
		replies := repliesByParent[root.ID]
		sort.Slice(replies, func(i, j int) bool { return replyLess(replies[i], replies[j]) })
		threads = append(threads, domain.Thread{Root: root, Replies: replies})
	}
	return threads
}

// rootLess orders threads by file path (empty first), then numeric line
// locator, then creation timestamp (ISO-8601 strings compare correctly as
// strings, empty first), then comment id as the determinism tie-break.
func rootLess(a, b domain.ReviewComment) bool {
	if a.Path != b.Path {
		return a.Path < b.Path
	}
	if a.LineLocator() != b.LineLocator() {
		return a.LineLocator() < b.LineLocator()
	}
	if a.CreatedAt != b.CreatedAt {
		return a.CreatedAt < b.CreatedAt
	}
	return a.ID < b.ID
}

// replyLess orders replies within a thread by creation timestamp only, with
// the comment id breaking exact ties.
func replyLess(a, b domain.ReviewComment) bool {
	if a.CreatedAt != b.CreatedAt {
		return a.CreatedAt < b.CreatedAt
	}
	return a.ID < b.ID
}
