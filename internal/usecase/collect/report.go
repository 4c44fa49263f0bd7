package collect

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bkyoung/pr-context/internal/domain"
)

const (
	truncationMarker     = "\n... (truncated)"
	noContentPlaceholder = "_no content_"
	noReviewsPlaceholder = "No reviews."
	noThreadsPlaceholder = "No review comments."
	noIssuesPlaceholder  = "No issue comments."
	unknownLogin         = "unknown"
	unknownRef           = "?"
)

// ReportInput carries everything the report builder consumes. All fields are
// read-only snapshots; building the report mutates nothing.
type ReportInput struct {
	PRNumber int
	Meta     domain.PRMetadata
	Diff     string
	Reviews  []domain.Review
	Comments []domain.ReviewComment
	Issues   []domain.IssueComment
}

// BuildReport composes the markdown review-context report. The structure is
// fully deterministic: fixed section order, per-item truncation, and
// per-section item caps; two invocations over the same input produce
// byte-identical output.
func BuildReport(in ReportInput, limits Limits) string {
	var b strings.Builder

	writeHeader(&b, in)
	writeDiffSection(&b, in.Diff)
	writeReviewsSection(&b, in.Reviews, limits)
	writeThreadsSection(&b, in.Comments, limits)
	writeIssuesSection(&b, in.Issues, limits)

	return strings.TrimSpace(b.String()) + "\n"
}

func writeHeader(b *strings.Builder, in ReportInput) {
	title := strings.TrimSpace(in.Meta.Title)
	if title == "" {
		title = fmt.Sprintf("PR #%d", in.PRNumber)
	}
	fmt.Fprintf(b, "# PR #%d: %s\n\n", in.PRNumber, title)

	if in.Meta.URL != "" {
		fmt.Fprintf(b, "URL: %s\n", in.Meta.URL)
	}
	head, base := in.Meta.HeadBranch, in.Meta.BaseBranch
	if head != "" || base != "" {
		fmt.Fprintf(b, "Branches: %s -> %s\n", refOrPlaceholder(head), refOrPlaceholder(base))
	}
	if in.Meta.State != "" {
		caser := cases.Title(language.English)
		fmt.Fprintf(b, "State: %s\n", caser.String(strings.ToLower(in.Meta.State)))
	}
	if in.Meta.Author.Login != "" {
		fmt.Fprintf(b, "Author: %s\n", in.Meta.Author.Login)
	}

	count, approvers := summarizeApprovals(in.Reviews)
	if count == 0 {
		b.WriteString("Approvals: 0 (none)\n")
	} else {
		fmt.Fprintf(b, "Approvals: %d (%s)\n", count, strings.Join(approvers, ", "))
	}

	fmt.Fprintf(b, "\nReview the diff and discussion below; the proposed changes live on the head branch `%s`.\n", refOrPlaceholder(head))
}

func writeDiffSection(b *strings.Builder, diff string) {
	if strings.TrimSpace(diff) == "" {
		return
	}
	b.WriteString("\n## Diff\n\n")
	b.WriteString(fenceBlock(diff, "diff"))
	b.WriteString("\n")
}

func writeReviewsSection(b *strings.Builder, reviews []domain.Review, limits Limits) {
	b.WriteString("\n## Reviews\n\n")
	if len(reviews) == 0 {
		b.WriteString(noReviewsPlaceholder + "\n")
		return
	}
	for _, r := range reviews {
		header := fmt.Sprintf("### %s by %s", r.State, loginOrUnknown(r.AuthorLogin()))
		if ts := r.SubmittedAt(); ts != "" {
			header += " at " + ts
		}
		b.WriteString(header + "\n\n")
		b.WriteString(renderBody(r.Body, limits.ReviewBodyChars))
		b.WriteString("\n\n")
	}
}

func writeThreadsSection(b *strings.Builder, comments []domain.ReviewComment, limits Limits) {
	b.WriteString("\n## Review Comments\n\n")
	threads := groupReviewCommentsByThread(comments)
	if len(threads) == 0 {
		b.WriteString(noThreadsPlaceholder + "\n")
		return
	}
	if len(threads) > limits.MaxThreads {
		threads = threads[:limits.MaxThreads]
	}
	for _, t := range threads {
		writeThread(b, t, limits)
	}
}

func writeThread(b *strings.Builder, t domain.Thread, limits Limits) {
	root := t.Root
	header := fmt.Sprintf("### %s:%d", pathOrPlaceholder(root.Path), root.LineLocator())
	if root.Side != "" {
		header += " [" + root.Side + "]"
	}
	b.WriteString(header + "\n\n")

	if root.HTMLURL != "" {
		fmt.Fprintf(b, "Link: %s\n\n", root.HTMLURL)
	}
	if strings.TrimSpace(root.DiffHunk) != "" {
		b.WriteString(fenceBlock(root.DiffHunk, "diff"))
		b.WriteString("\n\n")
	}

	byline := "By " + loginOrUnknown(root.AuthorLogin())
	if root.CreatedAt != "" {
		byline += " at " + root.CreatedAt
	}
	b.WriteString(byline + ":\n\n")
	b.WriteString(renderBody(root.Body, limits.CommentBodyChars))
	b.WriteString("\n")

	for _, reply := range t.Replies {
		line := "- reply by " + loginOrUnknown(reply.AuthorLogin())
		if reply.CreatedAt != "" {
			line += " at " + reply.CreatedAt
		}
		b.WriteString("\n" + line + ":\n\n")
		b.WriteString(renderBody(reply.Body, limits.ReplyBodyChars))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeIssuesSection(b *strings.Builder, issues []domain.IssueComment, limits Limits) {
	b.WriteString("\n## Issue Comments\n\n")
	if len(issues) == 0 {
		b.WriteString(noIssuesPlaceholder + "\n")
		return
	}
	if len(issues) > limits.MaxIssueComments {
		issues = issues[:limits.MaxIssueComments]
	}
	for _, c := range issues {
		header := "### " + loginOrUnknown(c.AuthorLogin())
		if c.CreatedAt != "" {
			header += " at " + c.CreatedAt
		}
		b.WriteString(header + "\n\n")
		if c.HTMLURL != "" {
			fmt.Fprintf(b, "Link: %s\n\n", c.HTMLURL)
		}
		b.WriteString(renderBody(c.Body, limits.ReviewBodyChars))
		b.WriteString("\n\n")
	}
}

// truncateTo trims surrounding whitespace and, when the remainder exceeds
// limit bytes, cuts it to exactly limit bytes and appends the truncation
// marker on a new line.
func truncateTo(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	return s[:limit] + truncationMarker
}

// fenceBlock wraps trimmed non-blank content in a triple-backtick block with
// an optional language tag. Blank content yields the literal placeholder
// instead of an empty fence.
func fenceBlock(content, lang string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return noContentPlaceholder
	}
	return "```" + lang + "\n" + trimmed + "\n```"
}

func renderBody(body string, limit int) string {
	return fenceBlock(truncateTo(body, limit), "")
}

func loginOrUnknown(login string) string {
	if login == "" {
		return unknownLogin
	}
	return login
}

func refOrPlaceholder(ref string) string {
	if ref == "" {
		return unknownRef
	}
	return ref
}

func pathOrPlaceholder(path string) string {
	if path == "" {
		return "(no file)"
	}
	return path
}
