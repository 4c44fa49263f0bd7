// Package domain defines the immutable pull-request snapshot entities shared
// across the collection pipeline. Every entity is fetched once per run and
// never mutated afterwards; optional fields resolve through explicit accessor
// fallback chains instead of erroring.
package domain

// Identity is an authoring identity as delivered by the hosting API.
type Identity struct {
	Login string `json:"login"`
}

// PRMetadata is the one-time snapshot of a pull request's header data.
type PRMetadata struct {
	Number     int      `json:"number"`
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	HeadBranch string   `json:"headRefName"`
	BaseBranch string   `json:"baseRefName"`
	Author     Identity `json:"author"`
	Body       string   `json:"body"`
	CreatedAt  string   `json:"createdAt"`
	UpdatedAt  string   `json:"updatedAt"`
	State      string   `json:"state"`
	Labels     []Label  `json:"labels"`
}

// Label is a repository label attached to the pull request.
type Label struct {
	Name string `json:"name"`
}

// Review is a formal review verdict (APPROVED, CHANGES_REQUESTED, COMMENTED,
// or any other hosting-defined state). The authoring identity and submission
// timestamp each arrive under one of two alternate field names depending on
// the API version that produced the record.
type Review struct {
	ID             int64     `json:"id"`
	State          string    `json:"state"`
	User           *Identity `json:"user"`
	Author         *Identity `json:"author"`
	SubmittedSnake string    `json:"submitted_at"`
	SubmittedCamel string    `json:"submittedAt"`
	Body           string    `json:"body"`
}

// AuthorLogin resolves the review author through the user-then-author
// fallback chain. Returns "" when neither field carries a login.
func (r Review) AuthorLogin() string {
	return resolveLogin(r.User, r.Author)
}

// SubmittedAt resolves the submission timestamp, preferring the snake_case
// field. Returns "" when the review carries no timestamp.
func (r Review) SubmittedAt() string {
	if r.SubmittedSnake != "" {
		return r.SubmittedSnake
	}
	return r.SubmittedCamel
}

// ReviewComment is an inline code comment. Path is empty for PR-level
// comments. The line locator resolves through three mutually exclusive
// fields in decreasing priority: Line, OriginalLine, Position.
type ReviewComment struct {
	ID           int64     `json:"id"`
	Path         string    `json:"path"`
	Line         int       `json:"line"`
	OriginalLine int       `json:"original_line"`
	Position     int       `json:"position"`
	Side         string    `json:"side"`
	HTMLURL      string    `json:"html_url"`
	User         *Identity `json:"user"`
	Author       *Identity `json:"author"`
	CreatedAt    string    `json:"created_at"`
	DiffHunk     string    `json:"diff_hunk"`
	Body         string    `json:"body"`
	InReplyToID  int64     `json:"in_reply_to_id"`
}

// AuthorLogin resolves the comment author, preferring the user field.
func (c ReviewComment) AuthorLogin() string {
	return resolveLogin(c.User, c.Author)
}

// LineLocator returns the best available numeric position for the comment:
// the current line, else the original line, else the raw diff position,
// else zero.
func (c ReviewComment) LineLocator() int {
	switch {
	case c.Line != 0:
		return c.Line
	case c.OriginalLine != 0:
		return c.OriginalLine
	case c.Position != 0:
		return c.Position
	default:
		return 0
	}
}

// IsReply reports whether the comment references a parent comment.
func (c ReviewComment) IsReply() bool {
	return c.InReplyToID != 0
}

// IssueComment is a discussion-level comment with no threading relationship.
type IssueComment struct {
	ID        int64     `json:"id"`
	User      *Identity `json:"user"`
	Author    *Identity `json:"author"`
	CreatedAt string    `json:"created_at"`
	HTMLURL   string    `json:"html_url"`
	Body      string    `json:"body"`
}

// AuthorLogin resolves the comment author, preferring the user field.
func (c IssueComment) AuthorLogin() string {
	return resolveLogin(c.User, c.Author)
}

// Thread is a derived entity: a root inline comment paired with its replies
// in creation order. Replies to replies flatten into the same list because
// the hosting API makes every reply reference the original root id.
type Thread struct {
	Root    ReviewComment
	Replies []ReviewComment
}

func resolveLogin(primary, fallback *Identity) string {
	if primary != nil && primary.Login != "" {
		return primary.Login
	}
	if fallback != nil && fallback.Login != "" {
		return fallback.Login
	}
	return ""
}
