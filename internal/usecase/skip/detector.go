// Package skip provides skip trigger detection for review-context runs.
// It allows authors to bypass the automated reviewing agent by including a
// trigger pattern in the PR title or description, or by applying a label.
package skip

import (
	"regexp"
	"strings"
)

// skipTriggerPattern matches [skip review] or [skip-review] (case-insensitive).
var skipTriggerPattern = regexp.MustCompile(`(?i)\[skip[ -]review\]`)

// skipLabel is the repository label that disables automated review.
const skipLabel = "skip-review"

// ContainsSkipTrigger checks if text contains a skip trigger pattern.
// Supported patterns:
//   - [skip review]
//   - [skip-review]
//
// Matching is case-insensitive.
func ContainsSkipTrigger(text string) bool {
	return skipTriggerPattern.MatchString(text)
}

// CheckRequest contains the inputs to check for skip triggers.
type CheckRequest struct {
	Title  string   // PR title (optional)
	Body   string   // PR description/body (optional)
	Labels []string // PR label names (optional)
}

// CheckResult contains the result of checking for skip triggers.
type CheckResult struct {
	ShouldSkip bool   // True if a skip trigger was found
	Reason     string // Source where trigger was found ("PR title", "PR description", "PR label")
}

// Check examines PR metadata for skip triggers, in order: title,
// description, labels. Returns the first match found.
func Check(req CheckRequest) CheckResult {
	if ContainsSkipTrigger(strings.TrimSpace(req.Title)) {
		return CheckResult{ShouldSkip: true, Reason: "PR title"}
	}
	if ContainsSkipTrigger(req.Body) {
		return CheckResult{ShouldSkip: true, Reason: "PR description"}
	}
	for _, label := range req.Labels {
		if strings.EqualFold(strings.TrimSpace(label), skipLabel) {
			return CheckResult{ShouldSkip: true, Reason: "PR label"}
		}
	}
	return CheckResult{}
}
