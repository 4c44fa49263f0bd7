package collect

import "github.com/bkyoung/pr-context/internal/domain"

// stateApproved is the only review state that counts toward approvals.
const stateApproved = "APPROVED"

// summarizeApprovals reduces a review collection to a deduplicated count and
// ordered list of approving identities. Identities resolve through the
// user-then-author fallback chain; a review with neither field contributes
// to neither the count nor the list. First occurrence wins position, and the
// count always equals the length of the returned list.
func summarizeApprovals(reviews []domain.Review) (int, []string) {
	seen := make(map[string]struct{}, len(reviews))
	var approvers []string
	for _, r := range reviews {
		if r.State != stateApproved {
			continue
		}
		login := r.AuthorLogin()
		if login == "" {
			continue
		}
		if _, ok := seen[login]; ok {
			continue
		}
		seen[login] = struct{}{}
		approvers = append(approvers, login)
	}
	return len(approvers), approvers
}
