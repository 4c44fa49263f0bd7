package collect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bkyoung/pr-context/internal/domain"
)

func TestSummarizeApprovals(t *testing.T) {
	tests := []struct {
		name      string
		reviews   []domain.Review
		count     int
		approvers []string
	}{
		{
			name:    "no reviews",
			reviews: nil,
			count:   0,
		},
		{
			name: "non-approving states ignored",
			reviews: []domain.Review{
				{State: "COMMENTED", User: &domain.Identity{Login: "alice"}},
				{State: "CHANGES_REQUESTED", User: &domain.Identity{Login: "bob"}},
			},
			count: 0,
		},
		{
			name: "state matching is exact and case sensitive",
			reviews: []domain.Review{
				{State: "approved", User: &domain.Identity{Login: "alice"}},
			},
			count: 0,
		},
		{
			name: "two approvers in first seen order",
			reviews: []domain.Review{
				{State: "APPROVED", User: &domain.Identity{Login: "bob"}},
				{State: "APPROVED", User: &domain.Identity{Login: "alice"}},
			},
			count:     2,
			approvers: []string{"bob", "alice"},
		},
		{
			name: "re-approval by same user counted once",
			reviews: []domain.Review{
				{State: "APPROVED", User: &domain.Identity{Login: "alice"}},
				{State: "COMMENTED", User: &domain.Identity{Login: "alice"}},
				{State: "APPROVED", User: &domain.Identity{Login: "alice"}},
			},
			count:     1,
			approvers: []string{"alice"},
		},
		{
			name: "author field used when user missing",
			reviews: []domain.Review{
				{State: "APPROVED", Author: &domain.Identity{Login: "carol"}},
			},
			count:     1,
			approvers: []string{"carol"},
		},
		{
			name: "anonymous approval contributes nothing",
			reviews: []domain.Review{
				{State: "APPROVED"},
				{State: "APPROVED", User: &domain.Identity{Login: "dave"}},
			},
			count:     1,
			approvers: []string{"dave"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, approvers := summarizeApprovals(tt.reviews)
			assert.Equal(t, tt.count, count)
			assert.Equal(t, tt.approvers, approvers)
			assert.Len(t, approvers, count)
		})
	}
}
