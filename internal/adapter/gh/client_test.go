package gh

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/pr-context/internal/domain"
)

func fakeExec(stdout string, err error) execFunc {
	return func(ctx context.Context, args ...string) (bytes.Buffer, bytes.Buffer, error) {
		var out, errBuf bytes.Buffer
		out.WriteString(stdout)
		if err != nil {
			errBuf.WriteString("gh: boom")
		}
		return out, errBuf, err
	}
}

func recordingExec(captured *[][]string, stdout string) execFunc {
	return func(ctx context.Context, args ...string) (bytes.Buffer, bytes.Buffer, error) {
		*captured = append(*captured, args)
		var out, errBuf bytes.Buffer
		out.WriteString(stdout)
		return out, errBuf, nil
	}
}

func TestClient_PRMetadata(t *testing.T) {
	var calls [][]string
	payload := `{"number":42,"title":"Add retries","headRefName":"feature","baseRefName":"main","author":{"login":"alice"},"state":"OPEN","labels":[{"name":"bug"}]}`
	c := &Client{repo: "acme/widgets", exec: recordingExec(&calls, payload)}

	meta, err := c.PRMetadata(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, 42, meta.Number)
	assert.Equal(t, "Add retries", meta.Title)
	assert.Equal(t, "feature", meta.HeadBranch)
	assert.Equal(t, "main", meta.BaseBranch)
	assert.Equal(t, "alice", meta.Author.Login)
	assert.Equal(t, []domain.Label{{Name: "bug"}}, meta.Labels)

	require.Len(t, calls, 1)
	assert.Equal(t, []string{"pr", "view", "42", "--repo", "acme/widgets", "--json", metadataFields}, calls[0])
}

func TestClient_PRMetadata_ExecFailure(t *testing.T) {
	c := &Client{repo: "acme/widgets", exec: fakeExec("", errors.New("exit status 1"))}

	_, err := c.PRMetadata(context.Background(), 42)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "gh pr view")
	assert.Contains(t, err.Error(), "gh: boom")
}

func TestClient_Reviews_PaginatePath(t *testing.T) {
	var calls [][]string
	c := &Client{repo: "acme/widgets", exec: recordingExec(&calls, "")}

	_, err := c.Reviews(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"api", "repos/acme/widgets/pulls/7/reviews", "--paginate", "--jq", ".[]"}, calls[0])
}

func TestClient_ReviewComments(t *testing.T) {
	lines := `{"id":10,"path":"main.go","line":3,"user":{"login":"bob"},"body":"nit"}
{"id":11,"in_reply_to_id":10,"user":{"login":"alice"},"body":"done"}`
	c := &Client{repo: "acme/widgets", exec: fakeExec(lines, nil)}

	comments, err := c.ReviewComments(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "main.go", comments[0].Path)
	assert.Equal(t, int64(10), comments[1].InReplyToID)
}

func TestDecodeLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []domain.IssueComment
	}{
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "plain record per line",
			input:    `{"id":1,"body":"first"}` + "\n" + `{"id":2,"body":"second"}`,
			expected: []domain.IssueComment{{ID: 1, Body: "first"}, {ID: 2, Body: "second"}},
		},
		{
			name:     "double-encoded record recovered",
			input:    `"{\"id\":3,\"body\":\"nested\"}"`,
			expected: []domain.IssueComment{{ID: 3, Body: "nested"}},
		},
		{
			name:     "garbage line skipped without losing neighbors",
			input:    `{"id":1,"body":"ok"}` + "\n" + `{{{not json` + "\n" + `{"id":2,"body":"also ok"}`,
			expected: []domain.IssueComment{{ID: 1, Body: "ok"}, {ID: 2, Body: "also ok"}},
		},
		{
			name:     "string wrapping garbage skipped",
			input:    `"still not a record"`,
			expected: nil,
		},
		{
			name:     "blank lines ignored",
			input:    "\n\n" + `{"id":4,"body":"x"}` + "\n\n",
			expected: []domain.IssueComment{{ID: 4, Body: "x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, decodeLines[domain.IssueComment]([]byte(tt.input)))
		})
	}
}
