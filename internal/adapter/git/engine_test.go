package git

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls   [][]string
	outputs map[string]string
	errs    map[string]error
}

func (f *fakeRunner) run(ctx context.Context, repoDir string, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	key := strings.Join(args, " ")
	if err, ok := f.errs[key]; ok {
		return "", err
	}
	return f.outputs[key], nil
}

func newTestEngine(runner *fakeRunner, branchExists bool) *Engine {
	e := NewEngine(".", "origin")
	e.run = runner.run
	e.branchProbe = func(branch string) bool { return branchExists }
	return e
}

func TestResolveRefs_RemoteBranch(t *testing.T) {
	runner := &fakeRunner{}
	e := newTestEngine(runner, true)

	base, head, err := e.ResolveRefs(context.Background(), 42, "main", "feature")

	require.NoError(t, err)
	assert.Equal(t, "origin/main", base)
	assert.Equal(t, "origin/feature", head)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"fetch", "origin", "--prune"}, runner.calls[0])
}

func TestResolveRefs_ForkFallback(t *testing.T) {
	runner := &fakeRunner{}
	e := newTestEngine(runner, false)

	base, head, err := e.ResolveRefs(context.Background(), 42, "main", "feature")

	require.NoError(t, err)
	assert.Equal(t, "origin/main", base)
	assert.Equal(t, "refs/prctx/pr-42", head)
	require.Len(t, runner.calls, 2)
	assert.Equal(t, []string{"fetch", "origin", "pull/42/head:refs/prctx/pr-42"}, runner.calls[1])
}

func TestResolveRefs_SyncFailureIsFatal(t *testing.T) {
	runner := &fakeRunner{errs: map[string]error{
		"fetch origin --prune": errors.New("could not read from remote"),
	}}
	e := newTestEngine(runner, true)

	_, _, err := e.ResolveRefs(context.Background(), 42, "main", "feature")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sync remote origin")
}

func TestResolveRefs_ForkFetchFailureIsFatal(t *testing.T) {
	runner := &fakeRunner{errs: map[string]error{
		"fetch origin pull/42/head:refs/prctx/pr-42": errors.New("couldn't find remote ref"),
	}}
	e := newTestEngine(runner, false)

	_, _, err := e.ResolveRefs(context.Background(), 42, "main", "feature")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch PR head")
}

func TestChangedFiles(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected []string
	}{
		{
			name:     "multiple paths",
			output:   "main.go\ninternal/db/conn.go\n",
			expected: []string{"main.go", "internal/db/conn.go"},
		},
		{
			name:     "no changes",
			output:   "",
			expected: nil,
		},
		{
			name:     "trailing newlines stripped",
			output:   "a.go\n\n",
			expected: []string{"a.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{outputs: map[string]string{
				"diff --name-only origin/main...origin/feature": tt.output,
			}}
			e := newTestEngine(runner, true)

			files, err := e.ChangedFiles(context.Background(), "origin/main", "origin/feature")

			require.NoError(t, err)
			assert.Equal(t, tt.expected, files)
		})
	}
}

func TestDiff(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"diff origin/main...origin/feature -- main.go util.go": "diff --git a/main.go b/main.go\n+x",
	}}
	e := newTestEngine(runner, true)

	out, err := e.Diff(context.Background(), "origin/main", "origin/feature", []string{"main.go", "util.go"})

	require.NoError(t, err)
	assert.Contains(t, out, "+x")
}

func TestNewEngine_DefaultRemote(t *testing.T) {
	e := NewEngine(".", "")
	assert.Equal(t, "origin", e.remote)
}
