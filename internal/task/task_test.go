package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_CreateDefaults(t *testing.T) {
	t.Parallel()

	l := NewList()
	tk := l.Create("repository_scout", "discovery", "Map directory structure", "")

	assert.NotEmpty(t, tk.ID)
	assert.Equal(t, DefaultPriority, tk.Priority)
	assert.Equal(t, StatusPending, tk.Status)
	assert.Nil(t, tk.CompletedAt)
	assert.False(t, tk.CreatedAt.IsZero())
	assert.Equal(t, 1, l.Count())
}

func TestList_UnknownAgentIsAccepted(t *testing.T) {
	t.Parallel()

	l := NewList()
	l.Create("nobody", "analysis", "whatever", "high")
	require.Len(t, l.ByAgent("nobody"), 1)
	assert.Equal(t, "high", l.ByAgent("nobody")[0].Priority)
}

func TestList_CompleteAgent(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	l := NewList()
	l.now = func() time.Time { return fixed }

	l.Create("code_analyzer", "analysis", "a", "")
	l.Create("code_analyzer", "analysis", "b", "")
	other := l.Create("dependency_auditor", "analysis", "c", "")

	assert.Equal(t, 2, l.CompleteAgent("code_analyzer"))
	assert.Equal(t, 0, l.CompleteAgent("code_analyzer"))

	for _, tk := range l.ByAgent("code_analyzer") {
		assert.Equal(t, StatusCompleted, tk.Status)
		require.NotNil(t, tk.CompletedAt)
		assert.Equal(t, fixed, *tk.CompletedAt)
	}
	assert.Equal(t, StatusPending, l.ByAgent("dependency_auditor")[0].Status)

	assert.True(t, l.Complete(other.ID))
	assert.False(t, l.Complete("missing"))
}

func TestList_AllReturnsCopies(t *testing.T) {
	t.Parallel()

	l := NewList()
	l.Create("a", "t", "one", "")
	l.Create("b", "t", "two", "")

	all := l.All()
	require.Len(t, all, 2)
	all[0].Description = "changed"
	assert.Equal(t, "one", l.All()[0].Description)
	assert.Equal(t, "two", all[1].Description)
}
