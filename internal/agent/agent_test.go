package agent

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoster_HasThirteenUniqueAgents(t *testing.T) {
	t.Parallel()

	defs := Roster()
	require.Len(t, defs, 13)

	seen := make(map[string]bool)
	for _, def := range defs {
		assert.False(t, seen[def.Name], "duplicate agent %s", def.Name)
		seen[def.Name] = true
		assert.NotEmpty(t, def.Role)
		assert.Len(t, def.Capabilities, 3)
		assert.GreaterOrEqual(t, def.Phase, 1)
		assert.LessOrEqual(t, def.Phase, 6)
	}
	assert.Equal(t, RepositoryScout, defs[0].Name)
	assert.Equal(t, SessionOrchestrator, defs[12].Name)
}

func TestRoster_ReturnsCopies(t *testing.T) {
	t.Parallel()

	defs := Roster()
	defs[0].Capabilities[0] = "mutated"
	defs[0].Name = "mutated"

	again := Roster()
	assert.Equal(t, RepositoryScout, again[0].Name)
	assert.Equal(t, "git_operations", again[0].Capabilities[0])
}

func TestByPhase(t *testing.T) {
	t.Parallel()

	counts := map[int]int{1: 2, 2: 3, 3: 2, 4: 3, 5: 2, 6: 1}
	for phase, want := range counts {
		assert.Len(t, ByPhase(phase), want, "phase %d", phase)
	}
	assert.Empty(t, ByPhase(7))
}

func TestLookup(t *testing.T) {
	t.Parallel()

	def, ok := Lookup(DependencyAuditor)
	require.True(t, ok)
	assert.Equal(t, "Dependency and package management analysis", def.Role)
	assert.Equal(t, 2, def.Phase)

	_, ok = Lookup("ghost")
	assert.False(t, ok)
}

func TestNew_AssignsIDAndStatus(t *testing.T) {
	t.Parallel()

	def, _ := Lookup(TestEngineer)
	a := New(def)
	b := New(def)

	_, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, StatusInitialized, a.Status)

	a.Complete()
	assert.Equal(t, StatusCompleted, a.Status)
	assert.Equal(t, StatusInitialized, b.Status)
}
