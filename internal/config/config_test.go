package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_MatchesScriptBehavior(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, DefaultRepoURL, cfg.Repository.URL)
	assert.Equal(t, "main", cfg.Repository.Branch)
	assert.Equal(t, DefaultWorkspace, cfg.Repository.Workspace)
	assert.Equal(t, 100*time.Millisecond, cfg.Session.StepDelay)
	assert.Equal(t, []int{16, 48, 128}, cfg.Icons.Sizes)
	assert.Equal(t, "D", cfg.Icons.Letter)
	assert.Equal(t, "#667eea", cfg.Icons.Background)
	require.NoError(t, cfg.Validate())
}

func TestValidateSettings_AcceptsDefaults(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateSettings(DefaultSettings()))
}

func TestValidateSettings_RejectsBadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{
			name: "unknown top-level key",
			mutate: func(s map[string]any) {
				s["agents"] = map[string]any{}
			},
		},
		{
			name: "bad color",
			mutate: func(s map[string]any) {
				s["icons"].(map[string]any)["background"] = "purple-ish"
			},
		},
		{
			name: "zero icon size",
			mutate: func(s map[string]any) {
				s["icons"].(map[string]any)["sizes"] = []int{0}
			},
		},
		{
			name: "bad delay",
			mutate: func(s map[string]any) {
				s["session"].(map[string]any)["step_delay"] = "soon"
			},
		},
		{
			name: "bare non-zero delay",
			mutate: func(s map[string]any) {
				s["session"].(map[string]any)["step_delay"] = 5
			},
		},
		{
			name: "negative retention",
			mutate: func(s map[string]any) {
				s["retention"].(map[string]any)["keep_last"] = -1
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			settings := DefaultSettings()
			tt.mutate(settings)
			err := ValidateSettings(settings)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}
}

func TestValidateSettings_AcceptsBareZeroDelay(t *testing.T) {
	t.Parallel()

	settings := DefaultSettings()
	settings["session"].(map[string]any)["step_delay"] = 0
	require.NoError(t, ValidateSettings(settings))

	cfg, err := Decode(settings)
	require.NoError(t, err)
	assert.Zero(t, cfg.Session.StepDelay)
}

func TestDecode_ParsesDurationAndSizes(t *testing.T) {
	t.Parallel()

	settings := DefaultSettings()
	settings["session"].(map[string]any)["step_delay"] = "1m30s"
	settings["icons"].(map[string]any)["sizes"] = "32,64"

	cfg, err := Decode(settings)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Session.StepDelay)
	assert.Equal(t, []int{32, 64}, cfg.Icons.Sizes)
}

func TestValidate_ReportsProblems(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Repository.URL = " "
	cfg.Icons.Letter = "DX"
	cfg.Icons.Sizes = []int{16, 16}

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "repository.url is empty")
	assert.Contains(t, err.Error(), "icons.letter must be a single character")
	assert.Contains(t, err.Error(), "icons.sizes has duplicate 16")
}

type recordingSetter map[string]any

func (r recordingSetter) SetDefault(key string, value any) { r[key] = value }

func TestSetDefaults_FlattensKeys(t *testing.T) {
	t.Parallel()

	rec := recordingSetter{}
	SetDefaults(rec)

	assert.Equal(t, DefaultRepoURL, rec["repository.url"])
	assert.Equal(t, "100ms", rec["session.step_delay"])
	assert.Equal(t, ":8080", rec["ui.addr"])
	_, nested := rec["repository"]
	assert.False(t, nested)
}
