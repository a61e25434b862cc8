package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2.0, cfg.LengthMaxReward)
	assert.Equal(t, 750.0, cfg.LengthTargetCenter)
	assert.Equal(t, 0.008, cfg.LengthSteepness)
	assert.Equal(t, 8, cfg.GroupSize)
	assert.False(t, cfg.FormatDebug)
	assert.False(t, cfg.IncludeEfficiency)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LENGTH_MAX_REWARD", "1.5")
	t.Setenv("LENGTH_TARGET_CENTER", "500")
	t.Setenv("GROUP_SIZE", "16")
	t.Setenv("INCLUDE_EFFICIENCY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1.5, cfg.LengthMaxReward)
	assert.Equal(t, 500.0, cfg.LengthTargetCenter)
	assert.Equal(t, 16, cfg.GroupSize)
	assert.True(t, cfg.IncludeEfficiency)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("GROUP_SIZE", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}

func TestBuildSuite(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	suite := cfg.BuildSuite()
	assert.Equal(t, []string{"correctness", "format", "length", "reasoning"}, suite.Names())
}

func TestBuildSuite_WithEfficiency(t *testing.T) {
	t.Setenv("INCLUDE_EFFICIENCY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	names := cfg.BuildSuite().Names()
	require.Len(t, names, 5)
	assert.Equal(t, "efficiency", names[4])
}
