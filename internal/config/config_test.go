package config

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigContent = `
[development]
log_level = "debug"
log_to_stdout = true
data_dir = "./data"
plan_start = "2025-01-06"
goal_weight_kg = 80.0
starting_weight_kg = 95.0

[production]
log_level = "error"
logs_path = "/var/log/runplan"
data_dir = "/var/lib/runplan"
`

func TestLoad(t *testing.T) {
	configPath := path.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(testConfigContent), 0600))

	cfg, err := Load("development", configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogToStdout)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "2025-01-06", cfg.PlanStart)
	assert.Equal(t, 80.0, cfg.GoalWeightKg)
	assert.Equal(t, 95.0, cfg.StartingWeightKg)

	cfg, err = Load("prod", configPath)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "/var/lib/runplan", cfg.DataDir)

	_, err = Load("staging", configPath)
	require.Error(t, err)

	_, err = Load("dev", path.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}
