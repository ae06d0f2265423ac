package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/classboard/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 3, cfg.Rules.MaxTasksPerDay)
	assert.Equal(t, 90, cfg.Rules.MaxTaskDurationDays)
	assert.Equal(t, 1, cfg.Rules.MinAssignees)
	assert.Equal(t, 5, cfg.Rules.MaxAssignees)
	assert.Equal(t, 5, cfg.Rules.DefaultGroupCapacity)
	assert.Equal(t, 5*time.Second, cfg.Store.LockTimeout)
	require.NoError(t, Validate(cfg))
}

func TestLoadFromPaths_Precedence(t *testing.T) {
	dir := t.TempDir()
	global := filepath.Join(dir, "global.yaml")
	project := filepath.Join(dir, "project.yaml")

	writeFile(t, global, `
rules:
  max_tasks_per_day: 4
  max_task_duration_days: 60
time:
  timezone: Europe/Paris
store:
  lock_timeout: 2s
`)
	writeFile(t, project, `
rules:
  max_tasks_per_day: 2
`)

	cfg, err := LoadFromPaths(context.Background(), project, global)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Rules.MaxTasksPerDay, "project overrides global")
	assert.Equal(t, 60, cfg.Rules.MaxTaskDurationDays, "global overrides defaults")
	assert.Equal(t, 5, cfg.Rules.MaxAssignees, "defaults fill the rest")
	assert.Equal(t, "Europe/Paris", cfg.Time.Timezone)
	assert.Equal(t, 2*time.Second, cfg.Store.LockTimeout)
}

func TestLoadFromPaths_EnvWins(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, "project.yaml")
	writeFile(t, project, "rules:\n  max_tasks_per_day: 2\n")
	t.Setenv("CLASSBOARD_RULES_MAX_TASKS_PER_DAY", "7")

	cfg, err := LoadFromPaths(context.Background(), project, "")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Rules.MaxTasksPerDay)
}

func TestLoadFromPaths_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFromPaths(context.Background(), filepath.Join(dir, "nope.yaml"), filepath.Join(dir, "nada.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Rules, cfg.Rules)
}

func TestLoadFromPaths_Invalid(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, "project.yaml")
	writeFile(t, project, "rules:\n  max_tasks_per_day: 0\n")

	_, err := LoadFromPaths(context.Background(), project, "")
	require.ErrorIs(t, err, errors.ErrValueOutOfRange)
}

func TestLoad_FromWorkingDirectory(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	writeFile(t, filepath.Join(home, ".classboard", "config.yaml"), "rules:\n  max_assignees: 4\n")
	writeFile(t, filepath.Join(work, ".classboard", "config.yaml"), "rules:\n  max_tasks_per_day: 6\n")
	writeFile(t, filepath.Join(work, ".env"), "CLASSBOARD_TIME_TIMEZONE=UTC\n")
	t.Cleanup(func() { _ = os.Unsetenv("CLASSBOARD_TIME_TIMEZONE") })

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Rules.MaxAssignees)
	assert.Equal(t, 6, cfg.Rules.MaxTasksPerDay)
	assert.Equal(t, "UTC", cfg.Time.Timezone)
}

func TestLoadWithOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadWithOverrides(context.Background(), &Config{
		Rules: RulesConfig{MaxTasksPerDay: 9},
		Store: StoreConfig{Dir: "/tmp/store"},
		Log:   LogConfig{Disabled: true},
	})
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.Rules.MaxTasksPerDay)
	assert.Equal(t, 90, cfg.Rules.MaxTaskDurationDays)
	assert.Equal(t, "/tmp/store", cfg.Store.Dir)
	assert.True(t, cfg.Log.Disabled)

	_, err = LoadWithOverrides(context.Background(), &Config{Rules: RulesConfig{MaxTasksPerDay: 99}})
	require.ErrorIs(t, err, errors.ErrValueOutOfRange)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"zero per day", func(c *Config) { c.Rules.MaxTasksPerDay = 0 }, errors.ErrValueOutOfRange},
		{"duration too long", func(c *Config) { c.Rules.MaxTaskDurationDays = 400 }, errors.ErrValueOutOfRange},
		{"no assignee required", func(c *Config) { c.Rules.MinAssignees = 0 }, errors.ErrValueOutOfRange},
		{"max below min", func(c *Config) { c.Rules.MinAssignees = 3; c.Rules.MaxAssignees = 2 }, errors.ErrValueOutOfRange},
		{"zero capacity", func(c *Config) { c.Rules.DefaultGroupCapacity = 0 }, errors.ErrValueOutOfRange},
		{"unknown timezone", func(c *Config) { c.Time.Timezone = "Mars/Olympus" }, errors.ErrInvalidTimezone},
		{"zero lock timeout", func(c *Config) { c.Store.LockTimeout = 0 }, errors.ErrValueOutOfRange},
		{"negative backups", func(c *Config) { c.Log.MaxBackups = -1 }, errors.ErrValueOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	require.ErrorIs(t, Validate(nil), errors.ErrConfigNil)
}

func TestPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := GlobalConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".classboard"), dir)

	path, err := GlobalConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".classboard", "config.yaml"), path)
	assert.Equal(t, filepath.Join(".classboard", "config.yaml"), ProjectConfigPath())

	cfg := DefaultConfig()
	storeDir, err := cfg.StoreDir()
	require.NoError(t, err)
	assert.Equal(t, dir, storeDir)

	logFile, err := cfg.LogFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".classboard", "logs", "classboard.log"), logFile)

	cfg.Store.Dir = "/srv/classboard"
	cfg.Log.File = "/var/log/cb.log"
	storeDir, _ = cfg.StoreDir()
	logFile, _ = cfg.LogFile()
	assert.Equal(t, "/srv/classboard", storeDir)
	assert.Equal(t, "/var/log/cb.log", logFile)
}

func TestTimeConfigLocation(t *testing.T) {
	loc, err := TimeConfig{}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = TimeConfig{Timezone: "UTC"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestApplyOverrides(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.NoError(t, ApplyOverrides(cfg, nil))
	assert.Equal(t, DefaultConfig(), cfg)

	require.NoError(t, ApplyOverrides(cfg, &Config{
		Rules: RulesConfig{MaxTaskDurationDays: 30},
		Time:  TimeConfig{Timezone: "Europe/Paris"},
	}))
	assert.Equal(t, 30, cfg.Rules.MaxTaskDurationDays)
	assert.Equal(t, 3, cfg.Rules.MaxTasksPerDay)
	assert.Equal(t, "Europe/Paris", cfg.Time.Timezone)

	err := ApplyOverrides(cfg, &Config{Rules: RulesConfig{MinAssignees: 9}})
	require.ErrorIs(t, err, errors.ErrValueOutOfRange)
}
