package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/classboard/internal/errors"
)

// EnvPrefix prefixes every environment override, e.g. CLASSBOARD_RULES_MAX_TASKS_PER_DAY.
const EnvPrefix = "CLASSBOARD"

// dotEnvFile is read from the working directory before the environment is consulted.
const dotEnvFile = ".env"

// newViperInstance creates a Viper instance with the CLASSBOARD_ environment
// prefix, the key replacer and the defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// loadDotEnv exports the variables of path into the process environment.
// Variables already set win. A missing file is not an error.
func loadDotEnv(path string) error {
	if !fileExists(path) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}
	return nil
}

// unmarshalAndValidate unmarshals viper config into Config struct and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration from all available sources with proper precedence.
// Missing config files are expected and not reported.
func Load(ctx context.Context) (*Config, error) {
	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}

	v := newViperInstance()
	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(v); err != nil {
		return nil, err
	}

	cfg, err := unmarshalAndValidate(v)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Int("rules.max_tasks_per_day", cfg.Rules.MaxTasksPerDay).
		Int("rules.max_task_duration_days", cfg.Rules.MaxTaskDurationDays).
		Str("time.timezone", cfg.Time.Timezone).
		Msg("configuration loaded")

	return cfg, nil
}

// loadGlobalConfig loads ~/.classboard/config.yaml when it exists.
func loadGlobalConfig(v *viper.Viper) error {
	globalConfigPath, err := GlobalConfigPath()
	if err != nil || !fileExists(globalConfigPath) {
		return nil
	}

	v.SetConfigFile(globalConfigPath)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read global config file")
	}
	return nil
}

// loadProjectConfig merges .classboard/config.yaml when it exists.
func loadProjectConfig(v *viper.Viper) error {
	projectConfigPath := ProjectConfigPath()
	if !fileExists(projectConfigPath) {
		return nil
	}

	v.SetConfigFile(projectConfigPath)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read project config file")
	}
	return nil
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadWithOverrides loads configuration and applies CLI flag overrides.
// Only non-zero values in overrides are applied.
func LoadWithOverrides(ctx context.Context, overrides *Config) (*Config, error) {
	cfg, err := Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := ApplyOverrides(cfg, overrides); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides merges the non-zero values of overrides into cfg and
// validates the result. A nil overrides leaves cfg untouched.
func ApplyOverrides(cfg, overrides *Config) error {
	if overrides == nil {
		return nil
	}
	applyOverrides(cfg, overrides)
	if err := Validate(cfg); err != nil {
		return errors.Wrap(err, "invalid configuration after overrides")
	}
	return nil
}

// LoadFromPaths loads configuration from specific file paths, for tests and
// for the --config flag. Either path can be empty to skip that level.
func LoadFromPaths(_ context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
		}
	}

	if projectConfigPath != "" {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
		}
	}

	return unmarshalAndValidate(v)
}

// setDefaults configures all default values on the Viper instance.
// Keys must match the mapstructure tags for environment overrides to apply.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("rules.max_tasks_per_day", d.Rules.MaxTasksPerDay)
	v.SetDefault("rules.max_task_duration_days", d.Rules.MaxTaskDurationDays)
	v.SetDefault("rules.min_assignees", d.Rules.MinAssignees)
	v.SetDefault("rules.max_assignees", d.Rules.MaxAssignees)
	v.SetDefault("rules.default_group_capacity", d.Rules.DefaultGroupCapacity)

	v.SetDefault("time.timezone", d.Time.Timezone)

	v.SetDefault("store.dir", d.Store.Dir)
	v.SetDefault("store.lock_timeout", d.Store.LockTimeout.String())

	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	v.SetDefault("log.disabled", d.Log.Disabled)
}

// applyOverrides merges non-zero override values into the config.
// Log.Disabled is a bool and cannot be turned off here; the CLI handles it
// with cmd.Flags().Changed.
func applyOverrides(cfg, overrides *Config) {
	applyRulesOverrides(&cfg.Rules, &overrides.Rules)

	if overrides.Time.Timezone != "" {
		cfg.Time.Timezone = overrides.Time.Timezone
	}
	if overrides.Store.Dir != "" {
		cfg.Store.Dir = overrides.Store.Dir
	}
	if overrides.Store.LockTimeout != 0 {
		cfg.Store.LockTimeout = overrides.Store.LockTimeout
	}
	if overrides.Log.File != "" {
		cfg.Log.File = overrides.Log.File
	}
	if overrides.Log.Disabled {
		cfg.Log.Disabled = true
	}
}

func applyRulesOverrides(cfg, overrides *RulesConfig) {
	if overrides.MaxTasksPerDay != 0 {
		cfg.MaxTasksPerDay = overrides.MaxTasksPerDay
	}
	if overrides.MaxTaskDurationDays != 0 {
		cfg.MaxTaskDurationDays = overrides.MaxTaskDurationDays
	}
	if overrides.MinAssignees != 0 {
		cfg.MinAssignees = overrides.MinAssignees
	}
	if overrides.MaxAssignees != 0 {
		cfg.MaxAssignees = overrides.MaxAssignees
	}
	if overrides.DefaultGroupCapacity != 0 {
		cfg.DefaultGroupCapacity = overrides.DefaultGroupCapacity
	}
}

// viperDecoderOption configures mapstructure to decode durations from
// strings such as "5s".
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	)
}
