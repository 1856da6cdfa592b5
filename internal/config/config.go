package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/assistkit/assistkit/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized keys.
const (
	KeySchemaPath          = "schema_path"
	KeyLogLevel            = "log_level"
	KeyIntrospectAssistant = "introspect.assistant"
	KeyIntrospectExclude   = "introspect.exclude"
)

// DefaultExclude lists the directories the introspect walk never enters.
var DefaultExclude = []string{".git", "node_modules"}

// Dir returns the path to the config directory (~/.assistkit/).
// ASSISTKIT_HOME overrides the location.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("home")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.assistkit/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyIntrospectAssistant, "gemini")
	viper.SetDefault(KeyIntrospectExclude, DefaultExclude)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
// List values are joined with commas.
func Get(key string) string {
	switch viper.Get(key).(type) {
	case []string, []any:
		return strings.Join(viper.GetStringSlice(key), ",")
	}
	return viper.GetString(key)
}

// SchemaPath returns the user catalog override, or "" for the built-in catalog.
func SchemaPath() string {
	return viper.GetString(KeySchemaPath)
}

// LogLevel returns the configured zerolog level name.
func LogLevel() string {
	return viper.GetString(KeyLogLevel)
}

// IntrospectAssistant returns the assistant name the introspect document targets.
func IntrospectAssistant() string {
	return viper.GetString(KeyIntrospectAssistant)
}

// IntrospectExclude returns the configured directory globs for introspect.
// Comma-separated entries, as given through the environment, are split.
// The walk skips DefaultExclude whatever this returns.
func IntrospectExclude() []string {
	var excl []string
	for _, v := range viper.GetStringSlice(KeyIntrospectExclude) {
		excl = append(excl, splitList(v)...)
	}
	if len(excl) == 0 {
		return DefaultExclude
	}
	return excl
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	if key == KeyIntrospectExclude {
		viper.Set(key, splitList(value))
	} else {
		viper.Set(key, value)
	}

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// splitList turns "a, b,c" into [a b c].
func splitList(value string) []string {
	var items []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}
