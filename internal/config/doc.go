// Package config manages user-level settings stored at ~/.assistkit/config.yaml.
// Values can also be supplied through ASSISTKIT_* environment variables, e.g.
// ASSISTKIT_SCHEMA_PATH or ASSISTKIT_INTROSPECT_ASSISTANT.
package config
