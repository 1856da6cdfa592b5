package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if CLIName() != "assistkit" {
		t.Errorf("CLIName() = %q, want %q", CLIName(), "assistkit")
	}
	if HomeDir() != ".assistkit" {
		t.Errorf("HomeDir() = %q, want %q", HomeDir(), ".assistkit")
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("schema_path"); got != "ASSISTKIT_SCHEMA_PATH" {
		t.Errorf("EnvVar(schema_path) = %q", got)
	}
}
