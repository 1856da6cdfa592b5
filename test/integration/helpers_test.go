//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // ASSISTKIT_HOME, holds config.yaml
	ProjectDir string // A mock project directory
}

// setupTestEnv creates isolated temp directories and points ASSISTKIT_HOME at
// one of them so no test touches the real user settings.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
	}
	t.Setenv("ASSISTKIT_HOME", env.HomeDir)
	return env
}

// setupPhoenixProject lays out a minimal Phoenix application.
func setupPhoenixProject(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, "mix.exs"), `defmodule Shop.MixProject do
  use Mix.Project

  defp deps do
    [
      {:phoenix, "~> 1.7.10"},
      {:ecto_sql, "~> 3.10"}
    ]
  end
end
`)
	writeFile(t, filepath.Join(dir, "lib", "shop.ex"), "defmodule Shop do\nend\n")
	writeFile(t, filepath.Join(dir, "assets", "package.json"), `{"name":"assets"}`)
	writeFile(t, filepath.Join(dir, "deps", "phoenix", "mix.exs"), "")
}

// setupNodeProject lays out a small Node project with installed modules and
// git metadata that introspection must skip.
func setupNodeProject(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, "package.json"), `{
  "name": "demo",
  "dependencies": {"left-pad": "1.0", "express": "4.19.0"},
  "devDependencies": {"jest": "29"},
  "scripts": {"build": "make", "test": "jest"}
}`)
	writeFile(t, filepath.Join(dir, "index.js"), "require('express')\n")
	writeFile(t, filepath.Join(dir, "lib", "util.js"), "module.exports = {}\n")
	writeFile(t, filepath.Join(dir, "node_modules", "left-pad", "index.js"), "")
	writeFile(t, filepath.Join(dir, ".git", "HEAD"), "ref: refs/heads/main\n")
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// assertFileNotContains fails if the file contains substr.
func assertFileNotContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if strings.Contains(string(data), substr) {
		t.Errorf("file %s unexpectedly contains %q", path, substr)
	}
}
