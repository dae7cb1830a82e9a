package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	if _, _, err := runCLI(t, env, "config", "init"); err == nil {
		t.Fatal("expected init to refuse an existing config")
	}

	env.configPath = filepath.Join(t.TempDir(), "nested", "config.toml")
	out, _, err = runCLI(t, env, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(env.configPath); err != nil {
		t.Fatalf("expected config file at %s: %v", env.configPath, err)
	}
	out, _, err = runCLI(t, env, "config", "validate")
	if err != nil {
		t.Fatalf("validate sample config: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}

func TestConfigSetGetUnset(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env, "config", "set", "output.encoding", "cp437"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, _, err := runCLI(t, env, "config", "get", "output.encoding")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "cp437" {
		t.Fatalf("config get = %q, want cp437", out)
	}

	if _, _, err := runCLI(t, env, "config", "set", "output.encoding", "klingon"); err == nil {
		t.Fatal("expected invalid encoding to be rejected")
	}

	if _, _, err := runCLI(t, env, "config", "unset", "output.encoding"); err != nil {
		t.Fatalf("config unset: %v", err)
	}
	if _, _, err := runCLI(t, env, "config", "get", "output.encoding"); err == nil {
		t.Fatal("expected unset key to be missing")
	}
}

func TestConfigShowMasksSecrets(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("TMDB_API_KEY", "supersecret")

	out, _, err := runCLI(t, env, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if strings.Contains(out, "supersecret") {
		t.Fatalf("config show leaked the api key:\n%s", out)
	}
	requireContains(t, out, "artwork_dir")
}
