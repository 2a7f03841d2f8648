package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}\n"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.HTTP.MaxRetries != 3 {
		t.Errorf("max_retries = %d, want 3", cfg.HTTP.MaxRetries)
	}
	if cfg.Timeout() != 20*time.Second {
		t.Errorf("timeout = %s, want 20s", cfg.Timeout())
	}
	if cfg.Hellowork.BaseURL != "https://www.hellowork.com" {
		t.Errorf("base_url = %q", cfg.Hellowork.BaseURL)
	}
	if len(cfg.HTTP.UserAgents) == 0 {
		t.Error("default user agent pool is empty")
	}
	if len(cfg.Skills.Vocabulary) == 0 {
		t.Error("default vocabulary is empty")
	}
	if cfg.App.LettersDir != "lettres" {
		t.Errorf("letters_dir = %q, want lettres", cfg.App.LettersDir)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
http:
  timeout_seconds: 5
  user_agents: ["ua-1"]
hellowork:
  base_url: "https://example.test"
profile:
  name: "Jean"
  placeholder_company: "EDF"
`))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Timeout() != 5*time.Second {
		t.Errorf("timeout = %s, want 5s", cfg.Timeout())
	}
	if len(cfg.HTTP.UserAgents) != 1 || cfg.HTTP.UserAgents[0] != "ua-1" {
		t.Errorf("user_agents = %v", cfg.HTTP.UserAgents)
	}
	if cfg.Hellowork.BaseURL != "https://example.test" {
		t.Errorf("base_url = %q", cfg.Hellowork.BaseURL)
	}
	if cfg.Profile.Name != "Jean" || cfg.Profile.PlaceholderCompany != "EDF" {
		t.Errorf("profile = %+v", cfg.Profile)
	}
}

func TestNormalizeTrimsAndDedupes(t *testing.T) {
	var cfg Config
	cfg.applyDefaults()
	cfg.HTTP.UserAgents = []string{" ua-1 ", "ua-1", "", "UA-1", "ua-2"}

	out, res := NormalizeAndValidate(cfg)
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(out.HTTP.UserAgents) != 2 {
		t.Fatalf("user_agents = %v, want 2 entries", out.HTTP.UserAgents)
	}
}

func TestValidateRejectsEmptyIdentityPool(t *testing.T) {
	var cfg Config
	cfg.applyDefaults()
	cfg.HTTP.UserAgents = []string{"  ", ""}

	_, res := NormalizeAndValidate(cfg)
	if res.OK() {
		t.Fatal("empty identity pool must be an error")
	}
}

func TestValidateRejectsBadBaseURL(t *testing.T) {
	var cfg Config
	cfg.applyDefaults()
	cfg.Hellowork.BaseURL = "ftp://nope"

	_, res := NormalizeAndValidate(cfg)
	if res.OK() {
		t.Fatal("non-http base_url must be an error")
	}
}

func TestEnsureUserConfigSeedsFromDefault(t *testing.T) {
	dir := t.TempDir()
	def := filepath.Join(dir, "default.yml")
	if err := os.WriteFile(def, []byte("app:\n  letters_dir: courriers\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	dataDir := t.TempDir()
	path, err := EnsureUserConfig(dataDir, def)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.App.LettersDir != "courriers" {
		t.Errorf("seeded letters_dir = %q, want courriers", cfg.App.LettersDir)
	}

	// second call must keep the existing copy
	again, err := EnsureUserConfig(dataDir, filepath.Join(dir, "does-not-exist.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if again != path {
		t.Errorf("second call returned %q, want %q", again, path)
	}
}

func TestEnsureUserConfigWithoutDefaultWritesEmpty(t *testing.T) {
	dataDir := t.TempDir()
	path, err := EnsureUserConfig(dataDir, filepath.Join(dataDir, "missing-default.yml"))
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.HTTP.UserAgents) == 0 {
		t.Error("empty seeded config must still resolve to defaults")
	}
}
