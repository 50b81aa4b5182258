package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_NotExist(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path != "" || cfg.Mode != "" || cfg.FailOnError != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoad_ParsesFields(t *testing.T) {
	dir := t.TempDir()
	content := "path: skills/*\nmode: multiple\nbase_ref: origin/develop\nfail_on_error: false\noutput_json: true\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path != "skills/*" || cfg.Mode != "multiple" || cfg.BaseRef != "origin/develop" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.FailOnError == nil || *cfg.FailOnError {
		t.Fatalf("expected fail_on_error=false, got %v", cfg.FailOnError)
	}
	if cfg.OutputJSON == nil || !*cfg.OutputJSON {
		t.Fatalf("expected output_json=true, got %v", cfg.OutputJSON)
	}
	if cfg.CommentOnPR != nil {
		t.Fatalf("absent key should stay nil, got %v", cfg.CommentOnPR)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("mode: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoadDotEnv_NotExist(t *testing.T) {
	m, err := LoadDotEnv(t.TempDir())
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if len(m) != 0 {
		t.Fatalf("expected empty map, got %v", m)
	}
}

func TestLoadDotEnv_ParsesKeyValue(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("# comment\nA=1\nB=two\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := LoadDotEnv(dir)
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if m["A"] != "1" || m["B"] != "two" {
		t.Fatalf("unexpected map: %v", m)
	}
}

func TestApplyDotEnv_DoesNotOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SKILLDOCTOR_TEST_K=fromdotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SKILLDOCTOR_TEST_K", "fromenv")

	if err := ApplyDotEnv(dir); err != nil {
		t.Fatalf("ApplyDotEnv: %v", err)
	}
	if got := os.Getenv("SKILLDOCTOR_TEST_K"); got != "fromenv" {
		t.Fatalf("expected env to win, got %q", got)
	}
}
