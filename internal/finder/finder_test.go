package finder

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func mkSkill(t *testing.T, parent, name string) string {
	t.Helper()
	dir := filepath.Join(parent, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "---\nname: " + name + "\ndescription: Test skill\n---\nBody\n"
	if err := os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestSingle_Directory(t *testing.T) {
	dir := mkSkill(t, t.TempDir(), "demo-skill")
	dirs, err := Single(dir)
	if err != nil {
		t.Fatalf("Single: %v", err)
	}
	if len(dirs) != 1 || dirs[0] != dir {
		t.Fatalf("unexpected dirs: %v", dirs)
	}
}

func TestSingle_NotADirectory(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Single(f); err == nil {
		t.Fatal("expected error for non-directory path")
	}
}

func TestGlob_MatchesSkillDirsOnly(t *testing.T) {
	tmp := t.TempDir()
	a := mkSkill(t, filepath.Join(tmp, "skills"), "alpha")
	b := mkSkill(t, filepath.Join(tmp, "skills"), "beta")
	// Directory without SKILL.md must not match.
	if err := os.MkdirAll(filepath.Join(tmp, "skills", "not-a-skill"), 0o755); err != nil {
		t.Fatal(err)
	}

	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	dirs, err := Glob("skills/*")
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(dirs) != 2 {
		t.Fatalf("expected 2 skill dirs, got %v", dirs)
	}
	// Sorted output.
	if filepath.Base(dirs[0]) != filepath.Base(a) || filepath.Base(dirs[1]) != filepath.Base(b) {
		t.Fatalf("unexpected order: %v", dirs)
	}
}

func TestGlob_Doublestar(t *testing.T) {
	tmp := t.TempDir()
	mkSkill(t, filepath.Join(tmp, "packs", "core", "skills"), "gamma")

	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	dirs, err := Glob("**/skills/*")
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(dirs) != 1 || filepath.Base(dirs[0]) != "gamma" {
		t.Fatalf("unexpected dirs: %v", dirs)
	}
}

func TestGlob_SingleDirectoryPattern(t *testing.T) {
	dir := mkSkill(t, t.TempDir(), "solo")
	dirs, err := Glob(dir)
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(dirs) != 1 || dirs[0] != dir {
		t.Fatalf("unexpected dirs: %v", dirs)
	}

	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.MkdirAll(empty, 0o755); err != nil {
		t.Fatal(err)
	}
	dirs, err = Glob(empty)
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(dirs) != 0 {
		t.Fatalf("directory without SKILL.md should not match: %v", dirs)
	}
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
}

func TestChanged_MapsFilesToSkillDirs(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	tmp := t.TempDir()
	mkSkill(t, filepath.Join(tmp, "skills"), "alpha")
	mkSkill(t, filepath.Join(tmp, "skills"), "beta")
	if err := os.WriteFile(filepath.Join(tmp, "README.md"), []byte("readme\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	runGit(t, tmp, "init", "-q")
	runGit(t, tmp, "add", "-A")
	runGit(t, tmp, "commit", "-q", "-m", "initial")
	runGit(t, tmp, "branch", "base")

	// alpha: two support files changed, both resolving to the nearest
	// ancestor holding a skill file, deduplicated to one entry.
	if err := os.WriteFile(filepath.Join(tmp, "skills", "alpha", "helper.txt"), []byte("help\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	docs := filepath.Join(tmp, "skills", "alpha", "docs")
	if err := os.MkdirAll(docs, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(docs, "notes.md"), []byte("notes\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// beta: the SKILL.md itself changed, mapping to its own directory.
	betaContent := "---\nname: beta\ndescription: Updated skill\n---\nBody\n"
	if err := os.WriteFile(filepath.Join(tmp, "skills", "beta", "SKILL.md"), []byte(betaContent), 0o644); err != nil {
		t.Fatal(err)
	}
	// Root-level change outside any skill directory must not match.
	if err := os.WriteFile(filepath.Join(tmp, "README.md"), []byte("readme v2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	runGit(t, tmp, "add", "-A")
	runGit(t, tmp, "commit", "-q", "-m", "changes")

	chdir(t, tmp)
	dirs, err := Changed("base")
	if err != nil {
		t.Fatalf("Changed: %v", err)
	}
	if len(dirs) != 2 {
		t.Fatalf("expected 2 skill dirs, got %v", dirs)
	}
	// Sorted by path: alpha before beta.
	if filepath.Base(dirs[0]) != "alpha" || filepath.Base(dirs[1]) != "beta" {
		t.Fatalf("unexpected order: %v", dirs)
	}
}

func TestChanged_NoSkillChanges(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	tmp := t.TempDir()
	mkSkill(t, filepath.Join(tmp, "skills"), "alpha")
	if err := os.WriteFile(filepath.Join(tmp, "README.md"), []byte("readme\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	runGit(t, tmp, "init", "-q")
	runGit(t, tmp, "add", "-A")
	runGit(t, tmp, "commit", "-q", "-m", "initial")
	runGit(t, tmp, "branch", "base")

	if err := os.WriteFile(filepath.Join(tmp, "README.md"), []byte("readme v2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	runGit(t, tmp, "add", "-A")
	runGit(t, tmp, "commit", "-q", "-m", "docs only")

	chdir(t, tmp)
	dirs, err := Changed("base")
	if err != nil {
		t.Fatalf("Changed: %v", err)
	}
	if len(dirs) != 0 {
		t.Fatalf("expected no skill dirs, got %v", dirs)
	}
}

func TestChanged_GitFailure(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	// Not a git repository: the diff fails and Changed surfaces it.
	chdir(t, t.TempDir())
	if _, err := Changed("origin/main"); err == nil {
		t.Fatal("expected error outside a git repository")
	}
}

func TestHasSkillFile(t *testing.T) {
	dir := mkSkill(t, t.TempDir(), "demo")
	if !HasSkillFile(dir) {
		t.Fatal("expected skill file to be found")
	}
	if HasSkillFile(t.TempDir()) {
		t.Fatal("empty directory should not report a skill file")
	}
}
