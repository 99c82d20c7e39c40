package e2e

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauern/skillcatalog/internal/util"
)

func TestAssertHelpers(t *testing.T) {
	r := &Result{Stdout: "ok", Stderr: "⚠ careful", Err: nil, ExitCode: 0}

	AssertSuccess(t, r)
	AssertExitCode(t, r, 0)
	AssertOutputEquals(t, r, "ok")
	AssertStderrContains(t, r, "careful")
	AssertStderrNotContains(t, r, "ok")
}

func TestAssertErrorHelpers(t *testing.T) {
	r := &Result{Err: errors.New("file not found at /x"), ExitCode: 1}

	AssertError(t, r)
	AssertExitCode(t, r, 1)
	AssertErrorContains(t, r, "file not found")
}

func TestAssertFileEquals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(path, []byte("content"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	AssertFileEquals(t, path, "content")
	AssertFileContains(t, path, "tent")
	AssertFileExists(t, path)
	AssertFileNotExists(t, path+".missing")
}

func TestAssertFileMatches(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	if err := os.WriteFile(path, []byte("id\nx\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "out.golden"), []byte("id\nx\n"), 0o600); err != nil {
		t.Fatalf("write golden: %v", err)
	}

	AssertFileMatches(t, path, dir, "out")
}

func TestAssertFileMatches_UpdateFollowsSharedFlag(t *testing.T) {
	original := util.UpdateGolden()
	t.Cleanup(func() { util.SetUpdateGolden(original) })

	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	if err := os.WriteFile(path, []byte("id\nfresh\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	util.SetUpdateGolden(true)
	AssertFileMatches(t, path, filepath.Join(dir, "testdata"), "out")

	got, err := os.ReadFile(filepath.Join(dir, "testdata", "out.golden"))
	if err != nil {
		t.Fatalf("golden not written: %v", err)
	}
	if string(got) != "id\nfresh\n" {
		t.Errorf("golden = %q", got)
	}
}
