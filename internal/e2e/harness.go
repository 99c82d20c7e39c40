// Package e2e provides testing infrastructure for end-to-end CLI tests.
// A Harness lays out an isolated dataset directory, points the CLI at it
// through the environment and captures everything the CLI prints.
package e2e

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauern/skillcatalog/internal/cli"
	"github.com/klauern/skillcatalog/internal/logging"
)

// Result contains the outcome of running a CLI command.
type Result struct {
	// Stdout contains the captured standard output (progress lines, reports).
	Stdout string
	// Stderr contains the captured standard error (warnings, logs).
	Stderr string
	// Err is the error returned by the CLI command, if any.
	Err error
	// ExitCode is the inferred exit code (0 for success, 1 for error).
	ExitCode int
}

// Success returns true if the command completed without error.
func (r *Result) Success() bool {
	return r.Err == nil
}

// Harness provides a test harness for running E2E CLI tests.
//
// The layout mirrors a deployed checkout:
//
//	<root>/skills_index.json
//	<root>/CATALOG.md
//	<root>/dataset/          (SKILLCATALOG_BASE_DIR, receives skills.csv)
type Harness struct {
	t       *testing.T
	rootDir string
}

// NewHarness creates a new E2E test harness with an isolated HOME, config
// directory and dataset layout.
func NewHarness(t *testing.T) *Harness {
	t.Helper()

	rootDir := t.TempDir()

	h := &Harness{
		t:       t,
		rootDir: rootDir,
	}

	home := filepath.Join(rootDir, "home")
	h.SetEnv("HOME", home)
	h.SetEnv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	h.SetEnv("SKILLCATALOG_BASE_DIR", h.DatasetDir())

	// Clear anything inherited from the developer's shell.
	for _, key := range []string{
		"SKILLCATALOG_INDEX_PATH",
		"SKILLCATALOG_CATALOG_PATH",
		"SKILLCATALOG_OUTPUT_PATH",
		"SKILLCATALOG_OUTPUT_FORMAT",
		"SKILLCATALOG_OUTPUT_COLOR",
		"SKILLCATALOG_OUTPUT_VERBOSE",
	} {
		h.SetEnv(key, "")
	}

	return h
}

// SetEnv sets an environment variable for CLI commands run through this harness.
// The environment will be restored after the test completes.
func (h *Harness) SetEnv(key, value string) {
	h.t.Helper()
	h.t.Setenv(key, value)
}

// RootDir returns the directory holding the index and catalog.
func (h *Harness) RootDir() string {
	return h.rootDir
}

// DatasetDir returns the directory the CLI treats as its own location.
func (h *Harness) DatasetDir() string {
	return filepath.Join(h.rootDir, "dataset")
}

// OutputPath returns where a default run writes its CSV.
func (h *Harness) OutputPath() string {
	return filepath.Join(h.DatasetDir(), "skills.csv")
}

// Run executes a CLI command with the given arguments and captures the output.
// Colors are always disabled so output can be compared verbatim.
func (h *Harness) Run(args ...string) *Result {
	h.t.Helper()

	if len(args) == 0 || args[0] != "skillcatalog" {
		args = append([]string{"skillcatalog"}, args...)
	}
	args = append([]string{args[0], "--no-color"}, args[1:]...)

	oldStdout, oldStderr := os.Stdout, os.Stderr
	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		h.t.Fatalf("failed to create stdout pipe: %v", err)
	}
	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		h.t.Fatalf("failed to create stderr pipe: %v", err)
	}
	os.Stdout, os.Stderr = stdoutW, stderrW

	// Read both pipes concurrently to avoid pipe buffer deadlock.
	stdoutCh := capture(stdoutR)
	stderrCh := capture(stderrR)

	cmdErr := cli.Run(context.Background(), args)

	if err := stdoutW.Close(); err != nil {
		h.t.Fatalf("failed to close stdout pipe writer: %v", err)
	}
	if err := stderrW.Close(); err != nil {
		h.t.Fatalf("failed to close stderr pipe writer: %v", err)
	}
	os.Stdout, os.Stderr = oldStdout, oldStderr

	stdout, stderr := <-stdoutCh, <-stderrCh
	if stdout.err != nil {
		h.t.Fatalf("failed to read captured stdout: %v", stdout.err)
	}
	if stderr.err != nil {
		h.t.Fatalf("failed to read captured stderr: %v", stderr.err)
	}

	// Run installs a logger bound to the stderr pipe; put back a live one.
	logging.SetDefault(logging.New(logging.DefaultOptions()))

	exitCode := 0
	if cmdErr != nil {
		exitCode = 1
	}

	return &Result{
		Stdout:   stdout.text,
		Stderr:   stderr.text,
		Err:      cmdErr,
		ExitCode: exitCode,
	}
}

type captured struct {
	text string
	err  error
}

func capture(r *os.File) <-chan captured {
	ch := make(chan captured, 1)
	go func() {
		defer func() { _ = r.Close() }()
		var buf bytes.Buffer
		_, err := io.Copy(&buf, r)
		ch <- captured{text: buf.String(), err: err}
	}()
	return ch
}
