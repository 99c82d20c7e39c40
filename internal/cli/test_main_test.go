package cli

import (
	"fmt"
	"os"
	"testing"

	"github.com/klauern/skillcatalog/internal/ui"
)

func TestMain(m *testing.M) {
	tempHome, err := os.MkdirTemp("", "skillcatalog-home-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp HOME: %v\n", err)
		os.Exit(1)
	}

	// Keep a developer's own config file and environment out of the tests.
	for _, key := range []string{
		"SKILLCATALOG_BASE_DIR",
		"SKILLCATALOG_INDEX_PATH",
		"SKILLCATALOG_CATALOG_PATH",
		"SKILLCATALOG_OUTPUT_PATH",
		"SKILLCATALOG_OUTPUT_FORMAT",
		"SKILLCATALOG_OUTPUT_COLOR",
		"SKILLCATALOG_OUTPUT_VERBOSE",
	} {
		_ = os.Unsetenv(key)
	}
	if err := os.Setenv("HOME", tempHome); err != nil {
		fmt.Fprintf(os.Stderr, "failed to set HOME: %v\n", err)
		_ = os.RemoveAll(tempHome)
		os.Exit(1)
	}
	if err := os.Setenv("XDG_CONFIG_HOME", tempHome); err != nil {
		fmt.Fprintf(os.Stderr, "failed to set XDG_CONFIG_HOME: %v\n", err)
		_ = os.RemoveAll(tempHome)
		os.Exit(1)
	}
	ui.DisableColors()

	code := m.Run()

	_ = os.RemoveAll(tempHome)
	os.Exit(code)
}
