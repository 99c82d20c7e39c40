// Package ui provides console output helpers for skillcatalog.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Color functions for styled output.
var (
	// Success is used for completed stages (green).
	Success = color.New(color.FgGreen).SprintFunc()
	// Error is used for fatal failures (red).
	Error = color.New(color.FgRed).SprintFunc()
	// Warning is used for degraded but non-fatal conditions (yellow).
	Warning = color.New(color.FgYellow).SprintFunc()
	// Bold is used for counts and paths in summaries.
	Bold = color.New(color.Bold).SprintFunc()
	// Dim is used for secondary information (faint).
	Dim = color.New(color.Faint).SprintFunc()
)

// Status symbols.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
)

// StatusSuccess returns a green checkmark followed by msg.
func StatusSuccess(msg string) string {
	return status(Success(SymbolSuccess), msg)
}

// StatusError returns a red cross followed by msg.
func StatusError(msg string) string {
	return status(Error(SymbolError), msg)
}

// StatusWarning returns a yellow warning sign followed by msg.
func StatusWarning(msg string) string {
	return status(Warning(SymbolWarning), msg)
}

func status(symbol, msg string) string {
	if msg == "" {
		return symbol
	}
	return symbol + " " + msg
}

// Warnf writes a formatted warning line to w.
func Warnf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, StatusWarning(fmt.Sprintf(format, args...)))
}

// Color modes accepted by ConfigureColor.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ConfigureColor applies a color mode. "auto" leaves fatih/color's own
// terminal and NO_COLOR detection in place.
func ConfigureColor(mode string) error {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ColorAuto:
		return nil
	case ColorAlways:
		EnableColors()
		return nil
	case ColorNever:
		DisableColors()
		return nil
	default:
		return fmt.Errorf("invalid color mode %q (valid: auto, always, never)", mode)
	}
}

// DisableColors disables all color output.
func DisableColors() {
	color.NoColor = true
}

// EnableColors enables color output.
func EnableColors() {
	color.NoColor = false
}

// IsColorEnabled returns whether colors are currently enabled.
func IsColorEnabled() bool {
	return !color.NoColor
}
