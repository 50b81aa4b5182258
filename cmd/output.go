package cmd

import (
	"fmt"
	"os"
)

// ── Unified output helpers ────────────────────────────────────────────────────
// The command layer uses these for its own progress and warning lines;
// the validation report itself is rendered by internal/report.
//
// Icon semantics:
//   ✓  success
//   ✗  error / failure          (written to stderr)
//   ⚠  warning
//   ~  neutral info

// printOK prints a success line.
func printOK(msg string) {
	fmt.Printf("  ✓  %s\n", msg)
}

// printErr prints an error line to stderr.
func printErr(msg string) {
	fmt.Fprintf(os.Stderr, "  ✗  %s\n", msg)
}

// printWarn prints a warning line.
func printWarn(msg string) {
	fmt.Printf("  ⚠  %s\n", msg)
}

// printInfo prints a neutral informational line.
func printInfo(msg string) {
	fmt.Printf("  ~  %s\n", msg)
}
