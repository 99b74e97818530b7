// Package ui provides terminal output formatting for orbital.
//
// All user-facing messages go through a Printer so commands can be pointed at
// any writer in tests:
//   - Info:    → Cyan arrow
//   - Success: ✔ Green checkmark
//   - Fail:    ✘ Red X
//   - Warn:    ○ Yellow circle
//
// Prompts read from the Printer's input. Secrets are read without echo when
// the input is a terminal.
package ui
