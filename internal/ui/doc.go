// Package ui renders comparison reports and runs the watch TUI.
//
// RenderReport turns a compare.Diff into styled text and is shared by the
// check command and the TUI. The TUI is a Bubble Tea program with two views:
//
//   - Report: the latest comparison pulled from state.Store on every tick
//   - Logs: the tail of modsnap's own log file, following new lines
//
// The header shows whether the live environment matches the recorded world,
// or why it could not be read. Themes cycle with T and the choice is written
// back to the config file.
package ui
