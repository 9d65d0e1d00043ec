// Package state holds the latest comparison result for watch mode.
//
// # Overview
//
// In watch mode a background poller fetches the live snapshot at a fixed
// cadence, compares it against the reference snapshot, and hands the diff to
// a Store. The TUI reads from the same Store on its own tick:
//
//	Producer (Poller):             Consumer (UI):
//	┌────────────────────┐        ┌────────────────┐
//	│ FetchSnapshot()    │        │                │
//	│ compare.Snapshots()│        │                │
//	│      ↓             │        │                │
//	│ store.Update()     │───────→│ store.Result() │
//	│      ↓             │ (mutex)│      ↓         │
//	│  repeat...         │        │  render UI     │
//	└────────────────────┘        └────────────────┘
//
// # Update Semantics
//
//	// Success: replace the diff
//	store.Update(&diff, nil)
//	→ result.Diff = diff, HasDiff = true
//	→ result.LastError = nil, ConsecutiveFailures = 0
//
//	// Failure: keep the last diff, record the error
//	store.Update(nil, err)
//	→ result.Diff = <unchanged>
//	→ result.LastError = err, ConsecutiveFailures++
//
// Keeping the previous diff lets the UI continue to show the last known
// differences while the host is restarting.
//
// # Defensive Copying
//
// Update and Result deep-copy the diff's slices and registry map, and wrap the
// error, so the UI can never observe a half-written result.
//
// The zero value is ready to use.
package state
