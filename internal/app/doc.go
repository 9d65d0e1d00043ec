// Package app wires config, logging, the world store and the live source
// together for modsnap's commands.
//
// Setup returns an Env bound to one world directory. Its Save and Compare
// methods back the save and check commands. Compare returns ErrNoReference
// alongside the diff when the world was never recorded, so callers can still
// show what the current environment holds.
//
// Run drives watch mode:
//
//	Setup ─> Store.Load (reference)
//	      ─> Source (host client or --against directory)
//	      ─> StartPoller ─> Check ─> state.Store.Update
//	      ─> ui.Run (reads state.Store on every tick)
//
// The poller keeps polling after failures, doubling its interval up to
// maxBackoff until the source answers again.
package app
