// Package snapshot models the set of mods and registry contents present when a
// world was last saved.
//
// # Overview
//
// A Snapshot holds three things:
//
//   - mods: mod ID → ModEntry{ID, Version, Name}
//   - registries: registry name → ordered list of entry IDs
//   - an environment version tag (the host game version, "" when unknown)
//
// Snapshots are values. They are built once, either from live data with New
// or from persisted documents with Decode/FromPersisted, and then only read.
// Every accessor returns a copy, so a Snapshot can be handed to other
// goroutines without locking.
//
// # Persisted Layout
//
// A snapshot is persisted as two nested key-value documents:
//
//	mods document:
//	  <mod id> = { version = "...", name = "..." }
//
//	registries document:
//	  mcVersion  = "1.14.4"
//	  <registry> = ["entry", "entry", ...]
//
// The documents are codec-agnostic (Document is a map[string]any); package
// store turns them into files.
//
// # Usable Flag
//
// Usable distinguishes "no prior snapshot was ever written" from "a snapshot
// with no mods". Empty and New return usable snapshots. The persistence layer
// clears the flag with WithUsable(false) when neither document exists on disk.
//
// A document that exists but cannot be parsed is handled differently: the
// store logs the failure and uses Empty(), which is still usable. Within a
// parsed document FromPersisted replaces each value of the wrong type with its
// zero value and keeps the rest. Callers that depend on the flag should keep
// that asymmetry in mind.
package snapshot
