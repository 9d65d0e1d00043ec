// Package store persists snapshots next to a world save.
//
// # Files
//
// A world directory holds two documents:
//
//	modsnap-mods.toml        mod id → { version, name }
//	modsnap-registries.toml  mcVersion plus registry name → [entries]
//
// TOML is the default encoding. Setting format = "yaml" in the config switches
// both files to YAML (.yaml extension); the document shape is unchanged.
//
// # Load Semantics
//
// Load never returns an error. It distinguishes two conditions:
//
//   - Neither file exists: the snapshot is empty and Usable() is false.
//   - A file exists but cannot be read or parsed: the failure is logged and
//     the snapshot is empty but still usable.
//
// The second case mirrors the behaviour of earlier releases, which treated a
// corrupt record as "no mods" rather than "no record". Callers that want to
// tell the two apart should check Exists as well as Usable.
//
// # Writes
//
// Save writes each document to a temporary file in the same directory and
// renames it into place, so a crash mid-save leaves the previous document
// intact.
package store
