// Package live builds a snapshot of the environment that is about to load a
// world.
//
// The host (game server or client with the companion introspection endpoint)
// exposes two read-only JSON endpoints:
//
//	GET /api/mods        {"mods": [{"id": "...", "version": "...", "name": "..."}]}
//	GET /api/registries  {"mcVersion": "...", "registries": {"<name>": ["<id>", ...]}}
//
// Client fetches both and assembles a snapshot.Snapshot. Mods with an empty id
// are skipped. A missing mcVersion yields an empty environment version, which
// the comparison renders as "?".
//
// StoreSource is the offline alternative: it serves a snapshot directory that
// was captured earlier, which is useful for comparing two saves with each
// other.
package live
