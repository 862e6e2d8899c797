// Package twsave models Mount & Blade II: Bannerlord save games.
//
// A .sav file is a binary container: a plaintext outer frame (magic tag,
// format version, game version, module list, metadata JSON) followed by a
// ZLIB-compressed payload of typed segments. This package holds the decoded
// campaign model: heroes, parties, settlements, factions, clans, kingdoms,
// fleets, and ships, keyed by 64-bit entity ids.
//
// Loading and saving live in the store package, segment codecs in the
// segments package, the ZLIB codec in the codec package, and the snapshot
// engine in the backup package. The model itself is I/O free.
//
// Entities carry a dirty flag that records edits since load; a successful
// save clears it. Writers re-encode every known entity regardless of it.
// Cross-entity references are stored as ids; Resolve rebuilds the in-memory
// links after a load and records ids that do not resolve. Validate produces
// a structural report without mutating the save.
package twsave
