// Package premiere reconstructs sequences, cuts, and media from the object
// graph of a Premiere project document.
//
// A Reader walks the document in two passes. The first parses every top-level
// Sequence and records which video track groups each one declares. The second
// finds those VideoTrackGroup objects and follows the reference chain
// Track → TrackItem → SubClip → Clip → MediaSource → Media → VideoStream for
// every clip, registering each medium once and appending a cut to the owning
// sequence. Every cut is fed into the sequence's timeline as it is found.
//
// Resolution is best effort: a broken reference chain abandons that track
// group and is reported as a warning, and Read only fails when every attempted
// track group failed. Sequence parsing errors are always fatal.
//
// The package performs no I/O while resolving. Decode wraps the container and
// markup collaborators for callers that start from the raw file bytes.
package premiere
