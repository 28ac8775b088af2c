// Package objgraph resolves cross-references in the flat object graph of a
// project document.
//
// Top-level objects reference each other through one of two identifier
// namespaces: a local ObjectID and a global ObjectUID. Every lookup names the
// namespace it searches and never falls back to the other one. The index scans
// the root's direct children on each call; nothing is cached.
package objgraph
