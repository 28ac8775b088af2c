// Package element models the parsed project document as a tree of named,
// attributed nodes and provides the strict lookups the resolver relies on.
//
// Lookups never substitute defaults: a missing child or attribute surfaces as
// a *NotFoundError naming what was searched for and where. Parse builds the
// tree from markup using encoding/xml, decoding legacy charsets through
// golang.org/x/text when the document declares one.
package element
