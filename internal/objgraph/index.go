package objgraph

import (
	"fmt"
	"iter"

	"prproj/internal/element"
)

// Namespace selects the identifier attribute used for a lookup.
type Namespace int

const (
	// LocalID addresses objects by their ObjectID attribute.
	LocalID Namespace = iota
	// GlobalID addresses objects by their ObjectUID attribute.
	GlobalID
)

// Attribute returns the attribute name that carries identifiers in ns.
func (ns Namespace) Attribute() string {
	if ns == GlobalID {
		return "ObjectUID"
	}
	return "ObjectID"
}

func (ns Namespace) String() string {
	return ns.Attribute()
}

// Index looks up top-level objects of a parsed document.
type Index struct {
	root *element.Element
}

// New returns an index over the direct children of root.
func New(root *element.Element) *Index {
	return &Index{root: root}
}

// Find returns the first direct child of the root whose identifier in ns
// equals id.
func (x *Index) Find(id string, ns Namespace) (*element.Element, error) {
	attr := ns.Attribute()
	if x.root != nil {
		for _, child := range x.root.Children {
			if value, ok := child.LookupAttr(attr); ok && value == id {
				return child, nil
			}
		}
	}
	return nil, &element.NotFoundError{
		Kind: element.KindElement,
		Name: fmt.Sprintf("%s=%q", attr, id),
		In:   x.root,
	}
}

// FindAll yields every direct child whose identifier in ns is one of ids, in
// document order. Identifiers without a match are skipped. The sequence may
// be ranged over repeatedly; each pass rescans the root.
func (x *Index) FindAll(ids []string, ns Namespace) iter.Seq[*element.Element] {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	attr := ns.Attribute()
	return func(yield func(*element.Element) bool) {
		if x.root == nil {
			return
		}
		for _, child := range x.root.Children {
			value, ok := child.LookupAttr(attr)
			if !ok {
				continue
			}
			if _, match := wanted[value]; !match {
				continue
			}
			if !yield(child) {
				return
			}
		}
	}
}
