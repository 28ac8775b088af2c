package element

import "strings"

// Attr is a single attribute on an element.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of the parsed document. It is immutable once Parse
// returns; callers only borrow it.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
	Text     string
}

// Get returns the first direct child named name.
func (e *Element) Get(name string) (*Element, error) {
	if e != nil {
		for _, child := range e.Children {
			if child.Name == name {
				return child, nil
			}
		}
	}
	return nil, &NotFoundError{Kind: KindElement, Name: name, In: e}
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, error) {
	if value, ok := e.LookupAttr(name); ok {
		return value, nil
	}
	return "", &NotFoundError{Kind: KindAttribute, Name: name, In: e}
}

// LookupAttr reports the attribute value and whether it was present.
func (e *Element) LookupAttr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, attr := range e.Attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Pick resolves several direct children in a single pass and returns them in
// argument order. The first name without a match fails the whole call.
func (e *Element) Pick(names ...string) ([]*Element, error) {
	found := make([]*Element, len(names))
	remaining := len(names)
	if e != nil {
		for _, child := range e.Children {
			if remaining == 0 {
				break
			}
			for i, name := range names {
				if found[i] == nil && child.Name == name {
					found[i] = child
					remaining--
					break
				}
			}
		}
	}
	for i, name := range names {
		if found[i] == nil {
			return nil, &NotFoundError{Kind: KindElement, Name: name, In: e}
		}
	}
	return found, nil
}

// ChildrenNamed returns every direct child named name, in document order.
func (e *Element) ChildrenNamed(name string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, child := range e.Children {
		if child.Name == name {
			out = append(out, child)
		}
	}
	return out
}

// TrimmedText returns the character data with surrounding whitespace removed.
func (e *Element) TrimmedText() string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.Text)
}
