package element

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// Parse reads a complete document and returns its root element. Malformed
// markup is reported as an error; there is no partial tree.
func Parse(r io.Reader) (*Element, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charsetReader

	var (
		root  *Element
		stack []*Element
		text  []*strings.Builder
	)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			elem := &Element{Name: t.Name.Local}
			if len(t.Attr) > 0 {
				elem.Attrs = make([]Attr, 0, len(t.Attr))
				for _, attr := range t.Attr {
					elem.Attrs = append(elem.Attrs, Attr{Name: attr.Name.Local, Value: attr.Value})
				}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("parse document: multiple root elements")
				}
				root = elem
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, elem)
			}
			stack = append(stack, elem)
			text = append(text, &strings.Builder{})
		case xml.CharData:
			if len(text) > 0 {
				text[len(text)-1].Write(t)
			}
		case xml.EndElement:
			last := len(stack) - 1
			stack[last].Text = text[last].String()
			stack = stack[:last]
			text = text[:last]
		}
	}
	if root == nil {
		return nil, errors.New("parse document: no root element")
	}
	return root, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("charset %q: unsupported", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
