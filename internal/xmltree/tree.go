// Package xmltree parses XML into a generic, order-agnostic attribute tree.
//
// Bureau report documents are optional-heavy and irregular: the same tag may
// appear once or many times, and some report variants carry values as
// attributes where others use child elements. The tree therefore merges
// attributes into the same namespace as child elements and exposes repeated
// siblings through List, so downstream stages never branch on cardinality.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformed indicates the input is not well-formed XML.
var ErrMalformed = errors.New("malformed XML document")

// Node is one element of a parsed document. Text holds the element's
// trimmed character data; children holds sub-elements and attributes,
// keyed by local name, in document order per key.
type Node struct {
	Text     string
	children map[string][]*Node
}

// Parse reads an XML document into a tree. The returned node is a synthetic
// document node whose single child is the document's root element.
func Parse(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	doc := &Node{}
	stack := []*Node{doc}
	sawRoot := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{}
			for _, attr := range t.Attr {
				n.add(attr.Name.Local, &Node{Text: attr.Value})
			}
			stack[len(stack)-1].add(t.Name.Local, n)
			stack = append(stack, n)
			sawRoot = true
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			text := strings.TrimSpace(string(t))
			if text == "" {
				break
			}
			cur := stack[len(stack)-1]
			if cur.Text != "" {
				cur.Text += " "
			}
			cur.Text += text
		}
	}

	if !sawRoot {
		return nil, fmt.Errorf("%w: no root element", ErrMalformed)
	}

	return doc, nil
}

func (n *Node) add(name string, child *Node) {
	if n.children == nil {
		n.children = make(map[string][]*Node)
	}
	n.children[name] = append(n.children[name], child)
}

// Get returns the first child with the given name, or nil. A nil receiver
// returns nil, so lookups chain safely through absent sections.
func (n *Node) Get(name string) *Node {
	if n == nil {
		return nil
	}
	if nodes := n.children[name]; len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}

// List returns all children with the given name. A singleton child yields a
// one-element slice; an absent child yields nil.
func (n *Node) List(name string) []*Node {
	if n == nil {
		return nil
	}
	return n.children[name]
}

// Path walks one level per name, taking the first child at each step.
// Returns nil as soon as any step is absent.
func (n *Node) Path(names ...string) *Node {
	cur := n
	for _, name := range names {
		cur = cur.Get(name)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Value returns the trimmed text at the given path, or "" when any step is
// absent.
func (n *Node) Value(names ...string) string {
	node := n.Path(names...)
	if node == nil {
		return ""
	}
	return node.Text
}
