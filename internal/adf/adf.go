// Package adf decodes Atlassian Document Format trees and flattens them
// to plain text.
package adf

import "strings"

// Node is a single element of an ADF document. A node may carry leaf text,
// child content, or both. Node kinds this package does not recognise are
// traversed for their children and otherwise ignored, so documents using
// newer ADF node types still extract cleanly.
type Node struct {
	Type    string  `json:"type,omitempty"`
	Text    string  `json:"text,omitempty"`
	Content []*Node `json:"content,omitempty"`
}

// PlainText flattens the document into plain text. Leaf text values are
// concatenated depth-first in document order; non-empty top-level blocks are
// separated by a single newline for readability. A nil node yields the empty
// string. PlainText never fails.
func (n *Node) PlainText() string {
	if n == nil {
		return ""
	}
	var blocks []string
	if n.Text != "" {
		blocks = append(blocks, n.Text)
	}
	for _, child := range n.Content {
		var b strings.Builder
		child.appendText(&b)
		if s := b.String(); s != "" {
			blocks = append(blocks, s)
		}
	}
	return strings.Join(blocks, "\n")
}

func (n *Node) appendText(b *strings.Builder) {
	if n == nil {
		return
	}
	b.WriteString(n.Text)
	for _, child := range n.Content {
		child.appendText(b)
	}
}
