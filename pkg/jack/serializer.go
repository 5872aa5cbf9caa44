package jack

import (
	"fmt"
	"io"
	"strings"
)

// ----------------------------------------------------------------------------
// Tree Serializer

// Serialize renders 'root' and its descendants to 'w' in the canonical XML form:
// two-space indentation per nesting level, an internal node as '<tag>' ... '</tag>'
// spanning multiple lines, a leaf as '<tag> text </tag>' on a single line, and an
// empty internal node as '<tag>\n</tag>'. This formatting is byte-exact by design;
// it's the oracle downstream tooling diffs its own output against.
func Serialize(w io.Writer, root *Node) error {
	return SerializeIndent(w, root, 2)
}

// SerializeIndent is Serialize with a configurable indent width, so a '--config'
// override (pkg/config) can reformat the tree without changing its shape.
func SerializeIndent(w io.Writer, root *Node, width int) error {
	return serializeNode(w, root, 0, width)
}

func serializeNode(w io.Writer, n *Node, depth, width int) error {
	indent := strings.Repeat(" ", depth*width)

	if n.HasText {
		_, err := fmt.Fprintf(w, "%s<%s> %s </%s>\n", indent, n.Tag, escapeXML(n.Text), n.Tag)
		return err
	}

	if len(n.Children) == 0 {
		_, err := fmt.Fprintf(w, "%s<%s>\n%s</%s>\n", indent, n.Tag, indent, n.Tag)
		return err
	}

	if _, err := fmt.Fprintf(w, "%s<%s>\n", indent, n.Tag); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := serializeNode(w, child, depth+1, width); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s</%s>\n", indent, n.Tag)
	return err
}

// escapeXML escapes the three characters the output format requires escaped.
// Order matters: '&' must be escaped first, or the ampersands introduced by
// escaping '<' and '>' would themselves get re-escaped.
func escapeXML(text string) string {
	text = strings.ReplaceAll(text, "&", "&amp;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	text = strings.ReplaceAll(text, ">", "&gt;")
	return text
}
