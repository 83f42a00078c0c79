package render

import (
	"html"
	"strconv"
	"strings"
)

// Markup serializes paragraphs to HTML fragments.  The output is a pure
// function of the tree: sentences become spans carrying data-sid, structural
// frames carry data-role, vocabulary hits carry data-word, and text leaves
// are escaped.  Serialization never reorders or drops nodes, so stripping
// the tags yields the original text back.
func Markup(paragraphs []Paragraph) string {
	var sb strings.Builder
	for _, p := range paragraphs {
		sb.WriteString("<p>")
		for _, n := range p {
			writeNode(&sb, n)
		}
		sb.WriteString("</p>")
	}
	return sb.String()
}

// MarkupNodes serializes a single node list without paragraph wrapping.
func MarkupNodes(nodes []*Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		writeNode(&sb, n)
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, n *Node) {
	switch n.Kind {
	case NodeText:
		sb.WriteString(html.EscapeString(n.Content))
		return
	case NodeSentence:
		sb.WriteString(`<span data-sid="`)
		sb.WriteString(strconv.Itoa(n.SentenceID))
		sb.WriteString(`">`)
	case NodeStructure:
		sb.WriteString(`<span data-role="`)
		sb.WriteString(html.EscapeString(string(n.Role)))
		sb.WriteString(`">`)
	case NodeWord:
		sb.WriteString(`<span data-word="`)
		sb.WriteString(html.EscapeString(n.Lemma))
		sb.WriteString(`">`)
	default:
		return
	}
	for _, c := range n.Children {
		writeNode(sb, c)
	}
	sb.WriteString("</span>")
}
