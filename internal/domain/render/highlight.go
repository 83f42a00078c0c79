package render

import (
	"regexp"

	"github.com/annotext/annotext/internal/domain/annotation"
)

// tokenPattern matches word runs the way the vocabulary matcher understands
// them: letters, digits, apostrophes and hyphens.  Everything between runs is
// a separator and stays plain text.
var tokenPattern = regexp.MustCompile(`[a-zA-Z0-9'-]+`)

// Highlight walks the node list and replaces vocabulary hits inside Text
// leaves with Word wrappers around the original surface form.  The pass is
// applied inside every structural frame and at top level alike; it composes
// with grammatical-role nesting but is independent of it.  Content already
// inside a Word node is left alone.
func Highlight(nodes []*Node, vocab *annotation.Vocabulary) []*Node {
	if vocab.Empty() {
		return nodes
	}
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		switch n.Kind {
		case NodeText:
			out = append(out, highlightText(n.Content, vocab)...)
		case NodeWord:
			out = append(out, n)
		default:
			n.Children = Highlight(n.Children, vocab)
			out = append(out, n)
		}
	}
	return out
}

// highlightText splits one text leaf into a mix of plain Text fragments and
// Word nodes.  The concatenated surface text is unchanged, preserving the
// lossless-reconstruction invariant.
func highlightText(content string, vocab *annotation.Vocabulary) []*Node {
	matches := tokenPattern.FindAllStringIndex(content, -1)
	if len(matches) == 0 {
		return []*Node{TextNode(content)}
	}

	var out []*Node
	cursor := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		token := content[start:end]
		lemma, ok := vocab.Match(token)
		if !ok {
			continue
		}
		if start > cursor {
			out = append(out, TextNode(content[cursor:start]))
		}
		out = append(out, WordNode(lemma, []*Node{TextNode(token)}))
		cursor = end
	}
	if cursor == 0 {
		// No token matched; keep the original leaf untouched.
		return []*Node{TextNode(content)}
	}
	if cursor < len(content) {
		out = append(out, TextNode(content[cursor:]))
	}
	return out
}
