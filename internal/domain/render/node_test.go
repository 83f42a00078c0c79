package render

import (
	"testing"

	"github.com/annotext/annotext/internal/domain/annotation"
	"github.com/stretchr/testify/assert"
)

func TestNodeKind_String(t *testing.T) {
	assert.Equal(t, "Text", NodeText.String())
	assert.Equal(t, "Sentence", NodeSentence.String())
	assert.Equal(t, "Structure", NodeStructure.String())
	assert.Equal(t, "Word", NodeWord.String())
	assert.Equal(t, "Unknown", NodeKind(0).String())
}

func TestNode_PlainText(t *testing.T) {
	tree := SentenceNode(1, []*Node{
		StructureNode(annotation.RoleSubject, []*Node{
			TextNode("The cat"),
		}),
		TextNode(" "),
		StructureNode(annotation.RoleVerb, []*Node{
			WordNode("sleep", []*Node{TextNode("sleeps")}),
		}),
	})
	assert.Equal(t, "The cat sleeps", tree.PlainText())
}

func TestPlainText_NodeList(t *testing.T) {
	nodes := []*Node{TextNode("a "), SentenceNode(1, []*Node{TextNode("b")}), TextNode(" c")}
	assert.Equal(t, "a b c", PlainText(nodes))
	assert.Equal(t, "", PlainText(nil))
}
