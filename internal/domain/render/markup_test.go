package render

import (
	"testing"

	"github.com/annotext/annotext/internal/domain/annotation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkup_BasicTree(t *testing.T) {
	paragraphs := []Paragraph{{
		SentenceNode(3, []*Node{
			StructureNode(annotation.RoleSubject, []*Node{TextNode("The cat")}),
			TextNode(" "),
			StructureNode(annotation.RoleVerb, []*Node{
				WordNode("sleep", []*Node{TextNode("sleeps")}),
			}),
			TextNode("."),
		}),
	}}
	want := `<p><span data-sid="3">` +
		`<span data-role="s">The cat</span>` +
		` ` +
		`<span data-role="v"><span data-word="sleep">sleeps</span></span>` +
		`.</span></p>`
	assert.Equal(t, want, Markup(paragraphs))
}

func TestMarkup_MultipleParagraphs(t *testing.T) {
	paragraphs := []Paragraph{
		{SentenceNode(1, []*Node{TextNode("One.")})},
		{SentenceNode(2, []*Node{TextNode("Two.")})},
	}
	assert.Equal(t,
		`<p><span data-sid="1">One.</span></p><p><span data-sid="2">Two.</span></p>`,
		Markup(paragraphs))
}

func TestMarkup_EscapesTextContent(t *testing.T) {
	out := MarkupNodes([]*Node{TextNode(`a < b & "c"`)})
	assert.Equal(t, `a &lt; b &amp; &#34;c&#34;`, out)
}

func TestMarkup_EmptyInput(t *testing.T) {
	assert.Equal(t, "", Markup(nil))
	assert.Equal(t, "", MarkupNodes(nil))
}

func TestMarkup_EndToEnd(t *testing.T) {
	doc := Document{
		Text:      "The fox runs.",
		Sentences: []annotation.Sentence{{ID: 1, Start: 0, End: 13}},
		Annotations: []annotation.Annotation{
			{Start: 0, End: 7, Role: annotation.RoleSubject},
			{Start: 8, End: 12, Role: annotation.RoleVerb},
		},
		Vocabulary: []annotation.WordMatchConfig{
			{Lemma: "fox", Forms: []string{"fox"}},
		},
	}
	paragraphs, _, err := BuildDocument(doc, annotation.DefaultRegistry())
	require.NoError(t, err)
	want := `<p><span data-sid="1">` +
		`<span data-role="s">The <span data-word="fox">fox</span></span>` +
		` ` +
		`<span data-role="v">runs</span>` +
		`.</span></p>`
	assert.Equal(t, want, Markup(paragraphs))
}
