package render

import (
	"strings"

	"github.com/annotext/annotext/internal/domain/annotation"
)

// NodeKind discriminates the render-tree union.
type NodeKind uint8

const (
	NodeText NodeKind = iota + 1
	NodeSentence
	NodeStructure
	NodeWord
)

func (k NodeKind) String() string {
	switch k {
	case NodeText:
		return "Text"
	case NodeSentence:
		return "Sentence"
	case NodeStructure:
		return "Structure"
	case NodeWord:
		return "Word"
	default:
		return "Unknown"
	}
}

// Node is one node of the render tree.  Exactly one of the payload fields is
// meaningful, selected by Kind: Text leaves carry Content, Sentence nodes
// carry SentenceID, Structure nodes carry Role, Word nodes carry Lemma.
// A Node is owned exclusively by the tree containing it; trees are built
// fresh per render and never shared or persisted.
type Node struct {
	Kind       NodeKind          `json:"kind"`
	Content    string            `json:"content,omitempty"`
	SentenceID int               `json:"sentence_id,omitempty"`
	Role       annotation.RoleID `json:"role,omitempty"`
	Lemma      string            `json:"lemma,omitempty"`
	Children   []*Node           `json:"children,omitempty"`
}

// TextNode constructs a Text leaf.
func TextNode(content string) *Node {
	return &Node{Kind: NodeText, Content: content}
}

// SentenceNode constructs a Sentence wrapper.
func SentenceNode(id int, children []*Node) *Node {
	return &Node{Kind: NodeSentence, SentenceID: id, Children: children}
}

// StructureNode constructs a grammatical-role frame.
func StructureNode(role annotation.RoleID, children []*Node) *Node {
	return &Node{Kind: NodeStructure, Role: role, Children: children}
}

// WordNode constructs a vocabulary-highlight wrapper.
func WordNode(lemma string, children []*Node) *Node {
	return &Node{Kind: NodeWord, Lemma: lemma, Children: children}
}

// PlainText returns the concatenation of all Text-leaf content under n, in
// document order.  For any sentence tree built by this package it equals the
// sentence's original substring exactly.
func (n *Node) PlainText() string {
	var sb strings.Builder
	n.appendPlainText(&sb)
	return sb.String()
}

func (n *Node) appendPlainText(sb *strings.Builder) {
	if n.Kind == NodeText {
		sb.WriteString(n.Content)
		return
	}
	for _, c := range n.Children {
		c.appendPlainText(sb)
	}
}

// Paragraph is an ordered list of render trees forming one paragraph block.
type Paragraph []*Node

// PlainText concatenates the leaf text of every node in the list.
func PlainText(nodes []*Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		n.appendPlainText(&sb)
	}
	return sb.String()
}
