package render

import (
	"sort"

	"github.com/annotext/annotext/internal/domain/annotation"
)

// ResolveNesting builds a properly nested, non-crossing child list for one
// sentence from its local text and the annotations fully contained in it.
// Annotation offsets must already be sentence-local (0 ≤ start < end ≤ len).
//
// The algorithm is a sweep line with stack reconciliation:
//
//  1. All annotation boundaries plus 0 and the sentence length partition the
//     sentence into atomic segments inside which the set of covering
//     annotations is constant.
//  2. Each segment's covering set is ordered into a deterministic frame
//     stack, outermost first: longer spans wrap shorter ones, ties broken by
//     the role's nesting priority.
//  3. Walking segments left to right, the previous stack is diffed against
//     the current one: frames beyond the longest common prefix are closed
//     innermost-first, then the new suffix frames are opened.
//  4. The segment's text leaf lands in whatever frame is innermost.
//
// Partial overlaps therefore split into validly nested adjacent frames
// instead of producing crossing spans, and the concatenated leaf text always
// reproduces the sentence exactly.  The function is total on normalized
// input; there is no error path.
func ResolveNesting(units CodeUnits, anns []annotation.Annotation, reg *annotation.Registry) []*Node {
	length := units.Len()
	if length == 0 {
		return nil
	}
	if len(anns) == 0 {
		return []*Node{TextNode(units.String())}
	}

	bounds := segmentBounds(anns, length)

	var (
		roots []*Node
		open  []openFrame
		prev  []annotation.Annotation
	)
	attach := func(n *Node) {
		if len(open) == 0 {
			roots = append(roots, n)
			return
		}
		top := open[len(open)-1].node
		top.Children = append(top.Children, n)
	}

	for i := 0; i+1 < len(bounds); i++ {
		segStart, segEnd := bounds[i], bounds[i+1]
		cur := coveringStack(anns, segStart, segEnd, reg)

		// Longest common prefix between the previous and current stacks.
		lcp := 0
		for lcp < len(prev) && lcp < len(cur) && prev[lcp] == cur[lcp] {
			lcp++
		}

		// Close frames beyond the prefix, innermost first.
		open = open[:lcp]

		// Open the new suffix frames, outermost first.
		for _, a := range cur[lcp:] {
			frame := StructureNode(a.Role, nil)
			attach(frame)
			open = append(open, openFrame{ann: a, node: frame})
		}

		attach(TextNode(units.Slice(segStart, segEnd).String()))
		prev = cur
	}

	return roots
}

type openFrame struct {
	ann  annotation.Annotation
	node *Node
}

// segmentBounds collects the sorted, deduplicated boundary offsets: every
// annotation start and end, plus 0 and the sentence length.  Out-of-range
// values cannot occur on normalized input.
func segmentBounds(anns []annotation.Annotation, length int) []int {
	marks := make(map[int]struct{}, len(anns)*2+2)
	marks[0] = struct{}{}
	marks[length] = struct{}{}
	for _, a := range anns {
		marks[a.Start] = struct{}{}
		marks[a.End] = struct{}{}
	}
	bounds := make([]int, 0, len(marks))
	for b := range marks {
		bounds = append(bounds, b)
	}
	sort.Ints(bounds)
	return bounds
}

// coveringStack returns the annotations covering the whole segment
// [segStart, segEnd), ordered outer to inner: interval length descending,
// ties broken by ascending nesting priority.  The ordering is what makes the
// emitted frame sequence deterministic for identical input.
func coveringStack(anns []annotation.Annotation, segStart, segEnd int, reg *annotation.Registry) []annotation.Annotation {
	var stack []annotation.Annotation
	for _, a := range anns {
		if a.Covers(segStart, segEnd) {
			stack = append(stack, a)
		}
	}
	sort.SliceStable(stack, func(i, j int) bool {
		if stack[i].Length() != stack[j].Length() {
			return stack[i].Length() > stack[j].Length()
		}
		return reg.Priority(stack[i].Role) < reg.Priority(stack[j].Role)
	})
	return stack
}
