package twocolor

import (
	"github.com/emirpasic/gods/stacks/arraystack"
)

// IsTwoColorable returns true if the vertices reachable from vertex 0 can be split into two groups
// such that every edge joins vertices of different groups (i.e. the component is bipartite).
//
// Returns ErrInvalidGraph if X has no vertices or lists a neighbor that is not a vertex of X.
func IsTwoColorable(X Graph) (bool, error) {
	coloring, err := Colorize(X)
	if err != nil {
		return false, err
	}
	return coloring.TwoColorable, nil
}

// Colorize performs the same check as IsTwoColorable() but returns the group assigned to each vertex reached.
//
// Vertex 0 is assigned Color_A and the traversal stops at the first edge found joining two vertices of the same color.
// Vertices not connected to vertex 0 are never visited and remain Color_None.
func Colorize(X Graph) (*Coloring, error) {
	if err := X.Validate(); err != nil {
		return nil, err
	}

	colors := make([]Color, len(X))
	out := &Coloring{
		Colors:       colors,
		TwoColorable: true,
	}

	// Each vertex is pushed at most once: when it is first assigned a color.
	frontier := arraystack.New()
	colors[0] = Color_A
	out.Reached = 1
	frontier.Push(VtxID(0))

	for !frontier.Empty() {
		top, _ := frontier.Pop()
		node := top.(VtxID)

		for _, adj := range X[node] {
			switch colors[adj] {
			case Color_None:
				colors[adj] = colors[node].Opposite()
				out.Reached++
				frontier.Push(adj)
			case colors[node]:
				out.TwoColorable = false
				out.Conflict = Edge{node, adj}
				return out, nil
			}
		}
	}

	return out, nil
}
