package twocolor

const (

	// MaxVtxID is the largest vertex ID accepted by the graph expression grammar.
	MaxVtxID = 1<<24 - 1
)

// VtxID is a zero-based index that identifies a vertex in a given Graph (0..VertexCount()-1)
type VtxID int

// Graph is an adjacency list: Graph[i] lists the vertices adjacent to vertex i, in visit order.
//
// Undirected edges are normally listed in both directions.  Only vertices reachable from vertex 0 are checked.
type Graph [][]VtxID

// Color is the group a vertex is assigned to during a check.
type Color byte

const (
	Color_None Color = 0 // not reached (yet)
	Color_A    Color = 1 // group containing vertex 0
	Color_B    Color = 2
)

// Opposite returns the other group; Color_None has no opposite.
func (c Color) Opposite() Color {
	switch c {
	case Color_A:
		return Color_B
	case Color_B:
		return Color_A
	}
	return Color_None
}

func (c Color) String() string {
	switch c {
	case Color_A:
		return "A"
	case Color_B:
		return "B"
	}
	return "-"
}

// Edge connects vertex A to vertex B.
type Edge struct {
	A, B VtxID
}

// Coloring is the outcome of Colorize().
type Coloring struct {
	Colors       []Color // Colors[i] is the group of vertex i (Color_None if never reached)
	TwoColorable bool    // set if no edge joins two vertices of the same group
	Conflict     Edge    // the edge found joining two same-colored vertices (if !TwoColorable)
	Reached      int     // number of vertices colored before the check completed
}
