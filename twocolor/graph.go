package twocolor

import (
	"strconv"

	"github.com/pkg/errors"
)

// VertexCount returns the number of vertices in X.
func (X Graph) VertexCount() int {
	return len(X)
}

// EdgeCount returns the number of undirected edges in X, assuming each edge is listed from both ends.
func (X Graph) EdgeCount() int {
	ends := 0
	for _, edges := range X {
		ends += len(edges)
	}
	return ends / 2
}

// Validate returns ErrInvalidGraph if X has no vertex 0 or if any adjacency entry is out of range.
func (X Graph) Validate() error {
	Nv := len(X)
	if Nv == 0 {
		return errors.Wrap(ErrInvalidGraph, "graph has no vertices")
	}
	for vi, edges := range X {
		for _, adj := range edges {
			if adj < 0 || int(adj) >= Nv {
				return errors.Wrapf(ErrInvalidGraph, "vertex %d lists neighbor %d but the graph has %d vertices", vi, adj, Nv)
			}
		}
	}
	return nil
}

// AppendExpr appends a graph expression for X (readable by ParseGraph) to the given buffer.
//
// Each edge a-b (a < b) is emitted once, so X is assumed to list edges from both ends.
// Vertices with no edges are emitted as a lone vertex ID so that the vertex count is preserved.
func (X Graph) AppendExpr(dst []byte) []byte {
	first := true
	emit := func(a, b VtxID, lone bool) {
		if !first {
			dst = append(dst, ',', ' ')
		}
		first = false
		dst = strconv.AppendInt(dst, int64(a), 10)
		if !lone {
			dst = append(dst, '-')
			dst = strconv.AppendInt(dst, int64(b), 10)
		}
	}

	for vi, edges := range X {
		va := VtxID(vi)
		if len(edges) == 0 {
			emit(va, va, true)
			continue
		}

		// A loop a-a is listed twice at vertex a
		loops := 0
		for _, adj := range edges {
			switch {
			case adj > va:
				emit(va, adj, false)
			case adj == va:
				loops++
				if loops%2 == 1 {
					emit(va, va, false)
				}
			}
		}
	}
	return dst
}

// String returns X as a graph expression.
func (X Graph) String() string {
	return string(X.AppendExpr(make([]byte, 0, 8*len(X))))
}
