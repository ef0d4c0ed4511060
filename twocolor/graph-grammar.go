package twocolor

import (
	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"
)

// GraphExpr is a comma separated list of edge runs, e.g. "0-1-3, 0-2-4"
type GraphExpr struct {
	Runs []*EdgeRun `parser:"(@@ (\",\" @@)*)?"`
}

// EdgeRun is a walk through one or more vertices: "1-2-3" adds edges 1-2 and 2-3, "5" just declares vertex 5.
type EdgeRun struct {
	StartVtx *Vtx   `parser:"@@"`
	Steps    []*Vtx `parser:"(\"-\" @@)*"`
}

type Vtx struct {
	ID int64 `parser:"@Int"`
}

type graphBuilder struct {
	X Graph
}

func (Xb *graphBuilder) tallyVtx(vtx *Vtx) (VtxID, error) {
	if vtx.ID < 0 || vtx.ID > MaxVtxID {
		return 0, errors.Wrapf(ErrBadVtxID, "vertex %d is outside 0..%d", vtx.ID, MaxVtxID)
	}

	vtxID := VtxID(vtx.ID)
	for int(vtxID) >= len(Xb.X) {
		Xb.X = append(Xb.X, nil)
	}
	return vtxID, nil
}

func (Xb *graphBuilder) applyRun(run *EdgeRun) error {
	onVtx, err := Xb.tallyVtx(run.StartVtx)
	if err != nil {
		return err
	}

	for _, step := range run.Steps {
		nxtVtx, err := Xb.tallyVtx(step)
		if err != nil {
			return err
		}
		Xb.X[onVtx] = append(Xb.X[onVtx], nxtVtx)
		Xb.X[nxtVtx] = append(Xb.X[nxtVtx], onVtx)
		onVtx = nxtVtx
	}
	return nil
}

var parseGraphExpr = participle.MustBuild[GraphExpr]()

// ParseGraph builds a Graph from a graph expression such as "0-1-3, 0-2-4".
//
// Each edge is added to both of its vertices' adjacency lists in the order it appears in the expression.
// The vertex count is one more than the largest vertex ID present; an empty expression yields an empty Graph.
func ParseGraph(graphExpr string) (Graph, error) {
	Xexpr, err := parseGraphExpr.ParseString("", graphExpr)
	if err != nil {
		return nil, errors.Wrapf(err, "error parsing graph %q", graphExpr)
	}

	var Xb graphBuilder
	for ri, run := range Xexpr.Runs {
		if err = Xb.applyRun(run); err != nil {
			return nil, errors.Wrapf(err, "error reading run #%d", ri+1)
		}
	}
	return Xb.X, nil
}
