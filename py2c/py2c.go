// Package py2c registers the "_py2c" gpython module, exposing the two-colorability checker to Python scripts.
package py2c

import (
	"github.com/fine-structures/twocolor/twocolor"
	"github.com/go-python/gpython/py"
	"github.com/pkg/errors"
)

var (
	LIB_VERSION = "v1.2024.1"
)

// getGraphFromObj accepts either a graph expression ("0-1-2") or a sequence of int sequences ([[1], [0, 2], [1]]).
func getGraphFromObj(obj py.Object) (twocolor.Graph, error) {
	if expr, isStr := obj.(py.String); isStr {
		X, err := twocolor.ParseGraph(string(expr))
		if err != nil {
			return nil, py.ExceptionNewf(py.ValueError, "%v", err)
		}
		return X, nil
	}

	var (
		X       twocolor.Graph
		itemErr error
	)
	err := py.Iterate(obj, func(edgesObj py.Object) bool {
		var edges []twocolor.VtxID
		itemErr = py.Iterate(edgesObj, func(adjObj py.Object) bool {
			adj, isInt := adjObj.(py.Int)
			if !isInt {
				itemErr = py.ExceptionNewf(py.TypeError, "vertex %d: expected int vertex ID (got %v)", len(X), adjObj.Type().Name)
				return true
			}
			edges = append(edges, twocolor.VtxID(adj))
			return false
		})
		X = append(X, edges)
		return itemErr != nil
	})
	if err == nil {
		err = itemErr
	}
	if err != nil {
		return nil, err
	}
	return X, nil
}

func exportColoring(coloring *twocolor.Coloring) py.Object {
	colors := make(py.Tuple, len(coloring.Colors))
	for i, ci := range coloring.Colors {
		colors[i] = py.Int(ci)
	}

	var conflict py.Object = py.None
	if !coloring.TwoColorable {
		conflict = py.Tuple{py.Int(coloring.Conflict.A), py.Int(coloring.Conflict.B)}
	}

	return py.Tuple{py.NewBool(coloring.TwoColorable), colors, conflict}
}

func checkErr(err error) error {
	if errors.Is(err, twocolor.ErrInvalidGraph) {
		return py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return err
}

// Arg 1 (str or sequence): graph
func py_IsTwoColorable(module py.Object, args py.Tuple) (py.Object, error) {
	var graphObj py.Object
	err := py.ParseTuple(args, "O", &graphObj)
	if err != nil {
		return nil, err
	}

	X, err := getGraphFromObj(graphObj)
	if err != nil {
		return nil, err
	}

	isTwoColorable, err := twocolor.IsTwoColorable(X)
	if err != nil {
		return nil, checkErr(err)
	}
	return py.NewBool(isTwoColorable), nil
}

// Arg 1 (str or sequence): graph
func py_Colorize(module py.Object, args py.Tuple) (py.Object, error) {
	var graphObj py.Object
	err := py.ParseTuple(args, "O", &graphObj)
	if err != nil {
		return nil, err
	}

	X, err := getGraphFromObj(graphObj)
	if err != nil {
		return nil, err
	}

	coloring, err := twocolor.Colorize(X)
	if err != nil {
		return nil, checkErr(err)
	}
	return exportColoring(coloring), nil
}

// Arg 1 (str): graph expression
func py_ParseGraph(module py.Object, args py.Tuple) (py.Object, error) {
	var exprObj py.Object
	err := py.ParseTuple(args, "s", &exprObj)
	if err != nil {
		return nil, err
	}

	X, err := getGraphFromObj(exprObj)
	if err != nil {
		return nil, err
	}

	items := make([]py.Object, len(X))
	for vi, edges := range X {
		adj := make([]py.Object, len(edges))
		for i, vj := range edges {
			adj[i] = py.Int(vj)
		}
		items[vi] = py.NewListFromItems(adj)
	}
	return py.NewListFromItems(items), nil
}

func init() {
	methods := []*py.Method{
		py.MustNewMethod("IsTwoColorable", py_IsTwoColorable, 0, "returns True if the graph component containing vertex 0 is bipartite"),
		py.MustNewMethod("Colorize", py_Colorize, 0, "returns (two_colorable, colors, conflict) for the given graph"),
		py.MustNewMethod("ParseGraph", py_ParseGraph, 0, "returns the adjacency lists of a graph expression such as '0-1-3, 0-2-4'"),
	}

	globals := py.StringDict{
		"LIB_VERSION": py.String(LIB_VERSION),
		"MAX_VTX":     py.Int(twocolor.MaxVtxID),
		"COLOR_NONE":  py.Int(twocolor.Color_None),
		"COLOR_A":     py.Int(twocolor.Color_A),
		"COLOR_B":     py.Int(twocolor.Color_B),
	}

	py.RegisterModule(&py.ModuleImpl{
		Info: py.ModuleInfo{
			Name: "_py2c",
			Doc:  "two-colorability (bipartite) checker",
		},
		Methods: methods,
		Globals: globals,
	})
}
