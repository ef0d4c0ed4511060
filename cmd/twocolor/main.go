package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fine-structures/twocolor/catalog"
	"github.com/fine-structures/twocolor/twocolor"
	"github.com/plan-systems/klog"
)

var (
	dbPathName = flag.String("db", "", "catalog pathname where checked graphs are recorded (in-memory if omitted)")
	pyPathname = flag.String("py", "", "gpython script to run (module _py2c is available)")
	runREPL    = flag.Bool("repl", false, "start a gpython REPL (module _py2c is available)")
)

// demoGraph is the reference demonstration graph: 0-1-3, 0-2-4
var demoGraph = twocolor.Graph{{1, 2}, {0, 3}, {0, 4}, {1}, {2}}

func main() {
	klog.InitFlags(nil)
	flag.Set("logtostderr", "true")
	flag.Set("v", "1")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	flag.Parse()

	status := run(os.Stdout, flag.Args())

	klog.Flush()
	os.Exit(status)
}

func run(out io.Writer, exprs []string) int {
	if *runREPL || len(*pyPathname) > 0 {
		if err := go_gpython(*pyPathname); err != nil {
			klog.Errorf("python: %v", err)
			return 1
		}
		return 0
	}

	if len(exprs) == 0 {
		if err := printDemo(out); err != nil {
			klog.Errorf("demo: %v", err)
			return 1
		}
		return 0
	}

	cat, err := catalog.OpenCatalog(catalog.Opts{
		DbPathName: *dbPathName,
	})
	if err != nil {
		klog.Errorf("%v", err)
		return 1
	}

	failed := checkExprs(out, cat, exprs)

	if err = cat.Close(); err != nil {
		klog.Errorf("error closing catalog: %v", err)
		return 1
	}
	if failed > 0 {
		return 2
	}
	return 0
}

func printDemo(out io.Writer) error {
	isTwoColorable, err := twocolor.IsTwoColorable(demoGraph)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Is Two-Colorable: %v\n", isTwoColorable)
	return nil
}

// checkExprs prints whether each graph expression is two-colorable and returns how many could not be checked.
func checkExprs(out io.Writer, cat *catalog.Catalog, exprs []string) (failed int) {
	for _, expr := range exprs {
		X, err := twocolor.ParseGraph(expr)
		if err != nil {
			klog.Errorf("%v", err)
			failed++
			continue
		}

		coloring, hit, err := cat.Check(X)
		if err != nil {
			klog.Errorf("%q: %v", expr, err)
			failed++
			continue
		}

		if unreached := X.VertexCount() - coloring.Reached; unreached > 0 && coloring.TwoColorable {
			klog.Warningf("%q: %d vertices are not connected to vertex 0 and were not checked", expr, unreached)
		}

		if coloring.TwoColorable {
			klog.V(2).Infof("%q (cached: %v): colors %v", expr, hit, coloring.Colors)
		} else {
			klog.V(2).Infof("%q (cached: %v): vertices %d and %d are both %v", expr, hit, coloring.Conflict.A, coloring.Conflict.B, coloring.Colors[coloring.Conflict.A])
		}

		fmt.Fprintf(out, "%s: %v\n", X.String(), coloring.TwoColorable)
	}
	return failed
}
