// Command shortestpath answers single-source shortest-path queries in the
// judge block protocol: each block starts with "N M Q S", followed by M
// arcs "a b w" and Q query node ids; a block with N=0 terminates the
// input. Per query the distance is printed, or the literal "Impossible"
// for unreachable nodes, with a blank line after each block.
package main

import (
	"bufio"
	"fmt"
	"os"

	"netflow/pkg/apperror"
	"netflow/pkg/config"
	"netflow/pkg/digraph"
	"netflow/pkg/logger"
	"netflow/pkg/pathsearch"
)

func main() {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger.InitWithConfig(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: "stderr",
	})

	if err := run(cfg); err != nil {
		logger.Log.Error("shortestpath failed", "error", err)
		os.Exit(1)
	}
}

func newEngine(name string) (pathsearch.ShortestPather, error) {
	switch name {
	case "dijkstra":
		return pathsearch.NewDijkstra(), nil
	case "fifo":
		return pathsearch.NewFIFO(), nil
	case "bellman-ford":
		return pathsearch.NewBellmanFord(), nil
	default:
		return nil, apperror.Newf(apperror.CodeInvalidAlgorithm,
			"unknown shortest-path engine %q", name)
	}
}

func run(cfg *config.Config) error {
	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 1024*1024), 1024*1024)
	in.Split(bufio.ScanWords)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for {
		n := readInt(in)
		m := readInt(in)
		q := readInt(in)
		s := readInt(in)
		if n == 0 {
			break
		}

		g := digraph.New[int64, int64]()
		var weights []int64

		for e := int64(0); e < m; e++ {
			a := readInt(in)
			b := readInt(in)
			w := readInt(in)
			arc, dual, err := g.AddArc(a, b, e)
			if err != nil {
				return err
			}
			for len(weights) < g.MaxNumArcs() {
				weights = append(weights, 0)
			}
			weights[arc] = w
			// The reverse arc of the pair is not traversable here.
			weights[dual] = pathsearch.Inf
		}

		engine, err := newEngine(cfg.Solver.ShortestPathEngine)
		if err != nil {
			return err
		}

		source := g.AddNode(s)
		err = engine.Solve(g, source, weights, func(e digraph.ArcID) bool {
			return weights[e] < pathsearch.Inf
		})
		if err != nil {
			return err
		}

		for ; q > 0; q-- {
			v := readInt(in)
			node := g.GetNode(v)
			if g.IsValidNode(node) && engine.Distance(node) < pathsearch.Inf {
				fmt.Fprintln(out, engine.Distance(node))
			} else {
				fmt.Fprintln(out, "Impossible")
			}
		}
		fmt.Fprintln(out)
	}
	return nil
}

func readInt(in *bufio.Scanner) int64 {
	if !in.Scan() {
		fmt.Fprintln(os.Stderr, "unexpected end of input")
		os.Exit(1)
	}
	var v int64
	fmt.Sscan(in.Text(), &v)
	return v
}
