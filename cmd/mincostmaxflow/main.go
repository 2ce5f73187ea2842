// Command mincostmaxflow solves a single min-cost max-flow instance in
// the judge line protocol: the first line holds "N M S T", followed by M
// arcs "a b c w". The output is one line "F C" with the maximum flow
// value and its minimum cost.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"netflow/pkg/config"
	"netflow/pkg/logger"
	"netflow/pkg/solve"
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
		logger.Log.Error("mincostmaxflow failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 1024*1024), 1024*1024)
	in.Split(bufio.ScanWords)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	_ = readInt(in) // N is not echoed by this protocol
	m := readInt(in)
	s := readInt(in)
	t := readInt(in)

	inst := &solve.Instance{Source: s, Sink: t}
	for e := int64(0); e < m; e++ {
		a := readInt(in)
		b := readInt(in)
		c := readInt(in)
		w := readInt(in)
		inst.Arcs = append(inst.Arcs, solve.Arc{From: a, To: b, Capacity: c, Cost: w})
	}

	svc := &solve.Service{Verify: cfg.Solver.Verify}
	res, err := svc.MinCostMaxFlow(context.Background(), inst, cfg.Solver.MinCostAlgorithm)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, res.Flow, res.Cost)
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
