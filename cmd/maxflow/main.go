// Command maxflow solves a single maximum-flow instance in the judge line
// protocol: the first line holds "N M S T", followed by M arcs "a b c".
// The output is "N F K" followed by the K arcs carrying positive flow as
// "a b f".
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
		logger.Log.Error("maxflow failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 1024*1024), 1024*1024)
	in.Split(bufio.ScanWords)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	n := readInt(in)
	m := readInt(in)
	s := readInt(in)
	t := readInt(in)

	inst := &solve.Instance{Source: s, Sink: t}
	for e := int64(0); e < m; e++ {
		a := readInt(in)
		b := readInt(in)
		c := readInt(in)
		inst.Arcs = append(inst.Arcs, solve.Arc{From: a, To: b, Capacity: c})
	}

	svc := &solve.Service{Verify: cfg.Solver.Verify}
	res, err := svc.MaxFlow(context.Background(), inst, cfg.Solver.MaxFlowAlgorithm)
	if err != nil {
		return err
	}

	used := 0
	for _, f := range res.Flows {
		if f > 0 {
			used++
		}
	}

	fmt.Fprintln(out, n, res.Flow, used)
	for i, f := range res.Flows {
		if f == 0 {
			continue
		}
		fmt.Fprintln(out, inst.Arcs[i].From, inst.Arcs[i].To, f)
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
