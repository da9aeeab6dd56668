// Command slotbench drives the bench harness against bptree.Tree and a
// pebble.DB baseline across the key-shape and workload matrix, writing a
// CSV of latency/memory samples and (optionally) a PNG comparison chart.
// Run: go run ./cmd/slotbench -n 200000 -out results.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"

	"slotkv/bench"
	"slotkv/bptree"
)

func main() {
	var (
		n         = flag.Int("n", 100000, "operations per workload run")
		pageSize  = flag.Uint("page-size", 4096, "bptree page size in bytes")
		out       = flag.String("out", "slotbench_results.csv", "CSV output path")
		plotPath  = flag.String("plot", "", "optional PNG chart output path")
		pebbleDir = flag.String("pebble-dir", "", "directory for the pebble baseline (defaults to a temp dir)")
	)
	flag.Parse()

	if *pebbleDir == "" {
		dir, err := os.MkdirTemp("", "slotbench-pebble-*")
		if err != nil {
			log.Fatalf("slotbench: create temp dir: %v", err)
		}
		defer os.RemoveAll(dir)
		*pebbleDir = dir
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("slotbench: create %s: %v", *out, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"Name", "KeyShape", "Operation", "LatencyNs", "MemMB", "Objects"}); err != nil {
		log.Fatalf("slotbench: write header: %v", err)
	}

	shapes := []bench.KeyShape{bench.Sequential, bench.LongSharedPrefix, bench.Random}
	workloadTypes := []bench.WorkloadType{bench.OLTP, bench.OLAP, bench.Reporting}

	var results []bench.BenchResult
	for _, shape := range shapes {
		wl := bench.Workload{Shape: shape, Seed: 42}

		slotkv, err := bench.NewSlotkvIndex(bptree.Config{PageSize: uint32(*pageSize)})
		if err != nil {
			log.Fatalf("slotbench: new slotkv index: %v", err)
		}

		pdir := fmt.Sprintf("%s/%d", *pebbleDir, shape)
		pebbleIdx, err := bench.NewPebbleIndex(pdir)
		if err != nil {
			log.Fatalf("slotbench: new pebble index: %v", err)
		}

		for _, wType := range workloadTypes {
			fmt.Printf("running %s / %s ...\n", keyShapeLabel(shape), wType)

			res, err := bench.Compare(w, "slotkv", slotkv, wl, wType, *n)
			if err != nil {
				log.Fatalf("slotbench: compare slotkv: %v", err)
			}
			results = append(results, res)

			res, err = bench.Compare(w, "pebble", pebbleIdx, wl, wType, *n)
			if err != nil {
				log.Fatalf("slotbench: compare pebble: %v", err)
			}
			results = append(results, res)

			w.Flush()
		}

		if err := slotkv.Close(); err != nil {
			log.Fatalf("slotbench: close slotkv index: %v", err)
		}
		if err := pebbleIdx.Close(); err != nil {
			log.Fatalf("slotbench: close pebble index: %v", err)
		}
	}

	fmt.Printf("wrote %s\n", *out)

	if *plotPath != "" {
		if err := bench.Plot(*plotPath, results); err != nil {
			log.Fatalf("slotbench: plot: %v", err)
		}
		fmt.Printf("wrote %s\n", *plotPath)
	}
}

func keyShapeLabel(s bench.KeyShape) string {
	switch s {
	case bench.Sequential:
		return "sequential"
	case bench.LongSharedPrefix:
		return "long-shared-prefix"
	case bench.Random:
		return "random"
	default:
		return "unknown"
	}
}
