// mdcache-seed generates a deterministic dataset of addresses for
// benchmarking mdcache outside `go test`: one newline-separated uint64 per
// line, written atomically so a benchmark run can never observe a
// half-written file.
//
// Usage:
//   go run ./tools/mdcache-seed --n 1000000 --dist=zipf --seed=42 --out addrs.txt
//
// Flags:
//   --n       number of addresses to generate (default 1e6)
//   --dist    distribution: "uniform" or "zipf" (default uniform)
//   --zipfs   Zipf s parameter (>1)  (default 1.2)
//   --zipfv   Zipf v parameter (>=1) (default 1.0)
//   --seed    RNG seed (default current time)
//   --out     output file (default stdout; atomic write only applies to a file)
//
// The benchmarks in the bench package generate their own addresses in
// memory and do not read this tool's output.
//
// © 2025 mdcache authors. MIT License.
package main

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"
)

func main() {
	var (
		n       = flag.Int("n", 1_000_000, "number of addresses to generate")
		dist    = flag.String("dist", "uniform", "distribution: uniform or zipf")
		zipfS   = flag.Float64("zipfs", 1.2, "zipf s parameter (>1)")
		zipfV   = flag.Float64("zipfv", 1.0, "zipf v parameter (>=1)")
		seedVal = flag.Int64("seed", time.Now().UnixNano(), "PRNG seed")
		outPath = flag.String("out", "", "output file (default stdout)")
	)
	flag.Parse()

	rnd := rand.New(rand.NewSource(*seedVal))

	var gen func() uint64
	switch *dist {
	case "uniform":
		gen = rnd.Uint64
	case "zipf":
		if *zipfS <= 1.0 || *zipfV < 1.0 {
			fmt.Fprintln(os.Stderr, "zipfs must be >1 and zipfv >=1")
			os.Exit(1)
		}
		z := rand.NewZipf(rnd, *zipfS, *zipfV, ^uint64(0))
		gen = z.Uint64
	default:
		fmt.Fprintln(os.Stderr, "unknown dist:", *dist)
		os.Exit(1)
	}

	var buf bytes.Buffer
	buf.Grow(*n * 20)
	for i := 0; i < *n; i++ {
		buf.WriteString(strconv.FormatUint(gen(), 10))
		buf.WriteByte('\n')
	}

	if *outPath == "" {
		_, err := os.Stdout.Write(buf.Bytes())
		if err != nil {
			fmt.Fprintln(os.Stderr, "write stdout:", err)
			os.Exit(1)
		}
		return
	}

	if err := atomic.WriteFile(*outPath, &buf); err != nil {
		fmt.Fprintln(os.Stderr, "cannot write file:", err)
		os.Exit(1)
	}
}
