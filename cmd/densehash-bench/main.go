// Package main provides densehash-bench, a standalone driver that exercises
// densemap.Map under configurable key counts and load factors and reports
// timing and layout statistics. It is deliberately a separate executable
// (spec.md's Non-goals exclude benchmark executables from the library
// proper): the engine never imports this package.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/db47h/densehash/densemap"

	flag "github.com/spf13/pflag"
)

// config holds the parsed command-line configuration.
type config struct {
	Counts     []int
	InitialCap int
	MaxLoad    float64
	HashRatio  float64
	Growth     int
	Seed       int64
}

func main() {
	cfg := config{}

	countsStr := flag.String("counts", "1000,100000,1000000", "comma-separated list of key counts to benchmark")
	flag.IntVar(&cfg.InitialCap, "initial-capacity", 16, "initial bucket count passed to densemap.New")
	flag.Float64Var(&cfg.MaxLoad, "max-load", 0.75, "max load factor that triggers growth")
	flag.Float64Var(&cfg.HashRatio, "hash-ratio", 0.75, "fraction of capacity assigned to the primary region")
	flag.IntVar(&cfg.Growth, "growth", 2, "capacity multiplier applied on growth")
	flag.Int64Var(&cfg.Seed, "seed", 1, "PRNG seed for generated keys")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: densehash-bench [flags]\n\n")
		fmt.Fprint(os.Stderr, "Benchmarks densemap.Map insert/find/erase throughput across key counts.\n\n")
		fmt.Fprint(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	for countStr := range strings.SplitSeq(*countsStr, ",") {
		countStr = strings.TrimSpace(countStr)
		if countStr == "" {
			continue
		}

		count, err := strconv.Atoi(countStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid count %q: %v\n", countStr, err)
			os.Exit(1)
		}

		cfg.Counts = append(cfg.Counts, count)
	}

	if len(cfg.Counts) == 0 {
		fmt.Fprint(os.Stderr, "no counts specified\n")
		os.Exit(1)
	}

	for _, n := range cfg.Counts {
		if err := runOne(cfg, n); err != nil {
			fmt.Fprintf(os.Stderr, "benchmark failed for count %d: %v\n", n, err)
			os.Exit(1)
		}
	}
}

func runOne(cfg config, n int) error {
	m, err := densemap.New[int, int](cfg.InitialCap,
		densemap.WithMaxLoadFactor[int, int](cfg.MaxLoad),
		densemap.WithHashableRatio[int, int](cfg.HashRatio),
		densemap.WithGrowthFactor[int, int](cfg.Growth),
	)
	if err != nil {
		return fmt.Errorf("densemap.New: %w", err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	keys := rng.Perm(n)

	insertStart := time.Now()

	for _, k := range keys {
		if _, err := m.Insert(k, k*2); err != nil {
			return fmt.Errorf("insert: %w", err)
		}
	}

	insertElapsed := time.Since(insertStart)

	findStart := time.Now()

	hits := 0

	for _, k := range keys {
		if _, ok := m.Get(k); ok {
			hits++
		}
	}

	findElapsed := time.Since(findStart)

	eraseStart := time.Now()

	for i := 0; i < len(keys); i += 2 {
		m.Erase(keys[i])
	}

	eraseElapsed := time.Since(eraseStart)

	fmt.Printf("n=%d bucketCount=%d loadFactor=%.3f insert=%s (%.0f ns/op) find=%s (%.0f ns/op) erase=%s (%.0f ns/op) hits=%d/%d\n",
		n, m.BucketCount(), m.LoadFactor(),
		insertElapsed, float64(insertElapsed.Nanoseconds())/float64(n),
		findElapsed, float64(findElapsed.Nanoseconds())/float64(n),
		eraseElapsed, float64(eraseElapsed.Nanoseconds())/float64(len(keys)/2+len(keys)%2),
		hits, n,
	)

	return nil
}
