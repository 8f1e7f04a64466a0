// Ehbench measures Equihash solver performance over a run of nonces on one
// synthetic block header.
//
// Usage:
//
//	go run ./cmd/ehbench -n 96 -k 5 -solver optimised -nonces 10
//
// Flags:
//
//	-n        Hash output width in bits (default: 96)
//	-k        Collision tree depth (default: 5)
//	-solver   Solver variant: basic or optimised (default: basic)
//	-nonces   Number of nonces to attempt (default: 10)
//	-seed     Seed for synthetic header generation (default: 1)
//	-v        Log solver progress
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"syscall"
	"time"

	"github.com/spaolacci/murmur3"

	"github.com/tamirms/equihash"
)

const headerSize = 140

// getMaxRSS returns the maximum resident set size in bytes.
// Uses getrusage(RUSAGE_SELF) which tracks peak RSS since process start.
func getMaxRSS() uint64 {
	var rusage syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &rusage); err != nil {
		return 0
	}
	// On macOS, MaxRss is in bytes. On Linux, it's in kilobytes.
	maxRSS := uint64(rusage.Maxrss)
	if runtime.GOOS == "linux" {
		maxRSS *= 1024
	}
	return maxRSS
}

// syntheticHeader derives a deterministic pseudo-random header from seed.
// Murmur3 gives a cheap, reproducible stream without dragging the solver's
// own hash into input generation.
func syntheticHeader(seed uint64) []byte {
	header := make([]byte, headerSize)
	var block [8]byte
	for off := 0; off < headerSize; off += 8 {
		binary.LittleEndian.PutUint64(block[:], seed+uint64(off))
		h64 := murmur3.Sum64(block[:])
		binary.LittleEndian.PutUint64(block[:], h64)
		copy(header[off:], block[:])
	}
	return header
}

func main() {
	nFlag := flag.Int("n", 96, "hash output width in bits")
	kFlag := flag.Int("k", 5, "collision tree depth")
	solverFlag := flag.String("solver", "basic", "solver variant: basic or optimised")
	noncesFlag := flag.Int("nonces", 10, "number of nonces to attempt")
	seedFlag := flag.Uint64("seed", 1, "seed for synthetic header generation")
	verboseFlag := flag.Bool("v", false, "log solver progress")
	flag.Parse()

	params := equihash.Params{N: *nFlag, K: *kFlag}
	var opts []equihash.Option
	if *verboseFlag {
		opts = append(opts, equihash.WithLogf(log.Printf))
	}
	eq, err := equihash.New(params, opts...)
	if err != nil {
		log.Fatal(err)
	}

	solve := eq.BasicSolve
	switch *solverFlag {
	case "basic":
	case "optimised":
		solve = eq.OptimisedSolve
	default:
		fmt.Fprintf(os.Stderr, "unknown solver %q\n", *solverFlag)
		os.Exit(2)
	}

	header := syntheticHeader(*seedFlag)
	base, err := equihash.NewState(params)
	if err != nil {
		log.Fatal(err)
	}
	base.Write(header)

	var totalSolns int
	start := time.Now()
	for nonce := 0; nonce < *noncesFlag; nonce++ {
		state := base.Clone()
		var le [4]byte
		binary.LittleEndian.PutUint32(le[:], uint32(nonce))
		state.Write(le[:])

		t0 := time.Now()
		solns, err := solve(state, nil)
		if err != nil {
			log.Fatal(err)
		}
		for _, soln := range solns {
			if !eq.Verify(state, soln) {
				log.Fatalf("nonce %d: solver produced invalid solution %x", nonce, soln.ID())
			}
		}
		totalSolns += len(solns)
		fmt.Printf("nonce %4d: %d solutions in %v\n", nonce, len(solns), time.Since(t0))
	}
	elapsed := time.Since(start)

	fmt.Printf("\n(%d,%d) %s solver: %d nonces, %d solutions, %.2f solutions/attempt\n",
		params.N, params.K, *solverFlag, *noncesFlag, totalSolns,
		float64(totalSolns)/float64(*noncesFlag))
	fmt.Printf("total %v, %.2fs/nonce, peak RSS %.1f MiB\n",
		elapsed, elapsed.Seconds()/float64(*noncesFlag),
		float64(getMaxRSS())/(1<<20))
}
