// Ehminer is a toy CPU mining driver: it iterates nonces over a fixed
// header, running one solver invocation per nonce across a worker pool.
// Each invocation is independent and single-threaded; parallelism comes
// only from solving different nonces concurrently.
//
// Usage:
//
//	go run ./cmd/ehminer -n 96 -k 5 -workers 4 -limit 5 -header "hello"
//
// Flags:
//
//	-n        Hash output width in bits (default: 96)
//	-k        Collision tree depth (default: 5)
//	-workers  Number of concurrent solver invocations (default: NumCPU)
//	-limit    Stop after this many solutions, 0 for unlimited (default: 1)
//	-nonces   Give up after this many nonces, 0 for unlimited (default: 0)
//	-header   Header string the attempts are seeded with
//	-solver   Solver variant: basic or optimised (default: optimised)
package main

import (
	"context"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sync/atomic"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"github.com/tamirms/equihash"
	eherrors "github.com/tamirms/equihash/errors"
)

func main() {
	nFlag := flag.Int("n", 96, "hash output width in bits")
	kFlag := flag.Int("k", 5, "collision tree depth")
	workersFlag := flag.Int("workers", runtime.NumCPU(), "number of concurrent solver invocations")
	limitFlag := flag.Int64("limit", 1, "stop after this many solutions (0 = unlimited)")
	noncesFlag := flag.Int64("nonces", 0, "give up after this many nonces (0 = unlimited)")
	headerFlag := flag.String("header", "", "header string the attempts are seeded with")
	solverFlag := flag.String("solver", "optimised", "solver variant: basic or optimised")
	flag.Parse()

	params := equihash.Params{N: *nFlag, K: *kFlag}
	eq, err := equihash.New(params)
	if err != nil {
		log.Fatal(err)
	}

	header := []byte(*headerFlag)
	// A compact work id for log correlation across restarts.
	workID := xxh3.Hash128(header)
	log.Printf("mining (%d,%d), work %016x%016x, %d workers",
		params.N, params.K, workID.Hi, workID.Lo, *workersFlag)

	base, err := equihash.NewState(params)
	if err != nil {
		log.Fatal(err)
	}
	base.Write(header)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var nextNonce atomic.Int64
	var found atomic.Int64
	g, ctx := errgroup.WithContext(ctx)

	// The probe turns driver-level context cancellation into prompt solver
	// unwinding at the next checkpoint.
	probe := func(equihash.Checkpoint) bool {
		return ctx.Err() != nil
	}

	for w := 0; w < *workersFlag; w++ {
		g.Go(func() error {
			for {
				nonce := nextNonce.Add(1) - 1
				if *noncesFlag > 0 && nonce >= *noncesFlag {
					return nil
				}
				if ctx.Err() != nil {
					return nil
				}

				state := base.Clone()
				var le [4]byte
				binary.LittleEndian.PutUint32(le[:], uint32(nonce))
				state.Write(le[:])

				var solns []equihash.Solution
				var err error
				if *solverFlag == "basic" {
					solns, err = eq.BasicSolve(state, probe)
				} else {
					solns, err = eq.OptimisedSolve(state, probe)
				}
				if errors.Is(err, eherrors.ErrCancelled) {
					return nil
				}
				if err != nil {
					return err
				}

				for _, soln := range solns {
					if !eq.Verify(state, soln) {
						return fmt.Errorf("nonce %d: invalid solution %016x", nonce, soln.ID())
					}
					log.Printf("nonce %d solution %016x: %v", nonce, soln.ID(), soln)
					if *limitFlag > 0 && found.Add(1) >= *limitFlag {
						cancel()
						return nil
					}
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
	if found.Load() == 0 {
		log.Print("no solutions found")
		os.Exit(1)
	}
}
