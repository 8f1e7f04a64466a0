// Package equihash implements the Equihash proof-of-work algorithm: a
// solver and verifier for the Generalized Birthday Problem as parameterized
// by (N, K).
//
// A proof attempt starts from a seeded hash state and searches for 2^K
// distinct 32-bit indices whose N-bit hash outputs XOR to zero when collided
// pairwise over K rounds: N/(K+1) bits in each round but the last, which
// collides the remaining 2N/(K+1) bits. Verification replays the
// collision tree for a candidate index set.
//
// # Basic Usage
//
// Solving:
//
//	eq, err := equihash.New(equihash.Params96_5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	state, err := equihash.NewState(eq.Params())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	state.Write(header) // block header and nonce, if any
//	solns, err := eq.BasicSolve(state, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, soln := range solns {
//	    fmt.Printf("solution: %v\n", soln)
//	}
//
// Verifying:
//
//	if !eq.Verify(state, soln) {
//	    log.Fatal("invalid solution")
//	}
//
// OptimisedSolve returns the same solution set as BasicSolve while holding
// one-byte truncated index trails during its first phase, roughly a 4x
// reduction of trail memory, at the cost of a second recreation phase.
//
// # Cancellation
//
// Both solvers accept a CancelProbe that is consulted at enumerated
// checkpoints. When the probe reports true the solver unwinds promptly and
// returns errors.ErrCancelled without surfacing partial results.
//
// # Package Structure
//
//   - Public API: equihash.go (New, options, Checkpoint),
//     basic_solve.go (BasicSolve), optimised_solve.go (OptimisedSolve),
//     verify.go (Verify), params.go (Params), state.go (NewState),
//     solutions.go (Solution)
//   - Step-row algebra: steprow.go (row construction, merge, ordering)
//   - Hash primitive: internal/blake2b (personalized BLAKE2b core)
//   - Row storage: internal/arena (bump allocation over anonymous mappings)
package equihash
