package equihash

import (
	eherrors "github.com/tamirms/equihash/errors"
	"github.com/tamirms/equihash/internal/arena"
)

// BasicSolve runs the direct Wagner-style collision search, carrying full
// 4-byte index trails throughout. It returns every valid solution for the
// seeded state, deduplicated and ordered; an empty result is not an error.
// The caller's state is not mutated.
func (e *Equihash) BasicSolve(base State, probe CancelProbe) ([]Solution, error) {
	p := e.params
	cb := p.CollisionByteLength()
	initSize := p.initSize()

	ar := arena.New(initSize * (p.ExpandedHashLength() + 4))
	defer ar.Free()

	e.logf("N = %d, K = %d", p.N, p.K)
	e.logf("Generating first list")
	hashLen := p.ExpandedHashLength()
	lenIndices := 4
	X := make([][]byte, 0, initSize)
	for i := 0; i < initSize; i++ {
		X = append(X, e.newFullRow(ar, &base, uint32(i)))
		if e.cancelled(probe, ListGeneration) {
			return nil, eherrors.ErrCancelled
		}
	}

	// Collision rounds: sort on the next Cb bytes, merge every distinct
	// pair within each equal-prefix run, compact in place.
	for r := 1; r < p.K && len(X) > 0; r++ {
		e.logf("Round %d:", r)
		e.logf("- Size %d", len(X))
		e.logf("- Sorting list")
		sortRows(X, cb)
		if e.cancelled(probe, ListSorting) {
			return nil, eherrors.ErrCancelled
		}

		e.logf("- Finding collisions")
		i := 0
		posFree := 0
		var Xc [][]byte
		for i < len(X)-1 {
			j := 1
			for i+j < len(X) && hasCollision(X[i], X[i+j], cb) {
				j++
			}

			for l := 0; l < j-1; l++ {
				for m := l + 1; m < j; m++ {
					if distinctIndices(X[i+l], X[i+m], hashLen, lenIndices) {
						Xc = append(Xc, mergeRows(ar, X[i+l], X[i+m], hashLen, lenIndices, cb))
					}
				}
			}

			// Reuse the slots the run just vacated.
			for posFree < i+j && len(Xc) > 0 {
				X[posFree] = Xc[len(Xc)-1]
				Xc = Xc[:len(Xc)-1]
				posFree++
			}

			i += j
			if e.cancelled(probe, ListColliding) {
				return nil, eherrors.ErrCancelled
			}
		}

		// The final run may have had no collision slots to fill.
		for posFree < len(X) && len(Xc) > 0 {
			X[posFree] = Xc[len(Xc)-1]
			Xc = Xc[:len(Xc)-1]
			posFree++
		}

		if len(Xc) > 0 {
			X = append(X, Xc...)
		} else if posFree < len(X) {
			X = X[:posFree]
		}

		hashLen -= cb
		lenIndices *= 2
		if e.cancelled(probe, RoundEnd) {
			return nil, eherrors.ErrCancelled
		}
	}

	// Final round: collide on the remaining 2C bits with trim 0 so the
	// zero check stays possible, and harvest index trails.
	e.logf("Final round:")
	e.logf("- Size %d", len(X))
	solns := newSolutionSet()
	if len(X) > 1 {
		e.logf("- Sorting list")
		sortRows(X, hashLen)
		if e.cancelled(probe, FinalSorting) {
			return nil, eherrors.ErrCancelled
		}
		e.logf("- Finding collisions")
		i := 0
		for i < len(X)-1 {
			j := 1
			for i+j < len(X) && hasCollision(X[i], X[i+j], hashLen) {
				j++
			}

			for l := 0; l < j-1; l++ {
				for m := l + 1; m < j; m++ {
					res := mergeRows(ar, X[i+l], X[i+m], hashLen, lenIndices, 0)
					if distinctIndices(X[i+l], X[i+m], hashLen, lenIndices) {
						solns.add(getIndices(res, hashLen, 2*lenIndices))
					}
				}
			}

			i += j
			if e.cancelled(probe, FinalColliding) {
				return nil, eherrors.ErrCancelled
			}
		}
	} else {
		e.logf("- List is empty")
	}

	e.logf("- Number of solutions found: %d", solns.len())
	return solns.solutions(), nil
}
