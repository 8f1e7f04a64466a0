package equihash

import (
	"errors"

	eherrors "github.com/tamirms/equihash/errors"
	"github.com/tamirms/equihash/internal/arena"
)

// errInvalidPartial reports that recreation collapsed a working list to
// empty. It never escapes OptimisedSolve; the partial solution is skipped.
var errInvalidPartial = errors.New("equihash: invalid partial solution")

// OptimisedSolve returns the same solution set as BasicSolve using a
// two-phase design: the search is first run with 8-bit truncated index
// trails (cutting trail memory 4x), then each surviving partial solution
// has its full indices recreated. The truncated list is released before
// recreation begins so the second phase reuses its address space.
func (e *Equihash) OptimisedSolve(base State, probe CancelProbe) ([]Solution, error) {
	p := e.params
	ar := arena.New(p.initSize() * (p.ExpandedHashLength() + 1))
	defer ar.Free()

	partials, err := e.truncatedSearch(ar, &base, probe)
	if err != nil {
		return nil, err
	}
	e.logf("Found %d partial solutions", len(partials))

	// Recreate full indices for each partial solution.
	e.logf("Culling solutions")
	solns := newSolutionSet()
	invalidCount := 0
	for _, partial := range partials {
		ar.Reset()
		rows, hashLen, lenIndices, err := e.recreateFromPartial(ar, &base, partial, probe)
		switch {
		case errors.Is(err, errInvalidPartial):
			invalidCount++
			continue
		case err != nil:
			return nil, err
		}
		// Recreation collides only the next Cb bytes per level, so the
		// root keeps the last block, which must be zero.
		for _, row := range rows {
			if isZero(row, hashLen) {
				solns.add(getIndices(row, hashLen, lenIndices))
			}
		}
		if e.cancelled(probe, PartialEnd) {
			return nil, eherrors.ErrCancelled
		}
	}
	e.logf("- Number of invalid solutions found: %d", invalidCount)
	e.logf("- Number of solutions found: %d", solns.len())
	return solns.solutions(), nil
}

// truncatedSearch is phase 1: the round structure of BasicSolve over
// truncated rows. Distinctness cannot be checked on one-byte trails, so a
// merge is dropped only when its remaining hash is already zero and its
// trail is probably a duplicated index set. It returns the trail bytes of
// every final-round candidate, copied off the arena so the caller can reset
// it before recreation.
func (e *Equihash) truncatedSearch(ar *arena.Arena, base *State, probe CancelProbe) ([][]byte, error) {
	p := e.params
	cb := p.CollisionByteLength()
	ilen := p.CollisionBitLength() + 1
	initSize := p.initSize()

	e.logf("N = %d, K = %d", p.N, p.K)
	e.logf("Generating first list")
	hashLen := p.ExpandedHashLength()
	lenIndices := 1
	X := make([][]byte, 0, initSize)
	for i := 0; i < initSize; i++ {
		X = append(X, e.newTruncatedRow(ar, base, uint32(i), ilen))
		if e.cancelled(probe, ListGeneration) {
			return nil, eherrors.ErrCancelled
		}
	}

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
					// Truncation forbids a distinctness check here; drop a
					// merge only when it is already a zero row built from a
					// probably-duplicated index set.
					xi := mergeRows(ar, X[i+l], X[i+m], hashLen, lenIndices, cb)
					if !(isZero(xi, hashLen-cb) &&
						isProbablyDuplicate(xi[hashLen-cb:hashLen-cb+2*lenIndices])) {
						Xc = append(Xc, xi)
					}
				}
			}

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

	e.logf("Final round:")
	e.logf("- Size %d", len(X))
	var partials [][]byte
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
					partial := append([]byte(nil), res[hashLen:hashLen+2*lenIndices]...)
					partials = append(partials, partial)
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

	return partials, nil
}

// recreateFromPartial is phase 2 for one partial solution: for each of the
// 2^K trail positions it regenerates every full index admitted by the
// truncated byte and merges the lists upward through per-level buckets, a
// binary-counter carry scheme. It returns the root rows together with the
// final hash and trail lengths, or errInvalidPartial if any collide empties
// the working list.
func (e *Equihash) recreateFromPartial(ar *arena.Arena, base *State, partial []byte, probe CancelProbe) ([][]byte, int, int, error) {
	p := e.params
	cb := p.CollisionByteLength()
	ilen := p.CollisionBitLength() + 1
	solnSize := p.IndicesPerSolution()
	recreateSize := int(untruncateIndex(1, 0, ilen))

	// X[r] holds the recreated rows of a completed depth-r subtree awaiting
	// a sibling; nil marks an empty slot.
	X := make([][][]byte, 0, p.K+1)
	var hashLen, lenIndices int

	for i := 0; i < solnSize; i++ {
		ic := make([][]byte, 0, recreateSize)
		for j := 0; j < recreateSize; j++ {
			newIndex := untruncateIndex(partial[i], uint32(j), ilen)
			ic = append(ic, e.newFullRow(ar, base, newIndex))
			if e.cancelled(probe, PartialGeneration) {
				return nil, 0, 0, eherrors.ErrCancelled
			}
		}

		hashLen = p.ExpandedHashLength()
		lenIndices = 4
		rti := i
		for r := 0; r <= p.K; r++ {
			if r >= len(X) {
				X = append(X, ic)
				break
			}
			if X[r] == nil {
				X[r] = ic
				break
			}

			// Carry: a sibling subtree is waiting at this level.
			ic = append(ic, X[r]...)
			sortRows(ic, hashLen)
			if e.cancelled(probe, PartialSorting) {
				return nil, 0, 0, eherrors.ErrCancelled
			}
			lti := rti - (1 << r)
			ic = e.collideBranches(ar, ic, hashLen, lenIndices, cb, ilen, partial[lti], partial[rti])
			if len(ic) == 0 {
				return nil, 0, 0, errInvalidPartial
			}

			X[r] = nil
			hashLen -= cb
			lenIndices *= 2
			rti = lti
			if e.cancelled(probe, PartialSubtreeEnd) {
				return nil, 0, 0, eherrors.ErrCancelled
			}
		}
		if e.cancelled(probe, PartialIndexEnd) {
			return nil, 0, 0, eherrors.ErrCancelled
		}
	}

	// All 2^K positions processed: the top bucket holds the tree root.
	return X[p.K], hashLen, lenIndices, nil
}

// collideBranches is the round collision pass constrained by the partial
// solution: of a colliding pair, one row must recreate the left subtree
// (truncated index lt) and the other the right (rt). Rows with the right
// hash prefix but wrong branch labels are discarded.
func (e *Equihash) collideBranches(ar *arena.Arena, X [][]byte, hashLen, lenIndices, clen, ilen int, lt, rt byte) [][]byte {
	i := 0
	posFree := 0
	var Xc [][]byte
	for i < len(X)-1 {
		j := 1
		for i+j < len(X) && hasCollision(X[i], X[i+j], clen) {
			j++
		}

		for l := 0; l < j-1; l++ {
			for m := l + 1; m < j; m++ {
				a, b := X[i+l], X[i+m]
				if !distinctIndices(a, b, hashLen, lenIndices) {
					continue
				}
				if isValidBranch(a, hashLen, ilen, lt) && isValidBranch(b, hashLen, ilen, rt) {
					Xc = append(Xc, mergeRows(ar, a, b, hashLen, lenIndices, clen))
				} else if isValidBranch(b, hashLen, ilen, lt) && isValidBranch(a, hashLen, ilen, rt) {
					Xc = append(Xc, mergeRows(ar, b, a, hashLen, lenIndices, clen))
				}
			}
		}

		for posFree < i+j && len(Xc) > 0 {
			X[posFree] = Xc[len(Xc)-1]
			Xc = Xc[:len(Xc)-1]
			posFree++
		}

		i += j
	}

	for posFree < len(X) && len(Xc) > 0 {
		X[posFree] = Xc[len(Xc)-1]
		Xc = Xc[:len(Xc)-1]
		posFree++
	}

	if len(Xc) > 0 {
		X = append(X, Xc...)
	} else {
		X = X[:posFree]
	}
	return X
}
