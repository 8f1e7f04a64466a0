package equihash

import (
	"encoding/hex"

	"github.com/tamirms/equihash/internal/arena"
)

// Verify reconstructs the collision tree for soln and reports whether it is
// a valid proof for the seeded state. Each pairwise reduction requires a
// collision on the next Cb bytes, canonical trail ordering, and pairwise
// distinct indices; after K reductions the surviving hash region must be
// zero. Failures are reported as false, with a diagnostic on the log hook.
func (e *Equihash) Verify(base State, soln Solution) bool {
	p := e.params
	cb := p.CollisionByteLength()
	solnSize := p.IndicesPerSolution()
	if len(soln) != solnSize {
		e.logf("Invalid solution size: %d", len(soln))
		return false
	}

	ar := arena.New(solnSize * (p.ExpandedHashLength() + 4) * 2)
	defer ar.Free()

	X := make([][]byte, 0, solnSize)
	for _, i := range soln {
		X = append(X, e.newFullRow(ar, &base, i))
	}

	hashLen := p.ExpandedHashLength()
	lenIndices := 4
	for len(X) > 1 {
		Xc := make([][]byte, 0, len(X)/2)
		for i := 0; i < len(X); i += 2 {
			if !hasCollision(X[i], X[i+1], cb) {
				e.logf("Invalid solution: invalid collision length between StepRows")
				e.logf("X[i]   = %s", hex.EncodeToString(X[i][:hashLen]))
				e.logf("X[i+1] = %s", hex.EncodeToString(X[i+1][:hashLen]))
				return false
			}
			if indicesBefore(X[i+1], X[i], hashLen, lenIndices) {
				e.logf("Invalid solution: index tree incorrectly ordered")
				return false
			}
			if !distinctIndices(X[i], X[i+1], hashLen, lenIndices) {
				e.logf("Invalid solution: duplicate indices")
				return false
			}
			Xc = append(Xc, mergeRows(ar, X[i], X[i+1], hashLen, lenIndices, cb))
		}
		X = Xc
		hashLen -= cb
		lenIndices *= 2
	}

	if !isZero(X[0], hashLen) {
		e.logf("Invalid solution: root hash is not zero")
		return false
	}
	return true
}
