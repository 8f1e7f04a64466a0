package equihash

import (
	"slices"

	"github.com/cespare/xxhash/v2"

	eherrors "github.com/tamirms/equihash/errors"
)

// Solution is an ordered sequence of 2^K distinct 32-bit indices. The order
// is canonical: pairing adjacent entries at each reduction level yields an
// index tree whose left trail always lexicographically precedes the right.
type Solution []uint32

// Bytes returns the canonical encoding: each index as 4 big-endian bytes.
// Lexicographic comparison of encodings equals integer comparison of the
// index sequences.
func (s Solution) Bytes() []byte {
	out := make([]byte, 4*len(s))
	for i, idx := range s {
		indexToArray(idx, out[4*i:])
	}
	return out
}

// ParseSolution decodes the canonical byte encoding for params.
func ParseSolution(params Params, b []byte) (Solution, error) {
	if len(b) != params.SolutionBytes() {
		return nil, eherrors.ErrSolutionLength
	}
	s := make(Solution, params.IndicesPerSolution())
	for i := range s {
		s[i] = arrayToIndex(b[4*i:])
	}
	return s, nil
}

// ID returns a 64-bit digest of the canonical encoding, suitable for log
// correlation and quick equality screening.
func (s Solution) ID() uint64 {
	return xxhash.Sum64(s.Bytes())
}

// solutionSet deduplicates solutions. Entries are keyed by the xxhash of
// the canonical encoding; a bucket holds the full solutions whose encodings
// hash to that key, so a key collision still compares exact values.
type solutionSet struct {
	buckets map[uint64][]Solution
	n       int
}

func newSolutionSet() *solutionSet {
	return &solutionSet{buckets: make(map[uint64][]Solution)}
}

func (ss *solutionSet) add(sol Solution) {
	key := sol.ID()
	for _, have := range ss.buckets[key] {
		if slices.Equal(have, sol) {
			return
		}
	}
	ss.buckets[key] = append(ss.buckets[key], sol)
	ss.n++
}

func (ss *solutionSet) len() int { return ss.n }

// solutions returns the set sorted lexicographically by index sequence,
// making the solver's result deterministic regardless of discovery order.
func (ss *solutionSet) solutions() []Solution {
	out := make([]Solution, 0, ss.n)
	for _, bucket := range ss.buckets {
		out = append(out, bucket...)
	}
	slices.SortFunc(out, func(a, b Solution) int {
		return slices.Compare(a, b)
	})
	return out
}
