package equihash

import (
	eherrors "github.com/tamirms/equihash/errors"
)

// Params selects an Equihash instance. N is the hash output width in bits,
// K the collision tree depth. A solution contains 2^K indices.
type Params struct {
	N int
	K int
}

// Parameter sets with known deployments or test coverage.
var (
	Params200_9  = Params{N: 200, K: 9}
	Params216_8  = Params{N: 216, K: 8}
	Params208_12 = Params{N: 208, K: 12}
	Params144_5  = Params{N: 144, K: 5}
	Params96_3   = Params{N: 96, K: 3}
	Params96_5   = Params{N: 96, K: 5}
	Params48_5   = Params{N: 48, K: 5}
)

// CollisionBitLength returns C = N/(K+1), the number of bits that must
// collide at each round.
func (p Params) CollisionBitLength() int { return p.N / (p.K + 1) }

// CollisionByteLength returns Cb = ceil(C/8).
func (p Params) CollisionByteLength() int { return (p.CollisionBitLength() + 7) / 8 }

// ExpandedHashLength returns H = (K+1)*Cb, the per-row hash region size:
// one Cb-byte block per tree level.
func (p Params) ExpandedHashLength() int { return (p.K + 1) * p.CollisionByteLength() }

// IndicesPerSolution returns 2^K.
func (p Params) IndicesPerSolution() int { return 1 << p.K }

// SolutionBytes returns the length of a solution's canonical byte encoding.
func (p Params) SolutionBytes() int { return 4 * p.IndicesPerSolution() }

// hashOutputLength is the digest length baked into the hash parameter
// block. The expanded hash region may read beyond it (see internal/blake2b).
func (p Params) hashOutputLength() int { return p.N / 8 }

// initSize returns the size of the initial row list, 2^(C+1).
func (p Params) initSize() int { return 1 << (p.CollisionBitLength() + 1) }

// Validate reports whether the parameters describe a solvable instance.
func (p Params) Validate() error {
	if p.K <= 0 || p.K >= p.N || p.N%8 != 0 || p.N%(p.K+1) != 0 {
		return eherrors.ErrInvalidParams
	}
	// Truncated indices keep the top 8 of C+1 bits; C below 8 would leave
	// nothing to truncate and the untruncation shift would go negative.
	if p.CollisionBitLength() < 8 {
		return eherrors.ErrCollisionLength
	}
	// Indices are 32-bit and the initial list has 2^(C+1) entries.
	if p.CollisionBitLength() > 30 {
		return eherrors.ErrInvalidParams
	}
	if p.ExpandedHashLength() > 64 {
		return eherrors.ErrHashLength
	}
	return nil
}
