package equihash

import (
	"encoding/binary"

	"github.com/tamirms/equihash/internal/blake2b"
)

// personPrefix is the fixed head of the 16-byte hash personalization;
// little-endian N and K fill the remaining 8 bytes.
const personPrefix = "ZcashPoW"

// State is a seeded hash state defining a single proof-of-work attempt.
// It is a plain value: assignment (or Clone) yields an independent copy,
// and the solver never mutates the state it is given.
type State struct {
	params Params
	h      blake2b.State
}

// NewState initializes a hash state personalized by params: digest length
// N/8, personalization "ZcashPoW" || le32(N) || le32(K), no key, no salt.
func NewState(params Params) (State, error) {
	if err := params.Validate(); err != nil {
		return State{}, err
	}
	var personal [blake2b.PersonalSize]byte
	copy(personal[:8], personPrefix)
	binary.LittleEndian.PutUint32(personal[8:12], uint32(params.N))
	binary.LittleEndian.PutUint32(personal[12:16], uint32(params.K))
	return State{
		params: params,
		h:      blake2b.Init(params.hashOutputLength(), personal[:]),
	}, nil
}

// Params returns the parameters the state was seeded with.
func (s State) Params() Params { return s.params }

// Write absorbs additional attempt input, typically a block header followed
// by a nonce.
func (s *State) Write(p []byte) {
	s.h.Write(p)
}

// Clone returns an independent copy of the state.
func (s State) Clone() State { return s }

// expandHash writes the masked expanded hash for index i into out, which
// must be ExpandedHashLength bytes. The receiver is unchanged: the hash
// state is forked by value, extended with le32(i), and finalized.
func (s *State) expandHash(i uint32, out []byte) {
	h := s.h
	var le [4]byte
	binary.LittleEndian.PutUint32(le[:], i)
	h.Write(le[:])
	h.ReadFinal(out)

	// Zero the bits beyond C on the high end of each Cb-byte block so each
	// round's colliding pair XORs to zero across the full block.
	cb := s.params.CollisionByteLength()
	mask := byte(0xFF >> (8*cb - s.params.CollisionBitLength()))
	for level := 0; level <= s.params.K; level++ {
		out[level*cb] &= mask
	}
}
