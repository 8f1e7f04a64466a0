package equihash

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"testing"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x243F6A8885A308D3
	testSeed2 = 0x13198A2E03707344
)

func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

func mustEquihash(t testing.TB, params Params) *Equihash {
	t.Helper()
	eq, err := New(params)
	if err != nil {
		t.Fatalf("New(%+v): %v", params, err)
	}
	return eq
}

// seededState returns the zero-seed state for params, optionally extended
// with a little-endian nonce.
func seededState(t testing.TB, params Params, nonce ...uint32) State {
	t.Helper()
	state, err := NewState(params)
	if err != nil {
		t.Fatalf("NewState(%+v): %v", params, err)
	}
	for _, n := range nonce {
		var le [4]byte
		binary.LittleEndian.PutUint32(le[:], n)
		state.Write(le[:])
	}
	return state
}

// firstSolution scans nonces until a solver produces a solution, returning
// it with the state it was solved against. Expected solutions per attempt
// is about two, so a miss across maxNonces attempts means a solver bug.
func firstSolution(t *testing.T, eq *Equihash, maxNonces uint32) (State, Solution) {
	t.Helper()
	for nonce := uint32(0); nonce < maxNonces; nonce++ {
		state := seededState(t, eq.Params(), nonce)
		solns, err := eq.BasicSolve(state, nil)
		if err != nil {
			t.Fatalf("BasicSolve(nonce=%d): %v", nonce, err)
		}
		if len(solns) > 0 {
			return state, solns[0]
		}
	}
	t.Fatalf("no solution within %d nonces", maxNonces)
	return State{}, nil
}

func equalSolutions(a, b []Solution) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}
