package equihash

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	eherrors "github.com/tamirms/equihash/errors"
)

func TestSolutionBytesRoundTrip(t *testing.T) {
	rng := newTestRNG(t)
	params := Params96_5
	for i := 0; i < 1000; i++ {
		soln := make(Solution, params.IndicesPerSolution())
		for j := range soln {
			soln[j] = rng.Uint32()
		}
		enc := soln.Bytes()
		if len(enc) != params.SolutionBytes() {
			t.Fatalf("encoding length %d", len(enc))
		}
		dec, err := ParseSolution(params, enc)
		if err != nil {
			t.Fatalf("ParseSolution: %v", err)
		}
		if !slices.Equal(dec, soln) {
			t.Fatalf("round trip mismatch: %v != %v", dec, soln)
		}
	}
}

func TestParseSolutionRejectsBadLength(t *testing.T) {
	params := Params96_5
	for _, n := range []int{0, 1, params.SolutionBytes() - 1, params.SolutionBytes() + 4} {
		if _, err := ParseSolution(params, make([]byte, n)); !errors.Is(err, eherrors.ErrSolutionLength) {
			t.Errorf("len %d: err = %v, want ErrSolutionLength", n, err)
		}
	}
}

// Lexicographic comparison of encodings must equal comparison of index
// sequences (the trail-transmission property of the wire format).
func TestSolutionEncodingOrderEquivalence(t *testing.T) {
	rng := newTestRNG(t)
	for i := 0; i < 2000; i++ {
		a := Solution{rng.Uint32N(1000), rng.Uint32N(1000)}
		b := Solution{rng.Uint32N(1000), rng.Uint32N(1000)}
		byteCmp := bytes.Compare(a.Bytes(), b.Bytes())
		intCmp := slices.Compare(a, b)
		if (byteCmp < 0) != (intCmp < 0) || (byteCmp == 0) != (intCmp == 0) {
			t.Fatalf("order mismatch: %v vs %v", a, b)
		}
	}
}

func TestSolutionSetDeduplicates(t *testing.T) {
	ss := newSolutionSet()
	a := Solution{1, 2, 3, 4}
	b := Solution{1, 2, 3, 5}
	ss.add(a)
	ss.add(slices.Clone(a))
	ss.add(b)
	ss.add(slices.Clone(b))
	ss.add(slices.Clone(a))
	if ss.len() != 2 {
		t.Fatalf("set size %d, want 2", ss.len())
	}
}

func TestSolutionSetOrdering(t *testing.T) {
	rng := newTestRNG(t)
	ss := newSolutionSet()
	for i := 0; i < 500; i++ {
		ss.add(Solution{rng.Uint32N(50), rng.Uint32N(50)})
	}
	out := ss.solutions()
	if len(out) != ss.len() {
		t.Fatalf("solutions() returned %d of %d", len(out), ss.len())
	}
	for i := 1; i < len(out); i++ {
		if slices.Compare(out[i-1], out[i]) >= 0 {
			t.Fatalf("output not strictly ordered at %d: %v, %v", i, out[i-1], out[i])
		}
	}
}

func TestSolutionID(t *testing.T) {
	a := Solution{1, 2, 3, 4}
	b := Solution{1, 2, 3, 5}
	if a.ID() == b.ID() {
		t.Error("distinct solutions share an ID")
	}
	if a.ID() != slices.Clone(a).ID() {
		t.Error("equal solutions have different IDs")
	}
}
