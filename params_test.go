package equihash

import (
	"errors"
	"testing"

	eherrors "github.com/tamirms/equihash/errors"
)

func TestDerivedConstants(t *testing.T) {
	cases := []struct {
		params     Params
		c, cb, h   int
		solnSize   int
		initialLen int
	}{
		{Params200_9, 20, 3, 30, 512, 1 << 21},
		{Params216_8, 24, 3, 27, 256, 1 << 25},
		{Params208_12, 16, 2, 26, 4096, 1 << 17},
		{Params144_5, 24, 3, 18, 32, 1 << 25},
		{Params96_3, 24, 3, 12, 8, 1 << 25},
		{Params96_5, 16, 2, 12, 32, 1 << 17},
		{Params48_5, 8, 1, 6, 32, 1 << 9},
	}
	for _, tc := range cases {
		p := tc.params
		if err := p.Validate(); err != nil {
			t.Errorf("(%d,%d): Validate: %v", p.N, p.K, err)
			continue
		}
		if got := p.CollisionBitLength(); got != tc.c {
			t.Errorf("(%d,%d): CollisionBitLength = %d, want %d", p.N, p.K, got, tc.c)
		}
		if got := p.CollisionByteLength(); got != tc.cb {
			t.Errorf("(%d,%d): CollisionByteLength = %d, want %d", p.N, p.K, got, tc.cb)
		}
		if got := p.ExpandedHashLength(); got != tc.h {
			t.Errorf("(%d,%d): ExpandedHashLength = %d, want %d", p.N, p.K, got, tc.h)
		}
		if got := p.IndicesPerSolution(); got != tc.solnSize {
			t.Errorf("(%d,%d): IndicesPerSolution = %d, want %d", p.N, p.K, got, tc.solnSize)
		}
		if got := p.SolutionBytes(); got != 4*tc.solnSize {
			t.Errorf("(%d,%d): SolutionBytes = %d, want %d", p.N, p.K, got, 4*tc.solnSize)
		}
		if got := p.initSize(); got != tc.initialLen {
			t.Errorf("(%d,%d): initSize = %d, want %d", p.N, p.K, got, tc.initialLen)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		params Params
		want   error
	}{
		{"zero K", Params{N: 96, K: 0}, eherrors.ErrInvalidParams},
		{"K >= N", Params{N: 96, K: 96}, eherrors.ErrInvalidParams},
		{"N not byte aligned", Params{N: 100, K: 4}, eherrors.ErrInvalidParams},
		{"N not divisible by K+1", Params{N: 200, K: 8}, eherrors.ErrInvalidParams},
		{"collision length below 8", Params{N: 24, K: 3}, eherrors.ErrCollisionLength},
		{"collision length too wide", Params{N: 512, K: 3}, eherrors.ErrInvalidParams},
		{"expanded hash too long", Params{N: 528, K: 21}, eherrors.ErrHashLength},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.params.Validate()
			if !errors.Is(err, tc.want) {
				t.Fatalf("Validate(%+v) = %v, want %v", tc.params, err, tc.want)
			}
			if _, err := New(tc.params); err == nil {
				t.Fatalf("New(%+v) accepted invalid params", tc.params)
			}
			if _, err := NewState(tc.params); err == nil {
				t.Fatalf("NewState(%+v) accepted invalid params", tc.params)
			}
		})
	}
}
