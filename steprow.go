package equihash

import (
	"bytes"
	"slices"

	"github.com/tamirms/equihash/internal/arena"
)

// A row is a contiguous buffer: a hash region followed by an index trail.
// Full rows carry big-endian 4-byte indices in the trail; truncated rows
// carry one byte per index. The trail is kept in canonical (lexicographic)
// order across merges, which makes byte comparison of trails equal to
// integer comparison of the index sequences they encode.

// indexToArray writes i big-endian so that lexicographic array comparison
// is equivalent to integer comparison.
func indexToArray(i uint32, dst []byte) {
	_ = dst[3]
	dst[0] = byte(i >> 24)
	dst[1] = byte(i >> 16)
	dst[2] = byte(i >> 8)
	dst[3] = byte(i)
}

func arrayToIndex(src []byte) uint32 {
	_ = src[3]
	return uint32(src[0])<<24 | uint32(src[1])<<16 | uint32(src[2])<<8 | uint32(src[3])
}

// truncateIndex keeps the top 8 of ilen meaningful index bits.
func truncateIndex(i uint32, ilen int) byte {
	return byte(i >> (ilen - 8))
}

// untruncateIndex reconstructs the full index whose truncation is t and
// whose remaining low bits are r.
func untruncateIndex(t byte, r uint32, ilen int) uint32 {
	return uint32(t)<<(ilen-8) | r
}

// newFullRow builds the initial full row for index i: H masked hash bytes
// followed by the big-endian index.
func (e *Equihash) newFullRow(ar *arena.Arena, base *State, i uint32) []byte {
	h := e.params.ExpandedHashLength()
	row := ar.Alloc(h + 4)
	base.expandHash(i, row[:h])
	indexToArray(i, row[h:])
	return row
}

// newTruncatedRow builds the initial truncated row for index i: H masked
// hash bytes followed by the single truncated index byte.
func (e *Equihash) newTruncatedRow(ar *arena.Arena, base *State, i uint32, ilen int) []byte {
	h := e.params.ExpandedHashLength()
	row := ar.Alloc(h + 1)
	base.expandHash(i, row[:h])
	row[h] = truncateIndex(i, ilen)
	return row
}

// hasCollision reports whether a and b agree on their leading l hash bytes.
func hasCollision(a, b []byte, l int) bool {
	return bytes.Equal(a[:l], b[:l])
}

// indicesBefore reports whether a's trail lexicographically precedes b's.
func indicesBefore(a, b []byte, hashLen, lenIndices int) bool {
	return bytes.Compare(a[hashLen:hashLen+lenIndices], b[hashLen:hashLen+lenIndices]) < 0
}

// distinctIndices reports whether the trails of a and b share no index.
// Each trail is internally distinct by construction, so only cross-pairs
// are compared.
func distinctIndices(a, b []byte, hashLen, lenIndices int) bool {
	ta := a[hashLen : hashLen+lenIndices]
	tb := b[hashLen : hashLen+lenIndices]
	for i := 0; i < lenIndices; i += 4 {
		for j := 0; j < lenIndices; j += 4 {
			if bytes.Equal(ta[i:i+4], tb[j:j+4]) {
				return false
			}
		}
	}
	return true
}

// mergeRows produces the XOR-merge of a and b. The leading trim hash bytes
// (expected zero after a collision) are dropped; the trails are concatenated
// in canonical order. The merge is agnostic to trail entry width, so full
// and truncated rows share it.
func mergeRows(ar *arena.Arena, a, b []byte, hashLen, lenIndices, trim int) []byte {
	row := ar.Alloc(hashLen - trim + 2*lenIndices)
	for i := trim; i < hashLen; i++ {
		row[i-trim] = a[i] ^ b[i]
	}
	first, second := a, b
	if !indicesBefore(a, b, hashLen, lenIndices) {
		first, second = b, a
	}
	copy(row[hashLen-trim:], first[hashLen:hashLen+lenIndices])
	copy(row[hashLen-trim+lenIndices:], second[hashLen:hashLen+lenIndices])
	return row
}

// isZero reports whether the leading l hash bytes are all zero.
func isZero(row []byte, l int) bool {
	for _, v := range row[:l] {
		if v != 0 {
			return false
		}
	}
	return true
}

// getIndices decodes the lenIndices-byte trail at hashLen into full indices.
func getIndices(row []byte, hashLen, lenIndices int) []uint32 {
	out := make([]uint32, 0, lenIndices/4)
	for i := 0; i < lenIndices; i += 4 {
		out = append(out, arrayToIndex(row[hashLen+i:]))
	}
	return out
}

// isValidBranch reports whether the row's leading trail index truncates to
// t. Trails are canonically ordered in both solver phases, so the leading
// entry of a recreated subtree lines up with the same trail position of the
// partial solution.
func isValidBranch(row []byte, hashLen, ilen int, t byte) bool {
	return truncateIndex(arrayToIndex(row[hashLen:]), ilen) == t
}

// isProbablyDuplicate reports whether every byte of a truncated trail can
// be paired with an equal byte elsewhere in it. Truncation makes exact
// distinctness unavailable; a fully-paired trail is overwhelmingly a
// duplicated index set.
func isProbablyDuplicate(trail []byte) bool {
	checked := make([]bool, len(trail))
	for z := range trail {
		if checked[z] {
			continue
		}
		for y := z + 1; y < len(trail); y++ {
			if !checked[y] && trail[z] == trail[y] {
				checked[y] = true
				checked[z] = true
				break
			}
		}
	}
	for _, c := range checked {
		if !c {
			return false
		}
	}
	return true
}

// sortRows orders the list by the leading prefixLen hash bytes.
func sortRows(rows [][]byte, prefixLen int) {
	slices.SortFunc(rows, func(a, b []byte) int {
		return bytes.Compare(a[:prefixLen], b[:prefixLen])
	})
}
