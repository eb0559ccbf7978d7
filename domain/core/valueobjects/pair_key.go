package valueobjects

import "errors"

// PairKey is a value object identifying an unordered pair of participants.
// The two ids are stored in lexicographic order so that the direction in
// which a reply was discovered never produces a second key for the same pair.
type PairKey struct {
	a string
	b string
}

// NewPairKey creates a canonical PairKey for two distinct participant ids.
func NewPairKey(first, second string) (PairKey, error) {
	if first == "" || second == "" {
		return PairKey{}, errors.New("pair key requires two non-empty participant ids")
	}
	if first == second {
		return PairKey{}, errors.New("pair key requires two distinct participant ids")
	}
	if first > second {
		first, second = second, first
	}
	return PairKey{a: first, b: second}, nil
}

// First returns the lexicographically smaller participant id.
func (k PairKey) First() string {
	return k.a
}

// Second returns the lexicographically larger participant id.
func (k PairKey) Second() string {
	return k.b
}

// String returns the canonical string form of the pair.
func (k PairKey) String() string {
	return k.a + "|" + k.b
}

// Equals checks if two PairKeys identify the same unordered pair.
func (k PairKey) Equals(other PairKey) bool {
	return k.a == other.a && k.b == other.b
}

// IsZero checks if the PairKey is the zero value.
func (k PairKey) IsZero() bool {
	return k.a == "" && k.b == ""
}

// Contains reports whether the given participant id is one of the endpoints.
func (k PairKey) Contains(id string) bool {
	return k.a == id || k.b == id
}
