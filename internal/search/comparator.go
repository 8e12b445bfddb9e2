package search

import "fmt"

// key is the lexicographic ordering triple a Comparator builds from a
// candidate policy's (f_best, f_worst, f_size) scores (spec.md §4.5).
type key struct {
	a, b, c float64
}

// less orders two keys lexicographically.
func (k key) less(other key) bool {
	if k.a != other.a {
		return k.a < other.a
	}
	if k.b != other.b {
		return k.b < other.b
	}
	return k.c < other.c
}

// Comparator builds the open-list ordering key for a scored candidate
// policy (spec.md §4.5). Four variants choose which scalar dominates.
type Comparator interface {
	key(fBest, fWorst, fSize float64) key
}

// NewComparator builds the named comparator: "b", "w", "bw", or "wb"
// (spec.md §4.5/§6 -m).
func NewComparator(name string) (Comparator, error) {
	switch name {
	case "b":
		return bComparator{}, nil
	case "w":
		return wComparator{}, nil
	case "bw":
		return bwComparator{}, nil
	case "wb":
		return wbComparator{}, nil
	default:
		return nil, fmt.Errorf("search: unknown open-list comparator %q, must be one of: b, w, bw, wb", name)
	}
}

type bComparator struct{}

func (bComparator) key(fBest, _, fSize float64) key { return key{fBest, 0, fSize} }

type wComparator struct{}

func (wComparator) key(_, fWorst, fSize float64) key { return key{fWorst, 0, fSize} }

type bwComparator struct{}

func (bwComparator) key(fBest, fWorst, fSize float64) key { return key{fBest, fWorst, fSize} }

type wbComparator struct{}

func (wbComparator) key(fBest, fWorst, fSize float64) key { return key{fWorst, fBest, fSize} }
