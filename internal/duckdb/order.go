package duckdb

import (
	"sort"

	"github.com/inodb/mutscan/internal/sequence"
)

// baseRank orders bases the way the scanner enumerates them.
func baseRank(b byte) int {
	for i, base := range sequence.Bases {
		if base == b {
			return i
		}
	}
	return len(sequence.Bases)
}

// sortEnumerationOrder sorts by position, then by A, T, C, G base order.
func sortEnumerationOrder(vs []StoredVariant) {
	sort.SliceStable(vs, func(i, j int) bool {
		a, b := vs[i].Variant, vs[j].Variant
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return baseRank(a.NewBase) < baseRank(b.NewBase)
	})
}
