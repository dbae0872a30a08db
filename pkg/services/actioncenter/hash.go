package actioncenter

import (
	"math"
	"strconv"
)

// stableHash computes the non-negative 32-bit polynomial hash that drives every
// deterministic default in the engine (h = h*31 + codeUnit, 32-bit wraparound).
// It is an internal implementation detail, stable within one FormulaVersion;
// it is intentionally not a cryptographic hash.
func stableHash(s string) int {
	var h int32
	for _, r := range s {
		h = h*31 + int32(r)
	}
	if h == math.MinInt32 {
		return 0
	}
	if h < 0 {
		h = -h
	}
	return int(h)
}

// opportunityKey is the hash input for one raw record: the title joined with
// its id, or with its list position when no id was supplied.
func opportunityKey(title, id string, index int) string {
	if id == "" {
		id = strconv.Itoa(index)
	}
	return title + "-" + id
}
