// Package natsort implements natural ordering of strings, where runs of
// decimal digits compare by numeric magnitude instead of byte order.
// Under this ordering "frame2" sorts before "frame10".
package natsort

import (
	"sort"
	"strings"
)

// Compare returns -1, 0, or 1 depending on whether a orders before, equal
// to, or after b. Digit runs compare numerically, everything else compares
// case-insensitively. The ordering is total: names that differ only in
// digit padding or letter case still compare deterministically, so repeated
// sorts are idempotent.
func Compare(a, b string) int {
	ai, bi := 0, 0
	for ai < len(a) && bi < len(b) {
		ac, bc := a[ai], b[bi]
		if isDigit(ac) && isDigit(bc) {
			as, bs := ai, bi
			for ai < len(a) && isDigit(a[ai]) {
				ai++
			}
			for bi < len(b) && isDigit(b[bi]) {
				bi++
			}
			if c := compareNumeric(a[as:ai], b[bs:bi]); c != 0 {
				return c
			}
			continue
		}
		al, bl := lower(ac), lower(bc)
		if al != bl {
			if al < bl {
				return -1
			}
			return 1
		}
		ai++
		bi++
	}
	switch {
	case ai < len(a):
		return 1
	case bi < len(b):
		return -1
	}
	// Same up to digit padding and case; break the tie on the raw bytes so
	// the ordering stays antisymmetric.
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// Less reports whether a orders before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Strings sorts the slice in natural order. The sort is stable: names that
// compare equal retain their relative positions.
func Strings(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return Compare(names[i], names[j]) < 0
	})
}

// compareNumeric compares two digit runs by magnitude.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
