// Package grid maps street-name labels onto the cells of a reference grid.
package grid

import "fmt"

const alphabet = 26

// ColumnLabel returns the letter label of the zero-based column n using
// bijective base-26: 0 is "A", 25 is "Z", 26 is "AA", 225 is "HR".
// The label grows as needed, so every non-negative int has one.
// ColumnLabel panics if n is negative.
func ColumnLabel(n int) string {
	if n < 0 {
		panic(fmt.Sprintf("grid: negative column index %d", n))
	}

	// uint64 keeps n+1 from overflowing for math.MaxInt.
	v := uint64(n) + 1
	buf := make([]byte, 0, 4)
	for v > 0 {
		v--
		buf = append(buf, byte('A'+v%alphabet))
		v /= alphabet
	}

	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// ColumnIndex is the inverse of ColumnLabel. It accepts upper-case
// labels only and fails on empty input, other characters or overflow.
func ColumnIndex(label string) (int, error) {
	if label == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidColumn)
	}

	// Labels map to index+1 in 1..MaxInt+1, which fits in uint64.
	limit := uint64(^uint(0)>>1) + 1
	var v uint64
	for i := 0; i < len(label); i++ {
		c := label[i]
		if c < 'A' || c > 'Z' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidColumn, label)
		}
		d := uint64(c-'A') + 1
		if v > (limit-d)/alphabet {
			return 0, fmt.Errorf("%w: %q overflows", ErrInvalidColumn, label)
		}
		v = v*alphabet + d
	}
	return int(v - 1), nil
}
