package network

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseZone turns a nominal zone into the zones a station belongs to.
// "2" yields [2]; "2.5" yields [2 3].
func ParseZone(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidZone)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidZone, s)
	}
	lo, hi := int(math.Floor(f)), int(math.Ceil(f))
	if lo == hi {
		return []int{lo}, nil
	}
	return []int{lo, hi}, nil
}
