package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// DateKey identifies one calendar day inside a mood store. Month is
// zero-indexed (January = 0), matching the stored key format "{y}-{m}-{d}".
type DateKey struct {
	Year  int
	Month int
	Day   int
}

func (k DateKey) String() string {
	return fmt.Sprintf("%d-%d-%d", k.Year, k.Month, k.Day)
}

// ParseDateKey parses the "{year}-{month}-{day}" store key format.
func ParseDateKey(s string) (DateKey, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return DateKey{}, fmt.Errorf("invalid date key %q", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return DateKey{}, fmt.Errorf("invalid date key %q: %w", s, err)
		}
		nums[i] = n
	}
	k := DateKey{Year: nums[0], Month: nums[1], Day: nums[2]}
	if k.Month < 0 || k.Month > 11 || k.Day < 1 || k.Day > 31 {
		return DateKey{}, fmt.Errorf("date key %q out of range", s)
	}
	return k, nil
}

// InMonth reports whether the key falls inside the given year/month pair.
func (k DateKey) InMonth(year, month int) bool {
	return k.Year == year && k.Month == month
}
