package batch

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alde/bitcam/pkg/gradation"
)

// LevelSet is a sorted, duplicate-free list of gradation level counts
type LevelSet struct {
	levels []int
}

// DefaultLevels are the power-of-two level counts from 1 to 8 bits
var DefaultLevels = LevelSet{levels: []int{2, 4, 8, 16, 32, 64, 128, 256}}

// ParseLevelSet parses a list like "2,4,16-18,256". Every value must lie in
// [2, 256].
func ParseLevelSet(s string) (LevelSet, error) {
	seen := map[int]bool{}

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		start, end, err := parseRange(part)
		if err != nil {
			return LevelSet{}, err
		}
		for n := start; n <= end; n++ {
			seen[n] = true
		}
	}

	if len(seen) == 0 {
		return LevelSet{}, fmt.Errorf("no gradation levels given")
	}

	levels := make([]int, 0, len(seen))
	for n := range seen {
		levels = append(levels, n)
	}
	sort.Ints(levels)
	return LevelSet{levels: levels}, nil
}

func parseRange(part string) (int, int, error) {
	lo, hi, isRange := strings.Cut(part, "-")

	start, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid level count: %s", lo)
	}
	end := start
	if isRange {
		end, err = strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid level count: %s", hi)
		}
	}

	if start > end {
		return 0, 0, fmt.Errorf("range start (%d) cannot be greater than end (%d)", start, end)
	}
	if err := gradation.ValidateLevels(start); err != nil {
		return 0, 0, err
	}
	if err := gradation.ValidateLevels(end); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// Values returns the level counts in ascending order
func (ls LevelSet) Values() []int {
	return append([]int(nil), ls.levels...)
}

// Len returns the number of level counts
func (ls LevelSet) Len() int {
	return len(ls.levels)
}

// String renders the set compactly, collapsing consecutive runs
func (ls LevelSet) String() string {
	var parts []string
	for i := 0; i < len(ls.levels); {
		j := i
		for j+1 < len(ls.levels) && ls.levels[j+1] == ls.levels[j]+1 {
			j++
		}
		if j == i {
			parts = append(parts, strconv.Itoa(ls.levels[i]))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", ls.levels[i], ls.levels[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, ",")
}
