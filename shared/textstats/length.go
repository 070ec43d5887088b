package textstats

import (
	"math"
	"sort"
	"unicode/utf8"
)

// TitleLengths returns the rounded average and the median of the title lengths in characters.
// For an even number of titles the median is the lower of the two middle values.
func TitleLengths(titles []string) (avg, median int) {
	if len(titles) == 0 {
		return 0, 0
	}
	lengths := make([]int, len(titles))
	for i, t := range titles {
		lengths[i] = utf8.RuneCountInString(t)
	}
	return roundedMean(lengths), lowerMedian(lengths)
}

func roundedMean(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return int(math.Floor(float64(sum)/float64(len(values)) + 0.5))
}

func lowerMedian(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)
	return sorted[(len(sorted)-1)/2]
}
