package matcher

// ratio computes a Ratcliff/Obershelp similarity ratio between two strings,
// equivalent to Python's difflib.SequenceMatcher(None, a, b).ratio(): twice
// the total length of all matching blocks divided by the combined length of
// both strings. No third-party implementation of this specific algorithm is
// available from the retrieved examples or a maintained Go module, so it is
// implemented directly here (see DESIGN.md).
func ratio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	matched := matchingBlockLength(a, b)
	return 2.0 * float64(matched) / float64(len(a)+len(b))
}

// matchingBlockLength recursively sums the lengths of the longest matching
// blocks between a and b, the same divide-and-conquer shape difflib uses.
func matchingBlockLength(a, b string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	aStart, bStart, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	left := matchingBlockLength(a[:aStart], b[:bStart])
	right := matchingBlockLength(a[aStart+size:], b[bStart+size:])
	return left + size + right
}

// longestCommonSubstring returns the start indices in a and b of the first
// longest common contiguous substring, and its length.
func longestCommonSubstring(a, b string) (int, int, int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}
	prevRow := make([]int, len(b)+1)
	currRow := make([]int, len(b)+1)
	bestLen, bestA, bestB := 0, 0, 0
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				currRow[j] = prevRow[j-1] + 1
				if currRow[j] > bestLen {
					bestLen = currRow[j]
					bestA = i - bestLen
					bestB = j - bestLen
				}
			} else {
				currRow[j] = 0
			}
		}
		prevRow, currRow = currRow, prevRow
		for j := range currRow {
			currRow[j] = 0
		}
	}
	return bestA, bestB, bestLen
}
