package fuzzy

// Levenshtein computes the edit distance between a and b over runes.
// It keeps two rows of the matrix instead of the full table.
func Levenshtein(a, b string) int {
	runesA := []rune(a)
	runesB := []rune(b)

	if len(runesA) == 0 {
		return len(runesB)
	}
	if len(runesB) == 0 {
		return len(runesA)
	}

	prev := make([]int, len(runesB)+1)
	curr := make([]int, len(runesB)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(runesA); i++ {
		curr[0] = i
		for j := 1; j <= len(runesB); j++ {
			cost := 1
			if runesA[i-1] == runesB[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(runesB)]
}

// location is the best approximate occurrence of a pattern inside a text.
type location struct {
	errors int
	start  int // first rune of the occurrence
	end    int // last rune of the occurrence, inclusive; end < start when empty
}

// scratch holds the reusable rows of the substring matrix.
type scratch struct {
	prevCost, currCost   []int
	prevStart, currStart []int
}

func (s *scratch) ensure(n int) {
	if cap(s.prevCost) < n+1 {
		s.prevCost = make([]int, n+1)
		s.currCost = make([]int, n+1)
		s.prevStart = make([]int, n+1)
		s.currStart = make([]int, n+1)
	}
	s.prevCost = s.prevCost[:n+1]
	s.currCost = s.currCost[:n+1]
	s.prevStart = s.prevStart[:n+1]
	s.currStart = s.currStart[:n+1]
}

// locate finds the substring of text with the smallest edit distance to
// pattern. A match may begin anywhere in text at no cost. Ties keep the
// earliest occurrence, extended while the cost does not grow.
//
// Rows index the pattern, columns the text; the start rows carry the text
// offset each cell's alignment began at.
func locate(pattern, text []rune, s *scratch) location {
	m, n := len(pattern), len(text)
	if m == 0 {
		return location{start: 0, end: -1}
	}
	if n == 0 {
		return location{errors: m, start: 0, end: -1}
	}

	s.ensure(n)
	for j := 0; j <= n; j++ {
		s.prevCost[j] = 0
		s.prevStart[j] = j
	}

	for i := 1; i <= m; i++ {
		s.currCost[0] = i
		s.currStart[0] = 0
		pr := pattern[i-1]
		for j := 1; j <= n; j++ {
			cost := 1
			if pr == text[j-1] {
				cost = 0
			}
			best, start := s.prevCost[j-1]+cost, s.prevStart[j-1]
			if del := s.prevCost[j] + 1; del < best {
				best, start = del, s.prevStart[j]
			}
			if ins := s.currCost[j-1] + 1; ins < best {
				best, start = ins, s.currStart[j-1]
			}
			s.currCost[j] = best
			s.currStart[j] = start
		}
		s.prevCost, s.currCost = s.currCost, s.prevCost
		s.prevStart, s.currStart = s.currStart, s.prevStart
	}

	loc := location{errors: s.prevCost[0], start: 0, end: -1}
	for j := 1; j <= n; j++ {
		cost, start := s.prevCost[j], s.prevStart[j]
		extends := cost == loc.errors && loc.end >= loc.start && start == loc.start
		if cost < loc.errors || extends {
			loc = location{errors: cost, start: start, end: j - 1}
		}
	}
	return loc
}
