package presenter

// Ratio computes a sequence-alignment similarity between two strings in
// [0, 1]: twice the number of matching runes divided by the total length,
// where matches are counted over recursively-found longest common blocks.
// Two empty strings are identical (ratio 1).
func Ratio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	m := newSeqMatcher(ra, rb)
	return 2.0 * float64(m.matchCount()) / float64(total)
}

type seqMatcher struct {
	a, b []rune
	b2j  map[rune][]int
}

func newSeqMatcher(a, b []rune) *seqMatcher {
	b2j := make(map[rune][]int)
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}
	return &seqMatcher{a: a, b: b, b2j: b2j}
}

// longestMatch finds the longest matching block within a[alo:ahi] and
// b[blo:bhi]. Ties prefer the earliest block in a, then in b.
func (m *seqMatcher) longestMatch(alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newJ2len := make(map[int]int)
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newJ2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newJ2len
	}
	return besti, bestj, bestsize
}

func (m *seqMatcher) matchCount() int {
	type span struct{ alo, ahi, blo, bhi int }
	stack := []span{{0, len(m.a), 0, len(m.b)}}
	total := 0
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		i, j, k := m.longestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if k == 0 {
			continue
		}
		total += k
		stack = append(stack,
			span{s.alo, i, s.blo, j},
			span{i + k, s.ahi, j + k, s.bhi},
		)
	}
	return total
}
