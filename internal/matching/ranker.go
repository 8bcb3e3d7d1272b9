package matching

import (
	"sort"

	"scankey-catalog/internal/model"
)

type rankCandidate struct {
	canon    string
	score    float64
	freq     int
	firstIdx int
}

// Rank deduplicates hits by canonical and picks the best reference.
// Exact hits, when present, are the only ones eligible. Candidates are
// ordered by score, frequency, first position, length and finally
// lexically, so the choice is reproducible. best is empty when there are
// no hits.
func Rank(hits []model.MatchHit) (unique []model.MatchHit, best string) {
	unique = []model.MatchHit{}
	pos := make(map[string]int, len(hits))
	for _, h := range hits {
		if i, ok := pos[h.Canon]; ok {
			if h.Index < unique[i].Index {
				unique[i].Index = h.Index
			}
			continue
		}
		pos[h.Canon] = len(unique)
		unique = append(unique, h)
	}

	pool := make([]model.MatchHit, 0, len(hits))
	for _, h := range hits {
		if h.MatchKind == model.MatchExact {
			pool = append(pool, h)
		}
	}
	if len(pool) == 0 {
		pool = hits
	}
	if len(pool) == 0 {
		return unique, ""
	}

	byCanon := make(map[string]*rankCandidate, len(pool))
	candidates := make([]*rankCandidate, 0, len(pool))
	for _, h := range pool {
		c, ok := byCanon[h.Canon]
		if !ok {
			c = &rankCandidate{canon: h.Canon, score: h.Score, firstIdx: h.Index}
			byCanon[h.Canon] = c
			candidates = append(candidates, c)
		}
		c.freq++
		if h.Score > c.score {
			c.score = h.Score
		}
		if h.Index < c.firstIdx {
			c.firstIdx = h.Index
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		switch {
		case a.score != b.score:
			return a.score > b.score
		case a.freq != b.freq:
			return a.freq > b.freq
		case a.firstIdx != b.firstIdx:
			return a.firstIdx < b.firstIdx
		case len(a.canon) != len(b.canon):
			return len(a.canon) < len(b.canon)
		default:
			return a.canon < b.canon
		}
	})

	return unique, candidates[0].canon
}
