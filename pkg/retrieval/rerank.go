package retrieval

import (
	"sort"
	"time"

	"github.com/ncuacg/assistant/pkg/notice"
)

// Ranked is a candidate document annotated with its resolved start time.
type Ranked struct {
	notice.Candidate

	// Start is the extracted event start time; valid only when HasStart.
	Start    time.Time
	HasStart bool
}

// Rerank applies the temporal re-ranking pass over a similarity-ordered
// candidate pool.
//
// Candidates whose start time falls inside [now, now+window] are
// "future-relevant": when any exist, they are returned sorted by ascending
// start time (ties broken by descending similarity), truncated to k. The
// future-relevant set is never mixed with out-of-window candidates, even
// when it holds fewer than k entries.
//
// When no candidate has a usable future start time, the first k candidates
// of the plain similarity ranking are returned unchanged, so callers always
// get context when any candidates exist. A notice about an event three days
// out beats a highly similar one from last year, but dateless documents
// (about pages) must still be retrievable.
func Rerank(candidates []notice.Candidate, now time.Time, window time.Duration, k int) []Ranked {
	enriched := make([]Ranked, len(candidates))
	for i, c := range candidates {
		start, ok := ExtractStartTime(c.Doc)
		enriched[i] = Ranked{Candidate: c, Start: start, HasStart: ok}
	}

	until := now.Add(window)
	var future []Ranked
	for _, r := range enriched {
		if r.HasStart && !r.Start.Before(now) && !r.Start.After(until) {
			future = append(future, r)
		}
	}

	if len(future) > 0 {
		sort.SliceStable(future, func(a, b int) bool {
			if !future[a].Start.Equal(future[b].Start) {
				return future[a].Start.Before(future[b].Start)
			}
			return future[a].Score > future[b].Score
		})
		if k < len(future) {
			future = future[:k]
		}
		return future
	}

	if k < len(enriched) {
		enriched = enriched[:k]
	}
	return enriched
}
