package retrieval_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ncuacg/assistant/pkg/notice"
	"github.com/ncuacg/assistant/pkg/retrieval"
)

var _ = Describe("Rerank", func() {
	var (
		now    time.Time
		window time.Duration
	)

	BeforeEach(func() {
		now = time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
		window = 30 * 24 * time.Hour
	})

	candidate := func(title string, score float32, meta map[string]any) notice.Candidate {
		return notice.Candidate{
			Doc:   notice.Document{Title: title, Content: title, Meta: meta},
			Score: score,
		}
	}

	It("returns only future-relevant candidates when any exist", func() {
		candidates := []notice.Candidate{
			candidate("dateless", 0.9, nil),
			candidate("future", 0.7, map[string]any{"start_time": "2025-08-25"}),
			candidate("past", 0.95, map[string]any{"start_time": "2025-08-10"}),
		}

		got := retrieval.Rerank(candidates, now, window, 2)
		Expect(got).To(HaveLen(1))
		Expect(got[0].Doc.Title).To(Equal("future"))
	})

	It("sorts future-relevant candidates by ascending start time", func() {
		candidates := []notice.Candidate{
			candidate("later", 0.9, map[string]any{"start_time": "2025-09-10"}),
			candidate("sooner", 0.5, map[string]any{"start_time": "2025-08-22"}),
		}

		got := retrieval.Rerank(candidates, now, window, 2)
		Expect(got).To(HaveLen(2))
		Expect(got[0].Doc.Title).To(Equal("sooner"))
		Expect(got[1].Doc.Title).To(Equal("later"))
	})

	It("breaks start-time ties by descending similarity", func() {
		candidates := []notice.Candidate{
			candidate("weak", 0.3, map[string]any{"start_time": "2025-08-25 18:00"}),
			candidate("strong", 0.8, map[string]any{"start_time": "2025-08-25 18:00"}),
		}

		got := retrieval.Rerank(candidates, now, window, 2)
		Expect(got[0].Doc.Title).To(Equal("strong"))
		Expect(got[1].Doc.Title).To(Equal("weak"))
	})

	It("excludes events beyond the window end", func() {
		candidates := []notice.Candidate{
			candidate("inside", 0.5, map[string]any{"start_time": "2025-09-15"}),
			candidate("outside", 0.9, map[string]any{"start_time": "2025-12-01"}),
		}

		got := retrieval.Rerank(candidates, now, window, 2)
		Expect(got).To(HaveLen(1))
		Expect(got[0].Doc.Title).To(Equal("inside"))
	})

	It("includes events starting exactly now or exactly at the window end", func() {
		candidates := []notice.Candidate{
			candidate("at-now", 0.5, map[string]any{"start_time": now}),
			candidate("at-end", 0.5, map[string]any{"start_time": now.Add(window)}),
		}

		got := retrieval.Rerank(candidates, now, window, 2)
		Expect(got).To(HaveLen(2))
	})

	It("falls back to plain similarity order when nothing is future-relevant", func() {
		candidates := []notice.Candidate{
			candidate("best", 0.95, map[string]any{"start_time": "2025-08-10"}),
			candidate("good", 0.9, nil),
			candidate("ok", 0.7, nil),
		}

		got := retrieval.Rerank(candidates, now, window, 2)
		Expect(got).To(HaveLen(2))
		Expect(got[0].Doc.Title).To(Equal("best"))
		Expect(got[1].Doc.Title).To(Equal("good"))
	})

	It("does not pad the future set with non-future candidates", func() {
		// doc A: similar, no date; doc B: less similar, 5 days out;
		// doc C: most similar, 10 days past. k=2 returns [B] alone.
		candidates := []notice.Candidate{
			candidate("C", 0.95, map[string]any{"start_time": now.Add(-10 * 24 * time.Hour)}),
			candidate("A", 0.9, nil),
			candidate("B", 0.7, map[string]any{"start_time": now.Add(5 * 24 * time.Hour)}),
		}

		got := retrieval.Rerank(candidates, now, window, 2)
		Expect(got).To(HaveLen(1))
		Expect(got[0].Doc.Title).To(Equal("B"))
	})

	It("returns the plain similarity top-k when no document has any date", func() {
		candidates := []notice.Candidate{
			candidate("first", 0.9, nil),
			candidate("second", 0.8, nil),
			candidate("third", 0.5, nil),
		}

		got := retrieval.Rerank(candidates, now, window, 2)
		Expect(got).To(HaveLen(2))
		Expect(got[0].Doc.Title).To(Equal("first"))
		Expect(got[1].Doc.Title).To(Equal("second"))
	})

	It("handles an empty candidate pool", func() {
		got := retrieval.Rerank(nil, now, window, 2)
		Expect(got).To(BeEmpty())
	})
})
