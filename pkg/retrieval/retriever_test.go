package retrieval_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ncuacg/assistant/pkg/logger"
	"github.com/ncuacg/assistant/pkg/notice"
	"github.com/ncuacg/assistant/pkg/retrieval"
	testutils "github.com/ncuacg/assistant/pkg/utils/test"
)

var _ = Describe("Retriever", func() {
	var (
		ctx      context.Context
		now      time.Time
		embedder *testutils.MockEmbedder
	)

	BeforeEach(func() {
		ctx = context.Background()
		now = time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
		embedder = testutils.NewMockEmbedder()
	})

	newRetriever := func(snap *notice.Snapshot) *retrieval.Retriever {
		store, err := notice.NewStore(snap)
		Expect(err).NotTo(HaveOccurred())
		return retrieval.NewRetriever(store, embedder, retrieval.Options{
			Now: func() time.Time { return now },
		}, logger.NewLogger(false))
	}

	Describe("TopK", func() {
		It("prefers an upcoming event over similar but stale documents", func() {
			// doc A: similarity 0.9, no date; doc B: similarity 0.7,
			// starts in 5 days; doc C: similarity 0.95, 10 days past.
			snap := &notice.Snapshot{
				Vectors: [][]float32{
					{0.9, 0.436, 0},
					{0.7, 0.714, 0},
					{0.95, 0.312, 0},
				},
				Documents: []notice.Document{
					{Title: "A", Content: "club introduction"},
					{Title: "B", Content: "upcoming screening",
						Meta: map[string]any{"start_time": now.Add(5 * 24 * time.Hour)}},
					{Title: "C", Content: "old screening",
						Meta: map[string]any{"start_time": now.Add(-10 * 24 * time.Hour)}},
				},
			}
			embedder.Default = []float32{1, 0, 0}

			docs, err := newRetriever(snap).TopK(ctx, "screening", 2)
			Expect(err).NotTo(HaveOccurred())

			// Only B is future-relevant; the result is not padded to k.
			Expect(docs).To(HaveLen(1))
			Expect(docs[0].Title).To(Equal("B"))
		})

		It("falls back to similarity order when no document has a date", func() {
			snap := &notice.Snapshot{
				Vectors: [][]float32{
					{1, 0, 0},
					{0.8, 0.6, 0},
					{0, 1, 0},
				},
				Documents: []notice.Document{
					{Title: "closest", Content: "closest"},
					{Title: "near", Content: "near"},
					{Title: "far", Content: "far"},
				},
			}
			embedder.Default = []float32{1, 0, 0}

			docs, err := newRetriever(snap).TopK(ctx, "anything", 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(docs).To(HaveLen(2))
			Expect(docs[0].Title).To(Equal("closest"))
			Expect(docs[1].Title).To(Equal("near"))
		})

		It("propagates embedding failures", func() {
			snap := &notice.Snapshot{
				Vectors:   [][]float32{{1, 0, 0}},
				Documents: []notice.Document{{Title: "A", Content: "a"}},
			}
			embedder.FailOn = "broken"

			_, err := newRetriever(snap).TopK(ctx, "broken", 2)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("RetrieveContext", func() {
		It("assembles headers and contents for the winners", func() {
			snap := &notice.Snapshot{
				Vectors: [][]float32{{1, 0, 0}},
				Documents: []notice.Document{
					{Title: "Screening", Content: "Doors at six",
						Meta: map[string]any{"start_time": "2025-08-25 10:00"}},
				},
			}
			embedder.Default = []float32{1, 0, 0}

			out, err := newRetriever(snap).RetrieveContext(ctx, "screening", 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("[Screening] 2025-08-25 18:00 UTC+8"))
			Expect(out).To(ContainSubstring("Doors at six"))
		})

		It("uses the configured top-k when k is not positive", func() {
			vectors := make([][]float32, 6)
			docs := make([]notice.Document, 6)
			for i := range vectors {
				vectors[i] = []float32{1, float32(i) * 0.01, 0}
				docs[i] = notice.Document{Title: "doc", Content: "content"}
			}
			snap := &notice.Snapshot{Vectors: vectors, Documents: docs}
			embedder.Default = []float32{1, 0, 0}

			store, err := notice.NewStore(snap)
			Expect(err).NotTo(HaveOccurred())
			r := retrieval.NewRetriever(store, embedder, retrieval.Options{
				TopK: 2,
				Now:  func() time.Time { return now },
			}, logger.NewLogger(false))

			docsOut, err := r.TopK(ctx, "anything", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(docsOut).To(HaveLen(2))
		})
	})
})
