package notice_test

import (
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ncuacg/assistant/pkg/logger"
	"github.com/ncuacg/assistant/pkg/notice"
	testutils "github.com/ncuacg/assistant/pkg/utils/test"
)

var _ = Describe("ParseNotices", func() {
	It("flattens a notice list into chunked documents", func() {
		docs, err := notice.ParseNotices([]byte(`[
			{"title": "Screening", "slug": "screening",
			 "content": "Doors open at six.", "start_time": "2025-09-05 18:00"}
		]`))
		Expect(err).NotTo(HaveOccurred())

		Expect(docs).To(HaveLen(1))
		Expect(docs[0].Title).To(Equal("Screening"))
		Expect(docs[0].Slug).To(Equal("screening"))
		Expect(docs[0].Content).To(Equal("Doors open at six."))
		Expect(docs[0].Source).To(Equal(notice.SourceNotice))
		Expect(docs[0].Meta).To(HaveKeyWithValue("start_time", "2025-09-05 18:00"))
	})

	It("splits long content into fixed-size chunks", func() {
		long := strings.Repeat("a", 1200)
		docs, err := notice.ParseNotices([]byte(`[{"title": "Long", "content": "` + long + `"}]`))
		Expect(err).NotTo(HaveOccurred())

		Expect(docs).To(HaveLen(3))
		Expect(docs[0].Content).To(HaveLen(500))
		Expect(docs[2].Content).To(HaveLen(200))
		for _, d := range docs {
			Expect(d.Title).To(Equal("Long"))
		}
	})

	It("normalizes whitespace before chunking", func() {
		docs, err := notice.ParseNotices([]byte(`[{"content": "hello\n\n   world"}]`))
		Expect(err).NotTo(HaveOccurred())
		Expect(docs).To(HaveLen(1))
		Expect(docs[0].Content).To(Equal("hello world"))
	})

	It("flattens nested content structures", func() {
		docs, err := notice.ParseNotices([]byte(`[
			{"title": "Nested", "content": {"body": "main text", "extra": ["more", "text"]}}
		]`))
		Expect(err).NotTo(HaveOccurred())

		contents := make([]string, len(docs))
		for i, d := range docs {
			contents[i] = d.Content
		}
		Expect(contents).To(ContainElements("main text", "more", "text"))
	})

	It("handles a non-list top level", func() {
		docs, err := notice.ParseNotices([]byte(`{"announcement": "club resumes in september"}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(docs).To(HaveLen(1))
		Expect(docs[0].Content).To(Equal("club resumes in september"))
	})

	It("rejects invalid JSON", func() {
		_, err := notice.ParseNotices([]byte(`{not json`))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("ParseAbout", func() {
	It("flattens sections into about documents", func() {
		docs, err := notice.ParseAbout([]byte(`{
			"title": "About the club",
			"sections": [{"text": "We watch anime."}, {"text": "Weekly meetups."}]
		}`))
		Expect(err).NotTo(HaveOccurred())

		Expect(len(docs)).To(BeNumerically(">=", 3))
		for _, d := range docs {
			Expect(d.Source).To(Equal(notice.SourceAbout))
			Expect(d.Title).To(BeEmpty())
		}
	})
})

var _ = Describe("BuildSnapshot", func() {
	var embedder *testutils.MockEmbedder

	BeforeEach(func() {
		embedder = testutils.NewMockEmbedder()
	})

	It("produces an aligned snapshot", func() {
		docs := []notice.Document{
			{Title: "A", Content: "first", Source: notice.SourceNotice},
			{Title: "B", Content: "second", Source: notice.SourceAbout},
		}

		snap, err := notice.BuildSnapshot(context.Background(), embedder, docs, logger.Nop())
		Expect(err).NotTo(HaveOccurred())
		Expect(snap.Vectors).To(HaveLen(2))
		Expect(snap.Documents).To(Equal(docs))
	})

	It("fails on an empty document set", func() {
		_, err := notice.BuildSnapshot(context.Background(), embedder, nil, logger.Nop())
		Expect(err).To(HaveOccurred())
	})

	It("propagates embedding failures", func() {
		embedder.FailOn = "second"
		docs := []notice.Document{
			{Content: "first"},
			{Content: "second"},
		}

		_, err := notice.BuildSnapshot(context.Background(), embedder, docs, logger.Nop())
		Expect(err).To(HaveOccurred())
	})
})
