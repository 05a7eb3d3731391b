package retrieval_test

import (
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ncuacg/assistant/pkg/notice"
	"github.com/ncuacg/assistant/pkg/retrieval"
)

var _ = Describe("Assemble", func() {
	ranked := func(title, content string, start time.Time, hasStart bool) retrieval.Ranked {
		return retrieval.Ranked{
			Candidate: notice.Candidate{
				Doc: notice.Document{Title: title, Content: content},
			},
			Start:    start,
			HasStart: hasStart,
		}
	}

	It("renders a header with title and display-zone timestamp", func() {
		start := time.Date(2025, 8, 30, 10, 0, 0, 0, time.UTC)
		out := retrieval.Assemble([]retrieval.Ranked{
			ranked("Screening", "Doors open at six", start, true),
		}, retrieval.DefaultDisplayZone)

		Expect(out).To(ContainSubstring("[Screening] 2025-08-30 18:00 UTC+8"))
		Expect(out).To(ContainSubstring("Doors open at six"))
	})

	It("renders a title-only header for dateless documents", func() {
		out := retrieval.Assemble([]retrieval.Ranked{
			ranked("About", "We watch anime", time.Time{}, false),
		}, nil)

		Expect(out).To(HavePrefix("[About]"))
		Expect(out).To(ContainSubstring("We watch anime"))
	})

	It("omits the header entirely when there is no title and no time", func() {
		out := retrieval.Assemble([]retrieval.Ranked{
			ranked("", "Just content", time.Time{}, false),
		}, nil)

		Expect(out).To(Equal("Just content"))
	})

	It("joins documents with the separator and skips empty parts", func() {
		start := time.Date(2025, 8, 30, 10, 0, 0, 0, time.UTC)
		out := retrieval.Assemble([]retrieval.Ranked{
			ranked("First", "first content", start, true),
			ranked("", "", time.Time{}, false),
			ranked("Second", "second content", time.Time{}, false),
		}, nil)

		Expect(out).NotTo(ContainSubstring("---\n---"))
		Expect(strings.Count(out, "---")).To(Equal(3))
		Expect(out).NotTo(ContainSubstring("\n\n"))
	})

	It("returns an empty string for no documents", func() {
		Expect(retrieval.Assemble(nil, nil)).To(Equal(""))
	})
})
