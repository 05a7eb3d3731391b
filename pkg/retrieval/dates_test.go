package retrieval_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ncuacg/assistant/pkg/notice"
	"github.com/ncuacg/assistant/pkg/retrieval"
)

func TestRetrieval(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Retrieval Suite")
}

var _ = Describe("ParseTimeString", func() {
	It("parses ISO-8601 with offset and normalizes to UTC", func() {
		got, ok := retrieval.ParseTimeString("2025-08-30T18:00:00+08:00")
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(time.Date(2025, 8, 30, 10, 0, 0, 0, time.UTC)))
	})

	It("treats naive timestamps as UTC", func() {
		got, ok := retrieval.ParseTimeString("2025-08-30 18:00")
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(time.Date(2025, 8, 30, 18, 0, 0, 0, time.UTC)))
	})

	It("normalizes slash and dot separators", func() {
		slash, ok := retrieval.ParseTimeString("2025/08/30 18:00")
		Expect(ok).To(BeTrue())
		dot, ok := retrieval.ParseTimeString("2025.08.30")
		Expect(ok).To(BeTrue())

		Expect(slash.Format("2006-01-02")).To(Equal("2025-08-30"))
		Expect(dot).To(Equal(time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)))
	})

	It("extracts a date fragment from free text", func() {
		got, ok := retrieval.ParseTimeString("screening night on 2025-08-30 18:00 in room A101")
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(time.Date(2025, 8, 30, 18, 0, 0, 0, time.UTC)))
	})

	It("extracts a date-only fragment with midnight time", func() {
		got, ok := retrieval.ParseTimeString("deadline is 2025-09-15, don't be late")
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)))
	})

	It("handles seconds in extracted fragments", func() {
		got, ok := retrieval.ParseTimeString("starts 2025-08-30T18:00:30 sharp")
		Expect(ok).To(BeTrue())
		Expect(got.Second()).To(Equal(30))
	})

	It("rejects text without a date", func() {
		_, ok := retrieval.ParseTimeString("no date here")
		Expect(ok).To(BeFalse())

		_, ok = retrieval.ParseTimeString("")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("ParseTime", func() {
	It("resolves the same calendar date across representations", func() {
		want := "2025-08-30"

		fromISO, ok := retrieval.ParseTime("2025-08-30")
		Expect(ok).To(BeTrue())
		fromSlash, ok := retrieval.ParseTime("2025/08/30 18:00")
		Expect(ok).To(BeTrue())
		fromDot, ok := retrieval.ParseTime("2025.08.30")
		Expect(ok).To(BeTrue())
		fromUnix, ok := retrieval.ParseTime(int64(1756512000)) // 2025-08-30T00:00:00Z
		Expect(ok).To(BeTrue())

		Expect(fromISO.Format("2006-01-02")).To(Equal(want))
		Expect(fromSlash.Format("2006-01-02")).To(Equal(want))
		Expect(fromDot.Format("2006-01-02")).To(Equal(want))
		Expect(fromUnix.Format("2006-01-02")).To(Equal(want))
	})

	It("treats floats as Unix seconds", func() {
		got, ok := retrieval.ParseTime(float64(1756512000))
		Expect(ok).To(BeTrue())
		Expect(got.Year()).To(Equal(2025))
	})

	It("passes time.Time values through as UTC", func() {
		zone := time.FixedZone("UTC+8", 8*60*60)
		local := time.Date(2025, 8, 30, 18, 0, 0, 0, zone)

		got, ok := retrieval.ParseTime(local)
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(time.Date(2025, 8, 30, 10, 0, 0, 0, time.UTC)))
	})

	It("rejects nil and unsupported types", func() {
		_, ok := retrieval.ParseTime(nil)
		Expect(ok).To(BeFalse())

		_, ok = retrieval.ParseTime([]string{"2025-08-30"})
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("ExtractStartTime", func() {
	It("checks metadata keys in priority order", func() {
		doc := notice.Document{
			Meta: map[string]any{
				"date":       "2025-09-01",
				"start_time": "2025-08-30 18:00",
			},
		}

		got, ok := retrieval.ExtractStartTime(doc)
		Expect(ok).To(BeTrue())
		Expect(got.Day()).To(Equal(30))
	})

	It("skips unparseable values and falls through to later keys", func() {
		doc := notice.Document{
			Meta: map[string]any{
				"start_time": "next tuesday-ish",
				"when":       "2025-08-30",
			},
		}

		got, ok := retrieval.ExtractStartTime(doc)
		Expect(ok).To(BeTrue())
		Expect(got.Format("2006-01-02")).To(Equal("2025-08-30"))
	})

	It("falls back to a date embedded in the content", func() {
		doc := notice.Document{
			Content: "Join us on 2025-08-30 18:00 for the screening",
		}

		got, ok := retrieval.ExtractStartTime(doc)
		Expect(ok).To(BeTrue())
		Expect(got.Hour()).To(Equal(18))
	})

	It("falls back to the title when content is empty", func() {
		doc := notice.Document{
			Title: "Screening 2025-08-30",
		}

		got, ok := retrieval.ExtractStartTime(doc)
		Expect(ok).To(BeTrue())
		Expect(got.Format("2006-01-02")).To(Equal("2025-08-30"))
	})

	It("reports no time for dateless documents", func() {
		doc := notice.Document{
			Title:   "About the club",
			Content: "We watch and make anime together",
		}

		_, ok := retrieval.ExtractStartTime(doc)
		Expect(ok).To(BeFalse())
	})
})
