package retrieval

import (
	"regexp"
	"strings"
	"time"

	"github.com/ncuacg/assistant/pkg/notice"
)

// startKeys are the metadata keys checked, in order, for an event start time.
var startKeys = []string{"start_time", "start", "date", "datetime", "when", "time"}

// plainLayouts are tried after separator normalization. Zone-less layouts
// parse as UTC, which matches the policy of treating naive timestamps as UTC.
var plainLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

var (
	separatorRe = regexp.MustCompile(`[./]`)
	spaceRe     = regexp.MustCompile(`\s+`)

	// dateFragmentRe pulls a YYYY-MM-DD (optionally with a time) substring
	// out of free text as a last resort.
	dateFragmentRe = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})(?:[ T](\d{2}:\d{2}(?::\d{2})?))?`)
)

// ParseTime extracts a timezone-aware UTC timestamp from a heterogeneous
// metadata value. Numeric values are treated as Unix timestamps in seconds.
// Returns false when the value carries no recognizable time.
func ParseTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return v.UTC(), true
	case int:
		return time.Unix(int64(v), 0).UTC(), true
	case int32:
		return time.Unix(int64(v), 0).UTC(), true
	case int64:
		return time.Unix(v, 0).UTC(), true
	case float32:
		return time.Unix(int64(v), 0).UTC(), true
	case float64:
		return time.Unix(int64(v), 0).UTC(), true
	case string:
		return ParseTimeString(v)
	default:
		return time.Time{}, false
	}
}

// ParseTimeString runs the string parsing pipeline:
//
//  1. full ISO-8601 with offset,
//  2. `.`/`/` separators normalized to `-`, then a small fixed layout set,
//  3. a regex-extracted YYYY-MM-DD[ HH:MM[:SS]] fragment anywhere in the text.
//
// The first successful stage wins. All results are normalized to UTC; naive
// timestamps are treated as UTC.
func ParseTimeString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	// 1) ISO-8601 with explicit offset.
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}

	// 2) Normalize separators and whitespace, then try the fixed layouts.
	normalized := separatorRe.ReplaceAllString(s, "-")
	normalized = spaceRe.ReplaceAllString(normalized, " ")

	for _, layout := range plainLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t.UTC(), true
		}
	}

	// 3) Scan for a date fragment embedded in free text.
	m := dateFragmentRe.FindStringSubmatch(normalized)
	if m == nil {
		return time.Time{}, false
	}

	datePart := m[1]
	timePart := m[2]
	if timePart == "" {
		timePart = "00:00"
	}

	layout := "2006-01-02 15:04"
	if len(timePart) == 8 {
		layout = "2006-01-02 15:04:05"
	}

	t, err := time.Parse(layout, datePart+" "+timePart)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// ExtractStartTime finds the best-effort event start time of a document. It
// checks the metadata keys in startKeys order first; failing that, it scans
// the content and then the title for an embedded date. Unparseable values
// are skipped silently.
func ExtractStartTime(doc notice.Document) (time.Time, bool) {
	for _, key := range startKeys {
		value, ok := doc.Meta[key]
		if !ok {
			continue
		}
		if t, ok := ParseTime(value); ok {
			return t, true
		}
	}

	// The date may be buried in the passage text itself.
	text := doc.Content
	if text == "" {
		text = doc.Title
	}
	return ParseTimeString(text)
}
