package retrieval

import (
	"strings"
	"time"
)

// separator joins rendered documents in the assembled context block.
const separator = "\n---\n"

// DefaultDisplayZone is the timezone used to render resolved event times in
// the context block. Club events are announced in Taiwan local time.
var DefaultDisplayZone = time.FixedZone("UTC+8", 8*60*60)

// Assemble renders ranked documents into a single text block for prompt
// injection. Each document contributes a "[title] timestamp" header when a
// title or resolved time exists, followed by its content. Empty headers and
// contents are omitted entirely, never emitted as blank segments.
func Assemble(ranked []Ranked, zone *time.Location) string {
	if zone == nil {
		zone = DefaultDisplayZone
	}

	var parts []string
	for _, r := range ranked {
		title := strings.TrimSpace(r.Doc.Title)
		content := strings.TrimSpace(r.Doc.Content)

		var ts string
		if r.HasStart {
			ts = r.Start.In(zone).Format("2006-01-02 15:04 MST")
		}

		header := strings.TrimSpace("[" + title + "] " + ts)
		if title == "" && ts == "" {
			header = ""
		}

		if header != "" {
			parts = append(parts, header)
		}
		if content != "" {
			parts = append(parts, content)
		}
	}

	return strings.Join(parts, separator)
}
