package notice

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/ncuacg/assistant/pkg/embeddings"
)

// maxChunkChars bounds one embedded passage. Long notice bodies are split
// into fixed-size pieces so each stays within the embedding model's useful
// input range.
const maxChunkChars = 500

// preferredTextKeys are the object fields treated as primary text when
// flattening arbitrary JSON content.
var preferredTextKeys = []string{"title", "content", "description", "text", "body", "summary", "subtitle"}

// metaKeys are the date-bearing fields carried from a notice object into
// Document.Meta for temporal re-ranking.
var metaKeys = []string{"start_time", "start", "date", "datetime", "when", "time"}

var whitespaceRe = regexp.MustCompile(`\s+`)

// ParseNotices flattens a notices JSON file into documents, one per content
// chunk. Accepts an array of notice objects or an arbitrary JSON structure.
func ParseNotices(data []byte) ([]Document, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing notices: %w", err)
	}

	items, ok := raw.([]any)
	if !ok {
		// Not a list; flatten the whole structure.
		var docs []Document
		for _, block := range extractTextBlocks(raw) {
			for _, piece := range chunkText(block) {
				docs = append(docs, Document{Content: piece, Source: SourceNotice})
			}
		}
		return docs, nil
	}

	var docs []Document
	for _, item := range items {
		obj, _ := item.(map[string]any)

		content := any(item)
		if obj != nil {
			if c, ok := obj["content"]; ok {
				content = c
			}
		}

		var title, slug string
		var meta map[string]any
		if obj != nil {
			title, _ = obj["title"].(string)
			slug, _ = obj["slug"].(string)
			for _, k := range metaKeys {
				if v, ok := obj[k]; ok {
					if meta == nil {
						meta = make(map[string]any)
					}
					meta[k] = v
				}
			}
		}

		for _, block := range extractTextBlocks(content) {
			for _, piece := range chunkText(block) {
				docs = append(docs, Document{
					Title:   title,
					Content: piece,
					Source:  SourceNotice,
					Slug:    slug,
					Meta:    meta,
				})
			}
		}
	}

	return docs, nil
}

// ParseAbout flattens an about/introduction JSON file into documents.
func ParseAbout(data []byte) ([]Document, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing about: %w", err)
	}

	var docs []Document
	for _, block := range extractTextBlocks(raw) {
		for _, piece := range chunkText(block) {
			docs = append(docs, Document{Content: piece, Source: SourceAbout})
		}
	}

	return docs, nil
}

// BuildSnapshot embeds every document's content and assembles the aligned
// snapshot. The embedder must already carry the passage prefix.
func BuildSnapshot(ctx context.Context, embedder embeddings.Embedder, docs []Document, logger *zap.Logger) (*Snapshot, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents to embed")
	}

	vectors := make([][]float32, 0, len(docs))
	for i, doc := range docs {
		vec, err := embedder.Embed(ctx, doc.Content)
		if err != nil {
			return nil, fmt.Errorf("embedding document %d: %w", i, err)
		}
		vectors = append(vectors, vec)

		logger.Debug("embedded document",
			zap.Int("index", i),
			zap.String("source", doc.Source),
			zap.Int("dimensions", len(vec)),
		)
	}

	return &Snapshot{Vectors: vectors, Documents: docs}, nil
}

// extractTextBlocks flattens arbitrary JSON values into a list of strings.
// Objects contribute their preferred text fields first, then the rest of
// their values recursively.
func extractTextBlocks(v any) []string {
	var out []string

	switch t := v.(type) {
	case nil:
		return out

	case string:
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}

	case []any:
		for _, item := range t {
			out = append(out, extractTextBlocks(item)...)
		}

	case map[string]any:
		preferred := make(map[string]bool, len(preferredTextKeys))
		for _, k := range preferredTextKeys {
			preferred[k] = true
			if s, ok := t[k].(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		// Remaining fields in sorted order for deterministic output.
		for _, k := range sortedKeys(t) {
			if preferred[k] {
				continue
			}
			out = append(out, extractTextBlocks(t[k])...)
		}

	case bool:
		// Booleans carry no prose.

	default:
		if s := strings.TrimSpace(fmt.Sprint(t)); s != "" {
			out = append(out, s)
		}
	}

	return out
}

// chunkText normalizes whitespace and splits into fixed-size rune chunks.
func chunkText(text string) []string {
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	if text == "" {
		return nil
	}

	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+maxChunkChars-1)/maxChunkChars)
	for i := 0; i < len(runes); i += maxChunkChars {
		end := min(i+maxChunkChars, len(runes))
		chunks = append(chunks, string(runes[i:end]))
	}

	return chunks
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
