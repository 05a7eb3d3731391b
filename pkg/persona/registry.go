package persona

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Config holds persona registry settings.
type Config struct {
	// Paths are candidate persona JSON files, tried in priority order.
	// The first existing and parseable file wins. May be empty, in which
	// case only the built-in fallback table is served.
	Paths []string

	// DefaultID is the configured default persona id.
	DefaultID string
}

// tableSnapshot is one immutable merged-table generation. Path and mtime
// identify the source file; path is empty for the fallback-only merge.
type tableSnapshot struct {
	table map[string]Persona
	path  string
	mtime time.Time
}

// Registry serves the merged persona table. Reads are lock-free against an
// atomic snapshot; reloads happen under a single-writer mutex when the
// source file's modification time changes.
type Registry struct {
	paths     []string
	defaultID string
	logger    *zap.Logger

	mu    sync.Mutex
	cache atomic.Pointer[tableSnapshot]
}

// NewRegistry creates a registry over the given candidate paths.
func NewRegistry(cfg Config, logger *zap.Logger) *Registry {
	return &Registry{
		paths:     cfg.Paths,
		defaultID: cfg.DefaultID,
		logger:    logger,
	}
}

// List returns all personas without system prompts, the default persona
// first and the rest sorted by name. Hidden personas are excluded unless
// includeHidden is set.
func (r *Registry) List(includeHidden bool) []Persona {
	snap := r.snapshot()
	defaultID := r.defaultIDFrom(snap.table)

	out := make([]Persona, 0, len(snap.table))
	for _, p := range snap.table {
		if p.Hidden && !includeHidden {
			continue
		}
		out = append(out, p.withoutPrompt())
	}

	sort.Slice(out, func(a, b int) bool {
		if (out[a].ID == defaultID) != (out[b].ID == defaultID) {
			return out[a].ID == defaultID
		}
		return out[a].Name < out[b].Name
	})

	return out
}

// Get returns the full persona for the given id, including its system
// prompt. Returns ErrNotFound when the id is absent from the merged table.
func (r *Registry) Get(id string) (Persona, error) {
	snap := r.snapshot()
	p, ok := snap.table[id]
	if !ok {
		return Persona{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return p, nil
}

// Has reports whether the id exists in the merged table.
func (r *Registry) Has(id string) bool {
	_, ok := r.snapshot().table[id]
	return ok
}

// DefaultID resolves the default persona id: the configured default when
// present in the merged table, else the hardcoded fallback id when present,
// else the first available id, else the raw configured default.
func (r *Registry) DefaultID() string {
	return r.defaultIDFrom(r.snapshot().table)
}

func (r *Registry) defaultIDFrom(table map[string]Persona) string {
	if r.defaultID != "" {
		if _, ok := table[r.defaultID]; ok {
			return r.defaultID
		}
	}
	if _, ok := table[FallbackDefaultID]; ok {
		return FallbackDefaultID
	}
	if len(table) > 0 {
		ids := make([]string, 0, len(table))
		for id := range table {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		return ids[0]
	}
	return r.defaultID
}

// SystemPrompt returns the prompt for the given id, falling back to the
// default persona's prompt, then to the compiled-in default.
func (r *Registry) SystemPrompt(id string) string {
	snap := r.snapshot()

	if id != "" {
		if p, ok := snap.table[id]; ok && p.SystemPrompt != "" {
			return p.SystemPrompt
		}
	}

	defaultID := r.defaultIDFrom(snap.table)
	if p, ok := snap.table[defaultID]; ok && p.SystemPrompt != "" {
		return p.SystemPrompt
	}

	return fallbackPrompts[FallbackDefaultID]
}

// snapshot returns the current merged table, reloading when the source
// file's modification time has changed since the cached generation.
func (r *Registry) snapshot() *tableSnapshot {
	path, mtime := r.findSource()

	cur := r.cache.Load()
	if cur != nil && cur.path == path && (path == "" || cur.mtime.Equal(mtime)) {
		return cur
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another goroutine may have reloaded while we waited.
	cur = r.cache.Load()
	if cur != nil && cur.path == path && (path == "" || cur.mtime.Equal(mtime)) {
		return cur
	}

	snap := r.reload()
	r.cache.Store(snap)
	return snap
}

// findSource returns the first existing candidate path and its mtime.
// Returns an empty path when no candidate exists.
func (r *Registry) findSource() (string, time.Time) {
	for _, p := range r.paths {
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, info.ModTime()
		}
	}
	return "", time.Time{}
}

// reload walks the candidate paths, parses the first usable file, and
// merges it with the built-in fallback table. A malformed file at one path
// falls through to the next; when every path fails, the fallback-only
// merge is returned with an empty source path.
func (r *Registry) reload() *tableSnapshot {
	for _, p := range r.paths {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}

		data, err := os.ReadFile(p)
		if err != nil {
			r.logger.Warn("reading persona file failed, trying next candidate",
				zap.String("path", p),
				zap.Error(err),
			)
			continue
		}

		entries, err := parsePersonaFile(data)
		if err != nil {
			r.logger.Warn("parsing persona file failed, trying next candidate",
				zap.String("path", p),
				zap.Error(err),
			)
			continue
		}

		r.logger.Debug("loaded persona file",
			zap.String("path", p),
			zap.Int("personas", len(entries)),
		)

		return &tableSnapshot{
			table: merge(entries),
			path:  p,
			mtime: info.ModTime(),
		}
	}

	return &tableSnapshot{table: merge(nil)}
}

// fileEntry is a normalized persona record from the file, with enough
// presence information to drive per-field merge precedence.
type fileEntry struct {
	persona   Persona
	hasHidden bool
}

// parsePersonaFile accepts both supported JSON shapes: an array of objects
// with an "id" field, or an object keyed by id. Unrecognized shapes yield
// an empty table; invalid JSON is an error so the caller can fall through
// to the next candidate path.
func parsePersonaFile(data []byte) (map[string]fileEntry, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	entries := make(map[string]fileEntry)

	switch v := raw.(type) {
	case []any:
		for _, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			id, _ := obj["id"].(string)
			if id == "" {
				continue
			}
			entries[id] = normalizeEntry(id, obj)
		}

	case map[string]any:
		for id, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			entries[id] = normalizeEntry(id, obj)
		}
	}

	return entries, nil
}

// promptAliases are the accepted prompt field names, in priority order.
var promptAliases = []string{"system_prompt", "system", "prompt", "instructions"}

// normalizeEntry resolves field aliases into the canonical persona shape.
func normalizeEntry(id string, obj map[string]any) fileEntry {
	name := stringField(obj, "name", "displayName")
	description := stringField(obj, "description", "summary")
	avatar := stringField(obj, "avatar")

	var prompt string
	for _, alias := range promptAliases {
		if s, ok := obj[alias].(string); ok && s != "" {
			prompt = s
			break
		}
	}

	hidden, hasHidden := obj["hidden"].(bool)

	return fileEntry{
		persona: Persona{
			ID:           id,
			Name:         name,
			Avatar:       avatar,
			Description:  description,
			Hidden:       hidden,
			SystemPrompt: prompt,
		},
		hasHidden: hasHidden,
	}
}

// stringField returns the first non-empty string among the given keys.
func stringField(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := obj[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// merge unions file entries with the built-in fallback metadata and
// prompts. Per field, the file value wins, then fallback metadata, then
// the built-in prompt; hidden defaults to false when absent everywhere.
func merge(entries map[string]fileEntry) map[string]Persona {
	ids := make(map[string]struct{})
	for id := range entries {
		ids[id] = struct{}{}
	}
	for id := range fallbackMeta {
		ids[id] = struct{}{}
	}
	for id := range fallbackPrompts {
		ids[id] = struct{}{}
	}

	table := make(map[string]Persona, len(ids))
	for id := range ids {
		entry, fromFile := entries[id]
		meta := fallbackMeta[id]

		p := Persona{ID: id}

		p.Name = entry.persona.Name
		if p.Name == "" {
			p.Name = meta.Name
		}
		if p.Name == "" {
			p.Name = id
		}

		p.Avatar = entry.persona.Avatar
		if p.Avatar == "" {
			p.Avatar = meta.Avatar
		}

		p.Description = entry.persona.Description
		if p.Description == "" {
			p.Description = meta.Description
		}

		if fromFile && entry.hasHidden {
			p.Hidden = entry.persona.Hidden
		} else {
			p.Hidden = meta.Hidden
		}

		p.SystemPrompt = entry.persona.SystemPrompt
		if p.SystemPrompt == "" {
			p.SystemPrompt = fallbackPrompts[id]
		}

		table[id] = p
	}

	return table
}
