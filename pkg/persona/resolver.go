package persona

import (
	"regexp"
	"sort"

	"go.uber.org/zap"
)

// secretRule is one compiled secret phrase and the persona it unlocks.
type secretRule struct {
	pattern *regexp.Regexp
	target  string
}

// Resolver picks the persona for a chat turn. Secret phrases in the message
// text unlock their target persona, hidden or not; otherwise an existing
// preferred id is kept, and the registry default covers the rest.
type Resolver struct {
	registry *Registry
	rules    []secretRule
	logger   *zap.Logger
}

// NewResolver compiles the configured secret phrases, keyed by regex
// pattern with the target persona id as value. Patterns are matched
// case-insensitively. Patterns that fail to compile are skipped with a
// warning.
func NewResolver(registry *Registry, phrases map[string]string, logger *zap.Logger) *Resolver {
	patterns := make([]string, 0, len(phrases))
	for p := range phrases {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)

	rules := make([]secretRule, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			logger.Warn("skipping invalid secret phrase pattern",
				zap.String("pattern", p),
				zap.Error(err),
			)
			continue
		}
		rules = append(rules, secretRule{pattern: re, target: phrases[p]})
	}

	return &Resolver{registry: registry, rules: rules, logger: logger}
}

// Resolve returns the persona id to use for the given message. A secret
// phrase match wins when its target exists in the merged table; then a
// non-empty preferred id that exists; then the registry default.
func (r *Resolver) Resolve(preferred, text string) string {
	for _, rule := range r.rules {
		if rule.pattern.MatchString(text) && r.registry.Has(rule.target) {
			r.logger.Debug("secret phrase matched",
				zap.String("persona", rule.target),
			)
			return rule.target
		}
	}

	if preferred != "" && r.registry.Has(preferred) {
		return preferred
	}

	return r.registry.DefaultID()
}
