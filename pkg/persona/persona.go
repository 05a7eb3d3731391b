// Package persona manages the assistant's response personas: named system
// prompt profiles selectable per chat request.
//
// Persona definitions come from a JSON file (the first existing candidate
// path wins) merged over a built-in fallback table. The merged table is
// cached and invalidated by the source file's modification time, behind an
// atomic snapshot swap so concurrent readers never observe a partial merge.
package persona

import "errors"

// ErrNotFound is returned when a persona id is absent from the merged table.
var ErrNotFound = errors.New("persona not found")

// Persona is a single response profile. SystemPrompt is internal: listing
// APIs always return personas with the prompt cleared.
type Persona struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Avatar      string `json:"avatar,omitempty"`
	Description string `json:"description"`
	Hidden      bool   `json:"hidden,omitempty"`

	SystemPrompt string `json:"-"`
}

// withoutPrompt returns a copy safe for public listings.
func (p Persona) withoutPrompt() Persona {
	p.SystemPrompt = ""
	return p
}
