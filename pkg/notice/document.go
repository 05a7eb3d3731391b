// Package notice holds the pre-embedded knowledge base: club notices, about
// pages, and introduction material produced by the offline seed step.
//
// Documents and their embedding vectors form a parallel-array structure: the
// vector at row i belongs to the document at index i. The store is loaded
// once at process start from a snapshot blob and is read-only afterward;
// rebuilding requires re-running the seed step and restarting.
package notice

// Source tags the provenance of a document.
const (
	SourceNotice       = "notice"
	SourceAbout        = "about"
	SourceIntroduction = "introduction"
)

// Document is a single retrievable passage. Content is the chunked passage
// text that was embedded; Meta carries free-form fields from the source
// record, which may include an event start time under one of several keys.
type Document struct {
	Title   string
	Content string
	Source  string
	Slug    string
	Meta    map[string]any
}
