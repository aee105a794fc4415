package models

// Category classifies what a chunk of the source document is about.
// Categories are derived from content by pattern matching, not authoritative.
type Category string

const (
	CategoryPricing      Category = "pricing"
	CategoryAvailability Category = "availability"
	CategoryProcess      Category = "process"
	CategoryProgramInfo  Category = "program-info"
	CategoryFAQ          Category = "faq"
	CategoryGeneral      Category = "general"
)

// Program is a domain-specific tag extracted from chunk content.
// Empty when no program pattern is detected.
type Program string

const (
	ProgramTRT Program = "TRT"
	ProgramHRT Program = "HRT"
	ProgramGLP Program = "GLP"
)

// ChunkMetadata holds derived metadata for a document chunk.
type ChunkMetadata struct {
	Category Category `json:"category"`
	Program  Program  `json:"program,omitempty"`

	// Topic is a short human-readable label, derived from the first
	// sentence or a truncated prefix of the chunk.
	Topic string `json:"topic"`

	// IsRelevant marks whether the chunk is appropriate to surface to an
	// end user. Internal/operational content is excluded from retrieval.
	IsRelevant bool `json:"is_relevant"`

	// Position within the source document. Chunks are produced in
	// document order with contiguous indices starting at 0.
	ChunkIndex  int `json:"chunk_index"`
	StartOffset int `json:"start_offset"`
	EndOffset   int `json:"end_offset"`
}

// DocumentChunk is a contiguous span of the source document and the unit
// of retrieval. Chunks are created once per processing run and are
// immutable thereafter.
type DocumentChunk struct {
	ID         string        `json:"id"`
	Content    string        `json:"content"`
	Metadata   ChunkMetadata `json:"metadata"`
	TokenCount int           `json:"token_count"`
}
