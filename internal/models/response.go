package models

// QueryResponse is the assembled answer for a single question.
type QueryResponse struct {
	Answer string `json:"answer"`

	// Sources lists topic/category labels drawn from the retrieved chunks,
	// one entry per chunk, in retrieval order. Duplicates are allowed.
	Sources []string `json:"sources"`

	// RelatedQuestions are follow-up suggestions derived purely from intent.
	RelatedQuestions []string `json:"relatedQuestions"`

	Intent Intent `json:"intent"`

	// CTA is an optional intent-derived suffix appended to the answer.
	CTA string `json:"cta,omitempty"`

	// Cached reports whether this response was served from the cache.
	Cached bool `json:"cached"`
}

// Clone returns a deep copy so cached entries are never aliased by callers.
func (r *QueryResponse) Clone() *QueryResponse {
	if r == nil {
		return nil
	}
	out := *r
	out.Sources = append([]string(nil), r.Sources...)
	out.RelatedQuestions = append([]string(nil), r.RelatedQuestions...)
	return &out
}
