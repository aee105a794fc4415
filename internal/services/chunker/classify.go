package chunker

import (
	"regexp"
	"strings"

	"github.com/draphael123/notebooklm-marketing/internal/models"
)

// Category patterns are tested in priority order; the first match wins.
var categoryPatterns = []struct {
	category models.Category
	pattern  *regexp.Regexp
}{
	{models.CategoryPricing, regexp.MustCompile(`\$\d+|price|cost|pricing|plan|subscription|fee`)},
	{models.CategoryAvailability, regexp.MustCompile(`state|location|available|operate|coverage|lab|labcorp|quest`)},
	{models.CategoryProcess, regexp.MustCompile(`start|begin|process|assessment|sign up|register|timeline|step`)},
	{models.CategoryProgramInfo, regexp.MustCompile(`program|medication|treatment|therapy|visit|included|include`)},
	{models.CategoryFAQ, regexp.MustCompile(`question|faq|common|ask|wonder`)},
}

var programPatterns = []struct {
	program models.Program
	pattern *regexp.Regexp
}{
	{models.ProgramTRT, regexp.MustCompile(`\btrt\b|testosterone replacement`)},
	{models.ProgramHRT, regexp.MustCompile(`\bhrt\b|hormone replacement`)},
	{models.ProgramGLP, regexp.MustCompile(`\bglp|glp-1|semaglutide|ozempic|wegovy`)},
}

// Exclusion keywords mark internal/operational content. Any match overrides
// the inclusion list.
var relevanceExclude = []string{
	"internal",
	"pharmacy workflow",
	"prescription management",
	"provider assignment",
	"compliance procedure",
	"team routing",
	"internal process",
}

var relevanceInclude = []string{
	"price",
	"cost",
	"pricing",
	"state",
	"available",
	"start",
	"begin",
	"assessment",
	"program",
	"included",
	"subscription",
	"insurance",
	"hsa",
	"fsa",
}

var sentenceEnd = regexp.MustCompile(`[.!?]\s+`)

// ClassifyCategory returns the first category whose pattern matches the
// lowercased content. Unmatched content is general.
func ClassifyCategory(content string) models.Category {
	lower := strings.ToLower(content)
	for _, cp := range categoryPatterns {
		if cp.pattern.MatchString(lower) {
			return cp.category
		}
	}
	return models.CategoryGeneral
}

// ExtractProgram returns the program tag detected in content, or empty when
// no program pattern matches.
func ExtractProgram(content string) models.Program {
	lower := strings.ToLower(content)
	for _, pp := range programPatterns {
		if pp.pattern.MatchString(lower) {
			return pp.program
		}
	}
	return ""
}

// ExtractTopic derives a short label from content: the first sentence when it
// is under 100 characters, otherwise a truncated prefix.
func ExtractTopic(content string) string {
	sentences := sentenceEnd.Split(content, 2)
	if len(sentences) > 0 {
		first := strings.TrimSpace(sentences[0])
		if len(first) < 100 {
			return first
		}
	}

	prefix := content
	if len(prefix) > 50 {
		prefix = prefix[:50]
	}
	return strings.TrimSpace(prefix) + "..."
}

// IsRelevant reports whether content is appropriate to surface to an end
// user. Exclusion keywords take precedence over inclusion keywords.
func IsRelevant(content string) bool {
	lower := strings.ToLower(content)

	for _, keyword := range relevanceExclude {
		if strings.Contains(lower, keyword) {
			return false
		}
	}

	for _, keyword := range relevanceInclude {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	return false
}
