package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/draphael123/notebooklm-marketing/internal/models"
)

func TestClassifyCategory(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected models.Category
	}{
		{"dollar amount", "Plans begin at $99 per month", models.CategoryPricing},
		{"cost keyword", "How much does membership COST each year", models.CategoryPricing},
		{"availability", "We operate in 42 states with Labcorp coverage", models.CategoryAvailability},
		{"process", "Your first step is the online assessment", models.CategoryProcess},
		{"program info", "Each treatment includes quarterly provider visits", models.CategoryProgramInfo},
		{"faq", "A common thing people wonder about is dosage", models.CategoryFAQ},
		{"general fallback", "Unrelated body copy about nothing in particular", models.CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyCategory(tt.content))
		})
	}
}

func TestClassifyCategory_PricingWinsTies(t *testing.T) {
	// Matches both pricing and availability patterns; priority order decides.
	content := "Pricing varies by state and location"
	assert.Equal(t, models.CategoryPricing, ClassifyCategory(content))
}

func TestExtractProgram(t *testing.T) {
	assert.Equal(t, models.ProgramTRT, ExtractProgram("Our TRT protocol uses weekly injections"))
	assert.Equal(t, models.ProgramTRT, ExtractProgram("testosterone replacement options"))
	assert.Equal(t, models.ProgramHRT, ExtractProgram("HRT for women over forty"))
	assert.Equal(t, models.ProgramGLP, ExtractProgram("semaglutide and other GLP-1 agonists"))
	assert.Equal(t, models.Program(""), ExtractProgram("no program mentioned here"))
}

func TestExtractProgram_WordBoundary(t *testing.T) {
	// "trt" embedded inside a larger word must not match.
	assert.Equal(t, models.Program(""), ExtractProgram("the contrtaption is unrelated"))
}

func TestExtractTopic(t *testing.T) {
	t.Run("short first sentence", func(t *testing.T) {
		got := ExtractTopic("Membership pricing explained. More details follow below.")
		assert.Equal(t, "Membership pricing explained", got)
	})

	t.Run("long first sentence falls back to prefix", func(t *testing.T) {
		long := strings.Repeat("word ", 30) + ". Second sentence."
		got := ExtractTopic(long)
		assert.True(t, strings.HasSuffix(got, "..."))
		assert.LessOrEqual(t, len(got), 53)
	})
}

func TestIsRelevant(t *testing.T) {
	t.Run("inclusion keyword", func(t *testing.T) {
		assert.True(t, IsRelevant("The subscription covers everything"))
	})

	t.Run("no keywords", func(t *testing.T) {
		assert.False(t, IsRelevant("Miscellaneous narrative text"))
	})

	t.Run("exclusion overrides inclusion", func(t *testing.T) {
		assert.False(t, IsRelevant("Internal process for pricing updates"))
	})

	t.Run("pharmacy workflow excluded", func(t *testing.T) {
		assert.False(t, IsRelevant("Pharmacy workflow: route the order to the assigned team"))
	})
}
