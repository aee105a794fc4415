package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draphael123/notebooklm-marketing/internal/services/tokens"
)

func TestChunk_Empty(t *testing.T) {
	s := NewService(1000, 200, nil)
	assert.Empty(t, s.Chunk(""))
	assert.Empty(t, s.Chunk("\n\n  \n\n"))
}

func TestChunk_SingleChunkWhenUnderBudget(t *testing.T) {
	s := NewService(1000, 200, nil)
	text := "Pricing: Plan A costs $10 per month.\n\nAvailability: we operate nationwide."

	chunks := s.Chunk(text)
	require.Len(t, chunks, 1)

	c := chunks[0]
	assert.Equal(t, "chunk-0", c.ID)
	assert.Equal(t, 0, c.Metadata.ChunkIndex)
	assert.Contains(t, c.Content, "Plan A costs $10")
	assert.Contains(t, c.Content, "nationwide")
	assert.Equal(t, tokens.Estimate(c.Content), c.TokenCount)
}

func TestChunk_SplitsOnTokenBudget(t *testing.T) {
	var paragraphs []string
	for i := 0; i < 10; i++ {
		paragraphs = append(paragraphs, strings.Repeat("The service costs money and the plan has a fee. ", 10))
	}
	text := strings.Join(paragraphs, "\n\n")

	s := NewService(200, 100, nil)
	chunks := s.Chunk(text)
	require.Greater(t, len(chunks), 1)

	for i, c := range chunks {
		assert.Equal(t, i, c.Metadata.ChunkIndex)
		assert.Equal(t, tokens.Estimate(c.Content), c.TokenCount)
		assert.NotEmpty(t, c.Metadata.Topic)
	}
}

func TestChunk_OverlapInvariant(t *testing.T) {
	var paragraphs []string
	for i := 0; i < 8; i++ {
		paragraphs = append(paragraphs, strings.Repeat("lab work and provider visits come included with all plans ", 8))
	}
	text := strings.Join(paragraphs, "\n\n")

	s := NewService(150, 120, nil)
	chunks := s.Chunk(text)
	require.Greater(t, len(chunks), 1)

	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1].Content
		cur := chunks[i].Content

		sep := strings.Index(cur, "\n\n")
		require.Greater(t, sep, 0, "chunk %d should open with an overlap prefix", i)
		prefix := cur[:sep]

		assert.LessOrEqual(t, len(prefix), 120)
		assert.True(t, strings.HasSuffix(prev, prefix),
			"chunk %d prefix must be a suffix of chunk %d", i, i-1)
	}
}

func TestChunk_OversizedParagraphEmittedWhole(t *testing.T) {
	big := strings.Repeat("This single paragraph exceeds the budget by itself. ", 50)
	text := "Short intro paragraph.\n\n" + big + "\n\nShort closing paragraph."

	s := NewService(50, 40, nil)
	chunks := s.Chunk(text)
	require.GreaterOrEqual(t, len(chunks), 2)

	found := false
	for _, c := range chunks {
		if strings.Count(c.Content, "exceeds the budget") >= 50 {
			found = true
		}
	}
	assert.True(t, found, "oversized paragraph must survive intact in one chunk")
}

func TestChunk_ReconstructsParagraphSequence(t *testing.T) {
	paragraphs := []string{
		"Alpha paragraph with enough words to count for something.",
		"Bravo paragraph also carrying a reasonable number of words.",
		"Charlie paragraph rounding out the document body text here.",
	}
	text := strings.Join(paragraphs, "\n\n")

	s := NewService(15, 0, nil)
	chunks := s.Chunk(text)
	require.Greater(t, len(chunks), 1)

	var rebuilt []string
	for _, c := range chunks {
		for _, p := range strings.Split(c.Content, "\n\n") {
			p = strings.TrimSpace(p)
			if p != "" && (len(rebuilt) == 0 || rebuilt[len(rebuilt)-1] != p) {
				rebuilt = append(rebuilt, p)
			}
		}
	}
	assert.Equal(t, paragraphs, rebuilt)
}

func TestOverlapSuffix(t *testing.T) {
	t.Run("short text returned whole", func(t *testing.T) {
		assert.Equal(t, "tiny", overlapSuffix("tiny", 100))
	})

	t.Run("trims to sentence boundary past half", func(t *testing.T) {
		text := strings.Repeat("x", 200) + ". Tail lives here"
		got := overlapSuffix(text, 40)
		assert.Equal(t, "Tail lives here", got)
	})

	t.Run("keeps raw tail when boundary too early", func(t *testing.T) {
		text := "Start. " + strings.Repeat("y", 100)
		got := overlapSuffix(text, 40)
		assert.Equal(t, strings.Repeat("y", 40), got)
	})
}
