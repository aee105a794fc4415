package tokens

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimate_Empty(t *testing.T) {
	assert.Equal(t, 0, Estimate(""))
}

func TestEstimate_Deterministic(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog."
	first := Estimate(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Estimate(text))
	}
}

func TestEstimate_GrowsWithLength(t *testing.T) {
	short := Estimate("hello world")
	long := Estimate(strings.Repeat("hello world ", 100))
	assert.Greater(t, long, short)
}

func TestEstimate_NonZeroForText(t *testing.T) {
	assert.Greater(t, Estimate("a"), 0)
	assert.Greater(t, Estimate("some reasonable sentence"), 0)
}

func TestEstimateApprox(t *testing.T) {
	assert.Equal(t, 0, estimateApprox(""))
	assert.Equal(t, 1, estimateApprox("abc"))
	assert.Equal(t, 1, estimateApprox("abcd"))
	assert.Equal(t, 2, estimateApprox("abcde"))
	assert.Equal(t, 25, estimateApprox(strings.Repeat("x", 100)))
}
