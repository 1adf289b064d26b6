package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords_DropsStopWordsAndShortTokens(t *testing.T) {
	keywords := ExtractKeywords("Where is the payment flow?")
	assert.Contains(t, keywords, "payment")
	assert.Contains(t, keywords, "flow")
	assert.NotContains(t, keywords, "where")
	assert.NotContains(t, keywords, "the")
	assert.NotContains(t, keywords, "is")
}

func TestExtractKeywords_UnionsDomainTerms(t *testing.T) {
	keywords := ExtractKeywords("authentication flow")
	// "auth" only occurs as a substring of "authentication" but is a
	// domain term, so it joins the keyword set.
	assert.Contains(t, keywords, "authentication")
	assert.Contains(t, keywords, "auth")
}

func TestExtractKeywords_Deduplicates(t *testing.T) {
	keywords := ExtractKeywords("payment payment payment")
	count := 0
	for _, keyword := range keywords {
		if keyword == "payment" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestExtractKeywords_EmptyQuery(t *testing.T) {
	assert.Empty(t, ExtractKeywords(""))
	assert.Empty(t, ExtractKeywords("  a an "))
}
