package textops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextLengthAndWordCount(t *testing.T) {
	assert.Equal(t, 0, TextLength(""))
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 11, TextLength("hello world"))
	assert.Equal(t, 2, WordCount("hello world"))
	assert.Equal(t, 3, WordCount("  one   two\tthree\n"))
}

func TestAnalyzeSentiment(t *testing.T) {
	t.Run("positive", func(t *testing.T) {
		s := AnalyzeSentiment("This platform is great, I love it")
		assert.Greater(t, s.Polarity, 0.0)
		assert.Greater(t, s.Subjectivity, 0.0)
	})

	t.Run("negative", func(t *testing.T) {
		s := AnalyzeSentiment("terrible service, I hate the slow responses")
		assert.Less(t, s.Polarity, 0.0)
	})

	t.Run("negation flips polarity", func(t *testing.T) {
		plain := AnalyzeSentiment("the release is good")
		negated := AnalyzeSentiment("the release is not good")
		assert.Greater(t, plain.Polarity, 0.0)
		assert.Less(t, negated.Polarity, 0.0)
	})

	t.Run("neutral text scores zero", func(t *testing.T) {
		s := AnalyzeSentiment("the cat sat on the mat")
		assert.Zero(t, s.Polarity)
		assert.Zero(t, s.Subjectivity)
	})

	t.Run("bounds", func(t *testing.T) {
		for _, text := range []string{
			"awesome excellent perfect wonderful",
			"terrible awful horrible worst",
		} {
			s := AnalyzeSentiment(text)
			assert.GreaterOrEqual(t, s.Polarity, -1.0)
			assert.LessOrEqual(t, s.Polarity, 1.0)
			assert.GreaterOrEqual(t, s.Subjectivity, 0.0)
			assert.LessOrEqual(t, s.Subjectivity, 1.0)
		}
	})
}

func TestExtractKeywords(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		assert.Empty(t, ExtractKeywords(""))
	})

	t.Run("stopwords are dropped", func(t *testing.T) {
		keywords := ExtractKeywords("the quick brown fox jumps over the lazy dog")
		assert.NotEmpty(t, keywords)
		for _, kw := range keywords {
			assert.NotContains(t, []string{"the", "over"}, kw)
		}
	})

	t.Run("longer phrases rank higher", func(t *testing.T) {
		keywords := ExtractKeywords("machine learning systems are popular and code is everywhere")
		assert.NotEmpty(t, keywords)
		assert.Equal(t, "machine learning systems", keywords[0])
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		keywords := ExtractKeywords("apple banana, apple banana, apple banana")
		assert.Equal(t, []string{"apple banana"}, keywords)
	})
}
