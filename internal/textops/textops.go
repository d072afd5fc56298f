// Package textops реализует операции анализа текста, доступные
// встроенным и пользовательским эндпоинтам.
package textops

import (
	"sort"
	"strings"
	"unicode"
)

type Sentiment struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

func TextLength(text string) int {
	return len(text)
}

func WordCount(text string) int {
	return len(strings.Fields(text))
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

// AnalyzeSentiment - лексиконная оценка: полярность в [-1,1],
// субъективность в [0,1], усреднённые по найденным окрашенным словам.
// Отрицание в предыдущем слове инвертирует полярность.
func AnalyzeSentiment(text string) Sentiment {
	words := tokenize(text)
	var (
		polaritySum     float64
		subjectivitySum float64
		hits            int
	)
	for i, w := range words {
		entry, ok := lexicon[w]
		if !ok {
			continue
		}
		p := entry.polarity
		if i > 0 && negations[words[i-1]] {
			p = -p
		}
		polaritySum += p
		subjectivitySum += entry.subjectivity
		hits++
	}
	if hits == 0 {
		return Sentiment{}
	}
	return Sentiment{
		Polarity:     polaritySum / float64(hits),
		Subjectivity: subjectivitySum / float64(hits),
	}
}

type phraseScore struct {
	phrase string
	score  float64
}

// ExtractKeywords ранжирует фразы-кандидаты по схеме RAKE:
// текст режется на фразы по стоп-словам и пунктуации, слово получает
// вес degree/frequency, фраза - сумму весов своих слов.
func ExtractKeywords(text string) []string {
	phrases := candidatePhrases(text)
	if len(phrases) == 0 {
		return []string{}
	}

	freq := map[string]int{}
	degree := map[string]int{}
	for _, phrase := range phrases {
		for _, w := range phrase {
			freq[w]++
			degree[w] += len(phrase) - 1
		}
	}

	scores := make([]phraseScore, 0, len(phrases))
	seen := map[string]bool{}
	for _, phrase := range phrases {
		joined := strings.Join(phrase, " ")
		if seen[joined] {
			continue
		}
		seen[joined] = true
		var score float64
		for _, w := range phrase {
			score += float64(degree[w]+freq[w]) / float64(freq[w])
		}
		scores = append(scores, phraseScore{phrase: joined, score: score})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	res := make([]string, len(scores))
	for i, s := range scores {
		res[i] = s.phrase
	}
	return res
}

func candidatePhrases(text string) [][]string {
	var (
		phrases [][]string
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			phrases = append(phrases, current)
			current = nil
		}
	}
	// пунктуация рвёт фразу так же, как стоп-слово
	fragments := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(`.,;:!?()[]{}"`, r)
	})
	for _, fragment := range fragments {
		for _, w := range tokenize(fragment) {
			if stopwords[w] {
				flush()
				continue
			}
			current = append(current, w)
		}
		flush()
	}
	return phrases
}
