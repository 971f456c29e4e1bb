package etl

import (
	"math"
	"regexp"
)

var word = regexp.MustCompile(`\w+`)

// Tokenize splits text into words.
func Tokenize(text string) []string {
	return word.FindAllString(text, -1)
}

func wordCount(text string) map[string]int {
	counter := map[string]int{}
	for _, w := range Tokenize(text) {
		counter[w] += 1
	}
	return counter
}

// CosineSimilarity computes the cosine similarity between two texts,
// over their word-count vectors.
//
// Returns 0.0 when either text has no words.
func CosineSimilarity(text1, text2 string) float64 {
	counter1 := wordCount(text1)
	counter2 := wordCount(text2)

	intersection := 0
	for w, c1 := range counter1 {
		c2 := counter2[w]
		if c2 < c1 {
			intersection += c2
		} else {
			intersection += c1
		}
	}

	var norm1, norm2 float64
	for _, c := range counter1 {
		norm1 += float64(c * c)
	}
	for _, c := range counter2 {
		norm2 += float64(c * c)
	}

	if norm1 == 0 || norm2 == 0 {
		return 0.0
	}

	return float64(intersection) / (math.Sqrt(norm1) * math.Sqrt(norm2))
}

// JaccardSimilarity computes the Jaccard similarity between two texts,
// over their word sets.
//
// Both texts empty is 1.0, and exactly one of them empty is 0.0.
func JaccardSimilarity(text1, text2 string) float64 {
	set1 := map[string]struct{}{}
	for _, w := range Tokenize(text1) {
		set1[w] = struct{}{}
	}
	set2 := map[string]struct{}{}
	for _, w := range Tokenize(text2) {
		set2[w] = struct{}{}
	}

	if len(set1) == 0 && len(set2) == 0 {
		return 1.0
	}
	if len(set1) == 0 || len(set2) == 0 {
		return 0.0
	}

	intersection := 0
	for w := range set1 {
		if _, ok := set2[w]; ok {
			intersection += 1
		}
	}
	union := len(set1) + len(set2) - intersection

	return float64(intersection) / float64(union)
}
