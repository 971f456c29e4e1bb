package etl

import (
	"unicode"

	kdb "github.com/vetstoria/k9facts/pkg/db"
	"github.com/vetstoria/k9facts/pkg/utils/slices"
)

// Categorize cleans each raw fact text and labels it by
// the presence of numbers in the cleaned text.
func Categorize(rawFacts []string) []kdb.NewFact {
	return slices.Map(rawFacts, func(raw string) kdb.NewFact {
		fact := Clean(raw)

		category := kdb.NumberExcluded
		if containsDigit(fact) {
			category = kdb.NumberIncluded
		}

		return kdb.NewFact{Fact: fact, Category: category}
	})
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
