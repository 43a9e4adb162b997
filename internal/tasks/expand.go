package tasks

import (
	"strings"

	"github.com/desertthunder/moodlists/internal/models"
)

// TimeOfDayTerms are the mood terms that exclude one another during filtering.
var TimeOfDayTerms = []string{"morning", "afternoon", "evening", "night"}

// ExpandQuery returns the four search strings used for a query, in search order.
func ExpandQuery(query string) []string {
	return []string{
		query + " playlist",
		"*" + query + "*",
		query + " music",
		query + " vibes",
	}
}

// ExcludedTerms returns the time-of-day terms other than query.
//
// The comparison is a case-insensitive exact match on the whole query, so
// "morning coffee" and "morning " exclude all four. Callers trim user input.
func ExcludedTerms(query string) []string {
	terms := make([]string, 0, len(TimeOfDayTerms))
	for _, term := range TimeOfDayTerms {
		if strings.EqualFold(query, term) {
			continue
		}
		terms = append(terms, term)
	}
	return terms
}

// NewSearchPlan bundles the variants and excluded terms for query.
func NewSearchPlan(query string) models.SearchPlan {
	return models.SearchPlan{
		Query:         query,
		Variants:      ExpandQuery(query),
		ExcludedTerms: ExcludedTerms(query),
	}
}
