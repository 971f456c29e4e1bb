package etl

import (
	kdb "github.com/vetstoria/k9facts/pkg/db"
)

// Facts whose cosine similarity is this or higher are taken as
// versions of the same fact.
const DefaultSimilarityThreshold = 0.4

// BuildSyncPlan matches an incoming batch of facts against the facts
// already stored, and decides what to update, insert and soft-delete.
//
// For each incoming fact, the first existing fact (in id order) whose
// similarity reaches threshold is rewritten with the incoming text and
// category, bumping its version. When the match is exact (same text,
// same category) the existing fact is left as it is. Each existing
// fact is consumed by at most one incoming fact. Incoming facts which
// match nothing are inserted as new.
//
// Existing facts which are neither consumed nor textually present in
// the incoming batch are soft-deleted: the source dropped them.
//
// # Args
//
// - existing: live (not soft-deleted) stored facts, in id order.
//
// - incoming: the categorized batch pulled from the source.
//
// - threshold: similarity threshold. Pass DefaultSimilarityThreshold
// unless configured otherwise.
func BuildSyncPlan(existing []kdb.Fact, incoming []kdb.NewFact, threshold float64) kdb.SyncPlan {
	plan := kdb.SyncPlan{}

	consumed := map[int]bool{}
	incomingTexts := map[string]bool{}
	for _, in := range incoming {
		incomingTexts[in.Fact] = true
	}

	for _, in := range incoming {
		matched := false
		for _, ex := range existing {
			if consumed[ex.Id] {
				continue
			}
			if CosineSimilarity(in.Fact, ex.Fact) < threshold {
				continue
			}
			consumed[ex.Id] = true
			matched = true
			if in.Fact == ex.Fact && in.Category == ex.Category {
				break // nothing to rewrite
			}
			plan.Updates = append(plan.Updates, kdb.FactUpdate{
				Id:       ex.Id,
				Fact:     in.Fact,
				Category: in.Category,
				Version:  ex.Version + 1,
			})
			break
		}
		if !matched {
			plan.Inserts = append(plan.Inserts, in)
		}
	}

	for _, ex := range existing {
		if consumed[ex.Id] || incomingTexts[ex.Fact] {
			continue
		}
		plan.SoftDeletes = append(plan.SoftDeletes, ex.Id)
	}

	return plan
}
