// Package matcher scores items against a query for fuzzy ranking.
//
// Matching is byte-wise with ASCII case folding: the query matches an item
// when its bytes occur in the item in order, case-insensitively for A-Z.
// The score rewards matches on word and path boundaries and contiguous
// runs, and penalizes gaps. Higher is better; ScoreMin means no match.
//
// Scoring is deterministic: a given (query, item) pair always produces the
// same bits, regardless of which worker or pass computed it.
package matcher
