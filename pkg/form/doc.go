// Package form owns the state of one survey fill-in: the loaded Survey, its
// compiled validation Schema, the pagination controller, and the answers
// collected so far. Session is mutated only through SetAnswer, Next,
// Previous, and Submit. Submission is all-or-nothing: either every rule passes
// and ordered AnswerRecords are produced, or the per-field Issues are
// returned and nothing changes.
package form
