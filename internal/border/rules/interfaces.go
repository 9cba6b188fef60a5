// Package rules implements the four admission rule kinds and the ordered
// registry that parses bulletin directives into them and evaluates entrants
// against them.
package rules

import (
	"errors"

	"github.com/grestin/checkpoint/internal/border/domain"
	"github.com/grestin/checkpoint/internal/border/record"
)

// ErrUnparseableDirective reports a bulletin line that matched a rule's
// recognizer but whose body could not be extracted.
var ErrUnparseableDirective = errors.New("directive matched but could not be parsed")

// Update is a structured rule change produced by parsing one directive.
// The variant set is closed: each rule kind parses and absorbs exactly one
// update type.
type Update interface {
	isUpdate()
}

// Rule is one admission rule kind. A single instance per kind lives in the
// Registry for the life of the process, accumulating directive updates.
//
// Matches is the coarse recognizer tried against each bulletin line; Parse
// performs the detailed extraction and fails with ErrUnparseableDirective
// (wrapped) on a malformed body; Absorb folds a parsed update into the held
// state; Judge evaluates the rule against an entrant's papers.
type Rule interface {
	Name() string
	Matches(line string) bool
	Parse(line string) (Update, error)
	Absorb(u Update)
	Judge(rec *record.Record) domain.Judgment
}
