package rules

import (
	"fmt"

	"github.com/grestin/checkpoint/internal/border/domain"
	"github.com/grestin/checkpoint/internal/border/record"
)

// mismatchFields lists the identity fields that must agree wherever they
// co-occur, in the fixed order mismatches are reported.
var mismatchFields = []struct {
	key     string
	display string
}{
	{domain.FieldDOB, "date of birth"},
	{domain.FieldNation, "nationality"},
	{domain.FieldID, "ID number"},
	{domain.FieldName, "name"},
}

// ValidDocuments checks cross-document identity consistency, expiration
// dates, and diplomatic-authorization validity. It is stateless and consumes
// no directives.
type ValidDocuments struct {
	home   string
	cutoff string
}

func NewValidDocuments(roster domain.Roster) *ValidDocuments {
	return &ValidDocuments{home: roster.Home, cutoff: roster.ExpirationCutoff}
}

func (r *ValidDocuments) Name() string { return "ValidDocuments" }

func (r *ValidDocuments) Matches(string) bool { return false }

func (r *ValidDocuments) Parse(line string) (Update, error) {
	return nil, fmt.Errorf("%s: %q: %w", r.Name(), line, ErrUnparseableDirective)
}

func (r *ValidDocuments) Absorb(Update) {}

func (r *ValidDocuments) Judge(rec *record.Record) domain.Judgment {
	if field := r.findMismatch(rec); field != "" {
		return domain.Detainment(field + " mismatch")
	}
	if doc := r.findExpired(rec); doc != "" {
		return domain.Denial(domain.DisplayDocumentName(doc) + " expired")
	}
	if rec.Has(domain.DocDiplomaticAuth) {
		if _, ok := rec.DiplomaticAccess()[r.home]; !ok {
			return domain.Denial("invalid diplomatic authorization")
		}
	}
	return domain.Allow()
}

// findMismatch returns the display name of the first identity field carrying
// conflicting values across documents, or "" when all agree.
func (r *ValidDocuments) findMismatch(rec *record.Record) string {
	for _, f := range mismatchFields {
		seen, have := "", false
		for _, kind := range rec.Kinds() {
			fields, _ := rec.Fields(kind)
			value, ok := fields[f.key]
			if !ok {
				continue
			}
			if have && value != seen {
				return f.display
			}
			seen, have = value, true
		}
	}
	return ""
}

// findExpired returns the first document whose EXP field is on or before the
// cutoff, or "" when none are expired. The comparison is intentionally
// lexical: the date format is fixed-width and zero-padded.
func (r *ValidDocuments) findExpired(rec *record.Record) string {
	for _, kind := range rec.Kinds() {
		fields, _ := rec.Fields(kind)
		if exp, ok := fields[domain.FieldExpiration]; ok && exp <= r.cutoff {
			return kind
		}
	}
	return ""
}
