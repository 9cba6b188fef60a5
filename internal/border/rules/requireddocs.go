package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/grestin/checkpoint/internal/border/domain"
	"github.com/grestin/checkpoint/internal/border/record"
)

// Synthetic directive categories expanded to concrete nations at parse time.
const (
	catEntrants   = "Entrants"
	catForeigners = "Foreigners"
	catWorkers    = "Workers"
)

var (
	requireBody  = regexp.MustCompile(`(.+?)\s+(no\s+longer)?\s*require\s+(.+)`)
	citizensBody = regexp.MustCompile(`Citizens of (.+)`)
)

// docSet is a set of required document identifiers.
type docSet map[string]struct{}

func (s docSet) clone() docSet {
	out := make(docSet, len(s))
	for d := range s {
		out[d] = struct{}{}
	}
	return out
}

func (s docSet) union(other docSet) {
	for d := range other {
		s[d] = struct{}{}
	}
}

func (s docSet) subtract(other docSet) {
	for d := range other {
		delete(s, d)
	}
}

// RequiredDocsUpdate carries per-category requirement changes with the
// synthetic categories already expanded to concrete nations.
type RequiredDocsUpdate struct {
	Categories map[string]docSet
	Revoke     bool // "no longer require"
}

func (RequiredDocsUpdate) isUpdate() {}

// RequiredDocuments tracks the documents each category of entrant must
// present, merged across directives. Categories are nation names plus the
// synthetic "Workers"; unknown categories are stored but never match any
// entrant, silently inert.
type RequiredDocuments struct {
	categories map[string]docSet
	roster     domain.Roster
}

func NewRequiredDocuments(roster domain.Roster) *RequiredDocuments {
	return &RequiredDocuments{
		categories: make(map[string]docSet),
		roster:     roster,
	}
}

func (r *RequiredDocuments) Name() string { return "RequiredDocuments" }

func (r *RequiredDocuments) Matches(line string) bool {
	return strings.Contains(line, "require")
}

func (r *RequiredDocuments) Parse(line string) (Update, error) {
	m := requireBody.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("%s: %q: %w", r.Name(), line, ErrUnparseableDirective)
	}

	docs := make(docSet)
	for _, name := range strings.Split(m[3], ", ") {
		docs[domain.DocumentID(name)] = struct{}{}
	}

	categories := []string{m[1]}
	if cm := citizensBody.FindStringSubmatch(m[1]); cm != nil {
		categories = strings.Split(cm[1], ", ")
	}

	u := RequiredDocsUpdate{
		Categories: make(map[string]docSet, len(categories)),
		Revoke:     m[2] != "",
	}
	for _, cat := range categories {
		u.Categories[cat] = docs.clone()
	}
	expandSynthetic(u.Categories, r.roster)
	return u, nil
}

// expandSynthetic replaces the "Entrants" and "Foreigners" categories with
// concrete per-nation entries, merging into any the update already names.
func expandSynthetic(categories map[string]docSet, roster domain.Roster) {
	if docs, ok := categories[catEntrants]; ok {
		delete(categories, catEntrants)
		mergeInto(categories, roster.EntrantNations(), docs)
	}
	if docs, ok := categories[catForeigners]; ok {
		delete(categories, catForeigners)
		mergeInto(categories, roster.ForeignNations(), docs)
	}
}

func mergeInto(categories map[string]docSet, nations []string, docs docSet) {
	for _, nation := range nations {
		if _, ok := categories[nation]; !ok {
			categories[nation] = make(docSet)
		}
		categories[nation].union(docs)
	}
}

func (r *RequiredDocuments) Absorb(u Update) {
	ru, ok := u.(RequiredDocsUpdate)
	if !ok {
		return
	}
	for cat, docs := range ru.Categories {
		if _, ok := r.categories[cat]; !ok {
			r.categories[cat] = make(docSet)
		}
		if ru.Revoke {
			r.categories[cat].subtract(docs)
		} else {
			r.categories[cat].union(docs)
		}
	}
}

func (r *RequiredDocuments) Judge(rec *record.Record) domain.Judgment {
	// Asylum seekers and diplomats bearing a passport skip document
	// requirements entirely.
	if rec.Has(domain.DocAsylumGrant) && rec.Has(domain.DocPassport) {
		return domain.Allow()
	}
	if rec.Has(domain.DocDiplomaticAuth) && rec.Has(domain.DocPassport) {
		return domain.Allow()
	}

	nation, _ := rec.Nation()
	required := r.categories[nation].clone()
	if rec.IsWorker() {
		required.union(r.categories[catWorkers])
	}

	for _, doc := range orderRequirements(required) {
		if !rec.HasDocument(doc) {
			return domain.Denial("missing required " + domain.DisplayDocumentName(doc))
		}
	}
	return domain.Allow()
}

// orderRequirements flattens a requirement set into a deterministic check
// order. Vaccination requirements sort after all plain documents, preceded by
// the certificate of vaccination itself, so a missing plain document is
// always reported before a missing vaccination.
func orderRequirements(required docSet) []string {
	var plain, deferred []string
	for doc := range required {
		if strings.HasSuffix(doc, domain.VaccinationSuffix) {
			if doc != domain.DocVaccinationCert {
				deferred = append(deferred, doc)
			}
			continue
		}
		plain = append(plain, doc)
	}
	sort.Strings(plain)
	if deferred == nil && !containsCert(required) {
		return plain
	}
	sort.Strings(deferred)
	out := append(plain, domain.DocVaccinationCert)
	return append(out, deferred...)
}

func containsCert(required docSet) bool {
	_, ok := required[domain.DocVaccinationCert]
	return ok
}
