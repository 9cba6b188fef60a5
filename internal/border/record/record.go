// Package record normalizes a raw entrant submission into an immutable
// document record with precomputed derived queries.
package record

import (
	"bufio"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/grestin/checkpoint/internal/border/domain"
)

// ErrMalformedLine reports a document line without the "key: value" separator.
var ErrMalformedLine = errors.New("document line missing 'key: value' separator")

// fieldSeparator splits a document line into key and value.
const fieldSeparator = ": "

// Submission is the raw entrant input: document kind to multi-line text block.
type Submission map[string]string

// Fields is one parsed document: field key to value.
type Fields map[string]string

// Record is a parsed entrant submission. It is immutable after Parse; all
// derived queries are computed once at construction, so repeated reads are
// cheap and deterministic.
type Record struct {
	docs  map[string]Fields
	kinds []string // document kinds in sorted order, fixing iteration order

	name       string
	hasName    bool
	nation     string
	hasNation  bool
	worker     bool
	vaccines   map[string]struct{}
	vaccinated bool // a certificate of vaccination is present
	access     map[string]struct{}
}

// Parse builds a Record from a raw submission. home is the home nation used
// to default the nationality of entrants presenting an ID card without a
// NATION field. Parse fails with ErrMalformedLine (wrapped) on any document
// line lacking the separator.
func Parse(sub Submission, home string) (*Record, error) {
	r := &Record{
		docs:   make(map[string]Fields, len(sub)),
		kinds:  make([]string, 0, len(sub)),
		access: make(map[string]struct{}),
	}
	for kind, text := range sub {
		fields, err := parseFields(text)
		if err != nil {
			return nil, fmt.Errorf("document %q: %w", kind, err)
		}
		r.docs[kind] = fields
		r.kinds = append(r.kinds, kind)
	}
	sort.Strings(r.kinds)
	r.derive(home)
	return r, nil
}

// parseFields decodes one "key: value" line-oriented text block.
func parseFields(text string) (Fields, error) {
	fields := make(Fields)
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := scanner.Text()
		key, value, found := strings.Cut(line, fieldSeparator)
		if !found {
			return nil, fmt.Errorf("%q: %w", line, ErrMalformedLine)
		}
		fields[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return fields, nil
}

// derive computes all cached queries in one pass over the sorted kinds.
func (r *Record) derive(home string) {
	r.name, r.hasName = r.lookupField(domain.FieldName)

	r.nation, r.hasNation = r.lookupField(domain.FieldNation)
	if !r.hasNation {
		if _, ok := r.docs[domain.DocIDCard]; ok {
			r.nation, r.hasNation = home, true
		}
	}

	if permit, ok := r.docs[domain.DocAccessPermit]; ok {
		r.worker = permit[domain.FieldPurpose] == domain.PurposeWork
	}

	if cert, ok := r.docs[domain.DocVaccinationCert]; ok {
		r.vaccinated = true
		r.vaccines = make(map[string]struct{})
		for _, v := range strings.Split(cert[domain.FieldVaccines], ", ") {
			r.vaccines[v] = struct{}{}
		}
	}

	if auth, ok := r.docs[domain.DocDiplomaticAuth]; ok {
		if list, ok := auth[domain.FieldAccess]; ok {
			for _, n := range strings.Split(list, ", ") {
				r.access[n] = struct{}{}
			}
		}
	}
}

// lookupField returns the first value for key across documents in record
// iteration order.
func (r *Record) lookupField(key string) (string, bool) {
	for _, kind := range r.kinds {
		if v, ok := r.docs[kind][key]; ok {
			return v, true
		}
	}
	return "", false
}

// Kinds returns the presented document kinds in record iteration order.
func (r *Record) Kinds() []string { return r.kinds }

// Fields returns the parsed fields of the named document.
func (r *Record) Fields(kind string) (Fields, bool) {
	f, ok := r.docs[kind]
	return f, ok
}

// Name returns the entrant's name, if any document carries one.
func (r *Record) Name() (string, bool) { return r.name, r.hasName }

// Nation returns the entrant's nationality. ok is false for a stateless
// entrant; callers treating nationality as a category key should use
// domain.NoNation in that case, which is what the returned string holds.
func (r *Record) Nation() (string, bool) { return r.nation, r.hasNation }

// IsWorker reports whether an access permit with PURPOSE "WORK" is present.
func (r *Record) IsWorker() bool { return r.worker }

// Vaccinations returns the administered vaccine set from the certificate of
// vaccination. ok is false when no certificate was presented, which is
// distinct from an empty set: without a certificate every vaccination
// requirement fails.
func (r *Record) Vaccinations() (map[string]struct{}, bool) {
	return r.vaccines, r.vaccinated
}

// DiplomaticAccess returns the nations listed on a diplomatic authorization,
// or an empty set when none was presented.
func (r *Record) DiplomaticAccess() map[string]struct{} { return r.access }

// Has reports literal presence of a document kind.
func (r *Record) Has(kind string) bool {
	_, ok := r.docs[kind]
	return ok
}

// HasDocument reports whether a required document identifier is satisfied.
// A per-disease vaccination requirement is satisfied only when a certificate
// of vaccination is present and lists the disease.
func (r *Record) HasDocument(doc string) bool {
	if domain.IsVaccinationRequirement(doc) && r.vaccinated {
		_, ok := r.vaccines[domain.DiseaseFromRequirement(doc)]
		return ok
	}
	return r.Has(doc)
}
