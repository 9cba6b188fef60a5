package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/grestin/checkpoint/internal/border/domain"
	"github.com/grestin/checkpoint/internal/border/record"
)

const wantedReason = "Entry is a wanted criminal"

// wantedBody extracts the first and last name from a wanted-criminal line.
var wantedBody = regexp.MustCompile(`:\s+(\w+)\s+(\w+)`)

// WantedUpdate replaces the tracked wanted criminal.
type WantedUpdate struct {
	Name string // "Last, First"
}

func (WantedUpdate) isUpdate() {}

// WantedCriminals detains the single currently wanted criminal. Later
// bulletins override earlier ones; only one name is tracked at a time.
type WantedCriminals struct {
	name string
}

func NewWantedCriminals() *WantedCriminals {
	return &WantedCriminals{}
}

func (r *WantedCriminals) Name() string { return "WantedCriminals" }

func (r *WantedCriminals) Matches(line string) bool {
	return strings.HasPrefix(line, "Wanted")
}

func (r *WantedCriminals) Parse(line string) (Update, error) {
	m := wantedBody.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("%s: %q: %w", r.Name(), line, ErrUnparseableDirective)
	}
	first, last := m[1], m[2]
	return WantedUpdate{Name: fmt.Sprintf("%s, %s", last, first)}, nil
}

func (r *WantedCriminals) Absorb(u Update) {
	if w, ok := u.(WantedUpdate); ok {
		r.name = w.Name
	}
}

func (r *WantedCriminals) Judge(rec *record.Record) domain.Judgment {
	if name, ok := rec.Name(); ok && r.name != "" && name == r.name {
		return domain.Detainment(wantedReason)
	}
	return domain.Allow()
}
