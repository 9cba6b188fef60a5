package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/grestin/checkpoint/internal/border/domain"
	"github.com/grestin/checkpoint/internal/border/record"
)

const bannedNationReason = "citizen of banned nation"

var nationsBody = regexp.MustCompile(`(Allow|Deny)\s+citizens\s+of\s+(.+)`)

// NationsUpdate merges (allow) or subtracts (deny) nations from the
// whitelist.
type NationsUpdate struct {
	Nations map[string]struct{}
	Deny    bool
}

func (NationsUpdate) isUpdate() {}

// AllowedNations admits only citizens of whitelisted nations. The rule is
// inactive until the first allow/deny directive arrives; once configured, an
// entrant whose nationality is off the whitelist is denied, including the
// stateless entrant.
type AllowedNations struct {
	whitelist  map[string]struct{}
	configured bool
}

func NewAllowedNations() *AllowedNations {
	return &AllowedNations{whitelist: make(map[string]struct{})}
}

func (r *AllowedNations) Name() string { return "AllowedNations" }

func (r *AllowedNations) Matches(line string) bool {
	return strings.Contains(line, "citizens of")
}

func (r *AllowedNations) Parse(line string) (Update, error) {
	m := nationsBody.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("%s: %q: %w", r.Name(), line, ErrUnparseableDirective)
	}
	u := NationsUpdate{
		Nations: make(map[string]struct{}),
		Deny:    m[1] == "Deny",
	}
	for _, nation := range strings.Split(m[2], ", ") {
		u.Nations[nation] = struct{}{}
	}
	return u, nil
}

func (r *AllowedNations) Absorb(u Update) {
	nu, ok := u.(NationsUpdate)
	if !ok {
		return
	}
	r.configured = true
	for nation := range nu.Nations {
		if nu.Deny {
			delete(r.whitelist, nation)
		} else {
			r.whitelist[nation] = struct{}{}
		}
	}
}

func (r *AllowedNations) Judge(rec *record.Record) domain.Judgment {
	if !r.configured {
		return domain.Allow()
	}
	nation, _ := rec.Nation()
	if _, ok := r.whitelist[nation]; ok {
		return domain.Allow()
	}
	return domain.Denial(bannedNationReason)
}
