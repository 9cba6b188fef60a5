package rules

import (
	"time"

	"github.com/grestin/checkpoint/internal/border/common/clock"
	"github.com/grestin/checkpoint/internal/border/common/log"
	"github.com/grestin/checkpoint/internal/border/domain"
	"github.com/grestin/checkpoint/internal/border/record"
)

// Registry owns the singleton rule instances in their fixed priority order.
// The order serves double duty: recognizers are tried against directives in
// it, and entrants are judged through it, detain-capable rules first.
//
// The registry is mutable shared state across Apply calls and is not safe
// for concurrent mutation; callers requiring concurrency must serialize
// externally.
type Registry struct {
	rules  []Rule
	clock  clock.Clock
	logger log.Logger

	version     uint64
	lastUpdated time.Time
}

// NewRegistry constructs a registry with one instance of each rule kind in
// canonical order.
func NewRegistry(roster domain.Roster, clk clock.Clock, logger log.Logger) *Registry {
	return &Registry{
		rules: []Rule{
			NewWantedCriminals(),
			NewValidDocuments(roster),
			NewRequiredDocuments(roster),
			NewAllowedNations(),
		},
		clock:  clk,
		logger: logger,
	}
}

// Apply feeds one directive line through the recognizers in priority order.
// The first match consumes the line; matched reports whether any rule did.
// Unrecognized lines are not an error, bulletins carry narrative text.
func (g *Registry) Apply(line string) (bool, error) {
	for _, rule := range g.rules {
		if !rule.Matches(line) {
			continue
		}
		u, err := rule.Parse(line)
		if err != nil {
			g.logger.Warn(map[string]any{
				"rule":  rule.Name(),
				"line":  line,
				"error": err.Error(),
			}, "directive_parse_failed")
			return false, err
		}
		rule.Absorb(u)
		g.version++
		g.lastUpdated = g.clock.Now()
		g.logger.Debug(map[string]any{
			"rule":    rule.Name(),
			"version": g.version,
		}, "directive_absorbed")
		return true, nil
	}
	g.logger.Debug(map[string]any{"line": line}, "directive_ignored")
	return false, nil
}

// Judge evaluates the rules in priority order against an entrant's papers,
// short-circuiting on the first non-allow judgment.
func (g *Registry) Judge(rec *record.Record) domain.Judgment {
	for _, rule := range g.rules {
		if j := rule.Judge(rec); !j.IsAllow() {
			return j
		}
	}
	return domain.Allow()
}

// Version returns the count of directives absorbed so far.
func (g *Registry) Version() uint64 { return g.version }

// LastUpdated returns when the most recent directive was absorbed.
func (g *Registry) LastUpdated() time.Time { return g.lastUpdated }
