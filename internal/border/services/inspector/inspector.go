// Package inspector orchestrates bulletin ingestion into the rule registry
// and turns entrant submissions into final decision messages.
package inspector

import (
	"sort"
	"strings"
	"time"

	"github.com/grestin/checkpoint/internal/border/common/log"
	"github.com/grestin/checkpoint/internal/border/domain"
	"github.com/grestin/checkpoint/internal/border/record"
)

// Inspector is the engine's single public surface. Ingest and Inspect are
// expected to be called sequentially by one caller; see the registry's
// concurrency note.
type Inspector struct {
	registry DirectiveRegistry
	cache    VerdictCache
	roster   domain.Roster
	logger   log.Logger
}

type Options struct {
	Registry DirectiveRegistry
	Cache    VerdictCache // optional; nil disables memoization
	Roster   domain.Roster
	Logger   log.Logger
}

func New(opts Options) *Inspector {
	return &Inspector{
		registry: opts.Registry,
		cache:    opts.Cache,
		roster:   opts.Roster,
		logger:   opts.Logger,
	}
}

// Ingest feeds each non-blank line of a bulletin to the registry. Lines no
// recognizer claims are ignored. A recognized directive with a malformed
// body aborts the bulletin with the parse error; directives already absorbed
// stay absorbed, directives are independent and there is no rollback.
func (i *Inspector) Ingest(bulletin string) error {
	absorbed := 0
	defer func() {
		if absorbed > 0 && i.cache != nil {
			i.cache.Purge()
		}
	}()

	for _, line := range strings.Split(bulletin, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		matched, err := i.registry.Apply(line)
		if err != nil {
			return err
		}
		if matched {
			absorbed++
		}
	}

	i.logger.Info(map[string]any{
		"directives": absorbed,
		"version":    i.registry.Version(),
	}, "bulletin_ingested")
	return nil
}

// Inspect parses an entrant submission, evaluates it through the rule
// pipeline, and returns the final decision message.
func (i *Inspector) Inspect(sub record.Submission) (string, error) {
	key := fingerprint(sub)
	if i.cache != nil {
		if verdict, ok := i.cache.Get(key); ok {
			return verdict, nil
		}
	}

	rec, err := record.Parse(sub, i.roster.Home)
	if err != nil {
		return "", err
	}

	j := i.registry.Judge(rec)
	var verdict string
	switch {
	case j.Detain:
		verdict = i.roster.DetainMessage(j.Reason)
	case j.Deny:
		verdict = i.roster.DenyMessage(j.Reason)
	default:
		nation, _ := rec.Nation()
		verdict = i.roster.Greeting(nation)
	}

	if i.cache != nil {
		i.cache.Put(key, verdict)
	}
	i.logger.Debug(map[string]any{
		"detain":  j.Detain,
		"deny":    j.Deny,
		"reason":  j.Reason,
		"verdict": verdict,
	}, "entrant_inspected")
	return verdict, nil
}

// Stats exposes registry and cache counters for operational logging.
type Stats struct {
	RegistryVersion uint64
	LastUpdated     time.Time
	CacheLen        int
	CacheHits       uint64
	CacheMisses     uint64
	CacheEvictions  uint64
}

func (i *Inspector) Stats() Stats {
	s := Stats{
		RegistryVersion: i.registry.Version(),
		LastUpdated:     i.registry.LastUpdated(),
	}
	if i.cache != nil {
		s.CacheLen = i.cache.Len()
		s.CacheHits, s.CacheMisses, s.CacheEvictions = i.cache.Stats()
	}
	return s
}

// fingerprint derives a canonical cache key from a submission. Document
// kinds are sorted so equal submissions share a key regardless of map order.
func fingerprint(sub record.Submission) string {
	kinds := make([]string, 0, len(sub))
	for kind := range sub {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	var b strings.Builder
	for _, kind := range kinds {
		b.WriteString(kind)
		b.WriteByte(0x1f)
		b.WriteString(sub[kind])
		b.WriteByte(0x1e)
	}
	return b.String()
}
