package inspector

import (
	"time"

	"github.com/grestin/checkpoint/internal/border/domain"
	"github.com/grestin/checkpoint/internal/border/record"
)

// DirectiveRegistry is the rule registry the inspector ingests bulletins
// into and judges entrants through.
type DirectiveRegistry interface {
	Apply(line string) (bool, error)
	Judge(rec *record.Record) domain.Judgment
	Version() uint64
	LastUpdated() time.Time
}

// VerdictCache memoizes final decision messages by submission fingerprint.
// It must be purged whenever the registry state changes.
type VerdictCache interface {
	Get(key string) (string, bool)
	Put(key string, verdict string)
	Len() int
	Purge()
	Stats() (hits, misses, evictions uint64)
}
