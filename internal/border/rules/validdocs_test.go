package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grestin/checkpoint/internal/border/domain"
	"github.com/grestin/checkpoint/internal/border/record"
)

func TestValidDocumentsNeverMatchesDirectives(t *testing.T) {
	r := NewValidDocuments(domain.DefaultRoster())
	assert.False(t, r.Matches("Entrants require passport"))
	assert.False(t, r.Matches("Wanted: John Smith"))

	_, err := r.Parse("anything")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnparseableDirective)
}

func TestValidDocumentsMismatchDetains(t *testing.T) {
	tests := []struct {
		name string
		sub  record.Submission
		want string
	}{
		{
			name: "date of birth mismatch",
			sub: record.Submission{
				domain.DocPassport: "NAME: Petrov, Ivan\nDOB: 1950.01.01",
				domain.DocIDCard:   "NAME: Petrov, Ivan\nDOB: 1951.01.01",
			},
			want: "date of birth mismatch",
		},
		{
			name: "nationality mismatch",
			sub: record.Submission{
				domain.DocPassport:     "NAME: Petrov, Ivan\nNATION: Impor",
				domain.DocAccessPermit: "NAME: Petrov, Ivan\nNATION: Republia",
			},
			want: "nationality mismatch",
		},
		{
			name: "ID number mismatch",
			sub: record.Submission{
				domain.DocPassport: "NAME: Petrov, Ivan\nID#: A1234",
				domain.DocIDCard:   "NAME: Petrov, Ivan\nID#: B5678",
			},
			want: "ID number mismatch",
		},
		{
			name: "name mismatch",
			sub: record.Submission{
				domain.DocPassport: "NAME: Petrov, Ivan",
				domain.DocIDCard:   "NAME: Petrova, Ivana",
			},
			want: "name mismatch",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewValidDocuments(domain.DefaultRoster())
			j := r.Judge(mustRecord(t, tt.sub))
			assert.True(t, j.Detain)
			assert.Equal(t, tt.want, j.Reason)
		})
	}
}

func TestValidDocumentsMismatchFieldOrder(t *testing.T) {
	// DOB is checked before name, so a record conflicting on both reports
	// the date of birth first.
	r := NewValidDocuments(domain.DefaultRoster())
	rec := mustRecord(t, record.Submission{
		domain.DocPassport: "NAME: Petrov, Ivan\nDOB: 1950.01.01",
		domain.DocIDCard:   "NAME: Petrova, Ivana\nDOB: 1951.01.01",
	})
	j := r.Judge(rec)
	assert.True(t, j.Detain)
	assert.Equal(t, "date of birth mismatch", j.Reason)
}

func TestValidDocumentsExpirationIsLexical(t *testing.T) {
	tests := []struct {
		name    string
		exp     string
		expired bool
	}{
		{"before cutoff", "1982.11.20", true},
		{"on cutoff", "1982.11.22", true},
		{"after cutoff", "1982.11.23", false},
		{"next year", "1983.01.01", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewValidDocuments(domain.DefaultRoster())
			rec := mustRecord(t, record.Submission{
				domain.DocPassport: "NAME: Kovacs, Laszlo\nEXP: " + tt.exp,
			})
			j := r.Judge(rec)
			if tt.expired {
				assert.True(t, j.Deny)
				assert.Equal(t, "passport expired", j.Reason)
			} else {
				assert.True(t, j.IsAllow())
			}
		})
	}
}

func TestValidDocumentsExpiredIDCardDisplay(t *testing.T) {
	r := NewValidDocuments(domain.DefaultRoster())
	rec := mustRecord(t, record.Submission{
		domain.DocIDCard: "NAME: Novak, Eva\nEXP: 1982.01.05",
	})
	j := r.Judge(rec)
	assert.True(t, j.Deny)
	assert.Equal(t, "ID card expired", j.Reason)
}

func TestValidDocumentsDiplomaticAuthorization(t *testing.T) {
	r := NewValidDocuments(domain.DefaultRoster())

	valid := mustRecord(t, record.Submission{
		domain.DocDiplomaticAuth: "NAME: Khan, Mikhail\nACCESS: Arstotzka, Impor",
	})
	assert.True(t, r.Judge(valid).IsAllow())

	invalid := mustRecord(t, record.Submission{
		domain.DocDiplomaticAuth: "NAME: Khan, Mikhail\nACCESS: Impor, Republia",
	})
	j := r.Judge(invalid)
	assert.True(t, j.Deny)
	assert.Equal(t, "invalid diplomatic authorization", j.Reason)
}

func TestValidDocumentsMismatchBeatsExpiration(t *testing.T) {
	r := NewValidDocuments(domain.DefaultRoster())
	rec := mustRecord(t, record.Submission{
		domain.DocPassport: "NAME: Petrov, Ivan\nEXP: 1980.01.01",
		domain.DocIDCard:   "NAME: Petrova, Ivana",
	})
	j := r.Judge(rec)
	assert.True(t, j.Detain)
	assert.Equal(t, "name mismatch", j.Reason)
}
