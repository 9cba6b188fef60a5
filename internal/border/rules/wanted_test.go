package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grestin/checkpoint/internal/border/domain"
	"github.com/grestin/checkpoint/internal/border/record"
)

func mustRecord(t *testing.T, sub record.Submission) *record.Record {
	t.Helper()
	rec, err := record.Parse(sub, domain.DefaultRoster().Home)
	require.NoError(t, err)
	return rec
}

func TestWantedCriminalsMatches(t *testing.T) {
	r := NewWantedCriminals()
	assert.True(t, r.Matches("Wanted: John Smith"))
	assert.True(t, r.Matches("Wanted by the State: Hubert Popondopulos"))
	assert.False(t, r.Matches("Entrants require passport"))
	assert.False(t, r.Matches("Allow citizens of Obristan"))
}

func TestWantedCriminalsParse(t *testing.T) {
	r := NewWantedCriminals()
	u, err := r.Parse("Wanted: John Smith")
	require.NoError(t, err)
	assert.Equal(t, WantedUpdate{Name: "Smith, John"}, u)
}

func TestWantedCriminalsParseError(t *testing.T) {
	r := NewWantedCriminals()
	_, err := r.Parse("Wanted")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnparseableDirective)
}

func TestWantedCriminalsJudge(t *testing.T) {
	r := NewWantedCriminals()
	r.Absorb(WantedUpdate{Name: "Smith, John"})

	criminal := mustRecord(t, record.Submission{
		domain.DocPassport: "NAME: Smith, John\nNATION: Kolechia",
	})
	j := r.Judge(criminal)
	assert.True(t, j.Detain)
	assert.Equal(t, "Entry is a wanted criminal", j.Reason)

	bystander := mustRecord(t, record.Submission{
		domain.DocPassport: "NAME: Smith, Jane\nNATION: Kolechia",
	})
	assert.True(t, r.Judge(bystander).IsAllow())
}

func TestWantedCriminalsLaterBulletinOverrides(t *testing.T) {
	r := NewWantedCriminals()
	r.Absorb(WantedUpdate{Name: "Smith, John"})
	r.Absorb(WantedUpdate{Name: "Dimitrova, Olga"})

	former := mustRecord(t, record.Submission{
		domain.DocPassport: "NAME: Smith, John",
	})
	assert.True(t, r.Judge(former).IsAllow(), "only one criminal is tracked at a time")

	current := mustRecord(t, record.Submission{
		domain.DocPassport: "NAME: Dimitrova, Olga",
	})
	assert.True(t, r.Judge(current).Detain)
}

func TestWantedCriminalsEmptyStateAllowsNamelessEntrant(t *testing.T) {
	r := NewWantedCriminals()
	nameless := mustRecord(t, record.Submission{
		domain.DocPassport: "NATION: Impor",
	})
	assert.True(t, r.Judge(nameless).IsAllow())
}
