package domain

import (
	"fmt"
	"regexp"
	"slices"
)

// NoNation is the sentinel nationality for entrants whose papers resolve to
// no nation at all. Synthetic directive categories ("Entrants", "Foreigners")
// expand over it like any real nation.
const NoNation = ""

// datePattern is the fixed-width zero-padded date form used by document
// expiration fields. Fixed width is what makes the lexical cutoff comparison
// in the document-validity rule correct.
var datePattern = regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}$`)

// Messages holds the fixed decision message templates.
type Messages struct {
	CitizenGreeting   string // printed when a home-nation citizen is allowed
	ForeignerGreeting string // printed when anyone else is allowed
	DenyFormat        string // fmt template taking the deny reason
	DetainFormat      string // fmt template taking the detain reason
}

// Roster is the static configuration data the engine consumes but does not
// own: the recognized nations, the home nation, the document expiration
// cutoff, and the message templates.
type Roster struct {
	Home             string   // the home nation
	Nations          []string // all recognized nations, including Home
	ExpirationCutoff string   // documents expiring on or before this date are invalid
	Messages         Messages
}

// DefaultRoster returns the compiled-in Arstotzka roster.
func DefaultRoster() Roster {
	return Roster{
		Home: "Arstotzka",
		Nations: []string{
			"Arstotzka",
			"Antegria",
			"Impor",
			"Kolechia",
			"Obristan",
			"Republia",
			"United Federation",
		},
		ExpirationCutoff: "1982.11.22",
		Messages: Messages{
			CitizenGreeting:   "Glory to Arstotzka.",
			ForeignerGreeting: "Cause no trouble.",
			DenyFormat:        "Entry denied: %s.",
			DetainFormat:      "Detainment: %s.",
		},
	}
}

// Validate checks the roster for required fields and internal consistency.
func (r Roster) Validate() error {
	if r.Home == "" {
		return fmt.Errorf("roster home nation must not be empty")
	}
	if len(r.Nations) == 0 {
		return fmt.Errorf("roster must list at least one nation")
	}
	if !slices.Contains(r.Nations, r.Home) {
		return fmt.Errorf("roster home nation %q must appear in the nation list", r.Home)
	}
	if !datePattern.MatchString(r.ExpirationCutoff) {
		return fmt.Errorf("roster expiration cutoff %q must be YYYY.MM.DD", r.ExpirationCutoff)
	}
	for _, m := range []string{
		r.Messages.CitizenGreeting,
		r.Messages.ForeignerGreeting,
		r.Messages.DenyFormat,
		r.Messages.DetainFormat,
	} {
		if m == "" {
			return fmt.Errorf("roster message templates must not be empty")
		}
	}
	return nil
}

// IsHome reports whether nation is the home nation.
func (r Roster) IsHome(nation string) bool { return nation == r.Home }

// EntrantNations returns every nationality the "Entrants" category expands
// to: all recognized nations plus the no-nation sentinel.
func (r Roster) EntrantNations() []string {
	out := make([]string, 0, len(r.Nations)+1)
	out = append(out, r.Nations...)
	return append(out, NoNation)
}

// ForeignNations returns every nationality the "Foreigners" category expands
// to: all recognized nations except the home nation, plus the no-nation
// sentinel.
func (r Roster) ForeignNations() []string {
	out := make([]string, 0, len(r.Nations))
	for _, n := range r.Nations {
		if n != r.Home {
			out = append(out, n)
		}
	}
	return append(out, NoNation)
}

// DenyMessage formats the final message for a deny judgment.
func (r Roster) DenyMessage(reason string) string {
	return fmt.Sprintf(r.Messages.DenyFormat, reason)
}

// DetainMessage formats the final message for a detain judgment.
func (r Roster) DetainMessage(reason string) string {
	return fmt.Sprintf(r.Messages.DetainFormat, reason)
}

// Greeting returns the allow message for the given nationality.
func (r Roster) Greeting(nation string) string {
	if r.IsHome(nation) {
		return r.Messages.CitizenGreeting
	}
	return r.Messages.ForeignerGreeting
}
