// Package roster loads the nation roster data file consumed by the engine:
// recognized nations, home nation, expiration cutoff, and message templates.
// YAML, JSON, and TOML are supported, selected by file extension.
package roster

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"

	"github.com/grestin/checkpoint/internal/border/domain"
)

// fileRoster mirrors the on-disk roster schema. Cutoff and messages are
// optional and fall back to the compiled-in defaults.
type fileRoster struct {
	Home             string       `koanf:"home" validate:"required"`
	Nations          []string     `koanf:"nations" validate:"required,min=1,dive,required"`
	ExpirationCutoff string       `koanf:"expiration_cutoff"`
	Messages         fileMessages `koanf:"messages"`
}

type fileMessages struct {
	CitizenGreeting   string `koanf:"citizen_greeting"`
	ForeignerGreeting string `koanf:"foreigner_greeting"`
	DenyFormat        string `koanf:"deny_format"`
	DetainFormat      string `koanf:"detain_format"`
}

// Load reads and validates a roster file, returning a domain.Roster.
func Load(path string) (domain.Roster, error) {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	case ".toml":
		parser = toml.Parser()
	default:
		return domain.Roster{}, fmt.Errorf("unsupported roster file format: %s", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return domain.Roster{}, fmt.Errorf("failed to load roster file %s: %w", path, err)
	}

	var fr fileRoster
	if err := k.Unmarshal("", &fr); err != nil {
		return domain.Roster{}, fmt.Errorf("invalid roster file %s: %w", path, err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&fr); err != nil {
		return domain.Roster{}, fmt.Errorf("roster validation failed for %s: %w", path, err)
	}

	r := merge(fr)
	if err := r.Validate(); err != nil {
		return domain.Roster{}, fmt.Errorf("roster %s: %w", path, err)
	}
	return r, nil
}

// merge fills unset optional fields from the default roster.
func merge(fr fileRoster) domain.Roster {
	def := domain.DefaultRoster()
	r := domain.Roster{
		Home:             fr.Home,
		Nations:          fr.Nations,
		ExpirationCutoff: fr.ExpirationCutoff,
		Messages: domain.Messages{
			CitizenGreeting:   fr.Messages.CitizenGreeting,
			ForeignerGreeting: fr.Messages.ForeignerGreeting,
			DenyFormat:        fr.Messages.DenyFormat,
			DetainFormat:      fr.Messages.DetainFormat,
		},
	}
	if r.ExpirationCutoff == "" {
		r.ExpirationCutoff = def.ExpirationCutoff
	}
	if r.Messages.CitizenGreeting == "" {
		r.Messages.CitizenGreeting = def.Messages.CitizenGreeting
	}
	if r.Messages.ForeignerGreeting == "" {
		r.Messages.ForeignerGreeting = def.Messages.ForeignerGreeting
	}
	if r.Messages.DenyFormat == "" {
		r.Messages.DenyFormat = def.Messages.DenyFormat
	}
	if r.Messages.DetainFormat == "" {
		r.Messages.DetainFormat = def.Messages.DetainFormat
	}
	return r
}
