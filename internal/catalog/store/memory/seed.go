package memory

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"servicecatalog/internal/catalog/models"
	"servicecatalog/pkg/domain"
)

// Seed is the YAML fixture layout: entities grouped by kind, each with its
// versions and their per-language publication state.
type Seed struct {
	Services            []SeedEntity `yaml:"services"`
	GeneralDescriptions []SeedEntity `yaml:"generalDescriptions"`
	Organizations       []SeedEntity `yaml:"organizations"`
	Channels            []SeedEntity `yaml:"channels"`
}

type SeedEntity struct {
	Root     domain.RootID `yaml:"root"`
	Versions []SeedVersion `yaml:"versions"`
}

type SeedVersion struct {
	models.Version `yaml:",inline"`
	Languages      map[domain.Language]models.PublicationStatus `yaml:"languages"`
}

// LoadSeedFile reads a YAML seed from path into s.
func (s *InMemory) LoadSeedFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()
	return s.LoadSeed(f)
}

// LoadSeed decodes a YAML seed from r into s.
func (s *InMemory) LoadSeed(r io.Reader) error {
	seed, err := DecodeSeed(r)
	if err != nil {
		return err
	}
	return s.Apply(seed)
}

// DecodeSeed reads a YAML seed, rejecting unknown fields.
func DecodeSeed(r io.Reader) (Seed, error) {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		return Seed{}, fmt.Errorf("decode seed: %w", err)
	}
	return seed, nil
}

// Apply stores every version in seed.
func (s *InMemory) Apply(seed Seed) error {
	return seed.Each(func(v models.Version, rows []models.LanguageAvailability) error {
		return s.Put(v, rows...)
	})
}

// Each calls fn for every seeded version with its kind, root and modified
// time filled in, stopping at the first error.
func (seed Seed) Each(fn func(v models.Version, rows []models.LanguageAvailability) error) error {
	groups := []struct {
		kind     models.EntityKind
		entities []SeedEntity
	}{
		{models.KindService, seed.Services},
		{models.KindGeneralDescription, seed.GeneralDescriptions},
		{models.KindOrganization, seed.Organizations},
		{models.KindChannel, seed.Channels},
	}
	for _, g := range groups {
		for _, e := range g.entities {
			for _, sv := range e.Versions {
				v := sv.Version
				v.RootID = e.Root
				v.Kind = g.kind
				if v.Modified.IsZero() {
					v.Modified = v.Created
				}
				rows := make([]models.LanguageAvailability, 0, len(sv.Languages))
				for lang, st := range sv.Languages {
					rows = append(rows, models.LanguageAvailability{VersionID: v.ID, Language: lang, Status: st})
				}
				if err := fn(v, rows); err != nil {
					return fmt.Errorf("seed %s %s: %w", g.kind, e.Root, err)
				}
			}
		}
	}
	return nil
}
