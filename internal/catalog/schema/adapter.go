// Package schema maps the internal service view onto the frozen external
// shapes of each supported schema version.
package schema

import (
	"fmt"
	"slices"
	"strings"

	"servicecatalog/internal/catalog/models"
	"servicecatalog/pkg/domain"
	dErrors "servicecatalog/pkg/domain-errors"
)

// step adds the fields introduced at since on top of the previous steps.
type step struct {
	since domain.SchemaVersion
	apply func(view *models.ServiceView, out *Service)
}

// steps is ordered by since. Each step only adds fields.
var steps = []step{
	{since: domain.SchemaV7, apply: applyBase},
	{since: domain.SchemaV8, apply: applyOtherResponsible},
	{since: domain.SchemaV9, apply: applySubTypes},
	{since: domain.SchemaV10, apply: applyChannelDetails},
	{since: domain.SchemaV11, apply: applyLanguageVersions},
}

// Adapter projects views into the shape of a requested schema version.
type Adapter struct {
	minimum domain.SchemaVersion
}

// NewAdapter fails when minimum is not a known schema version.
func NewAdapter(minimum domain.SchemaVersion) (*Adapter, error) {
	if !minimum.IsKnown() {
		return nil, fmt.Errorf("minimum schema version %d is not between %s and %s",
			int(minimum), domain.OldestSchemaVersion, domain.LatestSchemaVersion)
	}
	return &Adapter{minimum: minimum}, nil
}

// Minimum returns the oldest served version.
func (a *Adapter) Minimum() domain.SchemaVersion { return a.minimum }

// Supported lists the served versions, oldest first.
func (a *Adapter) Supported() []domain.SchemaVersion {
	return domain.SupportedSchemaVersions(a.minimum)
}

// Check fails with CodeUnsupportedVersion for versions below the minimum or
// newer than the latest known shape.
func (a *Adapter) Check(v domain.SchemaVersion) error {
	if v < a.minimum || v > domain.LatestSchemaVersion {
		return dErrors.New(dErrors.CodeUnsupportedVersion,
			fmt.Sprintf("schema version %s is not supported; supported versions are %s to %s",
				v, a.minimum, domain.LatestSchemaVersion))
	}
	return nil
}

// Adapt renders view in the shape of schema version v. The view is not
// modified.
func (a *Adapter) Adapt(view *models.ServiceView, v domain.SchemaVersion) (*Service, error) {
	if err := a.Check(v); err != nil {
		return nil, err
	}
	out := &Service{}
	for _, s := range steps {
		if v.IsAtLeast(s.since) {
			s.apply(view, out)
		}
	}
	return out, nil
}

// Summarize renders a collection item. name is the caller's chosen display
// name, nil when none is published in the request language.
func Summarize(v models.Version, name *string) Summary {
	return Summary{
		ID:       v.RootID.String(),
		Name:     name,
		Status:   string(v.Status),
		Modified: v.Modified,
	}
}

func applyBase(view *models.ServiceView, out *Service) {
	v := view.Version
	out.ID = v.RootID.String()
	out.Status = string(v.Status)
	out.Type = v.Type
	if v.ChargeType != "" {
		ct := v.ChargeType
		out.ChargeType = &ct
	}
	if view.TemplateID != nil {
		id := view.TemplateID.String()
		out.GeneralDescriptionID = &id
	}
	out.Languages = languagesOf(v)
	out.Names = localized(v.Names)
	out.Descriptions = localized(v.Descriptions)
	out.AreaType = v.AreaType
	out.Areas = make([]Area, 0, len(v.Areas))
	for _, ar := range v.Areas {
		out.Areas = append(out.Areas, Area{Type: ar.Type, Code: ar.Code})
	}
	out.TargetGroups = nonNil(v.TargetGroups)
	out.ServiceClasses = nonNil(v.ServiceClasses)
	out.OntologyTerms = nonNil(v.OntologyTerms)
	out.LifeEvents = nonNil(v.LifeEvents)
	out.IndustrialClasses = nonNil(v.IndustrialClasses)
	out.Requirements = localized(v.Requirements)
	out.Legislation = make([]Law, 0, len(v.Legislation))
	for _, l := range v.Legislation {
		out.Legislation = append(out.Legislation, Law{Names: localized(l.Names), WebPages: localized(l.WebPages)})
	}
	out.Organizations = []Organization{}
	for _, o := range view.Organizations {
		if o.Role == models.RoleOtherResponsible {
			continue
		}
		out.Organizations = append(out.Organizations, organization(o))
	}
	out.Channels = []Channel{}
	for _, c := range view.Channels {
		if c.Proposed {
			continue
		}
		out.Channels = append(out.Channels, Channel{ID: c.ChannelID.String(), Name: c.Name, Type: c.Type})
	}
	out.Modified = v.Modified
}

func applyOtherResponsible(view *models.ServiceView, out *Service) {
	for _, o := range view.Organizations {
		if o.Role == models.RoleOtherResponsible {
			out.Organizations = append(out.Organizations, organization(o))
		}
	}
}

func applySubTypes(view *models.ServiceView, out *Service) {
	out.SubType = view.Version.SubType
	out.Descriptions = append(out.Descriptions, localized(view.TemplateDescriptions)...)
}

// applyChannelDetails adds connection descriptions to existing entries and
// appends proposed channels flagged as such.
func applyChannelDetails(view *models.ServiceView, out *Service) {
	i := 0
	for _, c := range view.Channels {
		if c.Proposed {
			proposed := true
			out.Channels = append(out.Channels, Channel{
				ID:           c.ChannelID.String(),
				Name:         c.Name,
				Type:         c.Type,
				Descriptions: localized(c.Descriptions),
				Proposed:     &proposed,
			})
			continue
		}
		notProposed := false
		out.Channels[i].Descriptions = localized(c.Descriptions)
		out.Channels[i].Proposed = &notProposed
		i++
	}
}

func applyLanguageVersions(view *models.ServiceView, out *Service) {
	langs := make([]domain.Language, 0, len(view.Languages))
	for l := range view.Languages {
		langs = append(langs, l)
	}
	slices.Sort(langs)
	out.LanguageVersions = make([]LanguageVersion, 0, len(langs))
	for _, l := range langs {
		out.LanguageVersions = append(out.LanguageVersions, LanguageVersion{
			Language: string(l),
			Status:   string(view.Languages[l]),
		})
	}
}

func organization(o models.OrganizationView) Organization {
	return Organization{
		ID:            o.OrganizationID.String(),
		Role:          string(o.Role),
		ProvisionType: string(o.ProvisionType),
		Name:          o.Name,
	}
}

func localized(texts []models.LocalizedText) []LocalizedValue {
	out := make([]LocalizedValue, 0, len(texts))
	for _, t := range texts {
		out = append(out, LocalizedValue{Type: t.Type, Language: string(t.Language), Value: t.Value})
	}
	return out
}

// languagesOf lists the languages with at least one name, sorted.
func languagesOf(v models.Version) []string {
	var out []string
	for _, n := range v.Names {
		l := string(n.Language)
		if !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	slices.SortFunc(out, strings.Compare)
	if out == nil {
		out = []string{}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
