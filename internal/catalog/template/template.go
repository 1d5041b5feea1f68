// Package template merges general description (template) content into a
// resolved service version at read time.
//
// Two lookups exist on purpose. The simple lookup surfaces classification
// and the short description set; the detailed lookup, requested with the
// attach-all flag, also surfaces charge type and the richer collections.
package template

import (
	"slices"

	"servicecatalog/internal/catalog/models"
	"servicecatalog/pkg/domain"
)

// Simple is the result of the simple template lookup. ChargeType is held so
// callers can see what the template declared, but Merge never copies it from
// a simple lookup.
type Simple struct {
	ID          domain.RootID
	Kind        models.TemplateKind
	Type        string
	SubType     string
	ChargeType  string
	Summary     []models.LocalizedText
	Description []models.LocalizedText
	Channels    []models.ChannelConnection
}

// Detailed is the result of the detailed template lookup.
type Detailed struct {
	Simple
	TargetGroups      []string
	ServiceClasses    []string
	OntologyTerms     []string
	LifeEvents        []string
	IndustrialClasses []string
	Requirements      []models.LocalizedText
	Legislation       []models.Law
	// Descriptions holds every template description with its type prefixed
	// by models.TemplateTextPrefix.
	Descriptions []models.LocalizedText
}

// Options selects the lookup and channel inheritance.
type Options struct {
	AttachAll               bool
	IncludeProposedChannels bool
}

// Merger copies template fields onto versions whose template kind is in the
// inheritable allow-list.
type Merger struct {
	inheritable map[models.TemplateKind]struct{}
}

// DefaultInheritableKinds is used when no allow-list is configured.
var DefaultInheritableKinds = []models.TemplateKind{
	models.TemplateMunicipality,
	models.TemplateBusinessSubregion,
	models.TemplateChurch,
}

func NewMerger(kinds ...models.TemplateKind) *Merger {
	if len(kinds) == 0 {
		kinds = DefaultInheritableKinds
	}
	m := &Merger{inheritable: make(map[models.TemplateKind]struct{}, len(kinds))}
	for _, k := range kinds {
		m.inheritable[k] = struct{}{}
	}
	return m
}

// Inheritable reports whether kind may contribute field values.
func (m *Merger) Inheritable(kind models.TemplateKind) bool {
	_, ok := m.inheritable[kind]
	return ok
}

// LookupSimple extracts the simple field set from the template's published
// version.
func (m *Merger) LookupSimple(tmpl models.Version) Simple {
	s := Simple{
		ID:         tmpl.RootID,
		Kind:       tmpl.TemplateKind,
		Type:       tmpl.Type,
		SubType:    tmpl.SubType,
		ChargeType: tmpl.ChargeType,
		Channels:   slices.Clone(tmpl.Channels),
	}
	for _, d := range tmpl.Descriptions {
		switch d.Type {
		case models.TextSummary:
			s.Summary = append(s.Summary, d)
		case models.TextDescription:
			s.Description = append(s.Description, d)
		}
	}
	return s
}

// LookupDetailed extracts the full field set.
func (m *Merger) LookupDetailed(tmpl models.Version) Detailed {
	d := Detailed{
		Simple:            m.LookupSimple(tmpl),
		TargetGroups:      slices.Clone(tmpl.TargetGroups),
		ServiceClasses:    slices.Clone(tmpl.ServiceClasses),
		OntologyTerms:     slices.Clone(tmpl.OntologyTerms),
		LifeEvents:        slices.Clone(tmpl.LifeEvents),
		IndustrialClasses: slices.Clone(tmpl.IndustrialClasses),
		Requirements:      slices.Clone(tmpl.Requirements),
		Legislation:       slices.Clone(tmpl.Legislation),
	}
	for _, desc := range tmpl.Descriptions {
		desc.Type = models.TemplateTextPrefix + desc.Type
		d.Descriptions = append(d.Descriptions, desc)
	}
	return d
}

// Merge builds the view of host with template content applied. tmpl is the
// template's published version, or nil when the linked template has none.
// host is never modified.
func (m *Merger) Merge(host models.Version, tmpl *models.Version, opts Options) models.ServiceView {
	view := models.ServiceView{Version: host.Clone()}
	if host.TemplateID != nil {
		id := *host.TemplateID
		view.TemplateID = &id
	}
	if tmpl == nil || !m.Inheritable(tmpl.TemplateKind) {
		return view
	}

	v := &view.Version
	var simple Simple
	if opts.AttachAll {
		d := m.LookupDetailed(*tmpl)
		simple = d.Simple
		fillString(&v.ChargeType, d.ChargeType)
		v.TargetGroups = union(v.TargetGroups, d.TargetGroups)
		v.ServiceClasses = union(v.ServiceClasses, d.ServiceClasses)
		v.OntologyTerms = union(v.OntologyTerms, d.OntologyTerms)
		v.LifeEvents = union(v.LifeEvents, d.LifeEvents)
		v.IndustrialClasses = union(v.IndustrialClasses, d.IndustrialClasses)
		v.Requirements = append(v.Requirements, d.Requirements...)
		v.Legislation = append(v.Legislation, d.Legislation...)
		view.TemplateDescriptions = d.Descriptions
	} else {
		simple = m.LookupSimple(*tmpl)
	}

	fillString(&v.Type, simple.Type)
	fillString(&v.SubType, simple.SubType)
	v.Descriptions = fillTexts(v.Descriptions, simple.Summary)
	v.Descriptions = fillTexts(v.Descriptions, simple.Description)

	if opts.IncludeProposedChannels {
		v.Channels = proposeChannels(v.Channels, simple.Channels)
	}
	return view
}

func fillString(dst *string, src string) {
	if *dst == "" {
		*dst = src
	}
}

// fillTexts appends each template text whose (type, language) the host lacks.
func fillTexts(host, tmpl []models.LocalizedText) []models.LocalizedText {
	for _, t := range tmpl {
		if _, ok := models.Text(host, t.Type, t.Language); ok {
			continue
		}
		host = append(host, t)
	}
	return host
}

func union(host, tmpl []string) []string {
	for _, s := range tmpl {
		if !slices.Contains(host, s) {
			host = append(host, s)
		}
	}
	return host
}

// proposeChannels appends template channels carrying at least one
// description and not already connected on the host.
func proposeChannels(host, tmpl []models.ChannelConnection) []models.ChannelConnection {
	for _, c := range tmpl {
		if len(c.Descriptions) == 0 {
			continue
		}
		if slices.ContainsFunc(host, func(h models.ChannelConnection) bool { return h.ChannelID == c.ChannelID }) {
			continue
		}
		c.Descriptions = slices.Clone(c.Descriptions)
		c.Proposed = true
		host = append(host, c)
	}
	return host
}
