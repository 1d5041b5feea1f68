package models

import (
	"slices"
	"time"

	"servicecatalog/pkg/domain"
)

// EntityKind tags which sub-domain a version belongs to.
type EntityKind string

const (
	KindService            EntityKind = "Service"
	KindGeneralDescription EntityKind = "GeneralDescription"
	KindOrganization       EntityKind = "Organization"
	KindChannel            EntityKind = "Channel"
)

// Text types used on names and descriptions.
const (
	TextName            = "Name"
	TextAlternativeName = "AlternativeName"
	TextSummary         = "Summary"
	TextDescription     = "Description"
	TextUserInstruction = "UserInstruction"
	TextChargeInfo      = "ChargeTypeAdditionalInfo"

	// TemplateTextPrefix marks descriptions copied from a general description.
	TemplateTextPrefix = "GD_"
)

// LocalizedText is one typed value in one language.
type LocalizedText struct {
	Type     string          `json:"type" yaml:"type"`
	Language domain.Language `json:"language" yaml:"language"`
	Value    string          `json:"value" yaml:"value"`
}

// Area is a geographic area reference.
type Area struct {
	Type string `json:"type" yaml:"type"`
	Code string `json:"code" yaml:"code"`
}

// Law is one legislation reference.
type Law struct {
	Names    []LocalizedText `json:"names,omitempty" yaml:"names"`
	WebPages []LocalizedText `json:"webPages,omitempty" yaml:"webPages"`
}

// OrganizationRole classifies an organization attached to a service.
type OrganizationRole string

const (
	RoleResponsible      OrganizationRole = "Responsible"
	RoleOtherResponsible OrganizationRole = "OtherResponsible"
	RoleProducer         OrganizationRole = "Producer"
)

// ProvisionType is the producer sub-type.
type ProvisionType string

const (
	ProvisionSelfProduced     ProvisionType = "SelfProduced"
	ProvisionPurchaseServices ProvisionType = "PurchaseServices"
	ProvisionOther            ProvisionType = "Other"
)

// RoleRelation links a version to an organization root.
type RoleRelation struct {
	OrganizationID domain.RootID    `json:"organizationId" yaml:"organization"`
	Role           OrganizationRole `json:"role" yaml:"role"`
	ProvisionType  ProvisionType    `json:"provisionType,omitempty" yaml:"provisionType"`
}

// ChannelConnection links a version to a channel root.
type ChannelConnection struct {
	ChannelID    domain.RootID   `json:"channelId" yaml:"channel"`
	Descriptions []LocalizedText `json:"descriptions,omitempty" yaml:"descriptions"`
	Proposed     bool            `json:"proposed,omitempty" yaml:"-"`
}

// TemplateKind classifies a general description for inheritance gating.
type TemplateKind string

const (
	TemplateMunicipality            TemplateKind = "Municipality"
	TemplateBusinessSubregion       TemplateKind = "BusinessSubregion"
	TemplateChurch                  TemplateKind = "Church"
	TemplatePrescribedByLegislation TemplateKind = "PrescribedByFinnishLegislation"
	TemplateOther                   TemplateKind = "Other"
)

// Version is one immutable revision of a root. Services, general
// descriptions, organizations and channels share this shape; fields a kind
// does not use stay empty.
type Version struct {
	ID       domain.VersionID  `json:"id" yaml:"id"`
	RootID   domain.RootID     `json:"rootId" yaml:"-"`
	Kind     EntityKind        `json:"kind" yaml:"-"`
	Status   PublicationStatus `json:"status" yaml:"status"`
	Created  time.Time         `json:"created" yaml:"created"`
	Modified time.Time         `json:"modified" yaml:"modified"`

	Names        []LocalizedText `json:"names,omitempty" yaml:"names"`
	Descriptions []LocalizedText `json:"descriptions,omitempty" yaml:"descriptions"`

	Type       string `json:"type,omitempty" yaml:"type"`
	SubType    string `json:"subType,omitempty" yaml:"subType"`
	ChargeType string `json:"chargeType,omitempty" yaml:"chargeType"`

	TemplateID     *domain.RootID `json:"templateId,omitempty" yaml:"template"`
	TemplateKind   TemplateKind   `json:"templateKind,omitempty" yaml:"templateKind"`
	OrganizationID *domain.RootID `json:"organizationId,omitempty" yaml:"organization"`

	AreaType          string          `json:"areaType,omitempty" yaml:"areaType"`
	Areas             []Area          `json:"areas,omitempty" yaml:"areas"`
	TargetGroups      []string        `json:"targetGroups,omitempty" yaml:"targetGroups"`
	ServiceClasses    []string        `json:"serviceClasses,omitempty" yaml:"serviceClasses"`
	OntologyTerms     []string        `json:"ontologyTerms,omitempty" yaml:"ontologyTerms"`
	LifeEvents        []string        `json:"lifeEvents,omitempty" yaml:"lifeEvents"`
	IndustrialClasses []string        `json:"industrialClasses,omitempty" yaml:"industrialClasses"`
	Requirements      []LocalizedText `json:"requirements,omitempty" yaml:"requirements"`
	Legislation       []Law           `json:"legislation,omitempty" yaml:"legislation"`

	Roles    []RoleRelation      `json:"roles,omitempty" yaml:"roles"`
	Channels []ChannelConnection `json:"channels,omitempty" yaml:"channels"`
}

// Clone returns a copy whose slices can be appended to without touching v.
func (v Version) Clone() Version {
	out := v
	out.Names = slices.Clone(v.Names)
	out.Descriptions = slices.Clone(v.Descriptions)
	out.Areas = slices.Clone(v.Areas)
	out.TargetGroups = slices.Clone(v.TargetGroups)
	out.ServiceClasses = slices.Clone(v.ServiceClasses)
	out.OntologyTerms = slices.Clone(v.OntologyTerms)
	out.LifeEvents = slices.Clone(v.LifeEvents)
	out.IndustrialClasses = slices.Clone(v.IndustrialClasses)
	out.Requirements = slices.Clone(v.Requirements)
	out.Legislation = slices.Clone(v.Legislation)
	out.Roles = slices.Clone(v.Roles)
	out.Channels = slices.Clone(v.Channels)
	return out
}

// Text returns the first value of the given type in lang.
func Text(texts []LocalizedText, textType string, lang domain.Language) (string, bool) {
	for _, t := range texts {
		if t.Type == textType && t.Language == lang {
			return t.Value, true
		}
	}
	return "", false
}

// After reports whether v sorts after other in creation order. Ties on the
// ordering key fall back to the version id.
func (v Version) After(other Version) bool {
	if !v.Created.Equal(other.Created) {
		return v.Created.After(other.Created)
	}
	return v.ID.String() > other.ID.String()
}

// LanguageAvailability records the publication state of one language within
// one version.
type LanguageAvailability struct {
	VersionID domain.VersionID  `json:"versionId"`
	Language  domain.Language   `json:"language"`
	Status    PublicationStatus `json:"status"`
}

// InLanguages returns a copy of v whose localized texts are limited to langs.
func (v Version) InLanguages(langs []domain.Language) Version {
	out := v.Clone()
	keep := func(texts []LocalizedText) []LocalizedText {
		var kept []LocalizedText
		for _, t := range texts {
			if slices.Contains(langs, t.Language) {
				kept = append(kept, t)
			}
		}
		return kept
	}
	out.Names = keep(v.Names)
	out.Descriptions = keep(v.Descriptions)
	out.Requirements = keep(v.Requirements)
	for i, l := range out.Legislation {
		out.Legislation[i] = Law{Names: keep(l.Names), WebPages: keep(l.WebPages)}
	}
	for i, c := range out.Channels {
		out.Channels[i].Descriptions = keep(c.Descriptions)
	}
	return out
}
