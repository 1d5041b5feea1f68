package schema

import (
	"time"
)

// Service is the external service shape. Fields introduced after v7 are
// populated only when the requested version includes them.
type Service struct {
	ID                   string   `json:"id"`
	Status               string   `json:"publishingStatus"`
	Type                 string   `json:"type,omitempty"`
	SubType              string   `json:"subType,omitempty"`
	ChargeType           *string  `json:"serviceChargeType"`
	GeneralDescriptionID *string  `json:"generalDescriptionId"`
	Languages            []string `json:"languages"`

	Names        []LocalizedValue `json:"serviceNames"`
	Descriptions []LocalizedValue `json:"serviceDescriptions"`

	AreaType          string           `json:"areaType,omitempty"`
	Areas             []Area           `json:"areas"`
	TargetGroups      []string         `json:"targetGroups"`
	ServiceClasses    []string         `json:"serviceClasses"`
	OntologyTerms     []string         `json:"ontologyTerms"`
	LifeEvents        []string         `json:"lifeEvents"`
	IndustrialClasses []string         `json:"industrialClasses"`
	Requirements      []LocalizedValue `json:"requirements"`
	Legislation       []Law            `json:"legislation"`

	Organizations []Organization `json:"organizations"`
	Channels      []Channel      `json:"serviceChannels"`

	LanguageVersions []LanguageVersion `json:"languageVersions,omitempty"`
	Modified         time.Time         `json:"modified"`
}

// LocalizedValue is one typed, localized string.
type LocalizedValue struct {
	Type     string `json:"type,omitempty"`
	Language string `json:"language"`
	Value    string `json:"value"`
}

type Area struct {
	Type string `json:"type"`
	Code string `json:"code"`
}

type Law struct {
	Names    []LocalizedValue `json:"names"`
	WebPages []LocalizedValue `json:"webPages"`
}

// Organization is one organization role on a service. Name is null when the
// organization has no published name in the request language.
type Organization struct {
	ID            string  `json:"id"`
	Role          string  `json:"roleType"`
	ProvisionType string  `json:"provisionType,omitempty"`
	Name          *string `json:"name"`
}

type Channel struct {
	ID           string           `json:"id"`
	Name         *string          `json:"name"`
	Type         string           `json:"serviceChannelType,omitempty"`
	Descriptions []LocalizedValue `json:"description,omitempty"`
	Proposed     *bool            `json:"proposed,omitempty"`
}

// LanguageVersion is the per-language publication state of the version.
type LanguageVersion struct {
	Language string `json:"language"`
	Status   string `json:"publishingStatus"`
}

// Summary is the collection item shape shared by every schema version.
type Summary struct {
	ID       string    `json:"id"`
	Name     *string   `json:"name"`
	Status   string    `json:"publishingStatus"`
	Modified time.Time `json:"modified"`
}
