package models

import (
	"servicecatalog/pkg/domain"
)

// ServiceView is a resolved service version after template merge and role
// projection. It is the single internal model every schema shape reads from.
type ServiceView struct {
	Version Version

	// TemplateID is reported whenever the version links a general
	// description, even when nothing was inherited.
	TemplateID *domain.RootID
	// TemplateDescriptions holds GD_ prefixed descriptions, surfaced only by
	// the detailed lookup.
	TemplateDescriptions []LocalizedText

	Languages     map[domain.Language]PublicationStatus
	Organizations []OrganizationView
	Channels      []ChannelView
}

// OrganizationView is one organization attached to a service. Name is nil
// when the organization has no published name in the requested language.
type OrganizationView struct {
	OrganizationID domain.RootID
	Role           OrganizationRole
	ProvisionType  ProvisionType
	Name           *string
}

// ChannelView is one visible channel connection.
type ChannelView struct {
	ChannelID    domain.RootID
	Name         *string
	Type         string
	Descriptions []LocalizedText
	Proposed     bool
}

// PagedResult is one page of a collection query.
type PagedResult[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	PageCount  int `json:"pageCount"`
	TotalCount int `json:"totalCount"`
}
