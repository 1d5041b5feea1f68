package models

import (
	"slices"
	"strings"
	"time"

	"servicecatalog/pkg/domain"
	dErrors "servicecatalog/pkg/domain-errors"
)

// Service classification values accepted by collection filters.
const (
	ServiceTypeService                   = "Service"
	ServiceTypePermitOrObligation        = "PermitOrObligation"
	ServiceTypeProfessionalQualification = "ProfessionalQualification"
)

// Area types accepted by collection filters.
const (
	AreaMunicipality   = "Municipality"
	AreaProvince       = "Province"
	AreaBusinessRegion = "BusinessRegion"
	AreaHospitalRegion = "HospitalRegion"
)

var (
	serviceTypes = []string{ServiceTypeService, ServiceTypePermitOrObligation, ServiceTypeProfessionalQualification}
	areaTypes    = []string{AreaMunicipality, AreaProvince, AreaBusinessRegion, AreaHospitalRegion}
)

// FilterCriteria narrows a collection query. Zero fields do not constrain.
type FilterCriteria struct {
	ModifiedFrom   *time.Time
	ModifiedTo     *time.Time
	AreaType       string
	AreaCodes      []string
	ServiceType    string
	TargetGroup    string
	OrganizationID *domain.RootID
	Language       domain.Language
}

// Normalize canonicalizes enum casing and validates the criteria. Malformed
// classification values are caller errors.
func (c *FilterCriteria) Normalize() error {
	if c.ServiceType != "" {
		v, ok := canonical(serviceTypes, c.ServiceType)
		if !ok {
			return dErrors.New(dErrors.CodeValidation, "invalid service type: "+c.ServiceType)
		}
		c.ServiceType = v
	}
	if c.AreaType != "" {
		v, ok := canonical(areaTypes, c.AreaType)
		if !ok {
			return dErrors.New(dErrors.CodeValidation, "invalid area type: "+c.AreaType)
		}
		c.AreaType = v
	}
	if len(c.AreaCodes) > 0 && c.AreaType == "" {
		return dErrors.New(dErrors.CodeValidation, "area codes require an area type")
	}
	if c.ModifiedFrom != nil && c.ModifiedTo != nil && c.ModifiedTo.Before(*c.ModifiedFrom) {
		return dErrors.New(dErrors.CodeValidation, "modified range end precedes start")
	}
	if c.Language != "" && !c.Language.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid language: "+string(c.Language))
	}
	return nil
}

// Matches applies every store-level criterion to v. Language is not checked
// here because it depends on the language availability ledger.
func (c FilterCriteria) Matches(v Version) bool {
	if c.ModifiedFrom != nil && v.Modified.Before(*c.ModifiedFrom) {
		return false
	}
	if c.ModifiedTo != nil && v.Modified.After(*c.ModifiedTo) {
		return false
	}
	if c.ServiceType != "" && v.Type != c.ServiceType {
		return false
	}
	if c.TargetGroup != "" && !slices.Contains(v.TargetGroups, c.TargetGroup) {
		return false
	}
	if c.AreaType != "" && !c.matchesArea(v) {
		return false
	}
	if c.OrganizationID != nil && !referencesOrganization(v, *c.OrganizationID) {
		return false
	}
	return true
}

func (c FilterCriteria) matchesArea(v Version) bool {
	for _, a := range v.Areas {
		if a.Type != c.AreaType {
			continue
		}
		if len(c.AreaCodes) == 0 || slices.Contains(c.AreaCodes, a.Code) {
			return true
		}
	}
	return false
}

func referencesOrganization(v Version, org domain.RootID) bool {
	if v.OrganizationID != nil && *v.OrganizationID == org {
		return true
	}
	for _, r := range v.Roles {
		if r.OrganizationID == org {
			return true
		}
	}
	return false
}

func canonical(allowed []string, s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, a := range allowed {
		if strings.EqualFold(a, s) {
			return a, true
		}
	}
	return "", false
}
