package handler

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"servicecatalog/internal/catalog/models"
	"servicecatalog/pkg/domain"
	dErrors "servicecatalog/pkg/domain-errors"
	pstrings "servicecatalog/pkg/platform/strings"
)

type filterRequest struct {
	criteria models.FilterCriteria
	page     int
	pageSize int
	class    models.VisibilityClass
}

// parseFilterRequest reads the collection query parameters. Enum values are
// validated by the service.
func parseFilterRequest(q url.Values) (filterRequest, error) {
	var req filterRequest
	var err error

	if req.criteria.ModifiedFrom, err = timeParam(q.Get("date"), "date"); err != nil {
		return req, err
	}
	if req.criteria.ModifiedTo, err = timeParam(q.Get("dateBefore"), "dateBefore"); err != nil {
		return req, err
	}
	req.criteria.AreaType = q.Get("areaType")
	req.criteria.AreaCodes = pstrings.Dedupe(pstrings.Fields(q["areaCodes"]...))
	req.criteria.ServiceType = q.Get("serviceType")
	req.criteria.TargetGroup = strings.TrimSpace(q.Get("targetGroup"))
	if raw := q.Get("organizationId"); raw != "" {
		id, err := domain.ParseRootID(raw)
		if err != nil {
			return req, err
		}
		req.criteria.OrganizationID = &id
	}

	if req.page, err = intParam(q.Get("page"), "page"); err != nil {
		return req, err
	}
	if req.pageSize, err = intParam(q.Get("pageSize"), "pageSize"); err != nil {
		return req, err
	}
	if req.class, err = models.ParseVisibilityClass(q.Get("status")); err != nil {
		return req, err
	}
	return req, nil
}

func timeParam(raw, name string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, name+" must be an RFC 3339 timestamp")
	}
	return &t, nil
}

func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, name+" must be an integer")
	}
	return n, nil
}

func boolParam(raw, name string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, dErrors.New(dErrors.CodeInvalidInput, name+" must be true or false")
	}
	return b, nil
}
