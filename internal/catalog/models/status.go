package models

import (
	"slices"
	"strings"

	dErrors "servicecatalog/pkg/domain-errors"
)

// PublicationStatus is the lifecycle state of one version.
type PublicationStatus string

const (
	StatusDraft        PublicationStatus = "Draft"
	StatusModified     PublicationStatus = "Modified"
	StatusPublished    PublicationStatus = "Published"
	StatusOldPublished PublicationStatus = "OldPublished"
	StatusDeleted      PublicationStatus = "Deleted"
	StatusRemoved      PublicationStatus = "Removed"
)

var allStatuses = []PublicationStatus{
	StatusDraft, StatusModified, StatusPublished, StatusOldPublished, StatusDeleted, StatusRemoved,
}

// ParsePublicationStatus matches case-insensitively.
func ParsePublicationStatus(s string) (PublicationStatus, error) {
	s = strings.TrimSpace(s)
	for _, st := range allStatuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "invalid publication status: "+s)
}

func (s PublicationStatus) IsValid() bool {
	return slices.Contains(allStatuses, s)
}

// IsActive reports Draft, Modified or Published.
func (s PublicationStatus) IsActive() bool {
	return s == StatusDraft || s == StatusModified || s == StatusPublished
}

// IsArchived reports Deleted or OldPublished.
func (s PublicationStatus) IsArchived() bool {
	return s == StatusDeleted || s == StatusOldPublished
}

func (s PublicationStatus) String() string { return string(s) }

// ResolutionMode selects which version of a root answers a single lookup.
type ResolutionMode string

const (
	ModePublished    ResolutionMode = "Published"
	ModeLatest       ResolutionMode = "Latest"
	ModeLatestActive ResolutionMode = "LatestActive"
)

// ParseResolutionMode matches case-insensitively; empty means Published.
func ParseResolutionMode(s string) (ResolutionMode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ModePublished, nil
	}
	for _, m := range []ResolutionMode{ModePublished, ModeLatest, ModeLatestActive} {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "invalid resolution mode: "+s)
}

func (m ResolutionMode) IsValid() bool {
	return m == ModePublished || m == ModeLatest || m == ModeLatestActive
}

// VisibilityClass groups statuses for collection queries.
type VisibilityClass string

const (
	VisibilityPublished VisibilityClass = "Published"
	VisibilityActive    VisibilityClass = "Active"
	VisibilityArchived  VisibilityClass = "Archived"
	VisibilityWithdrawn VisibilityClass = "Withdrawn"
)

// ParseVisibilityClass matches case-insensitively; empty means Published.
func ParseVisibilityClass(s string) (VisibilityClass, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return VisibilityPublished, nil
	}
	for _, c := range []VisibilityClass{VisibilityPublished, VisibilityActive, VisibilityArchived, VisibilityWithdrawn} {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "invalid visibility class: "+s)
}

// Statuses lists the statuses a class can select, in preference order.
func (c VisibilityClass) Statuses() []PublicationStatus {
	switch c {
	case VisibilityPublished:
		return []PublicationStatus{StatusPublished}
	case VisibilityActive:
		return []PublicationStatus{StatusPublished, StatusModified, StatusDraft}
	case VisibilityArchived:
		return []PublicationStatus{StatusDeleted, StatusOldPublished}
	case VisibilityWithdrawn:
		return []PublicationStatus{StatusRemoved}
	default:
		return nil
	}
}

func (c VisibilityClass) IsValid() bool {
	return len(c.Statuses()) > 0
}
