package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "servicecatalog/pkg/domain-errors"
)

// RootID is the stable identifier of one logical entity across all of its
// versions. Services, general descriptions, organizations and channels all use it.
type RootID uuid.UUID

// VersionID identifies one immutable revision of a root.
type VersionID uuid.UUID

// ParseRootID parses a non-nil UUID into a RootID.
func ParseRootID(s string) (RootID, error) {
	u, err := parseUUID(s, "root id")
	if err != nil {
		return RootID{}, err
	}
	return RootID(u), nil
}

// ParseVersionID parses a non-nil UUID into a VersionID.
func ParseVersionID(s string) (VersionID, error) {
	u, err := parseUUID(s, "version id")
	if err != nil {
		return VersionID{}, err
	}
	return VersionID(u), nil
}

// MustRootID parses s and panics on failure. Intended for fixtures and tests.
func MustRootID(s string) RootID {
	id, err := ParseRootID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// NewRootID returns a random RootID.
func NewRootID() RootID { return RootID(uuid.New()) }

// NewVersionID returns a random VersionID.
func NewVersionID() VersionID { return VersionID(uuid.New()) }

func (id RootID) String() string    { return uuid.UUID(id).String() }
func (id RootID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id VersionID) String() string { return uuid.UUID(id).String() }
func (id VersionID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets ids serialize as plain UUID strings in JSON and YAML.
func (id RootID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText accepts any UUID, including the nil UUID, so that zero values round-trip.
func (id *RootID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid root id")
	}
	*id = RootID(u)
	return nil
}

func (id VersionID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *VersionID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid version id")
	}
	*id = VersionID(u)
	return nil
}

func parseUUID(s, label string) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return u, nil
}
