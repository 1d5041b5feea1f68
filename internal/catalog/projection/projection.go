// Package projection attaches organizations and channels to a merged service
// view, applying each related entity's own language visibility.
package projection

import (
	"servicecatalog/internal/catalog/ledger"
	"servicecatalog/internal/catalog/models"
	"servicecatalog/internal/catalog/resolver"
	"servicecatalog/pkg/domain"
)

// Related is every version of the organization and channel roots a view
// references, keyed by root.
type Related struct {
	Organizations map[domain.RootID][]models.Version
	Channels      map[domain.RootID][]models.Version
}

// VisibleName applies the per-entity visibility rule shared by organizations
// and channels. The entity is visible when any of its versions has a
// published language. Its name is the Name text of its published version in
// lang, present only when lang is published for that version.
//
// The published version is returned so callers can read other fields.
func VisibleName(versions []models.Version, led *ledger.Ledger, lang domain.Language) (visible bool, name *string, published *models.Version, err error) {
	if len(versions) == 0 || !led.RootHasPublished(versions) {
		return false, nil, nil, nil
	}
	published, err = resolver.Resolve(versions[0].RootID, versions, models.ModePublished)
	if err != nil {
		return false, nil, nil, err
	}
	if published == nil || !led.IsPublished(published.ID, lang) {
		return true, nil, published, nil
	}
	if n, ok := models.Text(published.Names, models.TextName, lang); ok {
		return true, &n, published, nil
	}
	return true, nil, published, nil
}

// Project fills view.Organizations and view.Channels.
//
// Responsible comes from the version's direct organization reference, or from
// a Responsible role row when there is none. OtherResponsible and Producer
// come from role rows. Invisible organizations and channels are skipped.
func Project(view *models.ServiceView, rel Related, led *ledger.Ledger, lang domain.Language) error {
	orgs, err := projectOrganizations(view.Version, rel.Organizations, led, lang)
	if err != nil {
		return err
	}
	channels, err := projectChannels(view.Version.Channels, rel.Channels, led, lang)
	if err != nil {
		return err
	}
	view.Organizations = orgs
	view.Channels = channels
	return nil
}

type orgKey struct {
	id        domain.RootID
	role      models.OrganizationRole
	provision models.ProvisionType
}

func projectOrganizations(v models.Version, known map[domain.RootID][]models.Version, led *ledger.Ledger, lang domain.Language) ([]models.OrganizationView, error) {
	var out []models.OrganizationView
	seen := make(map[orgKey]struct{})

	add := func(id domain.RootID, role models.OrganizationRole, provision models.ProvisionType) error {
		key := orgKey{id: id, role: role, provision: provision}
		if _, dup := seen[key]; dup {
			return nil
		}
		visible, name, _, err := VisibleName(known[id], led, lang)
		if err != nil {
			return err
		}
		if !visible {
			return nil
		}
		seen[key] = struct{}{}
		out = append(out, models.OrganizationView{
			OrganizationID: id,
			Role:           role,
			ProvisionType:  provision,
			Name:           name,
		})
		return nil
	}

	if v.OrganizationID != nil {
		if err := add(*v.OrganizationID, models.RoleResponsible, ""); err != nil {
			return nil, err
		}
	} else {
		for _, r := range v.Roles {
			if r.Role == models.RoleResponsible {
				if err := add(r.OrganizationID, models.RoleResponsible, ""); err != nil {
					return nil, err
				}
				break
			}
		}
	}
	for _, r := range v.Roles {
		var err error
		switch r.Role {
		case models.RoleOtherResponsible:
			err = add(r.OrganizationID, models.RoleOtherResponsible, "")
		case models.RoleProducer:
			err = add(r.OrganizationID, models.RoleProducer, r.ProvisionType)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func projectChannels(conns []models.ChannelConnection, known map[domain.RootID][]models.Version, led *ledger.Ledger, lang domain.Language) ([]models.ChannelView, error) {
	var out []models.ChannelView
	for _, c := range conns {
		visible, name, published, err := VisibleName(known[c.ChannelID], led, lang)
		if err != nil {
			return nil, err
		}
		if !visible {
			continue
		}
		cv := models.ChannelView{
			ChannelID:    c.ChannelID,
			Name:         name,
			Descriptions: c.Descriptions,
			Proposed:     c.Proposed,
		}
		if published != nil {
			cv.Type = published.Type
		}
		out = append(out, cv)
	}
	return out, nil
}

// ReferencedIDs lists the organization and channel roots a version points
// at, without duplicates.
func ReferencedIDs(v models.Version) (orgs, channels []domain.RootID) {
	seenOrg := make(map[domain.RootID]struct{})
	addOrg := func(id domain.RootID) {
		if _, ok := seenOrg[id]; !ok {
			seenOrg[id] = struct{}{}
			orgs = append(orgs, id)
		}
	}
	if v.OrganizationID != nil {
		addOrg(*v.OrganizationID)
	}
	for _, r := range v.Roles {
		addOrg(r.OrganizationID)
	}
	seenCh := make(map[domain.RootID]struct{})
	for _, c := range v.Channels {
		if _, ok := seenCh[c.ChannelID]; !ok {
			seenCh[c.ChannelID] = struct{}{}
			channels = append(channels, c.ChannelID)
		}
	}
	return orgs, channels
}
