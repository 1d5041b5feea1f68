package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"servicecatalog/internal/catalog/ledger"
	"servicecatalog/internal/catalog/models"
	"servicecatalog/pkg/domain"
	dErrors "servicecatalog/pkg/domain-errors"
)

type ProjectorSuite struct {
	suite.Suite
	rows    []models.LanguageAvailability
	related Related
}

func TestProjectorSuite(t *testing.T) {
	suite.Run(t, new(ProjectorSuite))
}

func (s *ProjectorSuite) SetupTest() {
	s.rows = nil
	s.related = Related{
		Organizations: map[domain.RootID][]models.Version{},
		Channels:      map[domain.RootID][]models.Version{},
	}
}

// entity registers a published entity with a name per language; published
// lists the languages whose availability row is Published.
func (s *ProjectorSuite) entity(kind models.EntityKind, names map[domain.Language]string, published ...domain.Language) domain.RootID {
	root := domain.NewRootID()
	v := models.Version{
		ID:      domain.NewVersionID(),
		RootID:  root,
		Kind:    kind,
		Status:  models.StatusPublished,
		Created: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Type:    "EChannel",
	}
	for lang, name := range names {
		v.Names = append(v.Names, models.LocalizedText{Type: models.TextName, Language: lang, Value: name})
		st := models.StatusDraft
		for _, p := range published {
			if p == lang {
				st = models.StatusPublished
			}
		}
		s.rows = append(s.rows, models.LanguageAvailability{VersionID: v.ID, Language: lang, Status: st})
	}
	if kind == models.KindOrganization {
		s.related.Organizations[root] = append(s.related.Organizations[root], v)
	} else {
		s.related.Channels[root] = append(s.related.Channels[root], v)
	}
	return root
}

func (s *ProjectorSuite) project(v models.Version, lang domain.Language) models.ServiceView {
	view := models.ServiceView{Version: v}
	s.Require().NoError(Project(&view, s.related, ledger.New(s.rows...), lang))
	return view
}

func (s *ProjectorSuite) TestResponsibleNameFollowsOrganizationLanguages() {
	org := s.entity(models.KindOrganization, map[domain.Language]string{
		domain.LanguageSwedish: "Organisation",
		domain.LanguageFinnish: "Organisaatio",
	}, domain.LanguageSwedish)
	svc := models.Version{OrganizationID: &org}

	s.Run("published language yields the name", func() {
		view := s.project(svc, domain.LanguageSwedish)
		s.Require().Len(view.Organizations, 1)
		s.Equal(models.RoleResponsible, view.Organizations[0].Role)
		s.Require().NotNil(view.Organizations[0].Name)
		s.Equal("Organisation", *view.Organizations[0].Name)
	})

	s.Run("unpublished language keeps the role with a nil name", func() {
		view := s.project(svc, domain.LanguageFinnish)
		s.Require().Len(view.Organizations, 1)
		s.Equal(models.RoleResponsible, view.Organizations[0].Role)
		s.Nil(view.Organizations[0].Name)
	})
}

func (s *ProjectorSuite) TestInvisibleOrganizationIsSkipped() {
	hidden := s.entity(models.KindOrganization, map[domain.Language]string{domain.LanguageFinnish: "Piilo"})
	svc := models.Version{
		OrganizationID: &hidden,
		Roles:          []models.RoleRelation{{OrganizationID: hidden, Role: models.RoleOtherResponsible}},
	}
	view := s.project(svc, domain.LanguageFinnish)
	s.Empty(view.Organizations)

	unknown := domain.NewRootID()
	view = s.project(models.Version{OrganizationID: &unknown}, domain.LanguageFinnish)
	s.Empty(view.Organizations)
}

func (s *ProjectorSuite) TestRoleRows() {
	main := s.entity(models.KindOrganization, map[domain.Language]string{domain.LanguageFinnish: "Main"}, domain.LanguageFinnish)
	other := s.entity(models.KindOrganization, map[domain.Language]string{domain.LanguageFinnish: "Other"}, domain.LanguageFinnish)
	producer := s.entity(models.KindOrganization, map[domain.Language]string{domain.LanguageFinnish: "Producer"}, domain.LanguageFinnish)

	svc := models.Version{
		OrganizationID: &main,
		Roles: []models.RoleRelation{
			{OrganizationID: other, Role: models.RoleResponsible},
			{OrganizationID: other, Role: models.RoleOtherResponsible},
			{OrganizationID: other, Role: models.RoleOtherResponsible},
			{OrganizationID: producer, Role: models.RoleProducer, ProvisionType: models.ProvisionSelfProduced},
			{OrganizationID: producer, Role: models.RoleProducer, ProvisionType: models.ProvisionPurchaseServices},
		},
	}
	view := s.project(svc, domain.LanguageFinnish)

	var responsible, others, producers int
	for _, o := range view.Organizations {
		switch o.Role {
		case models.RoleResponsible:
			responsible++
			s.Equal(main, o.OrganizationID)
		case models.RoleOtherResponsible:
			others++
		case models.RoleProducer:
			producers++
			s.NotEmpty(o.ProvisionType)
		}
	}
	s.Equal(1, responsible)
	s.Equal(1, others)
	s.Equal(2, producers)
}

func (s *ProjectorSuite) TestResponsibleRoleRowUsedWithoutDirectReference() {
	org := s.entity(models.KindOrganization, map[domain.Language]string{domain.LanguageFinnish: "Org"}, domain.LanguageFinnish)
	view := s.project(models.Version{Roles: []models.RoleRelation{{OrganizationID: org, Role: models.RoleResponsible}}}, domain.LanguageFinnish)
	s.Require().Len(view.Organizations, 1)
	s.Equal(models.RoleResponsible, view.Organizations[0].Role)
}

func (s *ProjectorSuite) TestChannelVisibility() {
	shown := s.entity(models.KindChannel, map[domain.Language]string{domain.LanguageFinnish: "Verkkoasiointi"}, domain.LanguageFinnish)
	hidden := s.entity(models.KindChannel, map[domain.Language]string{domain.LanguageFinnish: "Luonnos"})
	desc := []models.LocalizedText{{Type: models.TextDescription, Language: domain.LanguageFinnish, Value: "d"}}

	svc := models.Version{Channels: []models.ChannelConnection{
		{ChannelID: shown, Descriptions: desc, Proposed: true},
		{ChannelID: hidden},
	}}
	view := s.project(svc, domain.LanguageFinnish)

	s.Require().Len(view.Channels, 1)
	ch := view.Channels[0]
	s.Equal(shown, ch.ChannelID)
	s.Require().NotNil(ch.Name)
	s.Equal("Verkkoasiointi", *ch.Name)
	s.Equal("EChannel", ch.Type)
	s.True(ch.Proposed)
	s.Equal(desc, ch.Descriptions)

	view = s.project(svc, domain.LanguageEnglish)
	s.Require().Len(view.Channels, 1)
	s.Nil(view.Channels[0].Name)
}

func (s *ProjectorSuite) TestInconsistentRelatedEntityFails() {
	org := s.entity(models.KindOrganization, map[domain.Language]string{domain.LanguageFinnish: "Org"}, domain.LanguageFinnish)
	dup := s.related.Organizations[org][0]
	dup.ID = domain.NewVersionID()
	s.related.Organizations[org] = append(s.related.Organizations[org], dup)

	view := models.ServiceView{Version: models.Version{OrganizationID: &org}}
	err := Project(&view, s.related, ledger.New(s.rows...), domain.LanguageFinnish)
	s.True(dErrors.HasCode(err, dErrors.CodeInconsistentData))
}

func TestReferencedIDs(t *testing.T) {
	a, b, c := domain.NewRootID(), domain.NewRootID(), domain.NewRootID()
	v := models.Version{
		OrganizationID: &a,
		Roles:          []models.RoleRelation{{OrganizationID: a}, {OrganizationID: b}},
		Channels:       []models.ChannelConnection{{ChannelID: c}, {ChannelID: c}},
	}
	orgs, channels := ReferencedIDs(v)
	if len(orgs) != 2 || orgs[0] != a || orgs[1] != b {
		t.Fatalf("unexpected orgs %v", orgs)
	}
	if len(channels) != 1 || channels[0] != c {
		t.Fatalf("unexpected channels %v", channels)
	}
}
