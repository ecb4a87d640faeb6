package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	moderationmodels "moncomptepro/internal/moderation/models"
	"moncomptepro/internal/organization/join"
	"moncomptepro/internal/organization/join/handler/mocks"
	"moncomptepro/internal/organization/models"
	dErrors "moncomptepro/pkg/domain-errors"
	"moncomptepro/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type JoinHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestJoinHandlerSuite(t *testing.T) {
	suite.Run(t, new(JoinHandlerSuite))
}

func (s *JoinHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	h := New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)))

	s.router = chi.NewRouter()
	h.Register(s.router)
	h.RegisterAdmin(s.router)
}

func (s *JoinHandlerSuite) do(method, path string, body any, userID int64) *httptest.ResponseRecorder {
	req := testutil.WithUserID(testutil.NewJSONRequest(s.T(), method, path, body), userID)
	return testutil.DoRequest(s.router, req)
}

func decode(s *JoinHandlerSuite, w *httptest.ResponseRecorder) map[string]any {
	return *testutil.UnmarshalResponse[map[string]any](s.T(), w)
}

func (s *JoinHandlerSuite) TestJoinLinked() {
	s.service.EXPECT().Join(gomock.Any(), "41816609600069", int64(7)).Return(&join.Outcome{
		Kind:         join.OutcomeLinked,
		Rule:         join.RuleVerifiedDomain,
		Organization: &models.Organization{ID: 3},
		Link: &models.UserOrganizationLink{
			UserID:           7,
			OrganizationID:   3,
			VerificationType: models.VerificationVerifiedEmailDomain,
		},
	}, nil)

	w := s.do(http.MethodPost, "/organizations/join", JoinRequest{Siret: "418 166 096 00069"}, 7)

	s.Equal(http.StatusCreated, w.Code)
	resp := decode(s, w)
	s.Equal(float64(3), resp["organization_id"])
	s.Equal("verified_email_domain", resp["verification_type"])
	s.Equal(NextWelcome, resp["next"])
}

func (s *JoinHandlerSuite) TestJoinLinkedPendingContactVerification() {
	s.service.EXPECT().Join(gomock.Any(), "19690001900017", int64(7)).Return(&join.Outcome{
		Kind:         join.OutcomeLinked,
		Rule:         join.RuleSchoolOfficialContact,
		Organization: &models.Organization{ID: 4},
		Link: &models.UserOrganizationLink{
			UserID:                                7,
			OrganizationID:                        4,
			NeedsOfficialContactEmailVerification: true,
		},
	}, nil)

	w := s.do(http.MethodPost, "/organizations/join", JoinRequest{Siret: "19690001900017"}, 7)

	s.Equal(http.StatusCreated, w.Code)
	resp := decode(s, w)
	s.Nil(resp["verification_type"])
	s.Equal(NextOfficialContactEmailVerification, resp["next"])
}

func (s *JoinHandlerSuite) TestJoinBlocked() {
	s.service.EXPECT().Join(gomock.Any(), "41816609600069", int64(7)).Return(&join.Outcome{
		Kind:         join.OutcomeBlocked,
		Rule:         join.RuleJoinBlock,
		Organization: &models.Organization{ID: 3},
		Moderation:   &moderationmodels.Moderation{ID: 11, Type: moderationmodels.TypeOrganizationJoinBlock},
	}, nil)

	w := s.do(http.MethodPost, "/organizations/join", JoinRequest{Siret: "41816609600069"}, 7)

	s.Equal(http.StatusAccepted, w.Code)
	resp := decode(s, w)
	s.Equal("unable_to_auto_join", resp["error"])
	s.Equal(float64(11), resp["moderation_id"])
}

func (s *JoinHandlerSuite) TestJoinErrors() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"unavailable", dErrors.New(dErrors.CodeUnavailable, "organization registry unavailable"), http.StatusServiceUnavailable},
		{"invalid siret", dErrors.New(dErrors.CodeInvalidSiret, "invalid siret"), http.StatusBadRequest},
		{"inactive", dErrors.New(dErrors.CodeInactiveOrganization, "organization is not active"), http.StatusUnprocessableEntity},
		{"already member", dErrors.New(dErrors.CodeAlreadyMember, "user already belongs to organization"), http.StatusConflict},
		{"already requested", dErrors.New(dErrors.CodeAlreadyRequested, "a join request is already pending"), http.StatusConflict},
		{"user not found", dErrors.New(dErrors.CodeUserNotFound, "user not found"), http.StatusNotFound},
		{"internal", dErrors.Wrap(context.DeadlineExceeded, dErrors.CodeInternal, "failed to link user"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.service.EXPECT().Join(gomock.Any(), "41816609600069", int64(7)).Return(nil, tt.err)

			w := s.do(http.MethodPost, "/organizations/join", JoinRequest{Siret: "41816609600069"}, 7)

			testutil.AssertStatusAndError(s.T(), w, tt.status, string(dErrors.CodeOf(tt.err)))
		})
	}
}

func (s *JoinHandlerSuite) TestJoinRejectsMalformedSiret() {
	w := s.do(http.MethodPost, "/organizations/join", JoinRequest{Siret: "12345"}, 7)

	testutil.AssertStatusAndError(s.T(), w, http.StatusBadRequest, "invalid_siret")
}

func (s *JoinHandlerSuite) TestJoinRequiresUser() {
	w := s.do(http.MethodPost, "/organizations/join", JoinRequest{Siret: "41816609600069"}, 0)

	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *JoinHandlerSuite) TestSuggestions() {
	s.service.EXPECT().SuggestOrganizations(gomock.Any(), int64(7)).Return([]*models.Organization{
		{ID: 3, Siret: "41816609600069", Info: models.OrganizationInfo{Libelle: "Acme SAS"}},
		{ID: 4, Siret: "19690001900017"},
	}, nil)

	w := s.do(http.MethodGet, "/organizations/suggestions", nil, 7)

	s.Equal(http.StatusOK, w.Code)
	orgs := decode(s, w)["organizations"].([]any)
	s.Require().Len(orgs, 2)
	s.Equal("Acme SAS", orgs[0].(map[string]any)["libelle"])
	s.Equal("19690001900017", orgs[1].(map[string]any)["libelle"])
}

func (s *JoinHandlerSuite) TestSuggestionsEmptyIsAnArray() {
	s.service.EXPECT().SuggestOrganizations(gomock.Any(), int64(7)).Return([]*models.Organization{}, nil)

	w := s.do(http.MethodGet, "/organizations/suggestions", nil, 7)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"organizations":[]}`, w.Body.String())
}

func (s *JoinHandlerSuite) TestForceJoin() {
	s.service.EXPECT().ForceJoinOrganization(gomock.Any(), int64(3), int64(9), true).Return(&models.UserOrganizationLink{
		UserID:         9,
		OrganizationID: 3,
		IsExternal:     true,
	}, nil)

	w := s.do(http.MethodPost, "/admin/organizations/3/members", ForceJoinRequest{UserID: 9, IsExternal: true}, 0)

	s.Equal(http.StatusCreated, w.Code)
	resp := decode(s, w)
	s.Equal(true, resp["is_external"])
	s.NotContains(resp, "next")
}

func (s *JoinHandlerSuite) TestForceJoinValidation() {
	s.Run("bad organization id", func() {
		w := s.do(http.MethodPost, "/admin/organizations/abc/members", ForceJoinRequest{UserID: 9}, 0)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("missing user id", func() {
		w := s.do(http.MethodPost, "/admin/organizations/3/members", ForceJoinRequest{}, 0)
		testutil.AssertStatusAndError(s.T(), w, http.StatusBadRequest, "validation_error")
	})

	s.Run("not found", func() {
		s.service.EXPECT().ForceJoinOrganization(gomock.Any(), int64(3), int64(9), false).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "user not found"))

		w := s.do(http.MethodPost, "/admin/organizations/3/members", ForceJoinRequest{UserID: 9}, 0)
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *JoinHandlerSuite) TestAddDomain() {
	s.Run("defaults to authorized", func() {
		s.service.EXPECT().AddOrganizationDomain(gomock.Any(), int64(3), "acme.example", join.DomainAuthorized).
			Return(&models.Organization{ID: 3, AuthorizedEmailDomains: []string{"acme.example"}}, nil)

		w := s.do(http.MethodPost, "/admin/organizations/3/domains", AddDomainRequest{Domain: " ACME.example "}, 0)

		s.Equal(http.StatusOK, w.Code)
		s.JSONEq(`{
			"organization_id": 3,
			"authorized_email_domains": ["acme.example"],
			"verified_email_domains": [],
			"external_authorized_email_domains": []
		}`, w.Body.String())
	})

	s.Run("unknown kind", func() {
		w := s.do(http.MethodPost, "/admin/organizations/3/domains", AddDomainRequest{Domain: "acme.example", Kind: "primary"}, 0)
		testutil.AssertStatusAndError(s.T(), w, http.StatusBadRequest, "validation_error")
	})

	s.Run("missing organization", func() {
		s.service.EXPECT().AddOrganizationDomain(gomock.Any(), int64(4), "acme.example", join.DomainVerified).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "organization not found"))

		w := s.do(http.MethodPost, "/admin/organizations/4/domains", AddDomainRequest{Domain: "acme.example", Kind: "verified"}, 0)
		testutil.AssertStatusAndError(s.T(), w, http.StatusNotFound, "not_found")
	})
}
