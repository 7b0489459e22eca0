package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"whitelabel/internal/customdomain/handler/mocks"
	"whitelabel/internal/customdomain/models"
	id "whitelabel/pkg/domain"
	dErrors "whitelabel/pkg/domain-errors"
	"whitelabel/pkg/platform/httputil"
)

type HandlerSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	service  *mocks.MockService
	router   http.Handler
	tenantID id.TenantID
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.tenantID = id.NewTenantID()
	s.router = s.newRouter(DefaultVerifyRateLimit)
}

func (s *HandlerSuite) newRouter(limit int) http.Handler {
	h := New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)), WithVerifyRateLimit(limit))
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) domainPath(suffix string) string {
	return "/tenants/" + s.tenantID.String() + "/domain" + suffix
}

func decode[T any](s *HandlerSuite, rec *httptest.ResponseRecorder) T {
	var v T
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func (s *HandlerSuite) TestAddDomain() {
	s.Run("returns dns config and provider status", func() {
		s.service.EXPECT().AddDomain(gomock.Any(), s.tenantID, "https://www.Acme.biz/").Return(&models.AddDomainResult{
			Domain:    "acme.biz",
			DNSConfig: models.DefaultDNSConfig(),
			ProviderStatus: map[string]models.ProviderOutcome{
				"acme.biz":     models.OutcomeRegistered,
				"www.acme.biz": models.OutcomeRegistered,
			},
		}, nil)

		rec := s.do(http.MethodPost, s.domainPath(""), `{"domain":" https://www.Acme.biz/ "}`)
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

		body := decode[map[string]any](s, rec)
		s.Equal("acme.biz", body["domain"])
		dnsConfig := body["dnsConfig"].(map[string]any)
		s.Equal(models.DefaultARecord, dnsConfig["aRecord"])
		s.Equal(models.DefaultCNAMERecord, dnsConfig["cnameRecord"])
		s.Equal("fallback", dnsConfig["source"])
	})

	s.Run("invalid format is a 400", func() {
		s.service.EXPECT().AddDomain(gomock.Any(), s.tenantID, "not a domain").
			Return(nil, dErrors.New(dErrors.CodeInvalidDomainFormat, "invalid domain format"))

		rec := s.do(http.MethodPost, s.domainPath(""), `{"domain":"not a domain"}`)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal("invalid_domain_format", decode[httputil.ErrorResponse](s, rec).Error)
	})

	s.Run("claimed domain is a 400", func() {
		s.service.EXPECT().AddDomain(gomock.Any(), s.tenantID, "acme.biz").
			Return(nil, dErrors.New(dErrors.CodeDomainAlreadyClaimed, "domain is already in use by another tenant"))

		rec := s.do(http.MethodPost, s.domainPath(""), `{"domain":"acme.biz"}`)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal("domain_already_claimed", decode[httputil.ErrorResponse](s, rec).Error)
	})

	s.Run("missing domain never reaches the service", func() {
		rec := s.do(http.MethodPost, s.domainPath(""), `{"domain":"  "}`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("unknown tenant is a 404", func() {
		s.service.EXPECT().AddDomain(gomock.Any(), s.tenantID, "acme.biz").
			Return(nil, dErrors.New(dErrors.CodeNotFound, "tenant not found"))

		rec := s.do(http.MethodPost, s.domainPath(""), `{"domain":"acme.biz"}`)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("malformed tenant id", func() {
		rec := s.do(http.MethodPost, "/tenants/not-a-uuid/domain", `{"domain":"acme.biz"}`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestRemoveDomain() {
	s.Run("returns the removed domain", func() {
		s.service.EXPECT().RemoveDomain(gomock.Any(), s.tenantID).
			Return(&models.RemoveDomainResult{RemovedDomain: "acme.biz"}, nil)

		rec := s.do(http.MethodDelete, s.domainPath(""), "")
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Equal("acme.biz", decode[map[string]any](s, rec)["removedDomain"])
	})

	s.Run("no domain configured is a 404", func() {
		s.service.EXPECT().RemoveDomain(gomock.Any(), s.tenantID).
			Return(nil, dErrors.New(dErrors.CodeNoDomainConfigured, "no custom domain configured"))

		rec := s.do(http.MethodDelete, s.domainPath(""), "")
		s.Equal(http.StatusNotFound, rec.Code)
		s.Equal("no_domain_configured", decode[httputil.ErrorResponse](s, rec).Error)
	})
}

func (s *HandlerSuite) TestVerifyDomain() {
	s.Run("pending result is a 200 with expected records", func() {
		s.service.EXPECT().VerifyDomain(gomock.Any(), s.tenantID).
			Return(models.PendingDNSResult("acme.biz", models.DefaultDNSConfig()), nil)

		rec := s.do(http.MethodPost, s.domainPath("/verify"), "")
		s.Require().Equal(http.StatusOK, rec.Code)

		body := decode[map[string]any](s, rec)
		s.Equal(false, body["verified"])
		s.Equal("pending_dns", body["state"])
		s.Equal(false, body["dnsConfigured"])
		s.Equal(models.DefaultARecord, body["expectedARecord"])
		s.Equal(models.DefaultCNAMERecord, body["expectedCname"])
		s.Equal(models.MessagePendingDNS, body["message"])
	})

	s.Run("verified result", func() {
		s.service.EXPECT().VerifyDomain(gomock.Any(), s.tenantID).Return(models.VerifiedResult("acme.biz"), nil)

		rec := s.do(http.MethodPost, s.domainPath("/verify"), "")
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Equal(true, decode[map[string]any](s, rec)["verified"])
	})
}

func (s *HandlerSuite) TestVerifyDomainRateLimited() {
	s.router = s.newRouter(2)
	s.service.EXPECT().VerifyDomain(gomock.Any(), s.tenantID).
		Return(models.PendingDNSResult("acme.biz", models.DefaultDNSConfig()), nil).Times(2)

	s.Equal(http.StatusOK, s.do(http.MethodPost, s.domainPath("/verify"), "").Code)
	s.Equal(http.StatusOK, s.do(http.MethodPost, s.domainPath("/verify"), "").Code)

	rec := s.do(http.MethodPost, s.domainPath("/verify"), "")
	s.Equal(http.StatusTooManyRequests, rec.Code)
	s.Equal("rate_limited", decode[httputil.ErrorResponse](s, rec).Error)

	other := id.NewTenantID()
	s.service.EXPECT().VerifyDomain(gomock.Any(), other).
		Return(models.PendingDNSResult("globex.io", models.DefaultDNSConfig()), nil)
	s.Equal(http.StatusOK, s.do(http.MethodPost, "/tenants/"+other.String()+"/domain/verify", "").Code,
		"limit is keyed per tenant")
}

func (s *HandlerSuite) TestDNSConfig() {
	s.Run("normalizes the query domain", func() {
		s.service.EXPECT().GetDNSTargets(gomock.Any(), "acme.biz").Return(models.DNSConfig{
			ARecord:     "76.76.21.61",
			CNAMERecord: "d1.vercel-dns-017.com",
			Source:      models.DNSSourceProvider,
		})

		rec := s.do(http.MethodGet, "/domain/dns-config?domain=WWW.Acme.biz", "")
		s.Require().Equal(http.StatusOK, rec.Code)
		body := decode[models.DNSConfig](s, rec)
		s.Equal("76.76.21.61", body.ARecord)
		s.Equal(models.DNSSourceProvider, body.Source)
	})

	s.Run("invalid domain still answers with defaults", func() {
		s.service.EXPECT().GetDNSTargets(gomock.Any(), "").Return(models.DefaultDNSConfig())

		rec := s.do(http.MethodGet, "/domain/dns-config?domain=%21%21", "")
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Equal(models.DefaultDNSConfig(), decode[models.DNSConfig](s, rec))
	})
}
