package service

import (
	"context"
	"errors"

	"go.uber.org/mock/gomock"

	"whitelabel/internal/customdomain/models"
	"whitelabel/internal/provider"
	"whitelabel/internal/sentinel"
	tenantmodels "whitelabel/internal/tenant/models"
	dErrors "whitelabel/pkg/domain-errors"
)

func outage() error {
	return provider.NewProviderError(provider.ErrorProviderOutage, "vercel", "bad gateway", nil)
}

func (s *ServiceSuite) TestAddDomainValidation() {
	tenant := s.newTenant("", false)

	for _, raw := range []string{"", "not a domain", "acme", "acme_corp.biz", "https://"} {
		_, err := s.service.AddDomain(context.Background(), tenant.ID, raw)
		s.Require().Error(err, raw)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidDomainFormat), raw)
	}

	s.Run("platform subdomains are rejected", func() {
		_, err := s.service.AddDomain(context.Background(), tenant.ID, "acme.platform.test")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidDomainFormat))
	})
}

func (s *ServiceSuite) TestAddDomainTenantChecks() {
	s.Run("unknown tenant", func() {
		tenant := s.newTenant("", false)
		s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.AddDomain(context.Background(), tenant.ID, "acme.biz")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("suspended tenant", func() {
		tenant := s.newTenant("", false)
		tenant.Status = tenantmodels.TenantStatusSuspended
		s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(tenant, nil)

		_, err := s.service.AddDomain(context.Background(), tenant.ID, "acme.biz")
		s.True(dErrors.HasCode(err, dErrors.CodeTenantSuspended))
	})

	s.Run("domain held by another tenant makes no provider call", func() {
		tenant := s.newTenant("", false)
		other := s.newTenant("acme.biz", true)
		s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(tenant, nil)
		s.mockTenants.EXPECT().FindByCustomDomain(gomock.Any(), "acme.biz").Return(other, nil)

		_, err := s.service.AddDomain(context.Background(), tenant.ID, "https://acme.biz")
		s.True(dErrors.HasCode(err, dErrors.CodeDomainAlreadyClaimed))
	})
}

func (s *ServiceSuite) TestAddDomainSuccess() {
	tenant := s.newTenant("", false)
	s.expectConfigured(true)
	s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(tenant, nil)
	s.mockTenants.EXPECT().FindByCustomDomain(gomock.Any(), "acme.biz").Return(nil, sentinel.ErrNotFound)
	s.mockProvider.EXPECT().AddDomain(gomock.Any(), "acme.biz").Return(provider.RegistrationCreated, nil)
	s.mockProvider.EXPECT().AddDomain(gomock.Any(), "www.acme.biz").Return(provider.RegistrationExisting, nil)
	s.mockTenants.EXPECT().ClaimDomain(gomock.Any(), tenant.ID, "acme.biz", s.now).Return(nil)
	s.expectEvent(models.EventDomainAttached, tenant.ID, "acme.biz")
	s.expectDomainConfig("acme.biz", rankedConfig("76.76.21.21", "d1.vercel-dns-017.com."), nil)

	result, err := s.service.AddDomain(context.Background(), tenant.ID, "WWW.Acme.Biz/")
	s.Require().NoError(err)
	s.Equal("acme.biz", result.Domain)
	s.Equal(models.DNSConfig{ARecord: "76.76.21.21", CNAMERecord: "d1.vercel-dns-017.com", Source: models.DNSSourceProvider}, result.DNSConfig)
	s.Equal(map[string]models.ProviderOutcome{
		"acme.biz":     models.OutcomeRegistered,
		"www.acme.biz": models.OutcomeAlreadyRegistered,
	}, result.ProviderStatus)
}

func (s *ServiceSuite) TestAddDomainReaddIsIdempotent() {
	tenant := s.newTenant("acme.biz", true)
	s.expectConfigured(true)
	s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(tenant, nil)
	s.mockProvider.EXPECT().AddDomain(gomock.Any(), "acme.biz").Return(provider.RegistrationExisting, nil)
	s.mockProvider.EXPECT().AddDomain(gomock.Any(), "www.acme.biz").Return(provider.RegistrationExisting, nil)
	s.expectDomainConfig("acme.biz", nil, outage())
	// No FindByCustomDomain, ClaimDomain or Publish: local state is untouched.

	result, err := s.service.AddDomain(context.Background(), tenant.ID, "acme.biz")
	s.Require().NoError(err)
	s.Equal(models.DefaultDNSConfig(), result.DNSConfig)
	s.True(tenant.DomainVerified)
}

func (s *ServiceSuite) TestAddDomainProviderFailuresAreNotFatal() {
	tenant := s.newTenant("", false)
	s.expectConfigured(true)
	s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(tenant, nil)
	s.mockTenants.EXPECT().FindByCustomDomain(gomock.Any(), "acme.biz").Return(nil, sentinel.ErrNotFound)
	gomock.InOrder(
		s.mockProvider.EXPECT().AddDomain(gomock.Any(), "acme.biz").Return(provider.Registration(""), outage()),
		s.mockProvider.EXPECT().AddDomain(gomock.Any(), "acme.biz").Return(provider.RegistrationCreated, nil),
	)
	s.mockProvider.EXPECT().AddDomain(gomock.Any(), "www.acme.biz").
		Return(provider.Registration(""), provider.ErrDomainInUseElsewhere).Times(1)
	s.mockTenants.EXPECT().ClaimDomain(gomock.Any(), tenant.ID, "acme.biz", s.now).Return(nil)
	s.expectEvent(models.EventDomainAttached, tenant.ID, "acme.biz")
	s.expectDomainConfig("acme.biz", &provider.DomainConfig{}, nil)

	result, err := s.service.AddDomain(context.Background(), tenant.ID, "acme.biz")
	s.Require().NoError(err)
	s.Equal(models.OutcomeRegistered, result.ProviderStatus["acme.biz"], "retryable failure is retried")
	s.Equal(models.OutcomeInUseElsewhere, result.ProviderStatus["www.acme.biz"])
	s.Equal(models.DNSSourceProvider, result.DNSConfig.Source)
	s.Equal(models.DefaultARecord, result.DNSConfig.ARecord, "empty recommendation lists fall back per field")
}

func (s *ServiceSuite) TestAddDomainRetriesAreBounded() {
	tenant := s.newTenant("", false)
	s.expectConfigured(true)
	s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(tenant, nil)
	s.mockTenants.EXPECT().FindByCustomDomain(gomock.Any(), "acme.biz").Return(nil, sentinel.ErrNotFound)
	s.mockProvider.EXPECT().AddDomain(gomock.Any(), "acme.biz").Return(provider.Registration(""), outage()).Times(3)
	s.mockProvider.EXPECT().AddDomain(gomock.Any(), "www.acme.biz").
		Return(provider.Registration(""), provider.NewProviderError(provider.ErrorAuthentication, "vercel", "forbidden", nil)).Times(1)
	s.mockTenants.EXPECT().ClaimDomain(gomock.Any(), tenant.ID, "acme.biz", s.now).Return(nil)
	s.expectEvent(models.EventDomainAttached, tenant.ID, "acme.biz")
	s.expectDomainConfig("acme.biz", nil, outage())

	result, err := s.service.AddDomain(context.Background(), tenant.ID, "acme.biz")
	s.Require().NoError(err)
	s.Equal(models.OutcomeFailed, result.ProviderStatus["acme.biz"])
	s.Equal(models.OutcomeFailed, result.ProviderStatus["www.acme.biz"])
}

func (s *ServiceSuite) TestAddDomainWithoutProviderCredentials() {
	tenant := s.newTenant("", false)
	s.expectConfigured(false)
	s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(tenant, nil)
	s.mockTenants.EXPECT().FindByCustomDomain(gomock.Any(), "acme.biz").Return(nil, sentinel.ErrNotFound)
	s.mockTenants.EXPECT().ClaimDomain(gomock.Any(), tenant.ID, "acme.biz", s.now).Return(nil)
	s.expectEvent(models.EventDomainAttached, tenant.ID, "acme.biz")

	result, err := s.service.AddDomain(context.Background(), tenant.ID, "acme.biz")
	s.Require().NoError(err)
	s.Equal(models.OutcomeSkipped, result.ProviderStatus["acme.biz"])
	s.Equal(models.OutcomeSkipped, result.ProviderStatus["www.acme.biz"])
	s.Equal(models.DefaultDNSConfig(), result.DNSConfig)
}

func (s *ServiceSuite) TestAddDomainLosesWriteRace() {
	tenant := s.newTenant("", false)
	s.expectConfigured(false)
	s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(tenant, nil)
	s.mockTenants.EXPECT().FindByCustomDomain(gomock.Any(), "acme.biz").Return(nil, sentinel.ErrNotFound)
	s.mockTenants.EXPECT().ClaimDomain(gomock.Any(), tenant.ID, "acme.biz", s.now).
		Return(errors.Join(errors.New("unique violation"), sentinel.ErrAlreadyUsed))

	_, err := s.service.AddDomain(context.Background(), tenant.ID, "acme.biz")
	s.True(dErrors.HasCode(err, dErrors.CodeDomainAlreadyClaimed))
}

func (s *ServiceSuite) TestAddDomainReplacesPreviousDomain() {
	tenant := s.newTenant("old.biz", true)
	s.expectConfigured(true)
	s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(tenant, nil)
	s.mockTenants.EXPECT().FindByCustomDomain(gomock.Any(), "acme.biz").Return(nil, sentinel.ErrNotFound)
	s.mockProvider.EXPECT().AddDomain(gomock.Any(), gomock.Any()).Return(provider.RegistrationCreated, nil).Times(2)
	s.mockTenants.EXPECT().ClaimDomain(gomock.Any(), tenant.ID, "acme.biz", s.now).Return(nil)
	s.expectEvent(models.EventDomainAttached, tenant.ID, "acme.biz")
	s.mockProvider.EXPECT().RemoveDomain(gomock.Any(), "old.biz").Return(nil)
	s.mockProvider.EXPECT().RemoveDomain(gomock.Any(), "www.old.biz").Return(nil)
	s.expectEvent(models.EventDomainDetached, tenant.ID, "old.biz")
	s.expectDomainConfig("acme.biz", rankedConfig("76.76.21.21", "cname.vercel-dns.com"), nil)

	result, err := s.service.AddDomain(context.Background(), tenant.ID, "acme.biz")
	s.Require().NoError(err)
	s.Equal("acme.biz", result.Domain)
}

func (s *ServiceSuite) TestRemoveDomain() {
	s.Run("no domain configured", func() {
		tenant := s.newTenant("", false)
		s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(tenant, nil)

		_, err := s.service.RemoveDomain(context.Background(), tenant.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNoDomainConfigured))
	})

	s.Run("deregisters and clears even when the provider fails", func() {
		tenant := s.newTenant("acme.biz", true)
		s.mockProvider.EXPECT().Configured().Return(true)
		s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(tenant, nil)
		s.mockProvider.EXPECT().RemoveDomain(gomock.Any(), "acme.biz").Return(nil)
		s.mockProvider.EXPECT().RemoveDomain(gomock.Any(), "www.acme.biz").
			Return(provider.NewProviderError(provider.ErrorAuthentication, "vercel", "forbidden", nil))
		s.mockTenants.EXPECT().ClearDomain(gomock.Any(), tenant.ID, s.now).Return(nil)
		s.expectEvent(models.EventDomainDetached, tenant.ID, "acme.biz")

		result, err := s.service.RemoveDomain(context.Background(), tenant.ID)
		s.Require().NoError(err)
		s.Equal("acme.biz", result.RemovedDomain)
		s.Equal(models.OutcomeRemoved, result.ProviderStatus["acme.biz"])
		s.Equal(models.OutcomeFailed, result.ProviderStatus["www.acme.biz"])
	})

	s.Run("store failure surfaces as internal", func() {
		tenant := s.newTenant("acme.biz", false)
		s.mockProvider.EXPECT().Configured().Return(false)
		s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(tenant, nil)
		s.mockTenants.EXPECT().ClearDomain(gomock.Any(), tenant.ID, s.now).Return(errors.New("connection reset"))

		_, err := s.service.RemoveDomain(context.Background(), tenant.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestPublishFailureIsLoggedOnly() {
	tenant := s.newTenant("", false)
	s.expectConfigured(false)
	s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(tenant, nil)
	s.mockTenants.EXPECT().FindByCustomDomain(gomock.Any(), "acme.biz").Return(nil, sentinel.ErrNotFound)
	s.mockTenants.EXPECT().ClaimDomain(gomock.Any(), tenant.ID, "acme.biz", s.now).Return(nil)
	s.mockEvents.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	_, err := s.service.AddDomain(context.Background(), tenant.ID, "acme.biz")
	s.NoError(err)
}
