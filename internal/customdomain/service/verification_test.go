package service

import (
	"context"
	"errors"

	"go.uber.org/mock/gomock"

	"whitelabel/internal/customdomain/models"
	"whitelabel/internal/provider"
	"whitelabel/internal/resolver"
	"whitelabel/internal/sentinel"
	dErrors "whitelabel/pkg/domain-errors"
)

func notFound() error {
	return provider.NewProviderError(provider.ErrorNotFound, "vercel", "missing", nil)
}

func (s *ServiceSuite) TestVerifyDomainWithoutDomain() {
	tenant := s.newTenant("", false)
	s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(tenant, nil)

	_, err := s.service.VerifyDomain(context.Background(), tenant.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNoDomainConfigured))
}

func (s *ServiceSuite) TestVerifyDomainAlreadyVerifiedIsTerminal() {
	tenant := s.newTenant("acme.biz", true)
	s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(tenant, nil)

	result, err := s.service.VerifyDomain(context.Background(), tenant.ID)
	s.Require().NoError(err)
	s.Equal(models.StateVerified, result.State)
	s.True(result.Verified)
}

func (s *ServiceSuite) TestVerifyDomainProviderConfirms() {
	tenant := s.newTenant("acme.biz", false)
	s.expectConfigured(true)
	s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(tenant, nil)
	s.expectDomainConfig("acme.biz", rankedConfig("76.76.21.21", "cname.vercel-dns.com"), nil)
	s.mockProvider.EXPECT().GetProjectDomain(gomock.Any(), "acme.biz").
		Return(&provider.ProjectDomain{Name: "acme.biz", Verified: true}, nil)
	s.mockTenants.EXPECT().MarkDomainVerified(gomock.Any(), tenant.ID, "acme.biz", s.now).Return(nil)
	s.expectEvent(models.EventDomainVerified, tenant.ID, "acme.biz")

	result, err := s.service.VerifyDomain(context.Background(), tenant.ID)
	s.Require().NoError(err)
	s.Equal(models.StateVerified, result.State)
	s.True(result.Verified)
	s.Equal("acme.biz", result.Domain)
}

func (s *ServiceSuite) TestVerifyDomainChangedConcurrently() {
	tenant := s.newTenant("acme.biz", false)
	s.expectConfigured(true)
	s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(tenant, nil)
	s.expectDomainConfig("acme.biz", nil, notFound())
	s.mockProvider.EXPECT().GetProjectDomain(gomock.Any(), "acme.biz").
		Return(&provider.ProjectDomain{Name: "acme.biz", Verified: true}, nil)
	s.mockTenants.EXPECT().MarkDomainVerified(gomock.Any(), tenant.ID, "acme.biz", s.now).
		Return(errors.Join(errors.New("domain moved"), sentinel.ErrInvalidState))

	_, err := s.service.VerifyDomain(context.Background(), tenant.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestVerifyDomainDNSObserved() {
	s.Run("apex A record matches provider recommendation", func() {
		tenant := s.newTenant("acme.biz", false)
		s.mockProvider.EXPECT().Configured().Return(true).Times(2)
		s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(tenant, nil)
		s.expectDomainConfig("acme.biz", rankedConfig("76.76.21.99", "cname.vercel-dns.com"), nil)
		s.mockProvider.EXPECT().GetProjectDomain(gomock.Any(), "acme.biz").
			Return(&provider.ProjectDomain{Name: "acme.biz", Verified: false}, nil)
		s.expectDNS("acme.biz", []string{"76.76.21.22"}, nil, nil, nil)

		result, err := s.service.VerifyDomain(context.Background(), tenant.ID)
		s.Require().NoError(err)
		s.Equal(models.StateDNSObserved, result.State)
		s.False(result.Verified)
		s.Require().NotNil(result.DNSConfigured)
		s.True(*result.DNSConfigured)
		s.Equal(models.MessageDNSObserved, result.Message)
	})

	s.Run("www CNAME under the provider suffix", func() {
		tenant := s.newTenant("acme.biz", false)
		s.mockProvider.EXPECT().Configured().Return(false).Times(2)
		s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(tenant, nil)
		s.expectDNS("acme.biz", nil, nil, []string{"d1.vercel-dns-017.vercel-dns.com."}, nil)

		result, err := s.service.VerifyDomain(context.Background(), tenant.ID)
		s.Require().NoError(err)
		s.Equal(models.StateDNSObserved, result.State)
	})

	s.Run("configured extra IP is accepted", func() {
		tenant := s.newTenant("acme.biz", false)
		s.mockProvider.EXPECT().Configured().Return(false).Times(2)
		s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(tenant, nil)
		s.expectDNS("acme.biz", []string{"203.0.113.7"}, nil, nil, nil)

		result, err := s.service.VerifyDomain(context.Background(), tenant.ID)
		s.Require().NoError(err)
		s.Equal(models.StateDNSObserved, result.State)
	})
}

func (s *ServiceSuite) TestVerifyDomainPendingDNS() {
	s.Run("records point elsewhere", func() {
		tenant := s.newTenant("acme.biz", false)
		s.mockProvider.EXPECT().Configured().Return(true).Times(2)
		s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(tenant, nil)
		s.expectDomainConfig("acme.biz", rankedConfig("76.76.21.21", "d1.vercel-dns-017.com."), nil)
		s.mockProvider.EXPECT().GetProjectDomain(gomock.Any(), "acme.biz").Return(nil, notFound())
		s.expectDNS("acme.biz", []string{"198.51.100.1"}, nil, []string{"shops.example-host.net."}, nil)

		result, err := s.service.VerifyDomain(context.Background(), tenant.ID)
		s.Require().NoError(err)
		s.Equal(models.StatePendingDNS, result.State)
		s.False(result.Verified)
		s.Require().NotNil(result.DNSConfigured)
		s.False(*result.DNSConfigured)
		s.Equal("76.76.21.21", result.ExpectedARecord)
		s.Equal("d1.vercel-dns-017.com", result.ExpectedCNAME)
		s.Equal(models.MessagePendingDNS, result.Message)
		s.False(s.breaker.IsOpen(), "a missing project domain is a healthy answer")
	})

	s.Run("resolver failures are inconclusive, not errors", func() {
		tenant := s.newTenant("acme.biz", false)
		s.mockProvider.EXPECT().Configured().Return(false).Times(2)
		s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(tenant, nil)
		s.expectDNS("acme.biz", nil, nil, nil, resolver.ErrLookupFailed)

		result, err := s.service.VerifyDomain(context.Background(), tenant.ID)
		s.Require().NoError(err)
		s.Equal(models.StatePendingDNS, result.State)
		s.Equal(models.DefaultARecord, result.ExpectedARecord)
		s.Equal(models.DefaultCNAMERecord, result.ExpectedCNAME)
	})
}

func (s *ServiceSuite) TestVerifyDomainBreakerSkipsProvider() {
	tenant := s.newTenant("acme.biz", false)
	s.expectConfigured(true)
	s.mockTenants.EXPECT().FindByID(gomock.Any(), tenant.ID).Return(tenant, nil).Times(3)
	s.mockProvider.EXPECT().GetDomainConfig(gomock.Any(), "acme.biz").Return(nil, outage()).Times(3)
	s.mockProvider.EXPECT().GetProjectDomain(gomock.Any(), "acme.biz").Return(nil, outage()).Times(2)
	s.mockResolver.EXPECT().LookupA(gomock.Any(), gomock.Any()).Return(nil, nil).Times(3)
	s.mockResolver.EXPECT().LookupCNAME(gomock.Any(), gomock.Any()).Return(nil, nil).Times(6)

	for i := 0; i < 3; i++ {
		result, err := s.service.VerifyDomain(context.Background(), tenant.ID)
		s.Require().NoError(err)
		s.Equal(models.StatePendingDNS, result.State)
	}
	s.True(s.breaker.IsOpen())
}

func (s *ServiceSuite) TestGetDNSTargets() {
	s.Run("rank one selected", func() {
		s.mockProvider.EXPECT().Configured().Return(true)
		s.expectDomainConfig("acme.biz", rankedConfig("76.76.21.61", "D1.Vercel-DNS-017.com."), nil)

		cfg := s.service.GetDNSTargets(context.Background(), "acme.biz")
		s.Equal(models.DNSConfig{ARecord: "76.76.21.61", CNAMERecord: "d1.vercel-dns-017.com", Source: models.DNSSourceProvider}, cfg)
	})

	s.Run("provider error falls back", func() {
		s.mockProvider.EXPECT().Configured().Return(true)
		s.expectDomainConfig("acme.biz", nil, outage())

		s.Equal(models.DefaultDNSConfig(), s.service.GetDNSTargets(context.Background(), "acme.biz"))
	})

	s.Run("empty domain returns defaults without a provider call", func() {
		s.Equal(models.DefaultDNSConfig(), s.service.GetDNSTargets(context.Background(), ""))
	})
}
