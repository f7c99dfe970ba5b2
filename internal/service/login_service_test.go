package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"couponmart/internal/apperr"
	"couponmart/internal/config"
	"couponmart/internal/models"
	"couponmart/internal/security"
	"couponmart/internal/session"
)

type loginFixture struct {
	login     *LoginService
	registry  *session.Registry
	companies *fakeCompanyRepo
	customers *fakeCustomerRepo
	coupons   *fakeCouponRepo
}

func newLoginFixture(t *testing.T) *loginFixture {
	t.Helper()

	companies := newFakeCompanyRepo()
	customers := newFakeCustomerRepo()
	coupons := newFakeCouponRepo()
	registry := session.NewRegistry()

	login := NewLoginService(
		companies, customers, coupons,
		registry, nil, nil,
		config.SecurityConfig{AdminName: "admin@admin.com", AdminSecret: "hunter2"},
		zerolog.Nop(),
	)

	ctx := context.Background()

	companyHash, err := security.HashPassword("acme-pass")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if _, err := companies.Create(ctx, models.Company{
		Name: "ACME", Email: "acme@corp.com", PasswordHash: companyHash,
	}); err != nil {
		t.Fatalf("seed company: %v", err)
	}

	customerHash, err := security.HashPassword("jane-pass")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if _, err := customers.Create(ctx, models.Customer{
		FirstName: "Jane", LastName: "Doe", Email: "jane@mail.com", PasswordHash: customerHash,
	}); err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	return &loginFixture{
		login:     login,
		registry:  registry,
		companies: companies,
		customers: customers,
		coupons:   coupons,
	}
}

func TestLoginRejectsUnknownType(t *testing.T) {
	f := newLoginFixture(t)
	ctx := context.Background()

	for _, loginType := range []string{"", "admin", "Company", "CUSTOMER ", "ROOT"} {
		_, err := f.login.Login(ctx, "acme@corp.com", "acme-pass", loginType)
		if !apperr.IsCode(err, apperr.CodeInvalidLoginRequest) {
			t.Errorf("login type %q: err = %v, want invalid_login_request", loginType, err)
		}
	}
	if f.registry.Len() != 0 {
		t.Errorf("sessions issued for rejected login types: %d", f.registry.Len())
	}
}

func TestAdminLogin(t *testing.T) {
	f := newLoginFixture(t)
	ctx := context.Background()

	s, err := f.login.Login(ctx, "admin@admin.com", "hunter2", "ADMIN")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if s.Role != models.RoleAdmin {
		t.Errorf("role = %q, want ADMIN", s.Role)
	}
	if _, ok := s.Client.(*AdminService); !ok {
		t.Errorf("client type = %T, want *AdminService", s.Client)
	}
}

func TestAdminLoginRequiresBothNameAndSecret(t *testing.T) {
	f := newLoginFixture(t)
	ctx := context.Background()

	cases := []struct {
		name, email, password string
	}{
		{"wrong name", "other@admin.com", "hunter2"},
		{"wrong secret", "admin@admin.com", "wrong"},
		{"both wrong", "other@admin.com", "wrong"},
	}
	for _, tc := range cases {
		_, err := f.login.Login(ctx, tc.email, tc.password, "ADMIN")
		if !apperr.IsCode(err, apperr.CodeInvalidCredentials) {
			t.Errorf("%s: err = %v, want invalid_credentials", tc.name, err)
		}
	}
}

func TestCompanyLogin(t *testing.T) {
	f := newLoginFixture(t)
	ctx := context.Background()

	s, err := f.login.Login(ctx, "acme@corp.com", "acme-pass", "COMPANY")
	if err != nil {
		t.Fatalf("company login: %v", err)
	}
	if s.Role != models.RoleCompany {
		t.Errorf("role = %q, want COMPANY", s.Role)
	}
	client, ok := s.Client.(*CompanyService)
	if !ok {
		t.Fatalf("client type = %T, want *CompanyService", s.Client)
	}
	if client.CompanyID() != s.IdentityID {
		t.Errorf("client bound to company %d, session says %d", client.CompanyID(), s.IdentityID)
	}
}

func TestCustomerLogin(t *testing.T) {
	f := newLoginFixture(t)
	ctx := context.Background()

	s, err := f.login.Login(ctx, "jane@mail.com", "jane-pass", "CUSTOMER")
	if err != nil {
		t.Fatalf("customer login: %v", err)
	}
	if s.Role != models.RoleCustomer {
		t.Errorf("role = %q, want CUSTOMER", s.Role)
	}
	if _, ok := s.Client.(*CustomerService); !ok {
		t.Errorf("client type = %T, want *CustomerService", s.Client)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	f := newLoginFixture(t)
	ctx := context.Background()

	cases := []struct {
		name, email, password, loginType string
	}{
		{"unknown company email", "nobody@corp.com", "acme-pass", "COMPANY"},
		{"wrong company password", "acme@corp.com", "wrong", "COMPANY"},
		{"unknown customer email", "nobody@mail.com", "jane-pass", "CUSTOMER"},
		{"wrong customer password", "jane@mail.com", "wrong", "CUSTOMER"},
		{"customer creds on company type", "jane@mail.com", "jane-pass", "COMPANY"},
	}
	for _, tc := range cases {
		_, err := f.login.Login(ctx, tc.email, tc.password, tc.loginType)
		if !apperr.IsCode(err, apperr.CodeInvalidCredentials) {
			t.Errorf("%s: err = %v, want invalid_credentials", tc.name, err)
		}
	}
	if f.registry.Len() != 0 {
		t.Errorf("sessions issued for failed logins: %d", f.registry.Len())
	}
}

func TestEachLoginIssuesFreshSession(t *testing.T) {
	f := newLoginFixture(t)
	ctx := context.Background()

	first, err := f.login.Login(ctx, "jane@mail.com", "jane-pass", "CUSTOMER")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	second, err := f.login.Login(ctx, "jane@mail.com", "jane-pass", "CUSTOMER")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if first.Token == second.Token {
		t.Error("repeated login reused a token")
	}
	// Both sessions stay live; a second login does not revoke the first.
	if _, err := f.registry.Resolve(first.Token); err != nil {
		t.Errorf("first session dead after second login: %v", err)
	}
}

func TestLogout(t *testing.T) {
	f := newLoginFixture(t)
	ctx := context.Background()

	s, err := f.login.Login(ctx, "jane@mail.com", "jane-pass", "CUSTOMER")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	f.login.Logout(s.Token)
	if _, err := f.registry.Resolve(s.Token); !apperr.IsCode(err, apperr.CodeInvalidToken) {
		t.Fatalf("token resolves after logout: err = %v", err)
	}

	// Logging out twice, or with garbage, is harmless.
	f.login.Logout(s.Token)
	f.login.Logout("notatoken123456")
}
