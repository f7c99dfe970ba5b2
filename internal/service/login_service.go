package service

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"couponmart/internal/apperr"
	"couponmart/internal/cache"
	"couponmart/internal/config"
	"couponmart/internal/models"
	"couponmart/internal/repository"
	"couponmart/internal/security"
	"couponmart/internal/session"
)

// ImageStore is the slice of the object store the company service needs.
type ImageStore interface {
	PutCouponImage(ctx context.Context, couponID int64, r io.Reader, size int64, contentType string) (string, error)
	RemoveCouponImage(ctx context.Context, couponID int64) error
}

// LoginService validates credentials, selects the role-scoped client and
// hands it to the session registry for token issuance.
type LoginService struct {
	companies repository.CompanyRepository
	customers repository.CustomerRepository
	coupons   repository.CouponRepository
	registry  *session.Registry
	cache     *cache.CouponCache
	store     ImageStore
	security  config.SecurityConfig
	log       zerolog.Logger
}

func NewLoginService(
	companies repository.CompanyRepository,
	customers repository.CustomerRepository,
	coupons repository.CouponRepository,
	registry *session.Registry,
	couponCache *cache.CouponCache,
	store ImageStore,
	security config.SecurityConfig,
	log zerolog.Logger,
) *LoginService {
	return &LoginService{
		companies: companies,
		customers: customers,
		coupons:   coupons,
		registry:  registry,
		cache:     couponCache,
		store:     store,
		security:  security,
		log:       log,
	}
}

// Login authenticates the credentials for the given login type and returns a
// freshly issued session. The login type must be exactly ADMIN, COMPANY or
// CUSTOMER; anything else is a request-format failure, not a credential one.
func (l *LoginService) Login(ctx context.Context, email, password, loginType string) (*session.Session, error) {
	switch models.Role(loginType) {
	case models.RoleAdmin:
		return l.adminLogin(email, password)
	case models.RoleCompany:
		return l.companyLogin(ctx, email, password)
	case models.RoleCustomer:
		return l.customerLogin(ctx, email, password)
	default:
		return nil, apperr.New(apperr.CodeInvalidLoginRequest, "invalid login type %q", loginType)
	}
}

// Logout drops the session for the given token. Unknown tokens are ignored.
func (l *LoginService) Logout(token string) {
	l.registry.Invalidate(token)
}

// adminLogin checks the configured operator identity: the name AND the
// secret must both match. (The system this replaces accepted any secret for
// names other than the operator's — an inverted condition treated here as a
// defect, not a contract.)
func (l *LoginService) adminLogin(email, password string) (*session.Session, error) {
	nameOK := security.VerifySecret(email, l.security.AdminName)
	secretOK := security.VerifySecret(password, l.security.AdminSecret)
	if !nameOK || !secretOK {
		return nil, apperr.New(apperr.CodeInvalidCredentials, "email or password are invalid")
	}

	client := &AdminService{
		companies: l.companies,
		customers: l.customers,
		coupons:   l.coupons,
		log:       l.log,
	}

	s := l.registry.Issue(client, 0)
	l.log.Info().Str("role", string(models.RoleAdmin)).Msg("session issued")
	return s, nil
}

func (l *LoginService) companyLogin(ctx context.Context, email, password string) (*session.Session, error) {
	company, err := l.companies.FindByEmail(ctx, email)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNoSuchMember) {
			return nil, apperr.New(apperr.CodeInvalidCredentials, "email or password are invalid")
		}
		return nil, err
	}

	ok, err := security.VerifyPassword(password, company.PasswordHash)
	if err != nil || !ok {
		return nil, apperr.New(apperr.CodeInvalidCredentials, "email or password are invalid")
	}

	client := &CompanyService{
		companyID: company.ID,
		companies: l.companies,
		coupons:   l.coupons,
		cache:     l.cache,
		store:     l.store,
		log:       l.log,
	}

	s := l.registry.Issue(client, company.ID)
	l.log.Info().Str("role", string(models.RoleCompany)).Int64("company_id", company.ID).Msg("session issued")
	return s, nil
}

func (l *LoginService) customerLogin(ctx context.Context, email, password string) (*session.Session, error) {
	customer, err := l.customers.FindByEmail(ctx, email)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNoSuchMember) {
			return nil, apperr.New(apperr.CodeInvalidCredentials, "email or password are invalid")
		}
		return nil, err
	}

	ok, err := security.VerifyPassword(password, customer.PasswordHash)
	if err != nil || !ok {
		return nil, apperr.New(apperr.CodeInvalidCredentials, "email or password are invalid")
	}

	client := &CustomerService{
		customerID: customer.ID,
		customers:  l.customers,
		coupons:    l.coupons,
		cache:      l.cache,
		log:        l.log,
	}

	s := l.registry.Issue(client, customer.ID)
	l.log.Info().Str("role", string(models.RoleCustomer)).Int64("customer_id", customer.ID).Msg("session issued")
	return s, nil
}
