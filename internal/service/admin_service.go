package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"couponmart/internal/apperr"
	"couponmart/internal/models"
	"couponmart/internal/repository"
	"couponmart/internal/security"
)

// AdminService is the operator capability set: company and customer
// lifecycle plus read-only coupon queries across the whole catalog.
type AdminService struct {
	companies repository.CompanyRepository
	customers repository.CustomerRepository
	coupons   repository.CouponRepository
	log       zerolog.Logger
}

func (s *AdminService) Role() models.Role {
	return models.RoleAdmin
}

type CreateCompanyInput struct {
	Name     string
	Email    string
	Password string
}

func (s *AdminService) CreateCompany(ctx context.Context, input CreateCompanyInput) (models.Company, error) {
	exists, err := s.companies.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return models.Company{}, err
	}
	if exists {
		return models.Company{}, apperr.New(apperr.CodeAlreadyExists, "company email %s already exists", input.Email)
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.Company{}, err
	}

	company, err := s.companies.Create(ctx, models.Company{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return models.Company{}, err
	}

	s.log.Info().Int64("company_id", company.ID).Msg("company created")
	return company, nil
}

type CreateCustomerInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func (s *AdminService) CreateCustomer(ctx context.Context, input CreateCustomerInput) (models.Customer, error) {
	exists, err := s.customers.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return models.Customer{}, err
	}
	if exists {
		return models.Customer{}, apperr.New(apperr.CodeAlreadyExists, "customer email %s already exists", input.Email)
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.Customer{}, err
	}

	customer, err := s.customers.Create(ctx, models.Customer{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return models.Customer{}, err
	}

	s.log.Info().Int64("customer_id", customer.ID).Msg("customer created")
	return customer, nil
}

func (s *AdminService) GetAllCompanies(ctx context.Context) ([]models.Company, error) {
	return s.companies.List(ctx)
}

func (s *AdminService) GetAllCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.customers.List(ctx)
}

func (s *AdminService) RemoveCompany(ctx context.Context, id int64) error {
	if err := s.companies.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("company_id", id).Msg("company removed")
	return nil
}

func (s *AdminService) RemoveCustomer(ctx context.Context, id int64) error {
	if err := s.customers.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("customer_id", id).Msg("customer removed")
	return nil
}

func (s *AdminService) GetAllCoupons(ctx context.Context) ([]models.Coupon, error) {
	return s.coupons.List(ctx, repository.CouponFilter{})
}

func (s *AdminService) GetAllCouponsByCategory(ctx context.Context, category int) ([]models.Coupon, error) {
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	return s.coupons.List(ctx, repository.CouponFilter{Category: &category})
}

func (s *AdminService) GetAllCouponsBelowPrice(ctx context.Context, price float64) ([]models.Coupon, error) {
	if err := validatePriceCeiling(price); err != nil {
		return nil, err
	}
	return s.coupons.List(ctx, repository.CouponFilter{MaxPrice: &price})
}

func (s *AdminService) GetAllCouponsBeforeEndDate(ctx context.Context, endDate time.Time) ([]models.Coupon, error) {
	return s.coupons.List(ctx, repository.CouponFilter{MaxEndDate: &endDate})
}
