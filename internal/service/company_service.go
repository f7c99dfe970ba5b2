package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"couponmart/internal/apperr"
	"couponmart/internal/cache"
	"couponmart/internal/models"
	"couponmart/internal/repository"
	"couponmart/internal/security"
)

// CompanyService is the capability set of one authenticated company. Every
// coupon read, update and delete re-verifies ownership against the bound
// company id; a coupon belonging to another company is reported as absent.
type CompanyService struct {
	companyID int64
	companies repository.CompanyRepository
	coupons   repository.CouponRepository
	cache     *cache.CouponCache
	store     ImageStore
	log       zerolog.Logger
}

func (s *CompanyService) Role() models.Role {
	return models.RoleCompany
}

func (s *CompanyService) CompanyID() int64 {
	return s.companyID
}

type CouponInput struct {
	Title       string
	Description string
	Category    int
	Amount      int
	Price       float64
	StartDate   time.Time
	EndDate     time.Time
}

func (s *CompanyService) CreateCoupon(ctx context.Context, input CouponInput) (models.Coupon, error) {
	if err := validateCategory(input.Category); err != nil {
		return models.Coupon{}, err
	}
	if input.Amount < 0 {
		return models.Coupon{}, fmt.Errorf("coupon amount must not be negative")
	}

	coupon, err := s.coupons.Create(ctx, models.Coupon{
		CompanyID:   s.companyID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Amount:      input.Amount,
		Price:       input.Price,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	})
	if err != nil {
		return models.Coupon{}, err
	}

	s.log.Info().Int64("company_id", s.companyID).Int64("coupon_id", coupon.ID).Msg("coupon created")
	return coupon, nil
}

func (s *CompanyService) GetCoupon(ctx context.Context, id int64) (models.Coupon, error) {
	if coupon, ok := s.cache.Get(ctx, id); ok {
		// The cached row still carries ownership; enforce the boundary here
		// exactly as the store would.
		if coupon.CompanyID != s.companyID {
			return models.Coupon{}, apperr.New(apperr.CodeNoSuchCoupon, "coupon %d does not exist", id)
		}
		return coupon, nil
	}

	coupon, err := s.coupons.GetByIDForCompany(ctx, id, s.companyID)
	if err != nil {
		return models.Coupon{}, err
	}
	s.cache.Set(ctx, coupon)
	return coupon, nil
}

func (s *CompanyService) GetAllCoupons(ctx context.Context) ([]models.Coupon, error) {
	return s.coupons.List(ctx, repository.CouponFilter{CompanyID: &s.companyID})
}

func (s *CompanyService) GetAllCouponsByCategory(ctx context.Context, category int) ([]models.Coupon, error) {
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	return s.coupons.List(ctx, repository.CouponFilter{CompanyID: &s.companyID, Category: &category})
}

func (s *CompanyService) GetAllCouponsBelowPrice(ctx context.Context, price float64) ([]models.Coupon, error) {
	if err := validatePriceCeiling(price); err != nil {
		return nil, err
	}
	return s.coupons.List(ctx, repository.CouponFilter{CompanyID: &s.companyID, MaxPrice: &price})
}

func (s *CompanyService) GetAllCouponsBeforeEndDate(ctx context.Context, endDate time.Time) ([]models.Coupon, error) {
	return s.coupons.List(ctx, repository.CouponFilter{CompanyID: &s.companyID, MaxEndDate: &endDate})
}

func (s *CompanyService) UpdateCoupon(ctx context.Context, id int64, input CouponInput) (models.Coupon, error) {
	if err := validateCategory(input.Category); err != nil {
		return models.Coupon{}, err
	}
	if input.Amount < 0 {
		return models.Coupon{}, fmt.Errorf("coupon amount must not be negative")
	}

	existing, err := s.coupons.GetByIDForCompany(ctx, id, s.companyID)
	if err != nil {
		return models.Coupon{}, err
	}

	existing.Title = input.Title
	existing.Description = input.Description
	existing.Category = input.Category
	existing.Amount = input.Amount
	existing.Price = input.Price
	existing.StartDate = input.StartDate
	existing.EndDate = input.EndDate

	updated, err := s.coupons.Update(ctx, existing)
	if err != nil {
		return models.Coupon{}, err
	}

	s.cache.Invalidate(ctx, id)
	return updated, nil
}

func (s *CompanyService) RemoveCoupon(ctx context.Context, id int64) error {
	coupon, err := s.coupons.GetByIDForCompany(ctx, id, s.companyID)
	if err != nil {
		return err
	}
	if err := s.coupons.Delete(ctx, id); err != nil {
		return err
	}

	if coupon.Image != "" && s.store != nil {
		if err := s.store.RemoveCouponImage(ctx, id); err != nil {
			s.log.Warn().Err(err).Int64("coupon_id", id).Msg("coupon image removal failed")
		}
	}

	s.cache.Invalidate(ctx, id)
	s.log.Info().Int64("company_id", s.companyID).Int64("coupon_id", id).Msg("coupon removed")
	return nil
}

// UploadCouponImage stores an image for one of the company's own coupons and
// records the object key on the coupon.
func (s *CompanyService) UploadCouponImage(ctx context.Context, id int64, r io.Reader, size int64, contentType string) (models.Coupon, error) {
	coupon, err := s.coupons.GetByIDForCompany(ctx, id, s.companyID)
	if err != nil {
		return models.Coupon{}, err
	}
	if s.store == nil {
		return models.Coupon{}, fmt.Errorf("image storage is not configured")
	}

	key, err := s.store.PutCouponImage(ctx, id, r, size, contentType)
	if err != nil {
		return models.Coupon{}, err
	}

	coupon.Image = key
	updated, err := s.coupons.Update(ctx, coupon)
	if err != nil {
		return models.Coupon{}, err
	}

	s.cache.Invalidate(ctx, id)
	return updated, nil
}

type UpdateCompanyInput struct {
	Name     string
	Email    string
	Password string // empty keeps the current password
}

func (s *CompanyService) UpdateCompany(ctx context.Context, input UpdateCompanyInput) (models.Company, error) {
	company, err := s.companies.GetByID(ctx, s.companyID)
	if err != nil {
		return models.Company{}, err
	}

	company.Name = input.Name
	company.Email = input.Email
	if input.Password != "" {
		hash, err := security.HashPassword(input.Password)
		if err != nil {
			return models.Company{}, err
		}
		company.PasswordHash = hash
	}

	return s.companies.Update(ctx, company)
}
