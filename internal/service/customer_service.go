package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"couponmart/internal/cache"
	"couponmart/internal/ids"
	"couponmart/internal/models"
	"couponmart/internal/repository"
	"couponmart/internal/security"
)

// CustomerService is the capability set of one authenticated customer:
// profile access, queries over the purchased set and the purchase itself.
type CustomerService struct {
	customerID int64
	customers  repository.CustomerRepository
	coupons    repository.CouponRepository
	cache      *cache.CouponCache
	log        zerolog.Logger
}

func (s *CustomerService) Role() models.Role {
	return models.RoleCustomer
}

func (s *CustomerService) CustomerID() int64 {
	return s.customerID
}

func (s *CustomerService) GetCustomer(ctx context.Context) (models.Customer, error) {
	return s.customers.GetByID(ctx, s.customerID)
}

type UpdateCustomerInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string // empty keeps the current password
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, input UpdateCustomerInput) (models.Customer, error) {
	customer, err := s.customers.GetByID(ctx, s.customerID)
	if err != nil {
		return models.Customer{}, err
	}

	customer.FirstName = input.FirstName
	customer.LastName = input.LastName
	customer.Email = input.Email
	if input.Password != "" {
		hash, err := security.HashPassword(input.Password)
		if err != nil {
			return models.Customer{}, err
		}
		customer.PasswordHash = hash
	}

	return s.customers.Update(ctx, customer)
}

func (s *CustomerService) GetAllCoupons(ctx context.Context) ([]models.Coupon, error) {
	return s.coupons.List(ctx, repository.CouponFilter{CustomerID: &s.customerID})
}

func (s *CustomerService) GetAllCouponsByCategory(ctx context.Context, category int) ([]models.Coupon, error) {
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	return s.coupons.List(ctx, repository.CouponFilter{CustomerID: &s.customerID, Category: &category})
}

func (s *CustomerService) GetAllCouponsBelowPrice(ctx context.Context, price float64) ([]models.Coupon, error) {
	if err := validatePriceCeiling(price); err != nil {
		return nil, err
	}
	return s.coupons.List(ctx, repository.CouponFilter{CustomerID: &s.customerID, MaxPrice: &price})
}

func (s *CustomerService) GetAllCouponsBeforeEndDate(ctx context.Context, endDate time.Time) ([]models.Coupon, error) {
	return s.coupons.List(ctx, repository.CouponFilter{CustomerID: &s.customerID, MaxEndDate: &endDate})
}

// PurchaseCoupon runs the atomic purchase: either the customer ends up
// owning the coupon with the stock decremented by one, or nothing changed.
// The store serializes the check-then-act sequence per coupon, so a repeat
// purchase fails with CouponAlreadyPurchased and the last unit goes to
// exactly one buyer.
func (s *CustomerService) PurchaseCoupon(ctx context.Context, couponID int64) (models.Coupon, error) {
	coupon, err := s.coupons.Purchase(ctx, s.customerID, couponID, ids.New())
	if err != nil {
		return models.Coupon{}, err
	}

	s.cache.Invalidate(ctx, couponID)
	s.log.Info().
		Int64("customer_id", s.customerID).
		Int64("coupon_id", couponID).
		Int("amount_left", coupon.Amount).
		Msg("coupon purchased")
	return coupon, nil
}
