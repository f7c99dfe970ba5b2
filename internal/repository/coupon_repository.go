package repository

import (
	"context"
	"time"

	"couponmart/internal/models"
)

// CouponFilter narrows coupon queries. Nil fields are not applied. CompanyID
// scopes to a company's own coupons, CustomerID to a customer's purchased
// set; the two are never combined.
type CouponFilter struct {
	CompanyID  *int64
	CustomerID *int64
	Category   *int
	MaxPrice   *float64
	MaxEndDate *time.Time
}

// CouponRepository is the durable store for coupons and the customer-coupon
// ownership edge.
type CouponRepository interface {
	Create(ctx context.Context, coupon models.Coupon) (models.Coupon, error)
	GetByID(ctx context.Context, id int64) (models.Coupon, error)
	// GetByIDForCompany fails with NoSuchCoupon when the coupon is absent or
	// belongs to a different company. This is the company authorization
	// boundary.
	GetByIDForCompany(ctx context.Context, id, companyID int64) (models.Coupon, error)
	List(ctx context.Context, filter CouponFilter) ([]models.Coupon, error)
	Update(ctx context.Context, coupon models.Coupon) (models.Coupon, error)
	Delete(ctx context.Context, id int64) error

	// Purchase runs the full purchase sequence — ownership check, stock
	// check-and-decrement, edge write — as one atomic unit serialized per
	// coupon. It returns the coupon after the decrement.
	Purchase(ctx context.Context, customerID, couponID int64, purchaseID string) (models.Coupon, error)

	// DeleteExpired removes coupons whose end date passed before the cutoff.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
