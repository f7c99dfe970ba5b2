package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"couponmart/internal/models"
)

// couponQuerier is the filtered query surface every role service exposes
// over its own coupon scope.
type couponQuerier interface {
	GetAllCoupons(ctx context.Context) ([]models.Coupon, error)
	GetAllCouponsByCategory(ctx context.Context, category int) ([]models.Coupon, error)
	GetAllCouponsBelowPrice(ctx context.Context, price float64) ([]models.Coupon, error)
	GetAllCouponsBeforeEndDate(ctx context.Context, endDate time.Time) ([]models.Coupon, error)
}

const dateLayout = "2006-01-02"

// listCoupons dispatches on at most one of the category/maxPrice/endDate
// query parameters and answers with the role-scoped subset.
func (h HandlerSet) listCoupons(c *gin.Context, q couponQuerier) {
	ctx := c.Request.Context()

	var (
		coupons []models.Coupon
		err     error
	)

	switch {
	case c.Query("category") != "":
		var category int
		category, err = strconv.Atoi(c.Query("category"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category must be an integer"})
			return
		}
		coupons, err = q.GetAllCouponsByCategory(ctx, category)

	case c.Query("maxPrice") != "":
		var price float64
		price, err = strconv.ParseFloat(c.Query("maxPrice"), 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "maxPrice must be a number"})
			return
		}
		coupons, err = q.GetAllCouponsBelowPrice(ctx, price)

	case c.Query("endDate") != "":
		var endDate time.Time
		endDate, err = time.Parse(dateLayout, c.Query("endDate"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must be formatted as " + dateLayout})
			return
		}
		coupons, err = q.GetAllCouponsBeforeEndDate(ctx, endDate)

	default:
		coupons, err = q.GetAllCoupons(ctx)
	}

	if err != nil {
		h.respondError(c, err)
		return
	}
	respondCoupons(c, coupons)
}
