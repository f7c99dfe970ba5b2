package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"couponmart/internal/apperr"
	"couponmart/internal/models"
)

func statusForCode(code apperr.Code) int {
	switch code {
	case apperr.CodeInvalidCredentials, apperr.CodeInvalidToken:
		return http.StatusUnauthorized
	case apperr.CodeNoSuchMember, apperr.CodeNoSuchCoupon:
		return http.StatusNotFound
	case apperr.CodeAlreadyExists, apperr.CodeCouponAlreadyPurchased:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func (h HandlerSet) respondError(c *gin.Context, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		c.JSON(statusForCode(ae.Code), gin.H{
			"code":  ae.Code,
			"error": ae.Message,
		})
		return
	}

	h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":  "internal_error",
		"error": "internal server error",
	})
}

type couponResponse struct {
	ID          int64     `json:"id"`
	CompanyID   int64     `json:"companyId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	Category    int       `json:"category"`
	Amount      int       `json:"amount"`
	Price       float64   `json:"price"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
}

func toCouponResponse(c models.Coupon) couponResponse {
	return couponResponse{
		ID:          c.ID,
		CompanyID:   c.CompanyID,
		Title:       c.Title,
		Description: c.Description,
		Image:       c.Image,
		Category:    c.Category,
		Amount:      c.Amount,
		Price:       c.Price,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
	}
}

// respondCoupons mirrors the convention of answering empty result sets with
// 204 instead of an empty array.
func respondCoupons(c *gin.Context, coupons []models.Coupon) {
	if len(coupons) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]couponResponse, 0, len(coupons))
	for _, coupon := range coupons {
		resp = append(resp, toCouponResponse(coupon))
	}
	c.JSON(http.StatusOK, gin.H{"coupons": resp})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
