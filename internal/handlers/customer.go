package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"couponmart/internal/middleware"
	"couponmart/internal/service"
)

func (h HandlerSet) customerClient(c *gin.Context) (*service.CustomerService, bool) {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	svc, ok := s.Client.(*service.CustomerService)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return nil, false
	}
	return svc, true
}

func (h HandlerSet) CustomerGetProfile(c *gin.Context) {
	svc, ok := h.customerClient(c)
	if !ok {
		return
	}

	customer, err := svc.GetCustomer(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(customer))
}

type updateCustomerRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password"`
}

func (h HandlerSet) CustomerUpdateProfile(c *gin.Context) {
	svc, ok := h.customerClient(c)
	if !ok {
		return
	}

	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := svc.UpdateCustomer(c.Request.Context(), service.UpdateCustomerInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(customer))
}

func (h HandlerSet) CustomerListCoupons(c *gin.Context) {
	svc, ok := h.customerClient(c)
	if !ok {
		return
	}
	h.listCoupons(c, svc)
}

func (h HandlerSet) CustomerPurchaseCoupon(c *gin.Context) {
	svc, ok := h.customerClient(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	coupon, err := svc.PurchaseCoupon(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCouponResponse(coupon))
}
