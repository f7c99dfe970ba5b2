package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"couponmart/internal/middleware"
	"couponmart/internal/service"
)

func (h HandlerSet) companyClient(c *gin.Context) (*service.CompanyService, bool) {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	svc, ok := s.Client.(*service.CompanyService)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return nil, false
	}
	return svc, true
}

type couponRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Category    int       `json:"category" binding:"required"`
	Amount      int       `json:"amount"`
	Price       float64   `json:"price"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
}

func (r couponRequest) toInput() service.CouponInput {
	return service.CouponInput{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Amount:      r.Amount,
		Price:       r.Price,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
}

func (h HandlerSet) CompanyCreateCoupon(c *gin.Context) {
	svc, ok := h.companyClient(c)
	if !ok {
		return
	}

	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coupon, err := svc.CreateCoupon(c.Request.Context(), req.toInput())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCouponResponse(coupon))
}

func (h HandlerSet) CompanyListCoupons(c *gin.Context) {
	svc, ok := h.companyClient(c)
	if !ok {
		return
	}
	h.listCoupons(c, svc)
}

func (h HandlerSet) CompanyGetCoupon(c *gin.Context) {
	svc, ok := h.companyClient(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	coupon, err := svc.GetCoupon(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCouponResponse(coupon))
}

func (h HandlerSet) CompanyUpdateCoupon(c *gin.Context) {
	svc, ok := h.companyClient(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coupon, err := svc.UpdateCoupon(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCouponResponse(coupon))
}

func (h HandlerSet) CompanyRemoveCoupon(c *gin.Context) {
	svc, ok := h.companyClient(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := svc.RemoveCoupon(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) CompanyUploadCouponImage(c *gin.Context) {
	svc, ok := h.companyClient(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file required"})
		return
	}
	defer file.Close()

	coupon, err := svc.UploadCouponImage(c.Request.Context(), id, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCouponResponse(coupon))
}

type updateCompanyRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
}

func (h HandlerSet) CompanyUpdateProfile(c *gin.Context) {
	svc, ok := h.companyClient(c)
	if !ok {
		return
	}

	var req updateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company, err := svc.UpdateCompany(c.Request.Context(), service.UpdateCompanyInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCompanyResponse(company))
}
