package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"couponmart/internal/middleware"
	"couponmart/internal/models"
	"couponmart/internal/service"
)

func (h HandlerSet) adminClient(c *gin.Context) (*service.AdminService, bool) {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	svc, ok := s.Client.(*service.AdminService)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return nil, false
	}
	return svc, true
}

type companyResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCompanyResponse(c models.Company) companyResponse {
	return companyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}

type customerResponse struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCustomerResponse(c models.Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}

type createCompanyRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h HandlerSet) AdminCreateCompany(c *gin.Context) {
	svc, ok := h.adminClient(c)
	if !ok {
		return
	}

	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company, err := svc.CreateCompany(c.Request.Context(), service.CreateCompanyInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCompanyResponse(company))
}

func (h HandlerSet) AdminListCompanies(c *gin.Context) {
	svc, ok := h.adminClient(c)
	if !ok {
		return
	}

	companies, err := svc.GetAllCompanies(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]companyResponse, 0, len(companies))
	for _, company := range companies {
		resp = append(resp, toCompanyResponse(company))
	}
	c.JSON(http.StatusOK, gin.H{"companies": resp})
}

func (h HandlerSet) AdminRemoveCompany(c *gin.Context) {
	svc, ok := h.adminClient(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := svc.RemoveCompany(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type createCustomerRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

func (h HandlerSet) AdminCreateCustomer(c *gin.Context) {
	svc, ok := h.adminClient(c)
	if !ok {
		return
	}

	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := svc.CreateCustomer(c.Request.Context(), service.CreateCustomerInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCustomerResponse(customer))
}

func (h HandlerSet) AdminListCustomers(c *gin.Context) {
	svc, ok := h.adminClient(c)
	if !ok {
		return
	}

	customers, err := svc.GetAllCustomers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]customerResponse, 0, len(customers))
	for _, customer := range customers {
		resp = append(resp, toCustomerResponse(customer))
	}
	c.JSON(http.StatusOK, gin.H{"customers": resp})
}

func (h HandlerSet) AdminRemoveCustomer(c *gin.Context) {
	svc, ok := h.adminClient(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := svc.RemoveCustomer(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) AdminListCoupons(c *gin.Context) {
	svc, ok := h.adminClient(c)
	if !ok {
		return
	}
	h.listCoupons(c, svc)
}
