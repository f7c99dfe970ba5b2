package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"couponmart/internal/middleware"
)

type loginRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	LoginType string `json:"loginType" binding:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, err := h.login.Login(c.Request.Context(), req.Email, req.Password, req.LoginType)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token: s.Token,
		Role:  string(s.Role),
	})
}

func (h HandlerSet) Logout(c *gin.Context) {
	if s, ok := middleware.SessionFrom(c); ok {
		h.login.Logout(s.Token)
	}

	c.Status(http.StatusNoContent)
}
