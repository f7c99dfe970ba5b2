package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"couponmart/internal/models"
	"couponmart/internal/session"
)

type stubClient struct {
	role models.Role
}

func (c *stubClient) Role() models.Role {
	return c.role
}

func newAuthRouter(registry *session.Registry, requiredRole models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", Auth(registry), RequireRole(requiredRole), func(c *gin.Context) {
		s, ok := SessionFrom(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": s.Role})
	})
	return router
}

func doGet(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthAcceptsIssuedToken(t *testing.T) {
	registry := session.NewRegistry()
	s := registry.Issue(&stubClient{role: models.RoleCustomer}, 1)
	router := newAuthRouter(registry, models.RoleCustomer)

	rec := doGet(router, "Bearer "+s.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestAuthRejectsMissingOrMalformedHeader(t *testing.T) {
	registry := session.NewRegistry()
	s := registry.Issue(&stubClient{role: models.RoleCustomer}, 1)
	router := newAuthRouter(registry, models.RoleCustomer)

	for _, header := range []string{"", s.Token, "Basic " + s.Token, "bearer " + s.Token} {
		rec := doGet(router, header)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, rec.Code)
		}
	}
}

func TestAuthRejectsUnknownToken(t *testing.T) {
	registry := session.NewRegistry()
	router := newAuthRouter(registry, models.RoleCustomer)

	rec := doGet(router, "Bearer deadbeefdeadbee")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthRejectsInvalidatedToken(t *testing.T) {
	registry := session.NewRegistry()
	s := registry.Issue(&stubClient{role: models.RoleCustomer}, 1)
	registry.Invalidate(s.Token)
	router := newAuthRouter(registry, models.RoleCustomer)

	rec := doGet(router, "Bearer "+s.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	registry := session.NewRegistry()
	company := registry.Issue(&stubClient{role: models.RoleCompany}, 1)
	router := newAuthRouter(registry, models.RoleCustomer)

	rec := doGet(router, "Bearer "+company.Token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}
