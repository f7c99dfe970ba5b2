package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"couponmart/internal/apperr"
	"couponmart/internal/models"
)

func TestStatusForCode(t *testing.T) {
	cases := []struct {
		code apperr.Code
		want int
	}{
		{apperr.CodeInvalidCredentials, http.StatusUnauthorized},
		{apperr.CodeInvalidToken, http.StatusUnauthorized},
		{apperr.CodeNoSuchMember, http.StatusNotFound},
		{apperr.CodeNoSuchCoupon, http.StatusNotFound},
		{apperr.CodeAlreadyExists, http.StatusConflict},
		{apperr.CodeCouponAlreadyPurchased, http.StatusConflict},
		{apperr.CodeInvalidLoginRequest, http.StatusBadRequest},
		{apperr.CodeNonExistingCategory, http.StatusBadRequest},
		{apperr.CodeInvalidPrice, http.StatusBadRequest},
		{apperr.CodeZeroCouponAmount, http.StatusBadRequest},
	}
	for _, tc := range cases {
		if got := statusForCode(tc.code); got != tc.want {
			t.Errorf("statusForCode(%q) = %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestRespondErrorShapes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := HandlerSet{log: zerolog.Nop()}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.respondError(c, apperr.New(apperr.CodeNoSuchCoupon, "coupon 7 does not exist"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, string(apperr.CodeNoSuchCoupon)) || !strings.Contains(body, "coupon 7 does not exist") {
		t.Errorf("body = %s, want code and message", body)
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := HandlerSet{log: zerolog.Nop()}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.respondError(c, errSecretDetail)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "pg: connection refused") {
		t.Error("internal error detail leaked to the client")
	}
}

func TestRespondCouponsEmptyIs204(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var coupons []models.Coupon
	router := gin.New()
	router.GET("/coupons", func(c *gin.Context) {
		respondCoupons(c, coupons)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/coupons", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %s, want empty", rec.Body.String())
	}

	coupons = []models.Coupon{{ID: 1, Title: "Deal"}}
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/coupons", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Deal") {
		t.Errorf("body = %s, want the coupon", rec.Body.String())
	}
}

var errSecretDetail = errors.New("pg: connection refused")
