package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"couponmart/internal/cache"
	"couponmart/internal/config"
	"couponmart/internal/middleware"
	"couponmart/internal/models"
	"couponmart/internal/repository"
	"couponmart/internal/service"
	"couponmart/internal/session"
	"couponmart/internal/storage"
)

type HandlerSet struct {
	log      zerolog.Logger
	cfg      *config.AppConfig
	registry *session.Registry
	login    *service.LoginService
	db       *pgxpool.Pool
	cache    *redis.Client
}

func NewHandlerSet(
	log zerolog.Logger,
	cfg *config.AppConfig,
	db *pgxpool.Pool,
	cacheClient *redis.Client,
	store *storage.ObjectStore,
	registry *session.Registry,
) HandlerSet {
	companyRepo := repository.NewCompanyRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	couponCache := cache.NewCouponCache(cacheClient, cfg.Cache.CouponTTL, log)

	login := service.NewLoginService(
		companyRepo, customerRepo, couponRepo,
		registry, couponCache, store, cfg.Security, log,
	)

	return HandlerSet{
		log:      log,
		cfg:      cfg,
		registry: registry,
		login:    login,
		db:       db,
		cache:    cacheClient,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", h.Login)
	auth.POST("/logout", middleware.Auth(h.registry), h.Logout)

	admin := v1.Group("/admin")
	admin.Use(middleware.Auth(h.registry), middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/companies", h.AdminCreateCompany)
		admin.GET("/companies", h.AdminListCompanies)
		admin.DELETE("/companies/:id", h.AdminRemoveCompany)
		admin.POST("/customers", h.AdminCreateCustomer)
		admin.GET("/customers", h.AdminListCustomers)
		admin.DELETE("/customers/:id", h.AdminRemoveCustomer)
		admin.GET("/coupons", h.AdminListCoupons)
	}

	company := v1.Group("/company")
	company.Use(middleware.Auth(h.registry), middleware.RequireRole(models.RoleCompany))
	{
		company.POST("/coupons", h.CompanyCreateCoupon)
		company.GET("/coupons", h.CompanyListCoupons)
		company.GET("/coupons/:id", h.CompanyGetCoupon)
		company.PUT("/coupons/:id", h.CompanyUpdateCoupon)
		company.DELETE("/coupons/:id", h.CompanyRemoveCoupon)
		company.POST("/coupons/:id/image", h.CompanyUploadCouponImage)
		company.PUT("/profile", h.CompanyUpdateProfile)
	}

	customer := v1.Group("/customer")
	customer.Use(middleware.Auth(h.registry), middleware.RequireRole(models.RoleCustomer))
	{
		customer.GET("/profile", h.CustomerGetProfile)
		customer.PUT("/profile", h.CustomerUpdateProfile)
		customer.GET("/coupons", h.CustomerListCoupons)
		customer.POST("/coupons/:id/purchase", h.CustomerPurchaseCoupon)
	}
}
