package models

import "time"

type Role string

// Login type values accepted by the login endpoint. Case-sensitive.
const (
	RoleAdmin    Role = "ADMIN"
	RoleCompany  Role = "COMPANY"
	RoleCustomer Role = "CUSTOMER"
)

// Coupon categories span 1 through 8 inclusive.
const (
	CategoryMin = 1
	CategoryMax = 8
)

type Company struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Customer struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Coupon struct {
	ID          int64
	CompanyID   int64
	Title       string
	Description string
	Image       string
	Category    int
	Amount      int
	Price       float64
	StartDate   time.Time
	EndDate     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Purchase is the ownership edge between a customer and a coupon.
// A given (CustomerID, CouponID) pair exists at most once.
type Purchase struct {
	ID         string
	CustomerID int64
	CouponID   int64
	CreatedAt  time.Time
}
