package service

import (
	"context"
	"sync"
	"time"

	"couponmart/internal/apperr"
	"couponmart/internal/models"
	"couponmart/internal/repository"
)

// The fakes below back the service tests with the same contract the postgres
// implementations provide, including the atomicity of Purchase.

type fakeCompanyRepo struct {
	mu        sync.Mutex
	nextID    int64
	companies map[int64]models.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{nextID: 1, companies: make(map[int64]models.Company)}
}

func (r *fakeCompanyRepo) Create(_ context.Context, company models.Company) (models.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.Email == company.Email {
			return models.Company{}, apperr.New(apperr.CodeAlreadyExists, "company email %s already exists", company.Email)
		}
	}
	company.ID = r.nextID
	r.nextID++
	r.companies[company.ID] = company
	return company, nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id int64) (models.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return models.Company{}, apperr.New(apperr.CodeNoSuchMember, "company %d does not exist", id)
	}
	return c, nil
}

func (r *fakeCompanyRepo) FindByEmail(_ context.Context, email string) (models.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.Email == email {
			return c, nil
		}
	}
	return models.Company{}, apperr.New(apperr.CodeNoSuchMember, "company %s does not exist", email)
}

func (r *fakeCompanyRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCompanyRepo) List(_ context.Context) ([]models.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Company, 0, len(r.companies))
	for _, c := range r.companies {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, company models.Company) (models.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[company.ID]; !ok {
		return models.Company{}, apperr.New(apperr.CodeNoSuchMember, "company %d does not exist", company.ID)
	}
	r.companies[company.ID] = company
	return company, nil
}

func (r *fakeCompanyRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[id]; !ok {
		return apperr.New(apperr.CodeNoSuchMember, "company %d does not exist", id)
	}
	delete(r.companies, id)
	return nil
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	nextID    int64
	customers map[int64]models.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{nextID: 1, customers: make(map[int64]models.Customer)}
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer models.Customer) (models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.Email == customer.Email {
			return models.Customer{}, apperr.New(apperr.CodeAlreadyExists, "customer email %s already exists", customer.Email)
		}
	}
	customer.ID = r.nextID
	r.nextID++
	r.customers[customer.ID] = customer
	return customer, nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id int64) (models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return models.Customer{}, apperr.New(apperr.CodeNoSuchMember, "customer %d does not exist", id)
	}
	return c, nil
}

func (r *fakeCustomerRepo) FindByEmail(_ context.Context, email string) (models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return models.Customer{}, apperr.New(apperr.CodeNoSuchMember, "customer %s does not exist", email)
}

func (r *fakeCustomerRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCustomerRepo) List(_ context.Context) ([]models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, customer models.Customer) (models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[customer.ID]; !ok {
		return models.Customer{}, apperr.New(apperr.CodeNoSuchMember, "customer %d does not exist", customer.ID)
	}
	r.customers[customer.ID] = customer
	return customer, nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[id]; !ok {
		return apperr.New(apperr.CodeNoSuchMember, "customer %d does not exist", id)
	}
	delete(r.customers, id)
	return nil
}

type purchaseKey struct {
	customerID int64
	couponID   int64
}

type fakeCouponRepo struct {
	mu        sync.Mutex
	nextID    int64
	coupons   map[int64]models.Coupon
	purchases map[purchaseKey]string
}

func newFakeCouponRepo() *fakeCouponRepo {
	return &fakeCouponRepo{
		nextID:    1,
		coupons:   make(map[int64]models.Coupon),
		purchases: make(map[purchaseKey]string),
	}
}

func (r *fakeCouponRepo) Create(_ context.Context, coupon models.Coupon) (models.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	coupon.ID = r.nextID
	r.nextID++
	r.coupons[coupon.ID] = coupon
	return coupon, nil
}

func (r *fakeCouponRepo) GetByID(_ context.Context, id int64) (models.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.coupons[id]
	if !ok {
		return models.Coupon{}, apperr.New(apperr.CodeNoSuchCoupon, "coupon %d does not exist", id)
	}
	return c, nil
}

func (r *fakeCouponRepo) GetByIDForCompany(_ context.Context, id, companyID int64) (models.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.coupons[id]
	if !ok || c.CompanyID != companyID {
		return models.Coupon{}, apperr.New(apperr.CodeNoSuchCoupon, "coupon %d does not exist", id)
	}
	return c, nil
}

func (r *fakeCouponRepo) List(_ context.Context, filter repository.CouponFilter) ([]models.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Coupon, 0)
	for _, c := range r.coupons {
		if filter.CompanyID != nil && c.CompanyID != *filter.CompanyID {
			continue
		}
		if filter.CustomerID != nil {
			if _, owned := r.purchases[purchaseKey{*filter.CustomerID, c.ID}]; !owned {
				continue
			}
		}
		if filter.Category != nil && c.Category != *filter.Category {
			continue
		}
		if filter.MaxPrice != nil && c.Price > *filter.MaxPrice {
			continue
		}
		if filter.MaxEndDate != nil && c.EndDate.After(*filter.MaxEndDate) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCouponRepo) Update(_ context.Context, coupon models.Coupon) (models.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.coupons[coupon.ID]; !ok {
		return models.Coupon{}, apperr.New(apperr.CodeNoSuchCoupon, "coupon %d does not exist", coupon.ID)
	}
	r.coupons[coupon.ID] = coupon
	return coupon, nil
}

func (r *fakeCouponRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.coupons[id]; !ok {
		return apperr.New(apperr.CodeNoSuchCoupon, "coupon %d does not exist", id)
	}
	delete(r.coupons, id)
	return nil
}

// Purchase mirrors the transactional sequence of the postgres version:
// existence, then prior ownership, then stock, all under one lock.
func (r *fakeCouponRepo) Purchase(_ context.Context, customerID, couponID int64, purchaseID string) (models.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.coupons[couponID]
	if !ok {
		return models.Coupon{}, apperr.New(apperr.CodeNoSuchCoupon, "coupon %d does not exist", couponID)
	}
	key := purchaseKey{customerID, couponID}
	if _, owned := r.purchases[key]; owned {
		return models.Coupon{}, apperr.New(apperr.CodeCouponAlreadyPurchased, "coupon %d already purchased", couponID)
	}
	if c.Amount == 0 {
		return models.Coupon{}, apperr.New(apperr.CodeZeroCouponAmount, "coupon %d is out of stock", couponID)
	}

	c.Amount--
	r.coupons[couponID] = c
	r.purchases[key] = purchaseID
	return c, nil
}

func (r *fakeCouponRepo) DeleteExpired(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, c := range r.coupons {
		if c.EndDate.Before(cutoff) {
			delete(r.coupons, id)
			removed++
		}
	}
	return removed, nil
}
