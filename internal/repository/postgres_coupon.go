package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"couponmart/internal/apperr"
	"couponmart/internal/models"
)

type postgresCouponRepository struct {
	pool *pgxpool.Pool
}

func NewCouponRepository(pool *pgxpool.Pool) CouponRepository {
	return &postgresCouponRepository{pool: pool}
}

const couponColumns = `c.id, c.company_id, c.title, c.description, c.image, c.category,
	c.amount, c.price, c.start_date, c.end_date, c.created_at, c.updated_at`

func scanCoupon(row pgx.Row) (models.Coupon, error) {
	var c models.Coupon
	err := row.Scan(&c.ID, &c.CompanyID, &c.Title, &c.Description, &c.Image, &c.Category,
		&c.Amount, &c.Price, &c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *postgresCouponRepository) Create(ctx context.Context, coupon models.Coupon) (models.Coupon, error) {
	const insert = `
		INSERT INTO coupons (company_id, title, description, image, category, amount, price, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, company_id, title, description, image, category, amount, price, start_date, end_date, created_at, updated_at`

	var c models.Coupon
	err := r.pool.QueryRow(ctx, insert,
		coupon.CompanyID, coupon.Title, coupon.Description, coupon.Image, coupon.Category,
		coupon.Amount, coupon.Price, coupon.StartDate, coupon.EndDate,
	).Scan(&c.ID, &c.CompanyID, &c.Title, &c.Description, &c.Image, &c.Category,
		&c.Amount, &c.Price, &c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return models.Coupon{}, err
	}
	return c, nil
}

func (r *postgresCouponRepository) GetByID(ctx context.Context, id int64) (models.Coupon, error) {
	const query = `SELECT ` + couponColumns + ` FROM coupons c WHERE c.id = $1`

	coupon, err := scanCoupon(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Coupon{}, apperr.New(apperr.CodeNoSuchCoupon, "coupon %d does not exist", id)
		}
		return models.Coupon{}, err
	}
	return coupon, nil
}

func (r *postgresCouponRepository) GetByIDForCompany(ctx context.Context, id, companyID int64) (models.Coupon, error) {
	const query = `SELECT ` + couponColumns + ` FROM coupons c WHERE c.id = $1 AND c.company_id = $2`

	coupon, err := scanCoupon(r.pool.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Absent and not-owned are indistinguishable on purpose.
			return models.Coupon{}, apperr.New(apperr.CodeNoSuchCoupon, "coupon %d does not exist", id)
		}
		return models.Coupon{}, err
	}
	return coupon, nil
}

func (r *postgresCouponRepository) List(ctx context.Context, filter CouponFilter) ([]models.Coupon, error) {
	var (
		clauses []string
		args    []any
		join    string
	)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CustomerID != nil {
		join = `JOIN purchases p ON p.coupon_id = c.id`
		clauses = append(clauses, `p.customer_id = `+arg(*filter.CustomerID))
	}
	if filter.CompanyID != nil {
		clauses = append(clauses, `c.company_id = `+arg(*filter.CompanyID))
	}
	if filter.Category != nil {
		clauses = append(clauses, `c.category = `+arg(*filter.Category))
	}
	if filter.MaxPrice != nil {
		clauses = append(clauses, `c.price <= `+arg(*filter.MaxPrice))
	}
	if filter.MaxEndDate != nil {
		clauses = append(clauses, `c.end_date <= `+arg(*filter.MaxEndDate))
	}

	query := `SELECT ` + couponColumns + ` FROM coupons c ` + join
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY c.id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coupons []models.Coupon
	for rows.Next() {
		coupon, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, coupon)
	}
	return coupons, rows.Err()
}

func (r *postgresCouponRepository) Update(ctx context.Context, coupon models.Coupon) (models.Coupon, error) {
	const query = `
		UPDATE coupons c
		SET title = $2, description = $3, image = $4, category = $5, amount = $6,
		    price = $7, start_date = $8, end_date = $9, updated_at = NOW()
		WHERE c.id = $1
		RETURNING ` + couponColumns

	updated, err := scanCoupon(r.pool.QueryRow(ctx, query,
		coupon.ID, coupon.Title, coupon.Description, coupon.Image, coupon.Category,
		coupon.Amount, coupon.Price, coupon.StartDate, coupon.EndDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Coupon{}, apperr.New(apperr.CodeNoSuchCoupon, "coupon %d does not exist", coupon.ID)
		}
		return models.Coupon{}, err
	}
	return updated, nil
}

func (r *postgresCouponRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM coupons WHERE id = $1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.New(apperr.CodeNoSuchCoupon, "coupon %d does not exist", id)
	}
	return nil
}

// Purchase executes the three-step purchase sequence inside one transaction.
// The FOR UPDATE lock on the coupon row serializes concurrent purchases of
// the same coupon without blocking unrelated ones; the unique index on
// purchases(customer_id, coupon_id) is the last-resort guard against a
// duplicate edge. On any failure the transaction rolls back, so a partially
// applied purchase is never visible.
func (r *postgresCouponRepository) Purchase(ctx context.Context, customerID, couponID int64, purchaseID string) (models.Coupon, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return models.Coupon{}, err
	}
	defer tx.Rollback(ctx)

	const lockCoupon = `SELECT ` + couponColumns + ` FROM coupons c WHERE c.id = $1 FOR UPDATE`

	coupon, err := scanCoupon(tx.QueryRow(ctx, lockCoupon, couponID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Coupon{}, apperr.New(apperr.CodeNoSuchCoupon, "coupon %d does not exist", couponID)
		}
		return models.Coupon{}, err
	}

	const ownershipCheck = `SELECT EXISTS (SELECT 1 FROM purchases WHERE customer_id = $1 AND coupon_id = $2)`

	var alreadyPurchased bool
	if err := tx.QueryRow(ctx, ownershipCheck, customerID, couponID).Scan(&alreadyPurchased); err != nil {
		return models.Coupon{}, err
	}
	if alreadyPurchased {
		return models.Coupon{}, apperr.New(apperr.CodeCouponAlreadyPurchased, "coupon %d already purchased", couponID)
	}

	if coupon.Amount == 0 {
		return models.Coupon{}, apperr.New(apperr.CodeZeroCouponAmount, "coupon %d is out of stock", couponID)
	}

	const decrement = `UPDATE coupons SET amount = amount - 1, updated_at = NOW() WHERE id = $1`
	if _, err := tx.Exec(ctx, decrement, couponID); err != nil {
		return models.Coupon{}, err
	}

	const addEdge = `INSERT INTO purchases (id, customer_id, coupon_id) VALUES ($1, $2, $3)`
	if _, err := tx.Exec(ctx, addEdge, purchaseID, customerID, couponID); err != nil {
		if isUniqueViolation(err) {
			return models.Coupon{}, apperr.New(apperr.CodeCouponAlreadyPurchased, "coupon %d already purchased", couponID)
		}
		return models.Coupon{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Coupon{}, err
	}

	coupon.Amount--
	return coupon, nil
}

func (r *postgresCouponRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM coupons WHERE end_date < $1`

	cmd, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
