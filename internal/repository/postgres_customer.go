package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"couponmart/internal/apperr"
	"couponmart/internal/models"
)

type postgresCustomerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &postgresCustomerRepository{pool: pool}
}

const customerColumns = `id, first_name, last_name, email, password_hash, created_at, updated_at`

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PasswordHash, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *postgresCustomerRepository) Create(ctx context.Context, customer models.Customer) (models.Customer, error) {
	const query = `
		INSERT INTO customers (first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + customerColumns

	created, err := scanCustomer(r.pool.QueryRow(ctx, query,
		customer.FirstName, customer.LastName, customer.Email, customer.PasswordHash))
	if err != nil {
		if isUniqueViolation(err) {
			return models.Customer{}, apperr.New(apperr.CodeAlreadyExists, "customer email %s already exists", customer.Email)
		}
		return models.Customer{}, err
	}
	return created, nil
}

func (r *postgresCustomerRepository) GetByID(ctx context.Context, id int64) (models.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	customer, err := scanCustomer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Customer{}, apperr.New(apperr.CodeNoSuchMember, "customer %d does not exist", id)
		}
		return models.Customer{}, err
	}
	return customer, nil
}

func (r *postgresCustomerRepository) FindByEmail(ctx context.Context, email string) (models.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`

	customer, err := scanCustomer(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Customer{}, apperr.New(apperr.CodeNoSuchMember, "customer with email %s does not exist", email)
		}
		return models.Customer{}, err
	}
	return customer, nil
}

func (r *postgresCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresCustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

func (r *postgresCustomerRepository) Update(ctx context.Context, customer models.Customer) (models.Customer, error) {
	const query = `
		UPDATE customers
		SET first_name = $2, last_name = $3, email = $4, password_hash = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + customerColumns

	updated, err := scanCustomer(r.pool.QueryRow(ctx, query,
		customer.ID, customer.FirstName, customer.LastName, customer.Email, customer.PasswordHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Customer{}, apperr.New(apperr.CodeNoSuchMember, "customer %d does not exist", customer.ID)
		}
		if isUniqueViolation(err) {
			return models.Customer{}, apperr.New(apperr.CodeAlreadyExists, "customer email %s already exists", customer.Email)
		}
		return models.Customer{}, err
	}
	return updated, nil
}

func (r *postgresCustomerRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM customers WHERE id = $1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.New(apperr.CodeNoSuchMember, "customer %d does not exist", id)
	}
	return nil
}
