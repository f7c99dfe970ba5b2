package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"couponmart/internal/apperr"
	"couponmart/internal/models"
)

type postgresCompanyRepository struct {
	pool *pgxpool.Pool
}

func NewCompanyRepository(pool *pgxpool.Pool) CompanyRepository {
	return &postgresCompanyRepository{pool: pool}
}

const companyColumns = `id, name, email, password_hash, created_at, updated_at`

func scanCompany(row pgx.Row) (models.Company, error) {
	var c models.Company
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *postgresCompanyRepository) Create(ctx context.Context, company models.Company) (models.Company, error) {
	const query = `
		INSERT INTO companies (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + companyColumns

	created, err := scanCompany(r.pool.QueryRow(ctx, query, company.Name, company.Email, company.PasswordHash))
	if err != nil {
		if isUniqueViolation(err) {
			return models.Company{}, apperr.New(apperr.CodeAlreadyExists, "company email %s already exists", company.Email)
		}
		return models.Company{}, err
	}
	return created, nil
}

func (r *postgresCompanyRepository) GetByID(ctx context.Context, id int64) (models.Company, error) {
	const query = `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	company, err := scanCompany(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Company{}, apperr.New(apperr.CodeNoSuchMember, "company %d does not exist", id)
		}
		return models.Company{}, err
	}
	return company, nil
}

func (r *postgresCompanyRepository) FindByEmail(ctx context.Context, email string) (models.Company, error) {
	const query = `SELECT ` + companyColumns + ` FROM companies WHERE email = $1`

	company, err := scanCompany(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Company{}, apperr.New(apperr.CodeNoSuchMember, "company with email %s does not exist", email)
		}
		return models.Company{}, err
	}
	return company, nil
}

func (r *postgresCompanyRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM companies WHERE email = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresCompanyRepository) List(ctx context.Context) ([]models.Company, error) {
	const query = `SELECT ` + companyColumns + ` FROM companies ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
}

func (r *postgresCompanyRepository) Update(ctx context.Context, company models.Company) (models.Company, error) {
	const query = `
		UPDATE companies
		SET name = $2, email = $3, password_hash = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + companyColumns

	updated, err := scanCompany(r.pool.QueryRow(ctx, query,
		company.ID, company.Name, company.Email, company.PasswordHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Company{}, apperr.New(apperr.CodeNoSuchMember, "company %d does not exist", company.ID)
		}
		if isUniqueViolation(err) {
			return models.Company{}, apperr.New(apperr.CodeAlreadyExists, "company email %s already exists", company.Email)
		}
		return models.Company{}, err
	}
	return updated, nil
}

func (r *postgresCompanyRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM companies WHERE id = $1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.New(apperr.CodeNoSuchMember, "company %d does not exist", id)
	}
	return nil
}

// isUniqueViolation reports a postgres 23505 unique constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
