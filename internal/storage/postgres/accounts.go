package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/fideleatome/loyalty/internal/domain/errors"
	"github.com/fideleatome/loyalty/internal/domain/model"
	"github.com/fideleatome/loyalty/internal/domain/repository"
)

type userRepository struct {
	storage *Storage
}

type customerRepository struct {
	storage *Storage
}

type businessRepository struct {
	storage *Storage
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, email, passwordHash string, role model.Role) (*model.User, error) {
	const query = `INSERT INTO users (email, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, email, passwordHash, role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Email = email
	u.PasswordHash = passwordHash
	u.Role = role
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, email, password_hash, role, created_at FROM users WHERE email=$1`
	return r.scanOne(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, email, password_hash, role, created_at FROM users WHERE id=$1`
	return r.scanOne(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) scanOne(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- CustomerRepository implementation ---

const customerColumns = `id, user_id, first_name, last_name, qr_token, points,
                         total_purchases, total_rewards, first_purchase_date, last_purchase_date`

func (r *customerRepository) Create(ctx context.Context, userID int64, firstName, lastName, qrToken string) (*model.CustomerProfile, error) {
	const query = `INSERT INTO customer_profiles (user_id, first_name, last_name, qr_token)
                   VALUES ($1, $2, $3, $4) RETURNING id`
	var c model.CustomerProfile
	err := r.storage.pool.QueryRow(ctx, query, userID, firstName, lastName, qrToken).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	c.UserID = userID
	c.FirstName = firstName
	c.LastName = lastName
	c.QRToken = qrToken
	return &c, nil
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.CustomerProfile, error) {
	query := `SELECT ` + customerColumns + ` FROM customer_profiles WHERE id=$1`
	return scanCustomer(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *customerRepository) GetByUserID(ctx context.Context, userID int64) (*model.CustomerProfile, error) {
	query := `SELECT ` + customerColumns + ` FROM customer_profiles WHERE user_id=$1`
	return scanCustomer(r.storage.pool.QueryRow(ctx, query, userID))
}

func (r *customerRepository) GetByQRToken(ctx context.Context, qrToken string) (*model.CustomerProfile, error) {
	query := `SELECT ` + customerColumns + ` FROM customer_profiles WHERE qr_token=$1`
	return scanCustomer(r.storage.pool.QueryRow(ctx, query, qrToken))
}

func (r *customerRepository) ListByBusiness(ctx context.Context, businessID int64, search string, limit, offset int) (*repository.CustomerPage, error) {
	filter := ` FROM customer_profiles cp
                WHERE EXISTS (SELECT 1 FROM purchases p WHERE p.customer_id = cp.id AND p.business_id = $1)`
	args := []any{businessID}
	if search = strings.TrimSpace(search); search != "" {
		filter += ` AND (cp.first_name ILIKE $2 OR cp.last_name ILIKE $2)`
		args = append(args, "%"+search+"%")
	}

	page := &repository.CustomerPage{}
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*)`+filter, args...).Scan(&page.Total); err != nil {
		return nil, err
	}

	query := `SELECT cp.id, cp.user_id, cp.first_name, cp.last_name, cp.qr_token, cp.points,
                     cp.total_purchases, cp.total_rewards, cp.first_purchase_date, cp.last_purchase_date` +
		filter + ` ORDER BY cp.last_purchase_date DESC NULLS LAST`
	if limit > 0 {
		args = append(args, limit, offset)
		query += ` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c model.CustomerProfile
		if err := rows.Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.QRToken, &c.Points,
			&c.TotalPurchases, &c.TotalRewards, &c.FirstPurchaseDate, &c.LastPurchaseDate); err != nil {
			return nil, err
		}
		page.Customers = append(page.Customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return page, nil
}

func (r *customerRepository) SelectBatchForAudit(ctx context.Context, afterID int64, limit int) ([]model.CustomerProfile, error) {
	query := `SELECT ` + customerColumns + ` FROM customer_profiles WHERE id > $1 ORDER BY id LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.CustomerProfile
	for rows.Next() {
		var c model.CustomerProfile
		if err := rows.Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.QRToken, &c.Points,
			&c.TotalPurchases, &c.TotalRewards, &c.FirstPurchaseDate, &c.LastPurchaseDate); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanCustomer(row pgx.Row) (*model.CustomerProfile, error) {
	var c model.CustomerProfile
	err := row.Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.QRToken, &c.Points,
		&c.TotalPurchases, &c.TotalRewards, &c.FirstPurchaseDate, &c.LastPurchaseDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// --- BusinessRepository implementation ---

func (r *businessRepository) Create(ctx context.Context, userID int64, businessName, contactName, phone string) (*model.BusinessProfile, error) {
	const query = `INSERT INTO business_profiles (user_id, business_name, contact_name, phone)
                   VALUES ($1, $2, $3, $4) RETURNING id`
	var b model.BusinessProfile
	err := r.storage.pool.QueryRow(ctx, query, userID, businessName, contactName, phone).Scan(&b.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	b.UserID = userID
	b.BusinessName = businessName
	b.ContactName = contactName
	b.Phone = phone
	return &b, nil
}

func (r *businessRepository) GetByID(ctx context.Context, id int64) (*model.BusinessProfile, error) {
	const query = `SELECT id, user_id, business_name, contact_name, phone FROM business_profiles WHERE id=$1`
	return r.scanOne(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *businessRepository) GetByUserID(ctx context.Context, userID int64) (*model.BusinessProfile, error) {
	const query = `SELECT id, user_id, business_name, contact_name, phone FROM business_profiles WHERE user_id=$1`
	return r.scanOne(r.storage.pool.QueryRow(ctx, query, userID))
}

func (r *businessRepository) scanOne(row pgx.Row) (*model.BusinessProfile, error) {
	var b model.BusinessProfile
	err := row.Scan(&b.ID, &b.UserID, &b.BusinessName, &b.ContactName, &b.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}
