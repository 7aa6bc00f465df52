package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairyhunter13/coupon-service/internal/model"
	"github.com/fairyhunter13/coupon-service/internal/service"
)

// dateLayout is how expiration dates leave the repository.
const dateLayout = "2006-01-02"

// PoolInterface defines the database operations needed by repositories.
// This allows for easier testing with mocks.
type PoolInterface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// CouponRepository provides data access for coupons using pgx.
type CouponRepository struct {
	pool PoolInterface
}

// NewCouponRepository creates a new CouponRepository with the given pool.
func NewCouponRepository(pool *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{pool: pool}
}

// NewCouponRepositoryWithPool creates a new CouponRepository with a custom pool interface.
// This is primarily used for testing.
func NewCouponRepositoryWithPool(pool PoolInterface) *CouponRepository {
	return &CouponRepository{pool: pool}
}

// List returns every coupon ordered by creation time.
func (r *CouponRepository) List(ctx context.Context) ([]model.Coupon, error) {
	query := `SELECT id, description, value, expiration_date, expired, active, created_at
		FROM coupon ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query coupons: %w", err)
	}
	defer rows.Close()

	coupons := []model.Coupon{} // Empty slice, not nil, so JSON encodes []
	for rows.Next() {
		var c model.Coupon
		var expirationDate time.Time
		if err := rows.Scan(
			&c.ID,
			&c.Description,
			&c.Value,
			&expirationDate,
			&c.Expired,
			&c.Active,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan coupon: %w", err)
		}
		c.ExpirationDate = expirationDate.Format(dateLayout)
		coupons = append(coupons, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate coupons: %w", err)
	}
	return coupons, nil
}

// Insert inserts a new coupon into the database.
// An id collision is reported like any other failure.
func (r *CouponRepository) Insert(ctx context.Context, coupon *model.Coupon) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO coupon (id, description, value, expiration_date, expired, active)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		coupon.ID, coupon.Description, coupon.Value, coupon.ExpirationDate, coupon.Expired, coupon.Active)
	if err != nil {
		return fmt.Errorf("insert coupon: %w", err)
	}
	return nil
}

// Update overwrites every mutable column of the coupon with coupon.ID.
// Returns service.ErrCouponNotFound if no row matched.
func (r *CouponRepository) Update(ctx context.Context, coupon *model.Coupon) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE coupon
		SET description = $1, value = $2, expiration_date = $3, expired = $4, active = $5
		WHERE id = $6`,
		coupon.Description, coupon.Value, coupon.ExpirationDate, coupon.Expired, coupon.Active, coupon.ID)
	if err != nil {
		return fmt.Errorf("update coupon %s: %w", coupon.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrCouponNotFound
	}
	return nil
}

// UpdateStatus writes the derived flags of one coupon.
// A row deleted in the meantime is not an error.
func (r *CouponRepository) UpdateStatus(ctx context.Context, id string, expired, active bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE coupon SET expired = $1, active = $2 WHERE id = $3`,
		expired, active, id)
	if err != nil {
		return fmt.Errorf("update coupon status %s: %w", id, err)
	}
	return nil
}

// Delete removes the coupon with the given id.
// Returns service.ErrCouponNotFound if no row matched.
func (r *CouponRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coupon WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete coupon %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrCouponNotFound
	}
	return nil
}
