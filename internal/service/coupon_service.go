package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/coupon-service/internal/expiry"
	"github.com/fairyhunter13/coupon-service/internal/metrics"
	"github.com/fairyhunter13/coupon-service/internal/model"
)

// CouponRepositoryInterface defines the interface for coupon data access.
type CouponRepositoryInterface interface {
	List(ctx context.Context) ([]model.Coupon, error)
	Insert(ctx context.Context, coupon *model.Coupon) error
	Update(ctx context.Context, coupon *model.Coupon) error
	UpdateStatus(ctx context.Context, id string, expired, active bool) error
	Delete(ctx context.Context, id string) error
}

// CouponService provides business logic for coupon operations.
type CouponService struct {
	couponRepo CouponRepositoryInterface
	now        func() time.Time
	newID      func() string
}

// NewCouponService creates a new CouponService with the given repository.
func NewCouponService(couponRepo CouponRepositoryInterface) *CouponService {
	return NewCouponServiceWithClock(couponRepo, time.Now)
}

// NewCouponServiceWithClock creates a CouponService that reads "today" from now.
// Primarily used for testing.
func NewCouponServiceWithClock(couponRepo CouponRepositoryInterface, now func() time.Time) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		now:        now,
		newID:      uuid.NewString,
	}
}

// status derives the stored flags for an expiration date and the caller's intent.
// Expiration always wins over the requested active flag.
func (s *CouponService) status(expirationDate any, wantActive bool) (expired, active bool) {
	expired = expiry.IsExpiredAt(expirationDate, s.now())
	return expired, !expired && wantActive
}

// List returns every coupon with expired/active recomputed for today.
//
// Each drifted row is written back on its own; there is no surrounding
// transaction. If a write fails the rows repaired before it stay repaired and
// the error is returned.
func (s *CouponService) List(ctx context.Context) ([]model.Coupon, error) {
	coupons, err := s.couponRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}

	for i := range coupons {
		c := &coupons[i]
		expiredNow, shouldBeActive := s.status(c.ExpirationDate, c.Active)

		// Both conditions are kept: the second catches rows whose stored
		// expired flag is already true but were left active.
		if c.Expired != expiredNow || (expiredNow && c.Active) {
			if err := s.couponRepo.UpdateStatus(ctx, c.ID, expiredNow, shouldBeActive); err != nil {
				return nil, fmt.Errorf("repair coupon %s: %w", c.ID, err)
			}
			log.Debug().
				Str("coupon_id", c.ID).
				Bool("expired", expiredNow).
				Bool("active", shouldBeActive).
				Msg("coupon status repaired")
			metrics.RecordRepair()

			c.Expired = expiredNow
			c.Active = shouldBeActive
		}
	}

	return coupons, nil
}

// Create stores a new coupon and returns its generated id.
// Returns ErrInvalidRequest if request data is nil or incomplete.
func (s *CouponService) Create(ctx context.Context, req *model.CouponRequest) (string, error) {
	coupon, err := s.fromRequest(req)
	if err != nil {
		return "", err
	}
	coupon.ID = s.newID()

	if err := s.couponRepo.Insert(ctx, coupon); err != nil {
		return "", err
	}
	return coupon.ID, nil
}

// Update overwrites the coupon with the given id.
// Returns ErrCouponNotFound if no coupon has that id; it never inserts.
func (s *CouponService) Update(ctx context.Context, id string, req *model.CouponRequest) error {
	coupon, err := s.fromRequest(req)
	if err != nil {
		return err
	}
	coupon.ID = id

	return s.couponRepo.Update(ctx, coupon)
}

// Delete removes the coupon with the given id.
// Returns ErrCouponNotFound if no coupon has that id.
func (s *CouponService) Delete(ctx context.Context, id string) error {
	return s.couponRepo.Delete(ctx, id)
}

func (s *CouponService) fromRequest(req *model.CouponRequest) (*model.Coupon, error) {
	if req == nil || req.Value == nil || req.Active == nil {
		return nil, ErrInvalidRequest
	}

	rawDate := string(req.ExpirationDate)
	expired, active := s.status(rawDate, *req.Active)

	// Store the canonical form when the date is recognized; otherwise the
	// database gets the raw text and decides.
	expirationDate := rawDate
	if d, ok := expiry.ParseCalendarDate(rawDate); ok {
		expirationDate = d.String()
	}

	return &model.Coupon{
		Description:    req.Description,
		Value:          *req.Value,
		ExpirationDate: expirationDate,
		Expired:        expired,
		Active:         active,
	}, nil
}
