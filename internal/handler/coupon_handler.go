package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/coupon-service/internal/model"
	"github.com/fairyhunter13/coupon-service/internal/service"
)

// CouponServiceInterface defines the interface for coupon business logic.
type CouponServiceInterface interface {
	List(ctx context.Context) ([]model.Coupon, error)
	Create(ctx context.Context, req *model.CouponRequest) (string, error)
	Update(ctx context.Context, id string, req *model.CouponRequest) error
	Delete(ctx context.Context, id string) error
}

// CouponHandler handles HTTP requests for coupon operations.
type CouponHandler struct {
	service   CouponServiceInterface
	validator *validator.Validate
}

// NewCouponHandler creates a new CouponHandler with the given service and validator.
func NewCouponHandler(svc CouponServiceInterface, v *validator.Validate) *CouponHandler {
	return &CouponHandler{service: svc, validator: v}
}

// bindCouponRequest decodes and validates a create/edit body.
// It returns the client error message, or "" when req is usable.
func (h *CouponHandler) bindCouponRequest(c *fiber.Ctx, req *model.CouponRequest) string {
	// An empty body is missing data, not malformed JSON
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return "invalid request body"
		}
	}

	// Field-level detail is not reported
	if err := h.validator.Struct(req); err != nil {
		return "data missing"
	}
	return ""
}

// ListCoupons handles GET /coupons requests.
// Stale expired/active flags are repaired before the list is returned.
func (h *CouponHandler) ListCoupons(c *fiber.Ctx) error {
	coupons, err := h.service.List(c.Context())
	if err != nil {
		logRequestError(c, err).Msg("failed to list coupons")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error to get coupons"})
	}

	log.Debug().Int("count", len(coupons)).Msg("coupons listed")
	return c.JSON(coupons)
}

// CreateCoupon handles POST /create-coupon requests.
func (h *CouponHandler) CreateCoupon(c *fiber.Ctx) error {
	var req model.CouponRequest
	if msg := h.bindCouponRequest(c, &req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	id, err := h.service.Create(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "data missing"})
		}
		logRequestError(c, err).Str("description", req.Description).Msg("failed to create coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error to make coupon"})
	}

	log.Info().
		Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
		Str("coupon_id", id).
		Msg("coupon created")

	return c.JSON(model.CreateCouponResponse{Success: true, InsertID: id})
}

// EditCoupon handles PUT /edit-coupon/:id requests. It never creates a coupon.
func (h *CouponHandler) EditCoupon(c *fiber.Ctx) error {
	id := c.Params("id")

	var req model.CouponRequest
	if msg := h.bindCouponRequest(c, &req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	if err := h.service.Update(c.Context(), id, &req); err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Coupon not found"})
		}
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "data missing"})
		}
		logRequestError(c, err).Str("coupon_id", id).Msg("failed to edit coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error to edit coupon"})
	}

	log.Info().
		Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
		Str("coupon_id", id).
		Msg("coupon updated")

	return c.JSON(fiber.Map{"success": true})
}

// DeleteCoupon handles DELETE /delete-coupon/:id requests.
func (h *CouponHandler) DeleteCoupon(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Coupon not found"})
		}
		logRequestError(c, err).Str("coupon_id", id).Msg("failed to delete coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error to delete coupon"})
	}

	log.Info().
		Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
		Str("coupon_id", id).
		Msg("coupon deleted")

	return c.JSON(fiber.Map{"success": true})
}
