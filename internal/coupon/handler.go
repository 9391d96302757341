package coupon

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(s ServiceInterface) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/coupons/validate", h.validateCoupon)
}

func (h *Handler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/api/coupons", h.getCoupons)
	router.Post("/api/coupons", h.createCoupon)
	router.Put("/api/coupons/:id<[0-9]+>", h.updateCoupon)
	router.Delete("/api/coupons/:id<[0-9]+>", h.deleteCoupon)
}

type validateRequest struct {
	Code      string `json:"code"`
	CartTotal int64  `json:"cartTotal"`
}

func (h *Handler) validateCoupon(c *fiber.Ctx) error {
	payload := new(validateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	cp, discount, err := h.service.Validate(payload.Code, payload.CartTotal)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.JSON(fiber.Map{"valid": false, "message": "Invalid coupon"})
		case ErrDisabled, ErrExpired, ErrLimitReached, ErrBelowMinOrder:
			return c.JSON(fiber.Map{"valid": false, "message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(fiber.Map{
		"valid":          true,
		"coupon":         cp,
		"discountAmount": discount,
		"finalAmount":    payload.CartTotal - discount,
	})
}

func (h *Handler) getCoupons(c *fiber.Ctx) error {
	coupons, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(coupons)
}

func (h *Handler) createCoupon(c *fiber.Ctx) error {
	payload := new(Coupon)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	payload.CreatedAt = now
	payload.UpdatedAt = now
	payload.UsedCount = 0
	if payload.UsageLimit == 0 {
		payload.UsageLimit = 100
	}
	payload.IsActive = true

	created, err := h.service.Create(*payload)
	if err != nil {
		if err == ErrCodeExists {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Coupon already exists"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateCoupon(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	payload := new(Coupon)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	payload.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	updated, err := h.service.Update(id, *payload)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Coupon not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(updated)
}

func (h *Handler) deleteCoupon(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	if err := h.service.Delete(id); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Coupon not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Coupon deleted"})
}
