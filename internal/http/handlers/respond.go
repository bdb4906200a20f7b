package handlers

import (
	"database/sql"
	"errors"

	applog "rewear/internal/log"
	"rewear/internal/services"

	"github.com/gofiber/fiber/v2"
)

// jsonErr is the single error shape clients see: message plus machine code.
func jsonErr(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg, "code": code})
}

// mapCartErr translates cart/order sentinels into HTTP responses. Expected
// business conflicts (already in cart) are logged at info, never as errors.
func mapCartErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrAlreadyInCart):
		applog.Info(c, "cart.add.duplicate", nil)
		return jsonErr(c, fiber.StatusConflict, "already_in_cart", "This item is already in your cart")
	case errors.Is(err, services.ErrListingHeld):
		applog.Info(c, "cart.add.held", nil)
		return jsonErr(c, fiber.StatusConflict, "listing_held", "This item was just snapped up by someone else")
	case errors.Is(err, services.ErrSingleUnit):
		return jsonErr(c, fiber.StatusBadRequest, "single_unit_listing", "Thrift listings are one-of-one; quantity must be 1")
	case errors.Is(err, services.ErrNotInCart):
		return jsonErr(c, fiber.StatusNotFound, "not_in_cart", "Item is not in your cart")
	case errors.Is(err, services.ErrCartEmpty):
		return jsonErr(c, fiber.StatusBadRequest, "cart_empty", "Your cart is empty")
	case errors.Is(err, sql.ErrNoRows):
		return jsonErr(c, fiber.StatusNotFound, "not_found", "Item no longer exists")
	default:
		applog.Error(c, "cart.error", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "internal", "Something went wrong. Please try again.")
	}
}
