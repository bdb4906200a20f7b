package handlers

import (
	applog "rewear/internal/log"
	"rewear/internal/services"
	"rewear/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	view, err := h.Cart.View(currentUser(c).ID)
	if err != nil {
		return mapCartErr(c, err)
	}
	return c.JSON(view)
}

type addReq struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req addReq
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Malformed request body")
	}
	pid, ok := validate.ID(req.ProductID)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Missing product_id")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	uid := currentUser(c).ID
	if err := h.Cart.Add(uid, pid, req.Quantity); err != nil {
		return mapCartErr(c, err)
	}
	applog.Audit(c, "cart.add", map[string]any{"product": pid})
	view, err := h.Cart.View(uid)
	if err != nil {
		return mapCartErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

type updateReq struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Missing product id")
	}
	var req updateReq
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Malformed request body")
	}
	uid := currentUser(c).ID
	if err := h.Cart.UpdateItem(uid, pid, req.Quantity); err != nil {
		return mapCartErr(c, err)
	}
	view, err := h.Cart.View(uid)
	if err != nil {
		return mapCartErr(c, err)
	}
	return c.JSON(view)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Missing product id")
	}
	uid := currentUser(c).ID
	if err := h.Cart.Remove(uid, pid); err != nil {
		return mapCartErr(c, err)
	}
	applog.Audit(c, "cart.remove", map[string]any{"product": pid})
	view, err := h.Cart.View(uid)
	if err != nil {
		return mapCartErr(c, err)
	}
	return c.JSON(view)
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	uid := currentUser(c).ID
	if err := h.Cart.Clear(uid); err != nil {
		return mapCartErr(c, err)
	}
	applog.Audit(c, "cart.clear", nil)
	view, err := h.Cart.View(uid)
	if err != nil {
		return mapCartErr(c, err)
	}
	return c.JSON(view)
}

// ExtendHold refreshes the reservation window. An expired hold is reported as
// the empty-cart state, not an error.
func (h *CartHandler) ExtendHold(c *fiber.Ctx) error {
	view, extended, err := h.Cart.ExtendHold(currentUser(c).ID)
	if err != nil {
		return mapCartErr(c, err)
	}
	if extended {
		applog.Audit(c, "cart.extend", map[string]any{"items": len(view.Items)})
	}
	return c.JSON(fiber.Map{"extended": extended, "cart": view})
}

func (h *CartHandler) HoldStatus(c *fiber.Ctx) error {
	st, err := h.Cart.Status(currentUser(c).ID)
	if err != nil {
		return mapCartErr(c, err)
	}
	return c.JSON(st)
}
