package handlers

import (
	"errors"
	"strings"

	"rewear/internal/domain"
	applog "rewear/internal/log"
	"rewear/internal/repos"
	"rewear/internal/services"
	"rewear/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Order *services.OrderService
	Repo  *repos.OrderRepo
}

type placeOrderReq struct {
	ShippingName    string `json:"shipping_name"`
	ShippingPhone   string `json:"shipping_phone"`
	ShippingAddress string `json:"shipping_address"`
	ShippingCity    string `json:"shipping_city"`
	ShippingPostal  string `json:"shipping_postal_code"`
	PaymentMethod   string `json:"payment_method"`
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var req placeOrderReq
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Malformed request body")
	}

	name, ok := validate.Name(req.ShippingName)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "shipping_name"})
		return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Name must be 1-60 characters")
	}
	if req.ShippingPhone != "" {
		if _, ok := validate.Phone(req.ShippingPhone); !ok {
			return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Enter a valid phone number")
		}
	}
	if strings.TrimSpace(req.ShippingAddress) == "" {
		return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Shipping address is required")
	}
	if req.ShippingPostal != "" {
		if _, ok := validate.PostalCode(req.ShippingPostal); !ok {
			return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Enter a valid postal code")
		}
	}
	payment := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	if payment == "" {
		payment = "card"
	}

	ship := services.ShippingInfo{
		Name:       name,
		Phone:      strings.TrimSpace(req.ShippingPhone),
		Address:    strings.TrimSpace(req.ShippingAddress),
		City:       strings.TrimSpace(req.ShippingCity),
		PostalCode: strings.TrimSpace(req.ShippingPostal),
	}

	order, items, err := h.Order.Place(currentUser(c).ID, ship, payment)
	if err != nil {
		if errors.Is(err, services.ErrCartEmpty) {
			return jsonErr(c, fiber.StatusBadRequest, "cart_empty", "Your cart is empty")
		}
		if errors.Is(err, services.ErrHoldExpired) {
			applog.Info(c, "order.place.hold_expired", nil)
			return jsonErr(c, fiber.StatusConflict, "hold_expired", "Your hold expired before checkout completed")
		}
		applog.Error(c, "order.place.fail", err, nil)
		return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Could not place order. Please review your cart and try again.")
	}
	applog.Audit(c, "order.place", map[string]any{"order_id": order.ID, "total": order.Total})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"order": order, "items": items})
}

func (h *OrderHandler) History(c *fiber.Ctx) error {
	orders, err := h.Repo.ListByUser(currentUser(c).ID)
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "internal", "Could not load orders")
	}
	return c.JSON(orders)
}

// View enforces ownership: the buyer or an admin.
func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusNotFound, "not_found", "Order not found")
	}
	o, items, err := h.Repo.Get(oid)
	if err != nil {
		return jsonErr(c, fiber.StatusNotFound, "not_found", "Order not found")
	}
	u := currentUser(c)
	if o.UserID != u.ID && u.Role != domain.RoleAdmin {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return jsonErr(c, fiber.StatusNotFound, "not_found", "Order not found")
	}
	return c.JSON(fiber.Map{"order": o, "items": items})
}

type statusReq struct {
	Status         string `json:"status"`
	TrackingNumber string `json:"tracking_number"`
}

// UpdateStatus moves an order through the fulfillment state machine (admin).
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusNotFound, "not_found", "Order not found")
	}
	var req statusReq
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Missing status")
	}
	if err := h.Order.UpdateStatus(oid, req.Status, req.TrackingNumber); err != nil {
		if errors.Is(err, services.ErrBadTransition) {
			return jsonErr(c, fiber.StatusBadRequest, "bad_transition", err.Error())
		}
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": oid})
		return jsonErr(c, fiber.StatusNotFound, "not_found", "Order not found")
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": oid, "status": req.Status})
	o, items, err := h.Repo.Get(oid)
	if err != nil {
		return jsonErr(c, fiber.StatusNotFound, "not_found", "Order not found")
	}
	return c.JSON(fiber.Map{"order": o, "items": items})
}

// Stats serves the admin dashboard summary.
func (h *OrderHandler) Stats(c *fiber.Ctx) error {
	s, err := h.Repo.Stats()
	if err != nil {
		applog.Error(c, "admin.orders.stats.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "internal", "Could not load stats")
	}
	return c.JSON(s)
}
