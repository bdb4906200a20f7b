package handlers

import (
	applog "rewear/internal/log"
	"rewear/internal/repos"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Users  *repos.UserRepo
	Orders *repos.OrderRepo
}

func (h *AdminHandler) UserStats(c *fiber.Ctx) error {
	s, err := h.Users.Stats()
	if err != nil {
		applog.Error(c, "admin.users.stats.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "internal", "Could not load stats")
	}
	return c.JSON(s)
}

// RecentOrders backs the admin dashboard order feed.
func (h *AdminHandler) RecentOrders(c *fiber.Ctx) error {
	orders, err := h.Orders.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "internal", "Could not load orders")
	}
	return c.JSON(orders)
}
