package handlers

import (
	applog "rewear/internal/log"
	"rewear/internal/repos"
	"rewear/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	Repo *repos.NotificationRepo
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	items, err := h.Repo.ListByUser(currentUser(c).ID, 50)
	if err != nil {
		applog.Error(c, "notifications.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "internal", "Could not load notifications")
	}
	return c.JSON(items)
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusNotFound, "not_found", "Notification not found")
	}
	touched, err := h.Repo.MarkRead(id, currentUser(c).ID)
	if err != nil {
		applog.Error(c, "notifications.read.fail", err, map[string]any{"id": id})
		return jsonErr(c, fiber.StatusInternalServerError, "internal", "Could not update notification")
	}
	if !touched {
		return jsonErr(c, fiber.StatusNotFound, "not_found", "Notification not found")
	}
	return c.JSON(fiber.Map{"id": id, "read": true})
}

func (h *NotificationHandler) Stats(c *fiber.Ctx) error {
	s, err := h.Repo.Stats()
	if err != nil {
		applog.Error(c, "admin.notifications.stats.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "internal", "Could not load stats")
	}
	return c.JSON(s)
}
