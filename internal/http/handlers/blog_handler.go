package handlers

import (
	applog "rewear/internal/log"
	"rewear/internal/repos"
	"rewear/internal/services"
	"rewear/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type BlogHandler struct {
	Blog *services.BlogService
	Repo *repos.BlogRepo
}

func (h *BlogHandler) List(c *fiber.Ctx) error {
	page := validate.Page(c.Query("page"))
	perPage := validate.PerPage(c.Query("per_page"), 10)
	posts, err := h.Blog.List(page, perPage)
	if err != nil {
		applog.Error(c, "blog.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "internal", "Could not load posts")
	}
	return c.JSON(posts)
}

func (h *BlogHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusNotFound, "not_found", "Post not found")
	}
	p, err := h.Blog.Get(id)
	if err != nil {
		return jsonErr(c, fiber.StatusNotFound, "not_found", "Post not found")
	}
	return c.JSON(p)
}

func (h *BlogHandler) BySlug(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return jsonErr(c, fiber.StatusNotFound, "not_found", "Post not found")
	}
	p, err := h.Blog.BySlug(slug)
	if err != nil {
		return jsonErr(c, fiber.StatusNotFound, "not_found", "Post not found")
	}
	return c.JSON(p)
}

func (h *BlogHandler) Like(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusNotFound, "not_found", "Post not found")
	}
	likes, err := h.Blog.Like(id)
	if err != nil {
		return jsonErr(c, fiber.StatusNotFound, "not_found", "Post not found")
	}
	return c.JSON(fiber.Map{"id": id, "likes": likes})
}

func (h *BlogHandler) Stats(c *fiber.Ctx) error {
	s, err := h.Repo.Stats()
	if err != nil {
		applog.Error(c, "admin.blog.stats.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "internal", "Could not load stats")
	}
	return c.JSON(s)
}
