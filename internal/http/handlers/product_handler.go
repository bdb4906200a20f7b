package handlers

import (
	"strings"

	"rewear/internal/domain"
	applog "rewear/internal/log"
	"rewear/internal/repos"
	"rewear/internal/services"
	"rewear/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Prods   *repos.ProductRepo
}

// List serves the filtered catalog. Response is always the pagination
// envelope {products,total,page,per_page,pages}.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	f := repos.Filter{
		Page:    validate.Page(c.Query("page")),
		PerPage: validate.PerPage(c.Query("per_page"), 12),
	}

	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		id, ok := validate.ID(cat)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "category"})
			return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Invalid category")
		}
		f.Category = id
	}
	if brand := strings.TrimSpace(c.Query("brand")); brand != "" {
		if len(brand) > 60 {
			return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Invalid brand")
		}
		f.Brand = brand
	}
	if cond := strings.TrimSpace(c.Query("condition")); cond != "" {
		v, ok := validate.Condition(cond)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "condition"})
			return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Invalid condition filter")
		}
		f.Condition = v
	}
	if size := strings.TrimSpace(c.Query("size")); size != "" {
		if len(size) > 20 {
			return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Invalid size")
		}
		f.Size = size
	}
	if q := c.Query("search"); strings.TrimSpace(q) != "" {
		v, ok := validate.Q(q)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "search"})
			return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Enter a valid keyword (letters/numbers only)")
		}
		f.Search = strings.ToLower(v)
	}
	if raw := c.Query("min_price"); raw != "" {
		if v, ok := validate.Price(raw); ok {
			f.MinPrice = &v
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if v, ok := validate.Price(raw); ok {
			f.MaxPrice = &v
		}
	}

	page, err := h.Catalog.List(f)
	if err != nil {
		applog.Error(c, "products.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "internal", "Could not load products")
	}
	return c.JSON(page)
}

// Featured keeps the legacy bare-array shape.
func (h *ProductHandler) Featured(c *fiber.Ctx) error {
	products, err := h.Catalog.Featured(8)
	if err != nil {
		applog.Error(c, "products.featured.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "internal", "Could not load products")
	}
	return c.JSON(products)
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return jsonErr(c, fiber.StatusNotFound, "not_found", "This item is no longer available")
	}
	p, err := h.Catalog.Get(id)
	if err != nil || p.ID == "" {
		return jsonErr(c, fiber.StatusNotFound, "not_found", "This item is no longer available")
	}
	return c.JSON(p)
}

func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "categories.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "internal", "Could not load categories")
	}
	return c.JSON(cats)
}

type productReq struct {
	CategoryID    string   `json:"category_id"`
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	Size          string   `json:"size"`
	Condition     string   `json:"condition"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	Description   string   `json:"description"`
	Tags          []string `json:"tags"`
	Images        []string `json:"images"`
	IsFeatured    bool     `json:"is_featured"`
}

func (h *ProductHandler) validateReq(c *fiber.Ctx, req *productReq) error {
	if _, ok := validate.ID(req.CategoryID); !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Invalid category")
	}
	if _, ok := validate.Name(req.Name); !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Name must be 1-60 characters")
	}
	if _, ok := validate.Condition(req.Condition); !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Invalid condition")
	}
	if req.Price < 0 {
		return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Price must be non-negative")
	}
	return nil
}

// Create lists a new garment (admin).
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req productReq
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Malformed request body")
	}
	if err := h.validateReq(c, &req); err != nil {
		return err
	}
	p := domain.Product{
		ID:            uuid.NewString(),
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Brand:         req.Brand,
		Size:          req.Size,
		Condition:     req.Condition,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Description:   req.Description,
		TagsJSON:      domain.EncodeList(req.Tags),
		ImagesJSON:    domain.EncodeList(req.Images),
		Status:        domain.StatusAvailable,
		IsFeatured:    req.IsFeatured,
	}
	if err := h.Prods.Create(p); err != nil {
		applog.Error(c, "products.create.fail", err, nil)
		return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Could not create listing")
	}
	applog.Audit(c, "products.create", map[string]any{"product": p.ID})
	p.Hydrate()
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusNotFound, "not_found", "Listing not found")
	}
	existing, err := h.Prods.Get(id)
	if err != nil {
		return jsonErr(c, fiber.StatusNotFound, "not_found", "Listing not found")
	}
	var req productReq
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Malformed request body")
	}
	if err := h.validateReq(c, &req); err != nil {
		return err
	}
	existing.CategoryID = req.CategoryID
	existing.Name = req.Name
	existing.Brand = req.Brand
	existing.Size = req.Size
	existing.Condition = req.Condition
	existing.Price = req.Price
	existing.OriginalPrice = req.OriginalPrice
	existing.Description = req.Description
	existing.TagsJSON = domain.EncodeList(req.Tags)
	existing.ImagesJSON = domain.EncodeList(req.Images)
	existing.IsFeatured = req.IsFeatured
	if err := h.Prods.Update(existing); err != nil {
		applog.Error(c, "products.update.fail", err, map[string]any{"product": id})
		return jsonErr(c, fiber.StatusBadRequest, "invalid_input", "Could not update listing")
	}
	applog.Audit(c, "products.update", map[string]any{"product": id})
	existing.Hydrate()
	return c.JSON(existing)
}

// Delete retires a listing: sold rows stay referenced by order history.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusNotFound, "not_found", "Listing not found")
	}
	if _, err := h.Prods.Get(id); err != nil {
		return jsonErr(c, fiber.StatusNotFound, "not_found", "Listing not found")
	}
	if err := h.Prods.MarkSold(id); err != nil {
		applog.Error(c, "products.delete.fail", err, map[string]any{"product": id})
		return jsonErr(c, fiber.StatusInternalServerError, "internal", "Could not retire listing")
	}
	applog.Audit(c, "products.delete", map[string]any{"product": id})
	return c.SendStatus(fiber.StatusNoContent)
}
