package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

type Product struct {
	ID            string   `json:"id"`
	CategoryID    string   `json:"category_id"`
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	Size          string   `json:"size"`
	Condition     string   `json:"condition"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Description   string   `json:"description"`
	Status        string   `json:"status"`
	IsFeatured    bool     `json:"is_featured"`
	Tags          []string `json:"tags"`
	Images        []string `json:"images"`
	CreatedAt     string   `json:"created_at"`
}

// ProductFilter accumulates catalog filters. Every filter setter resets the
// page cursor to 1 — stale pagination against a new filter set is the classic
// bug this type exists to prevent. Only SetPage moves the cursor.
type ProductFilter struct {
	category  string
	brand     string
	condition string
	size      string
	search    string
	minPrice  *float64
	maxPrice  *float64
	page      int
	perPage   int
}

func (f *ProductFilter) SetCategory(v string) { f.category = v; f.page = 1 }
func (f *ProductFilter) SetBrand(v string)    { f.brand = v; f.page = 1 }
func (f *ProductFilter) SetCondition(v string) {
	f.condition = v
	f.page = 1
}
func (f *ProductFilter) SetSize(v string)   { f.size = v; f.page = 1 }
func (f *ProductFilter) SetSearch(v string) { f.search = v; f.page = 1 }
func (f *ProductFilter) SetPriceRange(min, max float64) {
	f.minPrice = &min
	f.maxPrice = &max
	f.page = 1
}
func (f *ProductFilter) SetPerPage(n int) { f.perPage = n; f.page = 1 }

// SetPage moves the pagination cursor without touching the filters.
func (f *ProductFilter) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	f.page = n
}

func (f *ProductFilter) Page() int {
	if f.page < 1 {
		return 1
	}
	return f.page
}

// Query renders the filter as request parameters.
func (f *ProductFilter) Query() url.Values {
	q := url.Values{}
	if f.category != "" {
		q.Set("category", f.category)
	}
	if f.brand != "" {
		q.Set("brand", f.brand)
	}
	if f.condition != "" {
		q.Set("condition", f.condition)
	}
	if f.size != "" {
		q.Set("size", f.size)
	}
	if f.search != "" {
		q.Set("search", f.search)
	}
	if f.minPrice != nil {
		q.Set("min_price", strconv.FormatFloat(*f.minPrice, 'f', -1, 64))
	}
	if f.maxPrice != nil {
		q.Set("max_price", strconv.FormatFloat(*f.maxPrice, 'f', -1, 64))
	}
	q.Set("page", strconv.Itoa(f.Page()))
	if f.perPage > 0 {
		q.Set("per_page", strconv.Itoa(f.perPage))
	}
	return q
}

// ProductPage is the one internal shape both legal list responses normalize
// into. Paginated reports whether the backend sent real pagination metadata;
// a bare array means a single page.
type ProductPage struct {
	Products  []Product
	Total     int
	Page      int
	PerPage   int
	Pages     int
	Paginated bool
}

func (c *Client) ListProducts(ctx context.Context, f *ProductFilter) (ProductPage, error) {
	if f == nil {
		f = &ProductFilter{}
	}
	var raw json.RawMessage
	if err := c.doJSON(ctx, "GET", "/products/", f.Query(), nil, &raw); err != nil {
		return ProductPage{}, err
	}
	return normalizeProductList(raw, f.Page())
}

// normalizeProductList absorbs the dual response shapes at the boundary:
// either a bare product array or the {products,total,page,per_page,pages}
// envelope. Nothing past this function branches on shape.
func normalizeProductList(raw json.RawMessage, requestedPage int) (ProductPage, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return ProductPage{Products: []Product{}, Page: 1, Pages: 1}, nil
	}

	if trimmed[0] == '[' {
		var products []Product
		if err := json.Unmarshal(trimmed, &products); err != nil {
			return ProductPage{}, fmt.Errorf("decode product list: %w", err)
		}
		return ProductPage{
			Products: products,
			Total:    len(products),
			Page:     1,
			PerPage:  len(products),
			Pages:    1,
		}, nil
	}

	var env struct {
		Products []Product `json:"products"`
		Total    int       `json:"total"`
		Page     int       `json:"page"`
		PerPage  int       `json:"per_page"`
		Pages    int       `json:"pages"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return ProductPage{}, fmt.Errorf("decode product envelope: %w", err)
	}
	page := env.Page
	if page < 1 {
		page = requestedPage
	}
	pages := env.Pages
	if pages < 1 {
		pages = 1
	}
	if env.Products == nil {
		env.Products = []Product{}
	}
	return ProductPage{
		Products:  env.Products,
		Total:     env.Total,
		Page:      page,
		PerPage:   env.PerPage,
		Pages:     pages,
		Paginated: true,
	}, nil
}

func (c *Client) Product(ctx context.Context, id string) (Product, error) {
	var p Product
	if err := c.doJSON(ctx, "GET", "/products/"+url.PathEscape(id), nil, nil, &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// FeaturedProducts uses the legacy bare-array endpoint.
func (c *Client) FeaturedProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.doJSON(ctx, "GET", "/products/featured", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.doJSON(ctx, "GET", "/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
