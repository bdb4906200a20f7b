package repos

import (
	"time"

	"rewear/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, category_id, name, brand, size, condition, price, original_price, description,
  tags_json, images_json, status, is_featured, created_at, COALESCE(updated_at,'') AS updated_at`

// Filter narrows a catalog listing; zero values mean "no constraint".
type Filter struct {
	Category  string
	Brand     string
	Condition string
	Size      string
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	Page      int
	PerPage   int
}

// List returns one page of matching products plus the total match count.
func (r *ProductRepo) List(f Filter) ([]domain.Product, int, error) {
	where := `1=1`
	args := []any{}
	if f.Category != "" {
		where += ` AND category_id = ?`
		args = append(args, f.Category)
	}
	if f.Brand != "" {
		where += ` AND LOWER(brand) = LOWER(?)`
		args = append(args, f.Brand)
	}
	if f.Condition != "" {
		where += ` AND condition = ?`
		args = append(args, f.Condition)
	}
	if f.Size != "" {
		where += ` AND size = ?`
		args = append(args, f.Size)
	}
	if f.Search != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(description) LIKE ?)`
		q := "%" + f.Search + "%"
		args = append(args, q, q, q)
	}
	if f.MinPrice != nil {
		where += ` AND price >= ?`
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		where += ` AND price <= ?`
		args = append(args, *f.MaxPrice)
	}

	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM products WHERE `+where, args...); err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	perPage := f.PerPage
	if perPage <= 0 {
		perPage = 12
	}
	args = append(args, perPage, (page-1)*perPage)

	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE `+where+`
	  ORDER BY created_at DESC, id
	  LIMIT ? OFFSET ?`, args...)
	return out, total, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) Featured(limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 8
	}
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE is_featured = 1 AND status != 'sold'
	  ORDER BY created_at DESC
	  LIMIT ?`, limit)
	return out, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id,category_id,name,brand,size,condition,price,original_price,
	    description,tags_json,images_json,status,is_featured)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.ID, p.CategoryID, p.Name, p.Brand, p.Size, p.Condition, p.Price, p.OriginalPrice,
		p.Description, p.TagsJSON, p.ImagesJSON, p.Status, p.IsFeatured)
	return err
}

func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.Exec(`
	  UPDATE products SET category_id=?, name=?, brand=?, size=?, condition=?, price=?,
	    original_price=?, description=?, tags_json=?, images_json=?, is_featured=?, updated_at=?
	  WHERE id=?`,
		p.CategoryID, p.Name, p.Brand, p.Size, p.Condition, p.Price, p.OriginalPrice,
		p.Description, p.TagsJSON, p.ImagesJSON, p.IsFeatured,
		time.Now().UTC().Format(time.RFC3339), p.ID)
	return err
}

// MarkSold retires a listing; sold rows stay for order history.
func (r *ProductRepo) MarkSold(id string) error {
	_, err := r.db.Exec(`UPDATE products SET status='sold', updated_at=? WHERE id=?`,
		time.Now().UTC().Format(time.RFC3339), id)
	return err
}
