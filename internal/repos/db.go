package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline data if DB is empty (categories/products/blog)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  ordering INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

-- Products: one row = one physical garment
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  brand TEXT NOT NULL DEFAULT '',
  size TEXT NOT NULL DEFAULT '',
  condition TEXT NOT NULL CHECK (condition IN ('new','like_new','good','fair')),
  price NUMERIC NOT NULL CHECK (price >= 0),
  original_price NUMERIC,
  description TEXT NOT NULL DEFAULT '',
  tags_json TEXT NOT NULL DEFAULT '[]',
  images_json TEXT NOT NULL DEFAULT '[]',
  status TEXT NOT NULL DEFAULT 'available' CHECK (status IN ('available','reserved','sold')),
  is_featured INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_name       ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_brand      ON products(LOWER(brand));
CREATE INDEX IF NOT EXISTS idx_products_status     ON products(status);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Carts: one per user, created implicitly on first add
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  user_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

-- Cart items carry the hold window; expires_at is unix seconds
CREATE TABLE IF NOT EXISTS cart_items(
  cart_id    TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  qty INTEGER NOT NULL CHECK (qty = 1),
  price NUMERIC NOT NULL,
  name TEXT NOT NULL,
  brand TEXT NOT NULL DEFAULT '',
  size TEXT NOT NULL DEFAULT '',
  condition TEXT NOT NULL,
  added_at   INTEGER NOT NULL,
  expires_at INTEGER NOT NULL,
  PRIMARY KEY (cart_id, product_id)
);
CREATE INDEX IF NOT EXISTS idx_cart_items_expires ON cart_items(expires_at);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  ship_name TEXT NOT NULL,
  ship_phone TEXT NOT NULL DEFAULT '',
  ship_address TEXT NOT NULL,
  ship_city TEXT NOT NULL DEFAULT '',
  ship_postal TEXT NOT NULL DEFAULT '',
  payment_method TEXT NOT NULL DEFAULT 'card',
  subtotal NUMERIC NOT NULL,
  shipping_fee NUMERIC NOT NULL,
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending'
    CHECK (status IN ('pending','confirmed','processing','shipped','delivered','cancelled')),
  tracking_number TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_orders_user       ON orders(user_id);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  order_id  TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  name TEXT NOT NULL,
  brand TEXT NOT NULL DEFAULT '',
  size TEXT NOT NULL DEFAULT '',
  condition TEXT NOT NULL,
  price NUMERIC NOT NULL,
  qty INTEGER NOT NULL,
  PRIMARY KEY (order_id, product_id)
);

-- Users
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  full_name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('user','admin')),
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- Blog / lookbook
CREATE TABLE IF NOT EXISTS blog_posts(
  id TEXT PRIMARY KEY,
  slug TEXT NOT NULL UNIQUE,
  title TEXT NOT NULL,
  excerpt TEXT NOT NULL DEFAULT '',
  content TEXT NOT NULL DEFAULT '',
  cover_image TEXT NOT NULL DEFAULT '',
  tags_json TEXT NOT NULL DEFAULT '[]',
  views INTEGER NOT NULL DEFAULT 0,
  likes INTEGER NOT NULL DEFAULT 0,
  published INTEGER NOT NULL DEFAULT 1,
  published_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS notifications(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  kind TEXT NOT NULL DEFAULT 'info',
  title TEXT NOT NULL,
  body TEXT NOT NULL DEFAULT '',
  read INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products/blog")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name,ordering) VALUES
	  ('jackets','Jackets & Coats',1),
	  ('denim','Denim',2),
	  ('dresses','Dresses',3),
	  ('knitwear','Knitwear',4),
	  ('accessories','Accessories',5)`)

	tx.MustExec(`INSERT INTO products(id,category_id,name,brand,size,condition,price,original_price,description,tags_json,images_json,is_featured) VALUES
	  ('jkt-levis-trucker','jackets','Vintage Trucker Jacket','Levi''s','M','good',48.00,120.00,
	   '80s type III trucker, honest fade, all buttons intact.','["vintage","80s","denim"]','["products/jkt-levis-trucker/main.jpg"]',1),
	  ('jkt-barbour-wax','jackets','Waxed Field Jacket','Barbour','L','fair',65.00,NULL,
	   'Needs a re-wax, no rips. Corduroy collar.','["outdoor","wax"]','["products/jkt-barbour-wax/main.jpg"]',0),
	  ('dnm-levis-501','denim','501 Straight Jeans','Levi''s','32x32','like_new',42.00,98.00,
	   'Barely worn, dark rinse.','["classic","denim"]','["products/dnm-levis-501/main.jpg"]',1),
	  ('drs-floral-90s','dresses','90s Floral Midi Dress','Unbranded','S','good',27.50,NULL,
	   'Grunge-era floral, tiny pull at hem.','["90s","floral"]','["products/drs-floral-90s/main.jpg"]',0),
	  ('knt-aran-wool','knitwear','Hand-knit Aran Sweater','Unbranded','M','good',38.00,NULL,
	   'Cream wool, heavyweight.','["wool","winter"]','["products/knt-aran-wool/main.jpg"]',1),
	  ('acc-silk-scarf','accessories','Silk Square Scarf','Hermès','One Size','like_new',140.00,320.00,
	   'Authenticated, minor storage creasing.','["silk","luxury"]','["products/acc-silk-scarf/main.jpg"]',0)`)

	tx.MustExec(`INSERT INTO blog_posts(id,slug,title,excerpt,content,cover_image,tags_json) VALUES
	  ('post-denim-care','caring-for-vintage-denim','Caring for Vintage Denim',
	   'Wash less, spot clean more.','Full guide on keeping 40-year-old denim alive...',
	   'blog/denim-care.jpg','["denim","care"]'),
	  ('post-fall-lookbook','fall-lookbook-2025','Fall Lookbook',
	   'Layering season, thrifted.','Our favourite fall layering picks from the rack...',
	   'blog/fall-lookbook.jpg','["lookbook"]')`)

	return tx.Commit()
}

// seedUsers ensures a demo user and one admin exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-maya", "maya@rewear.test", "Maya Lindqvist", "user", "Passw0rd!"),
		mk("u-jonas", "jonas@rewear.test", "Jonas Petit", "user", "Passw0rd!"),
		mk("u-admin", "admin@rewear.test", "Store Admin", "admin", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,full_name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
