package repos

import (
	"database/sql"
	"errors"
	"time"

	"rewear/internal/domain"

	"github.com/jmoiron/sqlx"
)

// Hold bookkeeping errors. Services re-export these for handlers.
var (
	ErrAlreadyInCart = errors.New("listing already in this cart")
	ErrListingHeld   = errors.New("listing reserved or sold")
	ErrNotInCart     = errors.New("listing not in cart")
	ErrHoldExpired   = errors.New("hold expired before checkout")
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

type CartItemRow struct {
	ProductID string  `db:"product_id" json:"product_id"`
	Qty       int     `db:"qty" json:"quantity"`
	Price     float64 `db:"price" json:"price"`
	Name      string  `db:"name" json:"name"`
	Brand     string  `db:"brand" json:"brand"`
	Size      string  `db:"size" json:"size"`
	Condition string  `db:"condition" json:"condition"`
	AddedAt   int64   `db:"added_at" json:"added_at"`
	ExpiresAt int64   `db:"expires_at" json:"expires_at"`
}

func (r *CartRepo) EnsureCart(userID string) (string, error) {
	var cartID string
	if err := r.db.Get(&cartID, `SELECT id FROM carts WHERE user_id = ?`, userID); err == nil {
		return cartID, nil
	}
	_, err := r.db.Exec(`INSERT INTO carts(id,user_id,updated_at) VALUES(?,?,?)`,
		userID, userID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return userID, nil
}

// AddHold reserves the listing for this cart atomically: the product row flips
// available -> reserved and the cart line is written with its expiry. Exactly
// one cart can win the flip.
func (r *CartRepo) AddHold(cartID string, p domain.Product, addedAt, expiresAt int64) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.Get(&exists, `SELECT COUNT(*) FROM cart_items WHERE cart_id=? AND product_id=?`,
		cartID, p.ID); err != nil {
		return err
	}
	if exists > 0 {
		return ErrAlreadyInCart
	}

	res, err := tx.Exec(`UPDATE products SET status='reserved' WHERE id=? AND status='available'`, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrListingHeld
	}

	if _, err := tx.Exec(`
		INSERT INTO cart_items(cart_id,product_id,qty,price,name,brand,size,condition,added_at,expires_at)
		VALUES(?,?,1,?,?,?,?,?,?,?)`,
		cartID, p.ID, p.Price, p.Name, p.Brand, p.Size, p.Condition, addedAt, expiresAt); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE carts SET updated_at=? WHERE id=?`,
		time.Now().UTC().Format(time.RFC3339), cartID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *CartRepo) Items(cartID string) ([]CartItemRow, error) {
	rows := []CartItemRow{}
	err := r.db.Select(&rows, `
	  SELECT product_id, qty, price, name, brand, size, condition, added_at, expires_at
	  FROM cart_items
	  WHERE cart_id = ?
	  ORDER BY added_at, product_id`, cartID)
	return rows, err
}

func (r *CartRepo) HasItem(cartID, productID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM cart_items WHERE cart_id=? AND product_id=?`, cartID, productID)
	return n > 0, err
}

// RemoveHold drops the cart line and returns the listing to the rack.
func (r *CartRepo) RemoveHold(cartID, productID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`DELETE FROM cart_items WHERE cart_id=? AND product_id=?`, cartID, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotInCart
	}
	if _, err := tx.Exec(`UPDATE products SET status='available' WHERE id=? AND status='reserved'`, productID); err != nil {
		return err
	}
	return tx.Commit()
}

// ClearHolds releases every hold in the cart.
func (r *CartRepo) ClearHolds(cartID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var ids []string
	if err := tx.Select(&ids, `SELECT product_id FROM cart_items WHERE cart_id=?`, cartID); err != nil {
		return err
	}
	if len(ids) == 0 {
		return tx.Commit()
	}
	if _, err := tx.Exec(`DELETE FROM cart_items WHERE cart_id=?`, cartID); err != nil {
		return err
	}
	query, args, err := sqlx.In(`UPDATE products SET status='available' WHERE id IN (?) AND status='reserved'`, ids)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}
	return tx.Commit()
}

// ExtendAll pushes every line's expiry to the given time; returns lines touched.
func (r *CartRepo) ExtendAll(cartID string, expiresAt int64) (int64, error) {
	res, err := r.db.Exec(`UPDATE cart_items SET expires_at=? WHERE cart_id=?`, expiresAt, cartID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ReleaseExpired sweeps every cart: lines past their expiry are deleted and
// their listings returned to available. Returns the number of released holds.
func (r *CartRepo) ReleaseExpired(now int64) (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var ids []string
	if err := tx.Select(&ids, `SELECT product_id FROM cart_items WHERE expires_at <= ?`, now); err != nil {
		if err == sql.ErrNoRows {
			return 0, tx.Commit()
		}
		return 0, err
	}
	if len(ids) == 0 {
		return 0, tx.Commit()
	}
	if _, err := tx.Exec(`DELETE FROM cart_items WHERE expires_at <= ?`, now); err != nil {
		return 0, err
	}
	query, args, err := sqlx.In(`UPDATE products SET status='available' WHERE id IN (?) AND status='reserved'`, ids)
	if err != nil {
		return 0, err
	}
	if _, err := tx.Exec(query, args...); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}
