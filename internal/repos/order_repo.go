package repos

import (
	"time"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type OrderRow struct {
	ID             string  `db:"id" json:"id"`
	UserID         string  `db:"user_id" json:"user_id"`
	ShipName       string  `db:"ship_name" json:"ship_name"`
	ShipPhone      string  `db:"ship_phone" json:"ship_phone"`
	ShipAddress    string  `db:"ship_address" json:"ship_address"`
	ShipCity       string  `db:"ship_city" json:"ship_city"`
	ShipPostal     string  `db:"ship_postal" json:"ship_postal"`
	PaymentMethod  string  `db:"payment_method" json:"payment_method"`
	Subtotal       float64 `db:"subtotal" json:"subtotal"`
	ShippingFee    float64 `db:"shipping_fee" json:"shipping_fee"`
	Total          float64 `db:"total" json:"total"`
	Status         string  `db:"status" json:"status"`
	TrackingNumber string  `db:"tracking_number" json:"tracking_number"`
	CreatedAt      string  `db:"created_at" json:"created_at"`
	UpdatedAt      string  `db:"updated_at" json:"updated_at,omitempty"`
}

type OrderItemRow struct {
	ProductID string  `db:"product_id" json:"product_id"`
	Name      string  `db:"name" json:"name"`
	Brand     string  `db:"brand" json:"brand"`
	Size      string  `db:"size" json:"size"`
	Condition string  `db:"condition" json:"condition"`
	Price     float64 `db:"price" json:"price"`
	Qty       int     `db:"qty" json:"quantity"`
}

// Checkout writes the order, its lines, the reserved->sold flips and the cart
// cleanup as one transaction. Every line must still be an unexpired hold owned
// by this cart at commit time; a hold that lapsed (or was re-claimed by
// another cart after a sweep) aborts the whole checkout with ErrHoldExpired,
// leaving no partial order and no stolen listing behind.
func (r *OrderRepo) Checkout(o OrderRow, items []OrderItemRow, cartID string, now int64) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders(id,user_id,ship_name,ship_phone,ship_address,ship_city,ship_postal,
	    payment_method,subtotal,shipping_fee,total,status)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?)`,
		o.ID, o.UserID, o.ShipName, o.ShipPhone, o.ShipAddress, o.ShipCity, o.ShipPostal,
		o.PaymentMethod, o.Subtotal, o.ShippingFee, o.Total, o.Status); err != nil {
		return err
	}

	ts := time.Now().UTC().Format(time.RFC3339)
	for _, it := range items {
		// The hold must still belong to this cart. Status alone is not enough:
		// after a sweep another cart may hold the same listing as 'reserved'.
		var held int
		if err := tx.Get(&held, `
		  SELECT COUNT(*) FROM cart_items
		  WHERE cart_id=? AND product_id=? AND expires_at > ?`,
			cartID, it.ProductID, now); err != nil {
			return err
		}
		if held == 0 {
			return ErrHoldExpired
		}
		res, err := tx.Exec(`UPDATE products SET status='sold', updated_at=? WHERE id=? AND status='reserved'`,
			ts, it.ProductID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrHoldExpired
		}
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id,product_id,name,brand,size,condition,price,qty)
		  VALUES(?,?,?,?,?,?,?,?)`,
			o.ID, it.ProductID, it.Name, it.Brand, it.Size, it.Condition, it.Price, it.Qty); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`DELETE FROM cart_items WHERE cart_id=?`, cartID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *OrderRepo) Get(id string) (OrderRow, []OrderItemRow, error) {
	var o OrderRow
	if err := r.db.Get(&o, `
	  SELECT id,user_id,ship_name,ship_phone,ship_address,ship_city,ship_postal,payment_method,
	    subtotal,shipping_fee,total,status,tracking_number,created_at,COALESCE(updated_at,'') AS updated_at
	  FROM orders WHERE id=?`, id); err != nil {
		return OrderRow{}, nil, err
	}
	items := []OrderItemRow{}
	err := r.db.Select(&items, `
	  SELECT product_id,name,brand,size,condition,price,qty
	  FROM order_items WHERE order_id=? ORDER BY product_id`, id)
	return o, items, err
}

func (r *OrderRepo) ListByUser(userID string) ([]OrderRow, error) {
	out := []OrderRow{}
	err := r.db.Select(&out, `
	  SELECT id,user_id,ship_name,ship_phone,ship_address,ship_city,ship_postal,payment_method,
	    subtotal,shipping_fee,total,status,tracking_number,created_at,COALESCE(updated_at,'') AS updated_at
	  FROM orders WHERE user_id=? ORDER BY created_at DESC`, userID)
	return out, err
}

func (r *OrderRepo) ListLatest(limit int) ([]OrderRow, error) {
	out := []OrderRow{}
	err := r.db.Select(&out, `
	  SELECT id,user_id,ship_name,ship_phone,ship_address,ship_city,ship_postal,payment_method,
	    subtotal,shipping_fee,total,status,tracking_number,created_at,COALESCE(updated_at,'') AS updated_at
	  FROM orders ORDER BY created_at DESC LIMIT ?`, limit)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id, status, tracking string) error {
	_, err := r.db.Exec(`UPDATE orders SET status=?, tracking_number=COALESCE(NULLIF(?,''),tracking_number), updated_at=? WHERE id=?`,
		status, tracking, time.Now().UTC().Format(time.RFC3339), id)
	return err
}

type OrderStats struct {
	TotalOrders  int            `json:"total_orders"`
	TotalRevenue float64        `json:"total_revenue"`
	ByStatus     map[string]int `json:"by_status"`
}

func (r *OrderRepo) Stats() (OrderStats, error) {
	s := OrderStats{ByStatus: map[string]int{}}
	if err := r.db.Get(&s.TotalOrders, `SELECT COUNT(*) FROM orders`); err != nil {
		return s, err
	}
	if err := r.db.Get(&s.TotalRevenue,
		`SELECT COALESCE(SUM(total),0) FROM orders WHERE status != 'cancelled'`); err != nil {
		return s, err
	}
	rows := []struct {
		Status string `db:"status"`
		N      int    `db:"n"`
	}{}
	if err := r.db.Select(&rows, `SELECT status, COUNT(*) AS n FROM orders GROUP BY status`); err != nil {
		return s, err
	}
	for _, row := range rows {
		s.ByStatus[row.Status] = row.N
	}
	return s, nil
}
