package client

import (
	"context"
	"net/url"
)

type Order struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	ShipName       string  `json:"ship_name"`
	ShipAddress    string  `json:"ship_address"`
	ShipCity       string  `json:"ship_city"`
	ShipPostal     string  `json:"ship_postal"`
	PaymentMethod  string  `json:"payment_method"`
	Subtotal       float64 `json:"subtotal"`
	ShippingFee    float64 `json:"shipping_fee"`
	Total          float64 `json:"total"`
	Status         string  `json:"status"`
	TrackingNumber string  `json:"tracking_number"`
	CreatedAt      string  `json:"created_at"`
}

type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	Size      string  `json:"size"`
	Condition string  `json:"condition"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type OrderRequest struct {
	ShippingName    string `json:"shipping_name"`
	ShippingPhone   string `json:"shipping_phone,omitempty"`
	ShippingAddress string `json:"shipping_address"`
	ShippingCity    string `json:"shipping_city,omitempty"`
	ShippingPostal  string `json:"shipping_postal_code,omitempty"`
	PaymentMethod   string `json:"payment_method,omitempty"`
}

type OrderConfirmation struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}

// CreateOrder checks out the current held cart. A reservation that lapsed
// before the server committed the order surfaces as ErrHoldExpired.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (OrderConfirmation, error) {
	var out OrderConfirmation
	if err := c.doJSON(ctx, "POST", "/orders/", nil, req, &out); err != nil {
		return OrderConfirmation{}, err
	}
	return out, nil
}

func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.doJSON(ctx, "GET", "/orders/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Order(ctx context.Context, id string) (OrderConfirmation, error) {
	var out OrderConfirmation
	if err := c.doJSON(ctx, "GET", "/orders/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return OrderConfirmation{}, err
	}
	return out, nil
}
