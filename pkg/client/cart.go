package client

import (
	"context"
	"net/url"
)

type CartItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	Size      string  `json:"size"`
	Condition string  `json:"condition"`
	AddedAt   int64   `json:"added_at"`
	ExpiresAt int64   `json:"expires_at"`
}

// Cart is the server's reservation snapshot. Totals and expiry are
// authoritative; the client never recomputes them from stale items.
type Cart struct {
	Items                 []CartItem `json:"items"`
	TotalItems            int        `json:"total_items"`
	TotalAmount           float64    `json:"total_amount"`
	ShippingFee           float64    `json:"shipping_fee"`
	FreeShippingThreshold float64    `json:"free_shipping_threshold"`
	ExpiresInMinutes      int        `json:"expires_in_minutes"`
}

type HoldStatus struct {
	Active           bool   `json:"active"`
	ItemsHeld        int    `json:"items_held"`
	ExpiresAt        string `json:"expires_at"`
	RemainingSeconds int64  `json:"remaining_seconds"`
}

// AddToCart reserves one unit of a listing and returns the fresh cart.
// A listing already held by this cart comes back as ErrAlreadyInCart — an
// expected outcome to surface gently, never a generic failure.
func (c *Client) AddToCart(ctx context.Context, productID string, quantity int) (Cart, error) {
	var cart Cart
	body := map[string]any{"product_id": productID, "quantity": quantity}
	if err := c.doJSON(ctx, "POST", "/cart/add", nil, body, &cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

func (c *Client) Cart(ctx context.Context) (Cart, error) {
	var cart Cart
	if err := c.doJSON(ctx, "GET", "/cart/", nil, nil, &cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// UpdateCartItem re-validates a held line. The returned cart is the
// post-mutation server state; callers replace any cached snapshot with it.
func (c *Client) UpdateCartItem(ctx context.Context, productID string, quantity int) (Cart, error) {
	var cart Cart
	body := map[string]any{"quantity": quantity}
	if err := c.doJSON(ctx, "PUT", "/cart/items/"+url.PathEscape(productID), nil, body, &cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

func (c *Client) RemoveFromCart(ctx context.Context, productID string) (Cart, error) {
	var cart Cart
	if err := c.doJSON(ctx, "DELETE", "/cart/items/"+url.PathEscape(productID), nil, nil, &cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

func (c *Client) ClearCart(ctx context.Context) (Cart, error) {
	var cart Cart
	if err := c.doJSON(ctx, "DELETE", "/cart/", nil, nil, &cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// ExtendCartHold asks for a fresh hold window. An expired hold is not a
// failure: it reports extended=false with the (now empty) cart, which callers
// treat exactly like an empty-cart transition.
func (c *Client) ExtendCartHold(ctx context.Context) (Cart, bool, error) {
	var out struct {
		Extended bool `json:"extended"`
		Cart     Cart `json:"cart"`
	}
	if err := c.doJSON(ctx, "POST", "/cart/extend-hold", nil, nil, &out); err != nil {
		return Cart{}, false, err
	}
	return out.Cart, out.Extended, nil
}

func (c *Client) CartHoldStatus(ctx context.Context) (HoldStatus, error) {
	var st HoldStatus
	if err := c.doJSON(ctx, "GET", "/cart/hold-status", nil, nil, &st); err != nil {
		return HoldStatus{}, err
	}
	return st, nil
}
