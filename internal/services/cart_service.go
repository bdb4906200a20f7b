package services

import (
	"context"
	"errors"
	"math"
	"time"

	applog "rewear/internal/log"
	"rewear/internal/metrics"
	"rewear/internal/repos"
)

// Re-exported so handlers map one package's sentinels.
var (
	ErrAlreadyInCart = repos.ErrAlreadyInCart
	ErrListingHeld   = repos.ErrListingHeld
	ErrNotInCart     = repos.ErrNotInCart
	ErrHoldExpired   = repos.ErrHoldExpired
	ErrSingleUnit    = errors.New("thrift listings are single-unit; quantity must be 1")
)

// CartService owns the time-limited reservation protocol: adding a listing to
// a cart places an exclusive hold that expires unless extended or checked out.
type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo

	Window                time.Duration
	ShippingFee           float64
	FreeShippingThreshold float64
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo, window time.Duration, fee, freeOver float64) *CartService {
	if window <= 0 {
		window = 30 * time.Minute
	}
	return &CartService{Carts: carts, Prods: prods, Window: window, ShippingFee: fee, FreeShippingThreshold: freeOver}
}

type CartView struct {
	Items                 []repos.CartItemRow `json:"items"`
	TotalItems            int                 `json:"total_items"`
	TotalAmount           float64             `json:"total_amount"`
	ShippingFee           float64             `json:"shipping_fee"`
	FreeShippingThreshold float64             `json:"free_shipping_threshold"`
	ExpiresInMinutes      int                 `json:"expires_in_minutes"`
}

type HoldStatus struct {
	Active           bool   `json:"active"`
	ItemsHeld        int    `json:"items_held"`
	ExpiresAt        string `json:"expires_at,omitempty"`
	RemainingSeconds int64  `json:"remaining_seconds"`
}

// Add reserves one unit of a listing. Quantities other than 1 are rejected,
// a listing already in this cart is an expected conflict, and a listing held
// elsewhere (or sold) is a distinct conflict.
func (s *CartService) Add(userID, productID string, qty int) error {
	if qty != 1 {
		return ErrSingleUnit
	}
	s.sweep()
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return err
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return err
	}
	now := time.Now()
	if err := s.Carts.AddHold(cartID, p, now.Unix(), now.Add(s.Window).Unix()); err != nil {
		return err
	}
	metrics.HoldsCreated.Inc()
	return nil
}

func (s *CartService) View(userID string) (CartView, error) {
	s.sweep()
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return CartView{}, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return CartView{}, err
	}
	return s.buildView(items), nil
}

func (s *CartService) buildView(items []repos.CartItemRow) CartView {
	v := CartView{
		Items:                 items,
		FreeShippingThreshold: s.FreeShippingThreshold,
	}
	var earliest int64
	for _, it := range items {
		v.TotalItems += it.Qty
		v.TotalAmount += it.Price * float64(it.Qty)
		if earliest == 0 || it.ExpiresAt < earliest {
			earliest = it.ExpiresAt
		}
	}
	if len(items) > 0 && v.TotalAmount < s.FreeShippingThreshold {
		v.ShippingFee = s.ShippingFee
	}
	v.TotalAmount += v.ShippingFee
	if earliest > 0 {
		secs := earliest - time.Now().Unix()
		if secs > 0 {
			v.ExpiresInMinutes = int(math.Ceil(float64(secs) / 60))
		}
	}
	return v
}

// UpdateItem re-validates a held line. Listings are single-unit, so the only
// legal quantity is 1; a mutation against an expired hold reports not-in-cart.
func (s *CartService) UpdateItem(userID, productID string, qty int) error {
	if qty != 1 {
		return ErrSingleUnit
	}
	s.sweep()
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return err
	}
	ok, err := s.Carts.HasItem(cartID, productID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotInCart
	}
	return nil
}

func (s *CartService) Remove(userID, productID string) error {
	s.sweep()
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return err
	}
	return s.Carts.RemoveHold(cartID, productID)
}

func (s *CartService) Clear(userID string) error {
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return err
	}
	return s.Carts.ClearHolds(cartID)
}

// ExtendHold pushes every hold in the cart out to a fresh window. An expired
// (now empty) cart is not an error: extended=false with the empty snapshot.
func (s *CartService) ExtendHold(userID string) (CartView, bool, error) {
	s.sweep()
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return CartView{}, false, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return CartView{}, false, err
	}
	if len(items) == 0 {
		return s.buildView(nil), false, nil
	}
	if _, err := s.Carts.ExtendAll(cartID, time.Now().Add(s.Window).Unix()); err != nil {
		return CartView{}, false, err
	}
	metrics.HoldsExtended.Inc()
	fresh, err := s.Carts.Items(cartID)
	if err != nil {
		return CartView{}, false, err
	}
	return s.buildView(fresh), true, nil
}

func (s *CartService) Status(userID string) (HoldStatus, error) {
	s.sweep()
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return HoldStatus{}, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return HoldStatus{}, err
	}
	if len(items) == 0 {
		return HoldStatus{}, nil
	}
	earliest := items[0].ExpiresAt
	for _, it := range items[1:] {
		if it.ExpiresAt < earliest {
			earliest = it.ExpiresAt
		}
	}
	remaining := earliest - time.Now().Unix()
	if remaining < 0 {
		remaining = 0
	}
	return HoldStatus{
		Active:           true,
		ItemsHeld:        len(items),
		ExpiresAt:        time.Unix(earliest, 0).UTC().Format(time.RFC3339),
		RemainingSeconds: remaining,
	}, nil
}

// sweep releases expired holds inline so no read or mutation ever observes a
// stale reservation, regardless of the background ticker.
func (s *CartService) sweep() {
	released, err := s.Carts.ReleaseExpired(time.Now().Unix())
	if err != nil {
		applog.Error(nil, "cart.sweep.fail", err, nil)
		return
	}
	if released > 0 {
		metrics.HoldsReleased.Add(float64(released))
	}
}

// StartSweeper runs the expiry sweep on a ticker until ctx is cancelled.
func (s *CartService) StartSweeper(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}
