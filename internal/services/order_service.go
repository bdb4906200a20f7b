package services

import (
	"errors"
	"fmt"
	"time"

	"rewear/internal/domain"
	"rewear/internal/metrics"
	"rewear/internal/repos"

	"github.com/google/uuid"
)

var (
	ErrCartEmpty     = errors.New("cart is empty")
	ErrBadTransition = errors.New("illegal order status transition")
)

type ShippingInfo struct {
	Name       string
	Phone      string
	Address    string
	City       string
	PostalCode string
}

type OrderService struct {
	Carts  *repos.CartRepo
	Orders *repos.OrderRepo
	Cart   *CartService
}

func NewOrderService(carts *repos.CartRepo, orders *repos.OrderRepo, cart *CartService) *OrderService {
	return &OrderService{Carts: carts, Orders: orders, Cart: cart}
}

// Place converts the user's held cart into an order. The snapshot here is
// only a pre-check; the repo commits the order, the reserved -> sold flips
// and the cart cleanup in one transaction, re-verifying every hold so a
// reservation that lapsed mid-checkout aborts instead of double-selling.
func (s *OrderService) Place(userID string, ship ShippingInfo, paymentMethod string) (repos.OrderRow, []repos.OrderItemRow, error) {
	view, err := s.Cart.View(userID)
	if err != nil {
		return repos.OrderRow{}, nil, err
	}
	if len(view.Items) == 0 {
		return repos.OrderRow{}, nil, ErrCartEmpty
	}

	subtotal := 0.0
	for _, it := range view.Items {
		subtotal += it.Price * float64(it.Qty)
	}

	order := repos.OrderRow{
		ID:            uuid.NewString(),
		UserID:        userID,
		ShipName:      ship.Name,
		ShipPhone:     ship.Phone,
		ShipAddress:   ship.Address,
		ShipCity:      ship.City,
		ShipPostal:    ship.PostalCode,
		PaymentMethod: paymentMethod,
		Subtotal:      subtotal,
		ShippingFee:   view.ShippingFee,
		Total:         subtotal + view.ShippingFee,
		Status:        domain.OrderPending,
	}

	items := make([]repos.OrderItemRow, 0, len(view.Items))
	for _, it := range view.Items {
		items = append(items, repos.OrderItemRow{
			ProductID: it.ProductID,
			Name:      it.Name,
			Brand:     it.Brand,
			Size:      it.Size,
			Condition: it.Condition,
			Price:     it.Price,
			Qty:       it.Qty,
		})
	}

	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return repos.OrderRow{}, nil, err
	}
	if err := s.Orders.Checkout(order, items, cartID, time.Now().Unix()); err != nil {
		return repos.OrderRow{}, nil, err
	}
	metrics.OrdersPlaced.Inc()
	return order, items, nil
}

// UpdateStatus enforces the fulfillment state machine before persisting.
func (s *OrderService) UpdateStatus(orderID, status, tracking string) error {
	o, _, err := s.Orders.Get(orderID)
	if err != nil {
		return err
	}
	if !domain.OrderTransitionAllowed(o.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrBadTransition, o.Status, status)
	}
	return s.Orders.UpdateStatus(orderID, status, tracking)
}
