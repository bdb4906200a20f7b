package services_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"rewear/internal/domain"
	"rewear/internal/repos"
	"rewear/internal/services"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func newCartSvc(db *sqlx.DB, window time.Duration) *services.CartService {
	return services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db), window, 4.90, 75)
}

func productStatus(t *testing.T, db *sqlx.DB, id string) string {
	t.Helper()
	var status string
	if err := db.Get(&status, `SELECT status FROM products WHERE id=?`, id); err != nil {
		t.Fatal(err)
	}
	return status
}

func TestCartHold_SingleUnitPerListing(t *testing.T) {
	db := memdb(t)
	svc := newCartSvc(db, time.Hour)

	// quantity beyond one unit is rejected outright
	if err := svc.Add("u-maya", "jkt-levis-trucker", 2); !errors.Is(err, services.ErrSingleUnit) {
		t.Fatalf("want ErrSingleUnit for qty 2, got %v", err)
	}

	if err := svc.Add("u-maya", "jkt-levis-trucker", 1); err != nil {
		t.Fatal(err)
	}
	if got := productStatus(t, db, "jkt-levis-trucker"); got != domain.StatusReserved {
		t.Fatalf("want reserved after add, got %s", got)
	}

	// same cart again: the expected duplicate conflict
	if err := svc.Add("u-maya", "jkt-levis-trucker", 1); !errors.Is(err, services.ErrAlreadyInCart) {
		t.Fatalf("want ErrAlreadyInCart, got %v", err)
	}

	// another shopper: distinct held conflict
	if err := svc.Add("u-jonas", "jkt-levis-trucker", 1); !errors.Is(err, services.ErrListingHeld) {
		t.Fatalf("want ErrListingHeld, got %v", err)
	}
}

func TestCartHold_RemoveReturnsListing(t *testing.T) {
	db := memdb(t)
	svc := newCartSvc(db, time.Hour)

	if err := svc.Add("u-maya", "dnm-levis-501", 1); err != nil {
		t.Fatal(err)
	}
	if err := svc.Remove("u-maya", "dnm-levis-501"); err != nil {
		t.Fatal(err)
	}
	if got := productStatus(t, db, "dnm-levis-501"); got != domain.StatusAvailable {
		t.Fatalf("want available after remove, got %s", got)
	}
	if err := svc.Remove("u-maya", "dnm-levis-501"); !errors.Is(err, services.ErrNotInCart) {
		t.Fatalf("want ErrNotInCart on second remove, got %v", err)
	}

	// freed listing can be claimed by someone else
	if err := svc.Add("u-jonas", "dnm-levis-501", 1); err != nil {
		t.Fatal(err)
	}
}

func TestCartHold_ExpiryReleasesListing(t *testing.T) {
	db := memdb(t)
	svc := newCartSvc(db, 40*time.Millisecond)

	if err := svc.Add("u-maya", "knt-aran-wool", 1); err != nil {
		t.Fatal(err)
	}
	time.Sleep(80 * time.Millisecond)

	view, err := svc.View("u-maya")
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Items) != 0 || view.ExpiresInMinutes != 0 {
		t.Fatalf("expired hold should read as empty cart, got %+v", view)
	}
	if got := productStatus(t, db, "knt-aran-wool"); got != domain.StatusAvailable {
		t.Fatalf("want available after expiry, got %s", got)
	}

	// mutations after expiry behave as "cart no longer exists"
	if err := svc.Remove("u-maya", "knt-aran-wool"); !errors.Is(err, services.ErrNotInCart) {
		t.Fatalf("want ErrNotInCart after expiry, got %v", err)
	}
	if err := svc.UpdateItem("u-maya", "knt-aran-wool", 1); !errors.Is(err, services.ErrNotInCart) {
		t.Fatalf("want ErrNotInCart on update after expiry, got %v", err)
	}
}

func TestCartHold_ExtendAfterExpiryIsEmptyCart(t *testing.T) {
	db := memdb(t)
	svc := newCartSvc(db, 40*time.Millisecond)

	if err := svc.Add("u-maya", "drs-floral-90s", 1); err != nil {
		t.Fatal(err)
	}
	time.Sleep(80 * time.Millisecond)

	view, extended, err := svc.ExtendHold("u-maya")
	if err != nil {
		t.Fatalf("expired extend must not be an error, got %v", err)
	}
	if extended {
		t.Fatal("expired hold must not report extended")
	}
	if len(view.Items) != 0 {
		t.Fatalf("want empty cart, got %d items", len(view.Items))
	}
}

func TestCartHold_ExtendRefreshesWindow(t *testing.T) {
	db := memdb(t)
	svc := newCartSvc(db, 300*time.Millisecond)

	if err := svc.Add("u-maya", "jkt-barbour-wax", 1); err != nil {
		t.Fatal(err)
	}
	time.Sleep(150 * time.Millisecond)

	_, extended, err := svc.ExtendHold("u-maya")
	if err != nil || !extended {
		t.Fatalf("want extended=true, got extended=%v err=%v", extended, err)
	}

	// past the original deadline, inside the extended one
	time.Sleep(250 * time.Millisecond)
	view, err := svc.View("u-maya")
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("extended hold should survive the original deadline, got %d items", len(view.Items))
	}
}

func TestCartHold_StatusTracksEarliestExpiry(t *testing.T) {
	db := memdb(t)
	svc := newCartSvc(db, time.Hour)

	st, err := svc.Status("u-maya")
	if err != nil {
		t.Fatal(err)
	}
	if st.Active {
		t.Fatal("empty cart must not report an active hold")
	}

	if err := svc.Add("u-maya", "jkt-levis-trucker", 1); err != nil {
		t.Fatal(err)
	}
	st, err = svc.Status("u-maya")
	if err != nil {
		t.Fatal(err)
	}
	if !st.Active || st.ItemsHeld != 1 {
		t.Fatalf("want active hold with 1 item, got %+v", st)
	}
	if st.RemainingSeconds <= 0 || st.RemainingSeconds > 3600 {
		t.Fatalf("remaining seconds out of range: %d", st.RemainingSeconds)
	}
}

func TestCartView_ShippingThreshold(t *testing.T) {
	db := memdb(t)
	svc := newCartSvc(db, time.Hour)

	// 27.50 is under the 75 threshold: fee applies
	if err := svc.Add("u-maya", "drs-floral-90s", 1); err != nil {
		t.Fatal(err)
	}
	view, err := svc.View("u-maya")
	if err != nil {
		t.Fatal(err)
	}
	if view.ShippingFee != 4.90 {
		t.Fatalf("want shipping fee under threshold, got %v", view.ShippingFee)
	}
	if math.Abs(view.TotalAmount-32.40) > 1e-9 {
		t.Fatalf("total must include fee, got %v", view.TotalAmount)
	}

	// adding the scarf pushes the subtotal over the free-shipping line
	if err := svc.Add("u-maya", "acc-silk-scarf", 1); err != nil {
		t.Fatal(err)
	}
	view, err = svc.View("u-maya")
	if err != nil {
		t.Fatal(err)
	}
	if view.ShippingFee != 0 {
		t.Fatalf("want free shipping over threshold, got %v", view.ShippingFee)
	}
	if view.TotalItems != 2 {
		t.Fatalf("want 2 items, got %d", view.TotalItems)
	}
}
