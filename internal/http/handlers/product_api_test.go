package handlers_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
)

func TestProducts_ListEnvelope(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/products?per_page=4", "", "")
	if resp.StatusCode != 200 {
		t.Fatalf("list: %d", resp.StatusCode)
	}
	for _, k := range []string{"products", "total", "page", "per_page", "pages"} {
		if _, ok := body[k]; !ok {
			t.Fatalf("envelope missing %q: %v", k, body)
		}
	}
	if n, _ := body["total"].(float64); n != 6 {
		t.Fatalf("want 6 seeded listings, got %v", body["total"])
	}
	if n, _ := body["pages"].(float64); n != 2 {
		t.Fatalf("want 2 pages at per_page=4, got %v", body["pages"])
	}
}

func TestProducts_Filters(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/products?category=jackets", "", "")
	if resp.StatusCode != 200 {
		t.Fatalf("filter: %d", resp.StatusCode)
	}
	if n, _ := body["total"].(float64); n != 2 {
		t.Fatalf("want 2 jackets, got %v", body["total"])
	}

	resp, body = doJSON(t, app, "GET", "/products?condition=like_new", "", "")
	if n, _ := body["total"].(float64); n != 2 {
		t.Fatalf("want 2 like_new listings, got %v", body["total"])
	}

	// unknown condition value is rejected, not silently ignored
	resp, body = doJSON(t, app, "GET", "/products?condition=mint", "", "")
	if resp.StatusCode != 400 || body["code"] != "invalid_input" {
		t.Fatalf("bad condition: want 400 invalid_input, got %d %v", resp.StatusCode, body)
	}

	resp, body = doJSON(t, app, "GET", "/products?search=trucker", "", "")
	if n, _ := body["total"].(float64); n != 1 {
		t.Fatalf("want 1 trucker match, got %v", body["total"])
	}

	resp, body = doJSON(t, app, "GET", "/products?min_price=100", "", "")
	if n, _ := body["total"].(float64); n != 1 {
		t.Fatalf("want only the scarf above 100, got %v", body["total"])
	}
}

func TestProducts_FeaturedIsBareArray(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/products/featured", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if len(raw) == 0 || raw[0] != '[' {
		t.Fatalf("featured must be a bare JSON array, got %s", raw)
	}
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("want 3 seeded featured listings, got %d", len(items))
	}
}

func TestProducts_DetailAndNotFound(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/products/jkt-levis-trucker", "", "")
	if resp.StatusCode != 200 || body["name"] != "Vintage Trucker Jacket" {
		t.Fatalf("detail: %d %v", resp.StatusCode, body)
	}
	if tags, ok := body["tags"].([]any); !ok || len(tags) != 3 {
		t.Fatalf("tags must be decoded for detail view, got %v", body["tags"])
	}

	resp, body = doJSON(t, app, "GET", "/products/nope-unknown", "", "")
	if resp.StatusCode != 404 || body["code"] != "not_found" {
		t.Fatalf("missing product: want 404 not_found, got %d %v", resp.StatusCode, body)
	}
}

func TestProducts_AdminCRUD(t *testing.T) {
	app := newTestApp(t)
	userTok := login(t, app, "maya@rewear.test")
	adminTok := login(t, app, "admin@rewear.test")

	payload := `{"category_id":"knitwear","name":"Mohair Cardigan","brand":"Unbranded","size":"M","condition":"good","price":33.00,"tags":["mohair"],"images":[]}`

	resp, body := doJSON(t, app, "POST", "/products", userTok, payload)
	if resp.StatusCode != 403 {
		t.Fatalf("create as user: want 403, got %d", resp.StatusCode)
	}

	resp, body = doJSON(t, app, "POST", "/products", adminTok, payload)
	if resp.StatusCode != 201 {
		t.Fatalf("create: %d %v", resp.StatusCode, body)
	}
	id, _ := body["id"].(string)
	if id == "" || body["status"] != "available" {
		t.Fatalf("created listing malformed: %v", body)
	}

	resp, _ = doJSON(t, app, "DELETE", "/products/"+id, adminTok, "")
	if resp.StatusCode != 204 {
		t.Fatalf("delete: want 204, got %d", resp.StatusCode)
	}

	// retired listings drop out of the catalog but stay fetchable
	resp, body = doJSON(t, app, "GET", "/products/"+id, "", "")
	if resp.StatusCode != 200 || body["status"] != "sold" {
		t.Fatalf("retired listing: %d %v", resp.StatusCode, body)
	}
}
