package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"rewear/pkg/client"
)

func TestProductFilter_SettersResetPage(t *testing.T) {
	var f client.ProductFilter

	f.SetCategory("jackets")
	f.SetPage(3)
	if f.Page() != 3 {
		t.Fatalf("SetPage must move the cursor, got %d", f.Page())
	}

	// any filter change invalidates the cursor
	f.SetSearch("denim")
	if f.Page() != 1 {
		t.Fatalf("filter change must reset page to 1, got %d", f.Page())
	}

	f.SetPage(5)
	f.SetPriceRange(20, 80)
	if f.Page() != 1 {
		t.Fatalf("price range change must reset page, got %d", f.Page())
	}

	q := f.Query()
	if q.Get("category") != "jackets" || q.Get("search") != "denim" {
		t.Fatalf("query lost filters: %v", q)
	}
	if q.Get("page") != "1" {
		t.Fatalf("query must always carry the page, got %q", q.Get("page"))
	}
	if q.Get("min_price") != "20" || q.Get("max_price") != "80" {
		t.Fatalf("price range missing: %v", q)
	}
}

func TestListProducts_EnvelopeShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "2" {
			t.Errorf("want page=2 in query, got %q", r.URL.Query().Get("page"))
		}
		w.Write([]byte(`{
			"products":[{"id":"p1","name":"A"},{"id":"p2","name":"B"}],
			"total":14,"page":2,"per_page":2,"pages":7
		}`))
	}))
	defer srv.Close()

	f := &client.ProductFilter{}
	f.SetPage(2)

	page, err := client.New(srv.URL).ListProducts(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if !page.Paginated {
		t.Fatal("envelope response must report Paginated")
	}
	if page.Total != 14 || page.Page != 2 || page.Pages != 7 || len(page.Products) != 2 {
		t.Fatalf("bad envelope decode: %+v", page)
	}
}

func TestListProducts_BareArrayShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"p1","name":"A"},{"id":"p2","name":"B"},{"id":"p3","name":"C"}]`))
	}))
	defer srv.Close()

	page, err := client.New(srv.URL).ListProducts(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if page.Paginated {
		t.Fatal("bare array must not report Paginated")
	}
	// a bare array is one complete page
	if page.Page != 1 || page.Pages != 1 || page.Total != 3 || len(page.Products) != 3 {
		t.Fatalf("bad bare-array normalization: %+v", page)
	}
}

func TestListProducts_EmptyEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":null,"total":0,"page":1,"per_page":12,"pages":0}`))
	}))
	defer srv.Close()

	page, err := client.New(srv.URL).ListProducts(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if page.Products == nil {
		t.Fatal("Products must never be nil")
	}
	if page.Pages != 1 {
		t.Fatalf("pages floors at 1, got %d", page.Pages)
	}
}
