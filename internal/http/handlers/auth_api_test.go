package handlers_test

import (
	"testing"
)

func TestAuth_LoginAndMe(t *testing.T) {
	app := newTestApp(t)
	tok := login(t, app, "maya@rewear.test")

	resp, body := doJSON(t, app, "GET", "/auth/me", tok, "")
	if resp.StatusCode != 200 {
		t.Fatalf("me: status %d", resp.StatusCode)
	}
	if body["email"] != "maya@rewear.test" {
		t.Fatalf("me returned wrong user: %v", body)
	}
	if _, leaked := body["password_hash"]; leaked {
		t.Fatal("password hash must never appear in responses")
	}
}

func TestAuth_BadPassword(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/auth/me", "", "")
	if resp.StatusCode != 401 || body["code"] != "unauthorized" {
		t.Fatalf("want 401 unauthorized without token, got %d %v", resp.StatusCode, body)
	}

	resp, body = doJSON(t, app, "GET", "/auth/me", "not-a-jwt", "")
	if resp.StatusCode != 401 || body["code"] != "unauthorized" {
		t.Fatalf("want 401 for garbage token, got %d %v", resp.StatusCode, body)
	}
}

func TestAuth_RegisterValidation(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		name string
		body string
		code string
	}{
		{"bad email", `{"email":"nope","full_name":"X","password":"Passw0rd!"}`, "invalid_input"},
		{"weak password", `{"email":"new@rewear.test","full_name":"New","password":"short"}`, "invalid_input"},
		{"taken email", `{"email":"maya@rewear.test","full_name":"Maya","password":"Passw0rd!"}`, "email_taken"},
	}
	for _, tc := range cases {
		resp, body := doJSON(t, app, "POST", "/auth/register", "", tc.body)
		if resp.StatusCode < 400 || body["code"] != tc.code {
			t.Fatalf("%s: want code %s, got %d %v", tc.name, tc.code, resp.StatusCode, body)
		}
	}

	resp, body := doJSON(t, app, "POST", "/auth/register", "",
		`{"email":"greta@rewear.test","full_name":"Greta Olsen","password":"Sommar2026"}`)
	if resp.StatusCode != 201 {
		t.Fatalf("register: status %d %v", resp.StatusCode, body)
	}
	if tok, _ := body["access_token"].(string); tok == "" || body["token_type"] != "bearer" {
		t.Fatalf("register must return a usable token: %v", body)
	}
}

func TestAuthz_AdminEndpoints(t *testing.T) {
	app := newTestApp(t)
	userTok := login(t, app, "maya@rewear.test")
	adminTok := login(t, app, "admin@rewear.test")

	paths := []string{
		"/orders/stats/summary",
		"/users/stats/summary",
		"/blog/stats/summary",
		"/notifications/stats/summary",
		"/admin/orders",
	}
	for _, p := range paths {
		resp, body := doJSON(t, app, "GET", p, "", "")
		if resp.StatusCode != 401 {
			t.Fatalf("%s anonymous: want 401, got %d", p, resp.StatusCode)
		}
		resp, body = doJSON(t, app, "GET", p, userTok, "")
		if resp.StatusCode != 403 || body["code"] != "forbidden" {
			t.Fatalf("%s as user: want 403 forbidden, got %d %v", p, resp.StatusCode, body)
		}
		resp, _ = doJSON(t, app, "GET", p, adminTok, "")
		if resp.StatusCode != 200 {
			t.Fatalf("%s as admin: want 200, got %d", p, resp.StatusCode)
		}
	}
}
