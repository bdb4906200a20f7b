package token

import (
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	m, err := NewManager("unit-test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := m.Issue("u-maya", "user")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := m.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "u-maya" || claims.Role != "user" {
		t.Fatalf("bad claims: %+v", claims)
	}
}

func TestParse_RejectsExpired(t *testing.T) {
	m, _ := NewManager("unit-test-secret", -time.Minute)
	raw, err := m.Issue("u-maya", "user")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Parse(raw); err == nil {
		t.Fatal("expired token must not parse")
	}
}

func TestParse_RejectsWrongKey(t *testing.T) {
	a, _ := NewManager("key-a", time.Hour)
	b, _ := NewManager("key-b", time.Hour)
	raw, err := a.Issue("u-maya", "user")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Parse(raw); err == nil {
		t.Fatal("token signed with another key must not parse")
	}
}

func TestParse_RejectsGarbage(t *testing.T) {
	m, _ := NewManager("unit-test-secret", time.Hour)
	for _, raw := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		if _, err := m.Parse(raw); err == nil {
			t.Fatalf("Parse(%q) accepted", raw)
		}
	}
}

func TestNewManager_RequiresSecret(t *testing.T) {
	if _, err := NewManager("", time.Hour); err == nil {
		t.Fatal("empty secret must be rejected")
	}
}
