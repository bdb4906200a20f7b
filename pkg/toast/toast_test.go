package toast

import (
	"testing"
	"time"
)

func TestShow_AutoDismissAfterDuration(t *testing.T) {
	s := NewStore()
	defer s.Close()

	id := s.Show(Toast{Kind: Success, Message: "Added to cart", Duration: 40 * time.Millisecond})
	if id == "" {
		t.Fatal("Show must return an id")
	}
	if s.Len() != 1 {
		t.Fatalf("toast must be visible immediately, len=%d", s.Len())
	}

	time.Sleep(100 * time.Millisecond)
	if s.Len() != 0 {
		t.Fatalf("toast must auto-dismiss after its duration, len=%d", s.Len())
	}
}

func TestShow_StickyNeverAutoDismisses(t *testing.T) {
	s := NewStore()
	defer s.Close()

	id := s.Show(Toast{Kind: Warning, Message: "Hold expiring soon", Sticky: true})
	time.Sleep(60 * time.Millisecond)
	if s.Len() != 1 {
		t.Fatal("sticky toast must persist until dismissed")
	}

	s.Hide(id)
	if s.Len() != 0 {
		t.Fatal("explicit hide must remove a sticky toast")
	}
}

func TestHide_Idempotent(t *testing.T) {
	s := NewStore()
	defer s.Close()

	id := s.Show(Toast{Message: "one", Duration: time.Minute})
	s.Hide(id)
	s.Hide(id)
	s.Hide("never-existed")
	if s.Len() != 0 {
		t.Fatalf("len=%d after hides", s.Len())
	}
}

func TestActive_InsertionOrder(t *testing.T) {
	s := NewStore()
	defer s.Close()

	s.Show(Toast{Message: "first", Duration: time.Minute})
	s.Show(Toast{Message: "second", Duration: time.Minute})
	s.Show(Toast{Message: "third", Duration: time.Minute})

	got := s.Active()
	if len(got) != 3 {
		t.Fatalf("want 3 active, got %d", len(got))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Message != want {
			t.Fatalf("order broken at %d: %s", i, got[i].Message)
		}
	}
}

func TestShow_DefaultsApplied(t *testing.T) {
	s := NewStore()
	defer s.Close()

	s.Show(Toast{Message: "plain"})
	got := s.Active()
	if len(got) != 1 {
		t.Fatal("toast missing")
	}
	if got[0].Kind != Info {
		t.Fatalf("want Info default kind, got %s", got[0].Kind)
	}
	if got[0].Duration != DefaultDuration {
		t.Fatalf("want default duration, got %v", got[0].Duration)
	}
}

func TestClose_StopsTimersAndRefusesNew(t *testing.T) {
	s := NewStore()
	s.Show(Toast{Message: "doomed", Duration: 20 * time.Millisecond})
	s.Close()

	if s.Len() != 0 {
		t.Fatal("close must drop all toasts")
	}
	if id := s.Show(Toast{Message: "late"}); id != "" {
		t.Fatal("closed store must refuse new toasts")
	}

	// a timer racing Close must not panic or resurrect state
	time.Sleep(40 * time.Millisecond)
	if s.Len() != 0 {
		t.Fatal("state changed after close")
	}
}
