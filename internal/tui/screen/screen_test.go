// ABOUTME: Tests for the screen navigation commands and routed results
// ABOUTME: Commands are executed directly and their messages inspected

package screen

import (
	"errors"
	"testing"

	"github.com/readsmvp/reads-cli/internal/nav"
)

func TestGo(t *testing.T) {
	msg := Go(nav.ToLessonList("DeFi"))()
	n, ok := msg.(Navigate)
	if !ok {
		t.Fatalf("expected Navigate, got %T", msg)
	}
	if n.Back || n.Reset {
		t.Errorf("unexpected flags %+v", n)
	}
	if n.Route != nav.ToLessonList("DeFi") {
		t.Errorf("route = %v", n.Route)
	}
}

func TestBackAndReset(t *testing.T) {
	if n := Back()().(Navigate); !n.Back {
		t.Error("Back should set Back")
	}
	n := Reset(nav.ToSection(nav.SectionAuth))().(Navigate)
	if !n.Reset || n.Route.SubView != nav.ViewLogin {
		t.Errorf("Reset = %+v", n)
	}
}

func TestResultIsRoutedAndFailed(t *testing.T) {
	type loaded struct {
		Result
		Count int
	}
	err := errors.New("boom")
	var msg any = loaded{Result: Result{Route: nav.ToLessonDetail("abc"), Err: err}}

	r, ok := msg.(Routed)
	if !ok {
		t.Fatal("embedded Result should satisfy Routed")
	}
	if r.RouteOf() != nav.ToLessonDetail("abc") {
		t.Errorf("RouteOf = %v", r.RouteOf())
	}
	if f, ok := msg.(Failed); !ok || f.Failure() != err {
		t.Error("embedded Result should expose the failure")
	}
}

func TestEmit(t *testing.T) {
	if _, ok := Emit(SignedIn{})().(SignedIn); !ok {
		t.Error("Emit should return the wrapped message")
	}
}
