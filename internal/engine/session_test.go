package engine

import (
	"context"
	"testing"

	"github.com/san-kum/forestfire/internal/forest"
	"github.com/san-kum/forestfire/internal/input"
	"github.com/san-kum/forestfire/internal/render"
)

type heldPoller struct{ left, right bool }

func (p heldPoller) Held(b input.Button) bool {
	if b == input.ButtonLeft {
		return p.left
	}
	return p.right
}

func stillOptions(w, h int) Options {
	return Options{Width: w, Height: h, Rules: forest.Rules{}, Seed: 42}
}

func TestSession_LeftClickPlantsImmediately(t *testing.T) {
	s := NewSession(stillOptions(5, 5))
	if quit := s.Handle(input.PointerButtonDown{Button: input.ButtonLeft, X: 2, Y: 2}); quit {
		t.Fatal("click must not quit")
	}
	if got := s.Grid().At(2, 2); got != forest.Sapling1 {
		t.Fatalf("got %s, want sapling1 before any step", got)
	}
	if !s.Input().Latched(input.ButtonLeft) {
		t.Error("left should be latched")
	}
}

func TestSession_RightClickIgnitesImmediately(t *testing.T) {
	s := NewSession(stillOptions(3, 3))
	s.Grid().Set(1, 1, forest.Tree)
	s.Handle(input.PointerButtonDown{Button: input.ButtonRight, X: 1, Y: 1})
	if got := s.Grid().At(1, 1); got != forest.Smoldering {
		t.Fatalf("got %s", got)
	}
}

func TestSession_HeldButtonPaintsUntilReleased(t *testing.T) {
	s := NewSession(stillOptions(4, 1))
	s.Handle(input.PointerButtonDown{Button: input.ButtonLeft, X: 0, Y: 0})
	s.Handle(input.PointerMoved{X: 1, Y: 0})

	s.Advance(heldPoller{left: true})
	if got := s.Grid().At(1, 0); got != forest.Sapling1 {
		t.Fatalf("dragged cell = %s, want sapling1", got)
	}

	s.Handle(input.PointerMoved{X: 2, Y: 0})
	s.Advance(heldPoller{})
	if got := s.Grid().At(2, 0); got != forest.Empty {
		t.Fatalf("released button still painted: %s", got)
	}
	if s.Input().Latched(input.ButtonLeft) {
		t.Error("latch should be cleared by the poll")
	}
}

func TestSession_MissedReleaseKeepsLatchUntilPoll(t *testing.T) {
	s := NewSession(stillOptions(3, 1))
	s.Handle(input.PointerButtonDown{Button: input.ButtonLeft, X: 0, Y: 0})
	s.Advance(heldPoller{left: true})
	if !s.Input().Latched(input.ButtonLeft) {
		t.Fatal("latch dropped while held")
	}
}

func TestSession_QuitKeys(t *testing.T) {
	s := NewSession(stillOptions(2, 2))
	for _, k := range []input.Key{input.KeyEscape, input.KeyQuit} {
		if !s.Handle(input.KeyDown{Key: k}) {
			t.Errorf("key %d should quit", k)
		}
	}
	for _, k := range []input.Key{input.KeyOther, input.KeyPause, input.KeyHelp, input.KeyReset} {
		if s.Handle(input.KeyDown{Key: k}) {
			t.Errorf("key %d should not quit", k)
		}
	}
}

func TestSession_AdvanceProjectsHover(t *testing.T) {
	s := NewSession(stillOptions(3, 3))
	s.Handle(input.PointerMoved{X: 2, Y: 1})
	f := s.Advance(nil)
	if f.At(2, 1).Bg != render.HoverBg {
		t.Error("hovered cell not highlighted")
	}
	if f.At(0, 0).Bg == render.HoverBg {
		t.Error("only the hovered cell is highlighted")
	}
}

func TestSession_AdvanceRecordsCensus(t *testing.T) {
	s := NewSession(stillOptions(3, 3))
	s.Grid().Set(0, 0, forest.Tree)
	s.Advance(nil)
	s.Advance(nil)
	if s.History().Len() != 2 {
		t.Fatalf("history len = %d", s.History().Len())
	}
	last, _ := s.History().Last()
	if last.Trees != 1 || last.Generation != 2 {
		t.Errorf("last census = %+v", last)
	}
}

func TestSession_Reset(t *testing.T) {
	s := NewSession(stillOptions(3, 3))
	s.Handle(input.PointerButtonDown{Button: input.ButtonLeft, X: 1, Y: 1})
	s.Advance(nil)
	s.Reset()
	if s.Generation() != 0 || s.History().Len() != 0 || s.Grid().At(1, 1) != forest.Empty {
		t.Error("reset left state behind")
	}
}

func TestSession_SameSeedSameWorld(t *testing.T) {
	opts := Options{Width: 30, Height: 10, Rules: forest.Rules{SaplingProb: 0.02, SpreadProb: 0.3, FireProb: 0.01}, Seed: 99}
	a, b := NewSession(opts), NewSession(opts)
	if err := RunHeadless(context.Background(), a, 200); err != nil {
		t.Fatal(err)
	}
	if err := RunHeadless(context.Background(), b, 200); err != nil {
		t.Fatal(err)
	}
	if a.Frame().String() != b.Frame().String() {
		t.Error("same seed produced different worlds")
	}
}

func TestRunHeadless_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewSession(stillOptions(2, 2))
	if err := RunHeadless(ctx, s, 10); err == nil {
		t.Error("expected context error")
	}
	if s.Generation() != 0 {
		t.Errorf("stepped %d times after cancel", s.Generation())
	}
}
