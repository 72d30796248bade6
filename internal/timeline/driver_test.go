package timeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hammamikhairi/gitakids/internal/domain"
)

func shortTimeline() []Phase {
	return []Phase{
		{Name: "a", Tracks: []Track{{Property: "x", From: Scalar(0), To: Scalar(1), Duration: 20 * time.Millisecond}}},
		{Name: "b", Gap: 10 * time.Millisecond},
	}
}

func TestRunCompletes(t *testing.T) {
	done := &completionCounter{}
	c, err := New(shortTimeline(), done.fn())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Run(ctx, c, 2*time.Millisecond); err != nil {
		t.Fatalf("run: %v", err)
	}
	if done.count() != 1 {
		t.Fatalf("expected one completion, got %d", done.count())
	}
	if c.State() != StateCompleted {
		t.Fatalf("expected completed, got %s", c.State())
	}
	if got := c.Values().Scalar("x"); got != 1 {
		t.Fatalf("x = %v, want 1", got)
	}
}

func TestRunCanceledByContext(t *testing.T) {
	phases := []Phase{{Name: "long", Tracks: []Track{{Property: "x", To: Scalar(1), Duration: time.Hour}}}}
	done := &completionCounter{}
	c, err := New(phases, done.fn())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err = Run(ctx, c, 5*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if c.State() != StateIdle {
		t.Fatalf("expected idle after cancel, got %s", c.State())
	}
	if done.count() != 0 {
		t.Fatal("completion fired for a canceled run")
	}
}

func TestRunRejectsBadInterval(t *testing.T) {
	c, err := New(shortTimeline(), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := Run(context.Background(), c, 0); !errors.Is(err, domain.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
	if c.State() != StateIdle {
		t.Fatal("bad interval should not start the run")
	}
}
