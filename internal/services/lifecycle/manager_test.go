package lifecycle

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestShutdownReverseOrder(t *testing.T) {
	m := New(time.Second, nil)
	var order []string
	for _, name := range []string{"store", "client", "server"} {
		name := name
		m.Register(name, func(ctx context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	if err := m.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	want := []string{"server", "client", "store"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestShutdownJoinsErrors(t *testing.T) {
	m := New(time.Second, nil)
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	ran := 0
	m.Register("a", func(ctx context.Context) error { ran++; return errA })
	m.Register("ok", func(ctx context.Context) error { ran++; return nil })
	m.Register("b", func(ctx context.Context) error { ran++; return errB })

	err := m.Shutdown(context.Background())
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Shutdown error = %v, want both failures", err)
	}
	if ran != 3 {
		t.Errorf("ran %d components, want 3", ran)
	}
}

func TestShutdownOnce(t *testing.T) {
	m := New(time.Second, nil)
	calls := 0
	m.Register("x", func(ctx context.Context) error { calls++; return nil })

	_ = m.Shutdown(context.Background())
	_ = m.Shutdown(context.Background())
	m.Register("late", func(ctx context.Context) error { calls++; return nil })
	_ = m.Shutdown(context.Background())

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestShutdownDeadline(t *testing.T) {
	m := New(50*time.Millisecond, nil)
	m.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	err := m.Shutdown(context.Background())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
}
