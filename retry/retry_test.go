package retry

import (
	"context"
	"errors"
	"testing"
)

func TestDoSucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, Attempts(5), Delay(0))
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestDoExhaustsBudget(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return boom
	}, Attempts(2), Delay(0))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3 (first try plus two retries)", calls)
	}
}

func TestRetryIfStopsEarly(t *testing.T) {
	fatal := errors.New("fatal")
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return fatal
	}, Attempts(5), Delay(0), RetryIf(func(err error) bool {
		return !errors.Is(err, fatal)
	}))
	if !errors.Is(err, fatal) {
		t.Fatalf("err = %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestDoValueReturnsResult(t *testing.T) {
	calls := 0
	v, err := DoValue(context.Background(), func() (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("again")
		}
		return "done", nil
	}, Delay(0))
	if err != nil || v != "done" {
		t.Fatalf("v = %q, err = %v", v, err)
	}
}

func TestDoStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	err := Do(ctx, func() error {
		calls++
		return errors.New("transient")
	}, Attempts(10), Delay(0))
	if err == nil {
		t.Fatalf("expected error")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}
