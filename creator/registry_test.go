package creator

import (
	"errors"
	"fmt"
	"testing"
)

func stubFactory(v any) Factory {
	return func(Args) (any, error) { return v, nil }
}

func TestRegisterRequiresSeparator(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("Widget", stubFactory(1)); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("err = %v, want ErrInvalidKey", err)
	}
}

func TestResolveSplitsOnLastSeparator(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("media.codecs.Decoder", stubFactory("deep")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := r.Resolve("media.codecs.Decoder"); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	// "codecs.Decoder" must not resolve in namespace "media".
	if err := r.Register("media.Decoder", stubFactory("shallow")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := r.Resolve("media.codecs.Decoder"); err != nil {
		t.Fatalf("deep name broken by shallow registration: %v", err)
	}
}

func TestResolveErrorsAreDistinct(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("pkg.Widget", stubFactory(1)); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := r.Resolve("nokey")
	if !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("err = %v, want ErrInvalidKey", err)
	}
	_, err = r.Resolve("ghost.Widget")
	if !errors.Is(err, ErrNamespaceNotFound) || errors.Is(err, ErrSymbolNotFound) {
		t.Fatalf("err = %v, want ErrNamespaceNotFound only", err)
	}
	_, err = r.Resolve("pkg.Ghost")
	if !errors.Is(err, ErrSymbolNotFound) || errors.Is(err, ErrNamespaceNotFound) {
		t.Fatalf("err = %v, want ErrSymbolNotFound only", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("pkg.W", stubFactory(1)); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register("pkg.W", stubFactory(2)); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

func TestMustRegisterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	NewRegistry().MustRegister("nokey", stubFactory(1))
}

func TestWithSeparator(t *testing.T) {
	r := NewRegistry(WithSeparator("/"))
	if err := r.Register("media/Decoder", stubFactory(1)); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := r.Resolve("media/Decoder"); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, err := r.Resolve("media.Decoder"); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("err = %v, want ErrInvalidKey", err)
	}
}

func TestLazyNamespaceLoadsOnce(t *testing.T) {
	r := NewRegistry()
	calls := 0
	err := r.RegisterLazy("plugins", func(ns *Namespace) error {
		calls++
		if err := ns.Register("A", stubFactory("a")); err != nil {
			return err
		}
		return ns.Register("B", stubFactory("b"))
	})
	if err != nil {
		t.Fatalf("register lazy: %v", err)
	}
	if _, err := r.Resolve("plugins.A"); err != nil {
		t.Fatalf("resolve A: %v", err)
	}
	if _, err := r.Resolve("plugins.B"); err != nil {
		t.Fatalf("resolve B: %v", err)
	}
	if calls != 1 {
		t.Fatalf("loader ran %d times, want 1", calls)
	}
	if _, err := r.Resolve("plugins.C"); !errors.Is(err, ErrSymbolNotFound) {
		t.Fatalf("err = %v, want ErrSymbolNotFound", err)
	}
}

func TestLazyNamespaceFailureRetries(t *testing.T) {
	r := NewRegistry()
	calls := 0
	if err := r.RegisterLazy("flaky", func(ns *Namespace) error {
		calls++
		if calls == 1 {
			return fmt.Errorf("transient")
		}
		return ns.Register("X", stubFactory("x"))
	}); err != nil {
		t.Fatalf("register lazy: %v", err)
	}
	if _, err := r.Resolve("flaky.X"); err == nil {
		t.Fatalf("first resolve should fail")
	}
	if _, err := r.Resolve("flaky.X"); err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if calls != 2 {
		t.Fatalf("loader ran %d times, want 2", calls)
	}
}

func TestRegisterObject(t *testing.T) {
	r := NewRegistry()
	shared := &struct{ N int }{N: 7}
	if err := r.RegisterObject("state.Shared", shared); err != nil {
		t.Fatalf("register object: %v", err)
	}
	got, err := r.Object("state.Shared")
	if err != nil {
		t.Fatalf("object: %v", err)
	}
	if got != any(shared) {
		t.Fatalf("object identity lost")
	}
	if _, err := r.Object("state.Ghost"); !errors.Is(err, ErrSymbolNotFound) {
		t.Fatalf("err = %v, want ErrSymbolNotFound", err)
	}
}
