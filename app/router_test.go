package app_test

import (
	"testing"

	"github.com/tranche-io/tranche/app"
	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/tranchetest"
)

func TestRouterSuccess(t *testing.T) {
	r := app.NewRouter()

	var handler tranchetest.Handler
	r.Handle(&tranchetest.Msg{RoutePath: "test/good"}, &handler)

	tx := &tranchetest.Tx{Msg: &tranchetest.Msg{RoutePath: "test/good"}}

	if _, err := r.Check(nil, nil, tx); err != nil {
		t.Fatalf("check failed: %+v", err)
	}
	if _, err := r.Deliver(nil, nil, tx); err != nil {
		t.Fatalf("deliver failed: %+v", err)
	}
	if got := handler.CallCount(); got != 2 {
		t.Fatalf("want the handler to be called twice, got %d", got)
	}
}

func TestRouterNoHandler(t *testing.T) {
	r := app.NewRouter()

	tx := &tranchetest.Tx{Msg: &tranchetest.Msg{RoutePath: "test/secret"}}

	if _, err := r.Check(nil, nil, tx); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want a not found error, got %+v", err)
	}
	if _, err := r.Deliver(nil, nil, tx); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want a not found error, got %+v", err)
	}
}

func TestRouterHandlerFailure(t *testing.T) {
	r := app.NewRouter()

	handler := &tranchetest.Handler{
		CheckErr:   errors.ErrUnauthorized,
		DeliverErr: errors.ErrUnauthorized,
	}
	r.Handle(&tranchetest.Msg{RoutePath: "test/bad"}, handler)

	tx := &tranchetest.Tx{Msg: &tranchetest.Msg{RoutePath: "test/bad"}}

	if _, err := r.Check(nil, nil, tx); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want the handler error, got %+v", err)
	}
	if _, err := r.Deliver(nil, nil, tx); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want the handler error, got %+v", err)
	}
}

func TestRouterInvalidPath(t *testing.T) {
	r := app.NewRouter()

	defer func() {
		if recover() == nil {
			t.Fatal("want a panic on an invalid path")
		}
	}()
	r.Handle(&tranchetest.Msg{RoutePath: "l:7"}, &tranchetest.Handler{})
}

func TestRouterDoubleRegistration(t *testing.T) {
	r := app.NewRouter()
	r.Handle(&tranchetest.Msg{RoutePath: "test/good"}, &tranchetest.Handler{})

	defer func() {
		if recover() == nil {
			t.Fatal("want a panic on a double registration")
		}
	}()
	r.Handle(&tranchetest.Msg{RoutePath: "test/good"}, &tranchetest.Handler{})
}
