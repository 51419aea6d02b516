package goEntitle

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestRequestUpgradeValidation(t *testing.T) {
	engine, counting, _ := loginTestEngine(t, engineTestConfig(), false, nil)

	for _, numero := range []string{"", "1234567", "12a45678", "++2217770"} {
		err := engine.RequestUpgrade(context.Background(), numero)
		if !errors.Is(err, ErrPaymentNumberInvalid) {
			t.Fatalf("numero %q: expected ErrPaymentNumberInvalid, got %v", numero, err)
		}
	}
	if counting.calls.Load() != 0 {
		t.Fatal("invalid numbers must not reach the network")
	}

	// Validation is a blocking prompt at the UI layer, not a banner.
	if _, showing := engine.ActiveNotice(); showing {
		t.Fatal("validation failure must not trigger a notice")
	}
}

func TestRequestUpgradeWithoutToken(t *testing.T) {
	engine, _, _ := newTestEngine(t, engineTestConfig(), nil)
	engine.Hydrate(context.Background())

	err := engine.RequestUpgrade(context.Background(), "77701726")
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestRequestUpgradeSuccessOpensReviewWindow(t *testing.T) {
	cfg := engineTestConfig()
	engine, _, _ := loginTestEngine(t, cfg, false, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/demandeVip" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-test" {
			t.Errorf("unexpected authorization %q", got)
		}
		writeVIP(w, true)
	})

	if _, pending := engine.ReviewRemaining(); pending {
		t.Fatal("no review should be pending before the request")
	}

	// Spaces tolerated, digits counted.
	if err := engine.RequestUpgrade(context.Background(), "77 70 17 26"); err != nil {
		t.Fatalf("request upgrade failed: %v", err)
	}

	remaining, pending := engine.ReviewRemaining()
	if !pending {
		t.Fatal("expected pending review")
	}
	if remaining <= 0 || remaining > cfg.Payment.ReviewWindow {
		t.Fatalf("unexpected remaining %v", remaining)
	}

	// Submission never grants premium; only the authoritative read does.
	if engine.State().Premium {
		t.Fatal("payment submission must not set premium")
	}
	if got := engine.Route(); got != RoutePayment {
		t.Fatalf("expected payment route while pending, got %v", got)
	}

	if msg, _ := engine.ActiveNotice(); msg != MsgUpgradeRequestSent {
		t.Fatalf("expected %q notice, got %q", MsgUpgradeRequestSent, msg)
	}
}

func TestRequestUpgradeRejected(t *testing.T) {
	engine, _, _ := loginTestEngine(t, engineTestConfig(), false, func(w http.ResponseWriter, r *http.Request) {
		writeVIP(w, false)
	})

	err := engine.RequestUpgrade(context.Background(), "77701726")
	if !errors.Is(err, ErrUpgradeRejected) {
		t.Fatalf("expected ErrUpgradeRejected, got %v", err)
	}
	if _, pending := engine.ReviewRemaining(); pending {
		t.Fatal("rejected request must not open the review window")
	}
	if msg, _ := engine.ActiveNotice(); msg != MsgUpgradeRequestFailed {
		t.Fatalf("expected %q notice, got %q", MsgUpgradeRequestFailed, msg)
	}
}

func TestRequestUpgradeTransportFailure(t *testing.T) {
	engine, _, _ := loginTestEngine(t, engineTestConfig(), false, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := engine.RequestUpgrade(context.Background(), "77701726")
	if !errors.Is(err, ErrRemoteUnavailable) {
		t.Fatalf("expected ErrRemoteUnavailable, got %v", err)
	}
}

func TestReviewRemainingClampsAtZero(t *testing.T) {
	cfg := engineTestConfig()
	cfg.Payment.ReviewWindow = 10 * time.Millisecond
	engine, _, _ := loginTestEngine(t, cfg, false, func(w http.ResponseWriter, r *http.Request) {
		writeVIP(w, true)
	})

	if err := engine.RequestUpgrade(context.Background(), "77701726"); err != nil {
		t.Fatalf("request upgrade failed: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	remaining, pending := engine.ReviewRemaining()
	if !pending || remaining != 0 {
		t.Fatalf("expected expired-but-pending countdown, got %v pending=%v", remaining, pending)
	}
	if got := FormatClock(int(remaining.Seconds())); got != "00:00:00" {
		t.Fatalf("unexpected render %q", got)
	}
}
