package session

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewStore(rdb, "ge", nil), mr
}

func TestLoadEmptyStoreDefaults(t *testing.T) {
	store, _ := newTestStore(t)

	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if snap.Onboarded || snap.Connected || snap.Premium || snap.Token != "" {
		t.Fatalf("expected empty defaults, got %+v", snap)
	}
	if snap.InstallID == "" {
		t.Fatal("expected install id to be minted on first load")
	}
}

func TestLoadInstallIDStable(t *testing.T) {
	store, _ := newTestStore(t)

	first, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	second, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if first.InstallID != second.InstallID {
		t.Fatalf("install id changed across loads: %q vs %q", first.InstallID, second.InstallID)
	}
}

func TestLoadLegacyTokenMigrated(t *testing.T) {
	store, mr := newTestStore(t)

	mr.Set("ge:userToken", "tok-legacy")

	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if snap.Token != "tok-legacy" || !snap.LegacyToken {
		t.Fatalf("expected legacy token recovery, got %+v", snap)
	}
	if got, _ := mr.Get("ge:token"); got != "tok-legacy" {
		t.Fatalf("expected canonical key written, got %q", got)
	}
	if mr.Exists("ge:userToken") {
		t.Fatal("expected legacy key removed after migration")
	}
}

func TestLoadCanonicalTokenWinsOverLegacy(t *testing.T) {
	store, mr := newTestStore(t)

	mr.Set("ge:token", "tok-canonical")
	mr.Set("ge:userToken", "tok-legacy")

	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if snap.Token != "tok-canonical" || snap.LegacyToken {
		t.Fatalf("expected canonical token, got %+v", snap)
	}
}

func TestLoadStalePremiumScrubbedWithoutToken(t *testing.T) {
	store, mr := newTestStore(t)

	mr.Set("ge:isPremium", "true")
	mr.Set("ge:connexion", "oui")

	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if snap.Premium {
		t.Fatal("premium must not survive a missing token")
	}
	if snap.Connected {
		t.Fatal("connexion flag without a token must not read as connected")
	}
	if !snap.ConnexionDrift {
		t.Fatal("expected drift to be reported")
	}
}

func TestLoadDriftTokenWithoutConnexion(t *testing.T) {
	store, mr := newTestStore(t)

	mr.Set("ge:token", "tok-1")

	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if !snap.Connected {
		t.Fatal("token present must read as connected")
	}
	if !snap.ConnexionDrift {
		t.Fatal("expected drift to be reported")
	}
}

func TestSaveLoginRoundTrip(t *testing.T) {
	store, mr := newTestStore(t)

	mr.Set("ge:userToken", "tok-stale")

	if err := store.SaveLogin(context.Background(), "tok-1", false); err != nil {
		t.Fatalf("save login failed: %v", err)
	}

	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if snap.Token != "tok-1" || !snap.Connected || snap.Premium {
		t.Fatalf("unexpected snapshot after login: %+v", snap)
	}
	if snap.ConnexionDrift {
		t.Fatal("login write must leave token and connexion consistent")
	}
	if mr.Exists("ge:userToken") {
		t.Fatal("login must remove the stale legacy token key")
	}
}

func TestSetPremiumRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveLogin(ctx, "tok-1", false); err != nil {
		t.Fatalf("save login failed: %v", err)
	}
	if err := store.SetPremium(ctx, true); err != nil {
		t.Fatalf("set premium failed: %v", err)
	}

	snap, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !snap.Premium {
		t.Fatal("expected premium true after SetPremium")
	}
}

func TestClearRemovesEverySessionKey(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.SetOnboarded(ctx); err != nil {
		t.Fatalf("set onboarded failed: %v", err)
	}
	if err := store.SaveLogin(ctx, "tok-1", true); err != nil {
		t.Fatalf("save login failed: %v", err)
	}
	first, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if removed == 0 {
		t.Fatal("expected clear to remove keys")
	}

	snap, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !snap.Empty() || snap.Onboarded {
		t.Fatalf("expected empty snapshot after clear, got %+v", snap)
	}
	if snap.InstallID != first.InstallID {
		t.Fatal("install id must survive clear")
	}
	for _, key := range []string{"ge:token", "ge:connexion", "ge:isPremium", "ge:onboarded"} {
		if mr.Exists(key) {
			t.Fatalf("expected %s removed by clear", key)
		}
	}
}

func TestLoadRedisDown(t *testing.T) {
	store, mr := newTestStore(t)

	mr.Close()

	_, err := store.Load(context.Background())
	if !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable, got %v", err)
	}
}
