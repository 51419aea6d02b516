// entitle-watch tails a session's entitlement against a live backend.
//
// It hydrates the persisted session from Redis (optionally logging in
// first), starts the synchronizer, and prints every engine event as one
// JSON line on stdout until interrupted. Useful for watching a manual
// payment review land.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goEntitle "github.com/MrEthical07/goEntitle"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	var (
		baseURL   = flag.String("base-url", "", "account backend base URL (required)")
		redisAddr = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix    = flag.String("prefix", "ge", "session key prefix")
		interval  = flag.Duration("interval", 5*time.Second, "entitlement poll period")
		email     = flag.String("email", "", "log in before watching (with -password)")
		password  = flag.String("password", "", "password for -email")
		verbose   = flag.Bool("verbose", false, "log engine diagnostics to stderr")
	)
	flag.Parse()

	if *baseURL == "" {
		fmt.Fprintln(os.Stderr, "-base-url is required")
		os.Exit(2)
	}
	if (*email == "") != (*password == "") {
		fmt.Fprintln(os.Stderr, "-email and -password go together")
		os.Exit(2)
	}

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{mr.Addr()},
		})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		fmt.Fprintf(os.Stderr, "using throwaway miniredis at %s (session will not persist)\n", mr.Addr())
	} else {
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() { _ = client.Close() }
		fmt.Fprintf(os.Stderr, "using redis at %s\n", addr)
	}
	defer cleanup()

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
			os.Exit(1)
		}
		logger = l
		defer func() { _ = logger.Sync() }()
	}

	cfg := goEntitle.DefaultConfig()
	cfg.Storage.RedisPrefix = *prefix
	cfg.Sync.Interval = *interval
	cfg.Sync.MaxInterval = 10 * *interval

	engine, err := goEntitle.New().
		WithConfig(cfg).
		WithRedis(client).
		WithBaseURL(*baseURL).
		WithLogger(logger).
		WithEventSink(goEntitle.NewJSONWriterSink(os.Stdout)).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine build failed: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	ctx := context.Background()

	state := engine.Hydrate(ctx)

	if *email != "" {
		result, err := engine.Login(ctx, *email, *password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "logged in: premium=%v route=%s\n", result.Premium, result.Route)
	} else if !state.Connected {
		fmt.Fprintln(os.Stderr, "no persisted session and no -email given; nothing to watch")
		os.Exit(1)
	}

	if info, err := engine.TokenInfo(); err == nil {
		fmt.Fprintf(os.Stderr, "token subject=%s expires=%s\n",
			info.Subject, info.ExpiresAt.Format(time.RFC3339))
		if info.Expired(time.Now()) {
			fmt.Fprintln(os.Stderr, "warning: cached token looks expired")
		}
	}

	if _, err := engine.RefreshEntitlement(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "initial refresh failed: %v\n", err)
	}
	fmt.Fprintf(os.Stderr, "watching: premium=%v route=%s interval=%s\n",
		engine.State().Premium, engine.Route(), *interval)

	if err := engine.StartSync(); err != nil {
		fmt.Fprintf(os.Stderr, "start sync failed: %v\n", err)
		os.Exit(1)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	engine.StopSync()

	snap := engine.MetricsSnapshot()
	fmt.Fprintf(os.Stderr, "polls: ok=%d failed=%d superseded=%d dropped_events=%d\n",
		snap.Counters[goEntitle.MetricSyncSuccess],
		snap.Counters[goEntitle.MetricSyncFailure],
		snap.Counters[goEntitle.MetricSyncSuperseded],
		engine.EventsDropped())
}
