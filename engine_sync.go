package goEntitle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrEthical07/goEntitle/internal/backoff"
	"go.uber.org/zap"
)

// StartSync launches the entitlement synchronizer: a periodic authoritative
// re-check of the premium flag against the backend. The first poll fires
// after one interval; use [Engine.RefreshEntitlement] for an immediate
// check on mount. Returns [ErrSyncRunning] if already started. Pair with
// StopSync when the owning screen goes away.
func (e *Engine) StartSync() error {
	if e == nil {
		return ErrEngineNotReady
	}

	e.syncMu.Lock()
	defer e.syncMu.Unlock()

	if e.syncStop != nil {
		return ErrSyncRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	stop := make(chan struct{})
	e.syncStop = stop
	e.syncCancel = cancel

	e.syncWG.Add(1)
	go e.runSync(ctx, stop)
	return nil
}

// StopSync halts the synchronizer, cancels any in-flight fetch, and waits
// for the poll goroutine to exit. Idempotent; a discarded in-flight result
// is never applied and never retried in place.
func (e *Engine) StopSync() {
	if e == nil {
		return
	}

	e.syncMu.Lock()
	stop := e.syncStop
	cancel := e.syncCancel
	e.syncStop = nil
	e.syncCancel = nil
	e.syncMu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	cancel()
	e.syncWG.Wait()
}

func (e *Engine) runSync(ctx context.Context, stop chan struct{}) {
	defer e.syncWG.Done()

	sched := backoff.New(e.config.Sync.Interval, e.config.Sync.MaxInterval, e.config.Sync.BackoffFactor)
	timer := time.NewTimer(sched.Next())
	defer timer.Stop()

	for {
		select {
		case <-stop:
			return
		case <-timer.C:
			_, err := e.refreshOnce(ctx)
			switch {
			case err == nil,
				errors.Is(err, ErrNoToken),
				errors.Is(err, ErrSyncSuperseded):
				sched.Reset()
			default:
				// Background failures stay silent for the user; the next
				// tick retries with a stretched wait.
				sched.Failure()
				e.logger.Warn("entitlement poll failed",
					zap.Error(err),
					zap.Int("consecutive_failures", sched.Failures()))
				e.emit(ctx, Event{EventType: EventSyncFailed, Error: err.Error()})
			}
			timer.Reset(sched.Next())
		}
	}
}

// RefreshEntitlement performs one immediate authoritative entitlement
// check. Unlike background polls, failures are surfaced to the caller as a
// recoverable error. Returns the premium value reported by the backend.
func (e *Engine) RefreshEntitlement(ctx context.Context) (bool, error) {
	if e == nil {
		return false, ErrEngineNotReady
	}
	return e.refreshOnce(ctx)
}

// refreshOnce is one Fetching pass: no token means a side-effect-free
// no-op; a result is applied only under the sequence guard.
func (e *Engine) refreshOnce(ctx context.Context) (bool, error) {
	token := e.token()
	if token == "" {
		e.metrics.Inc(MetricSyncSkipped)
		return false, ErrNoToken
	}

	seq := e.fetchIssued.Add(1)

	fetchCtx, cancel := context.WithTimeout(ctx, e.config.Sync.FetchTimeout)
	defer cancel()

	start := time.Now()
	profile, err := e.client.User(fetchCtx, token)
	e.metrics.Observe(MetricSyncLatency, time.Since(start))

	if err != nil {
		// Fail-safe: an error never touches the cached premium value. A
		// transient outage must not downgrade a premium user.
		e.metrics.Inc(MetricSyncFailure)
		return false, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	if !e.applyEntitlement(ctx, seq, profile.Premium) {
		return profile.Premium, ErrSyncSuperseded
	}
	e.metrics.Inc(MetricSyncSuccess)
	return profile.Premium, nil
}

// applyEntitlement applies one fetched premium value. The guard: a result
// lands only while its sequence is still the latest issued and newer than
// the last applied, so an older, slower response can never overwrite a
// newer one. Server truth wins on success, downgrades included. Entitlement
// edges persist first, then emit their one-shot event.
func (e *Engine) applyEntitlement(ctx context.Context, seq uint64, premium bool) bool {
	e.mu.Lock()

	if seq != e.fetchIssued.Load() || seq <= e.fetchApplied {
		e.mu.Unlock()
		e.metrics.Inc(MetricSyncSuperseded)
		return false
	}
	e.fetchApplied = seq

	if e.state.Token == "" {
		// Logged out while the fetch was in flight; nothing to apply.
		e.mu.Unlock()
		return false
	}

	prev := e.state.Premium
	e.state.Premium = premium
	route := gate(e.state)
	e.mu.Unlock()

	if premium == prev {
		return true
	}

	if err := e.store.SetPremium(ctx, premium); err != nil {
		e.metrics.Inc(MetricStorageError)
		e.logger.Warn("entitlement persist failed", zap.Error(err))
	}

	if premium {
		e.metrics.Inc(MetricEntitlementGranted)
		e.emit(ctx, Event{EventType: EventEntitlementGranted, Route: route.String()})
	} else {
		e.metrics.Inc(MetricEntitlementRevoked)
		e.emit(ctx, Event{EventType: EventEntitlementRevoked, Route: route.String()})
	}
	return true
}
