package goEntitle

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrEthical07/goEntitle/api"
	"github.com/MrEthical07/goEntitle/jwt"
	"github.com/MrEthical07/goEntitle/session"
	"go.uber.org/zap"
)

// Engine is the session core. One instance per app run; construct through
// [Builder.Build]. Engine instances are intended to be configured during
// initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config  Config
	store   *session.Store
	client  *api.Client
	logger  *zap.Logger
	metrics *Metrics
	events  *eventDispatcher
	notice  *noticeTimeline

	mu    sync.Mutex
	state SessionState

	// reviewUntil is the pending-review countdown deadline; zero when no
	// payment request is in flight. Guarded by mu.
	reviewUntil time.Time

	// Entitlement fetch sequencing. Every issue increments fetchIssued; a
	// completion applies only while it still matches the latest issue and
	// exceeds fetchApplied (guarded by mu).
	fetchIssued  atomic.Uint64
	fetchApplied uint64

	syncMu     sync.Mutex
	syncStop   chan struct{}
	syncCancel context.CancelFunc
	syncWG     sync.WaitGroup
}

// Close stops the synchronizer, cancels notice timers, and drains the
// event dispatcher. Safe to call more than once.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.StopSync()
	if e.notice != nil {
		e.notice.Close()
	}
	if e.events != nil {
		e.events.Close()
	}
}

// State returns a copy of the current session state.
func (e *Engine) State() SessionState {
	if e == nil {
		return SessionState{}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// MetricsSnapshot copies the engine's counters and histograms.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

// EventsDropped reports events discarded by a full dispatcher buffer.
func (e *Engine) EventsDropped() uint64 {
	if e == nil {
		return 0
	}
	return e.events.Dropped()
}

// Hydrate reads the persisted session into the cache. It never fails: a
// storage error degrades to the empty unauthenticated state and is logged,
// so the first gate evaluation can always proceed. Call once before the
// first paint decision; safe to call again after external store changes.
func (e *Engine) Hydrate(ctx context.Context) SessionState {
	if e == nil {
		return SessionState{}
	}
	e.metrics.Inc(MetricHydrate)

	snap, err := e.store.Load(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		e.metrics.Inc(MetricStorageError)
		e.logger.Warn("hydration degraded to empty session", zap.Error(err))
		e.state = SessionState{Hydrated: true}
		return e.state
	}

	if snap.ConnexionDrift {
		e.logger.Warn("connexion flag disagreed with token; token wins",
			zap.Bool("token_present", snap.Token != ""))
	}
	if snap.LegacyToken {
		e.logger.Info("token recovered from legacy userToken key")
	}

	e.state = SessionState{
		Hydrated:  true,
		Onboarded: snap.Onboarded,
		Connected: snap.Connected,
		Premium:   snap.Premium,
		Token:     snap.Token,
		InstallID: snap.InstallID,
	}
	return e.state
}

// CompleteOnboarding marks the first-launch pass as done, persisting
// before the flag becomes visible to the gate.
func (e *Engine) CompleteOnboarding(ctx context.Context) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if err := e.store.SetOnboarded(ctx); err != nil {
		e.metrics.Inc(MetricStorageError)
		return wrapStorageErr(err)
	}
	e.mu.Lock()
	e.state.Onboarded = true
	e.mu.Unlock()
	return nil
}

// Notify shows a transient notice, replacing any active one.
func (e *Engine) Notify(message string) {
	if e == nil {
		return
	}
	e.notice.Trigger(message)
}

// ActiveNotice reports whether a notice is currently showing and its text.
func (e *Engine) ActiveNotice() (string, bool) {
	if e == nil {
		return "", false
	}
	return e.notice.Active()
}

// NoticeProgress reports the companion progress fraction in [0,1].
func (e *Engine) NoticeProgress() float64 {
	if e == nil {
		return 0
	}
	return e.notice.Progress()
}

// TokenInfo decodes the cached bearer token's registered claims for
// display. Returns [ErrNoToken] when unauthenticated. Never a validation.
func (e *Engine) TokenInfo() (jwt.TokenInfo, error) {
	if e == nil {
		return jwt.TokenInfo{}, ErrEngineNotReady
	}
	token := e.token()
	if token == "" {
		return jwt.TokenInfo{}, ErrNoToken
	}
	return jwt.Inspect(token)
}

func (e *Engine) token() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Token
}

func (e *Engine) emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	e.events.Emit(ctx, event)
}
